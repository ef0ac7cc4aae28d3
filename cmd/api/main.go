package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httpapi "github.com/spec-kit/grievance-service/internal/api/http"
	"github.com/spec-kit/grievance-service/internal/api/http/handlers"
	"github.com/spec-kit/grievance-service/internal/auth"
	"github.com/spec-kit/grievance-service/internal/config"
	"github.com/spec-kit/grievance-service/internal/events"
	"github.com/spec-kit/grievance-service/internal/observability"
	"github.com/spec-kit/grievance-service/internal/persistence"
	"github.com/spec-kit/grievance-service/internal/repository"
	"github.com/spec-kit/grievance-service/internal/service"
	"github.com/spec-kit/grievance-service/internal/triage"
	"github.com/spec-kit/grievance-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer postgres.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, postgres.PoolHandle(), logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	redisStore := persistence.NewRedis(cfg.Redis, logger)
	defer redisStore.Close()

	pool := postgres.PoolHandle()
	actorRepo := repository.NewActorRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	transitionRepo := repository.NewTransitionRecordRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	departmentService := service.NewDepartmentService(departmentRepo, redisStore.Client, cfg.Redis.ReferenceTTL(), logger)

	// An absent model artifact is a normal deployment state; a corrupt one is
	// a fatal misconfiguration.
	model, err := triage.LoadModel(cfg.Triage.ModelPath)
	if err != nil {
		logger.Fatal("triage model load failed", zap.String("path", cfg.Triage.ModelPath), zap.Error(err))
	}
	if model == nil {
		logger.Warn("no triage model artifact; running on keyword fallback", zap.String("path", cfg.Triage.ModelPath))
	} else {
		logger.Info("triage model loaded",
			zap.String("path", cfg.Triage.ModelPath),
			zap.Int("labels", len(model.Labels)),
			zap.Int("samples", model.Samples),
		)
	}
	primary := triage.NewModelBacked(model)
	fallback := triage.NewKeywordBacked(departmentService, cfg.Triage.MatchWholeWords)
	router := triage.NewRouter(primary, fallback)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		ActorRepo:         actorRepo,
		PasswordResetRepo: resetRepo,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo:     reportRepo,
		TransitionRepo: transitionRepo,
		CommentRepo:    commentRepo,
		Departments:    departmentService,
		Router:         router,
		Fallback:       fallback,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
		Logger:         logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})

	httpapi.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httpapi.RegisterRoutes(app, httpapi.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, postgres, redisStore),
		Auth:        handlers.NewAuthHandler(authService),
		Reports:     handlers.NewReportsHandler(reportService),
		Departments: handlers.NewDepartmentsHandler(departmentService),
		AuthMW:      auth.NewAuthMiddleware(authService.TokenManager(), actorRepo),
	})

	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("http server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
