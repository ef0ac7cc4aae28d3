package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/repository"
	apperrors "github.com/spec-kit/grievance-service/pkg/util"
)

const departmentCacheKey = "reference:departments:active"

// DepartmentService manages department reference data. Active departments
// are cached in Redis with a short TTL; every admin write invalidates the
// cache. It also serves as the rule source for the keyword fallback matcher.
type DepartmentService struct {
	departments repository.DepartmentRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewDepartmentService constructs the service. cache may be nil; lookups
// then always hit the database.
func NewDepartmentService(departments repository.DepartmentRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{
		departments: departments,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// DepartmentInput describes admin create/update payloads.
type DepartmentInput struct {
	Name        string
	Description string
	Keywords    []string
	IsDefault   bool
	IsActive    bool
}

// ActiveDepartments returns active departments, serving the cache when warm.
// Implements triage.RuleSource.
func (s *DepartmentService) ActiveDepartments(ctx context.Context) ([]domain.Department, error) {
	if cached, ok := s.readCache(ctx); ok {
		return cached, nil
	}

	departments, err := s.departments.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.writeCache(ctx, departments)
	return departments, nil
}

// GetByID fetches one department.
func (s *DepartmentService) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("department", map[string]any{"department_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return dept, nil
}

// ResolveLabel maps a classifier label to an active department by name.
// Returns nil without error when the label matches nothing; the caller
// decides how to degrade.
func (s *DepartmentService) ResolveLabel(ctx context.Context, label string) (*domain.Department, error) {
	departments, err := s.ActiveDepartments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range departments {
		if strings.EqualFold(departments[i].Name, label) {
			return &departments[i], nil
		}
	}
	return nil, nil
}

// Create adds a department (admin reference-data management).
func (s *DepartmentService) Create(ctx context.Context, input DepartmentInput) (*domain.Department, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if existing, err := s.departments.GetByName(ctx, name); err == nil && existing != nil {
		return nil, apperrors.NewConflict("department name already exists", map[string]any{"name": name})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	dept := &domain.Department{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Keywords:    normalizeKeywords(input.Keywords),
		IsDefault:   input.IsDefault,
		IsActive:    input.IsActive,
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateCache(ctx)
	return dept, nil
}

// Update modifies a department (admin reference-data management).
func (s *DepartmentService) Update(ctx context.Context, id string, input DepartmentInput) (*domain.Department, error) {
	dept, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		dept.Name = name
	}
	dept.Description = strings.TrimSpace(input.Description)
	dept.Keywords = normalizeKeywords(input.Keywords)
	dept.IsDefault = input.IsDefault
	dept.IsActive = input.IsActive

	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateCache(ctx)
	return dept, nil
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func (s *DepartmentService) readCache(ctx context.Context) ([]domain.Department, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	data, err := s.cache.Get(ctx, departmentCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Debug("department cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var departments []domain.Department
	if err := json.Unmarshal(data, &departments); err != nil {
		s.logger.Debug("department cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return departments, true
}

func (s *DepartmentService) writeCache(ctx context.Context, departments []domain.Department) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(departments)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, departmentCacheKey, data, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("department cache write failed", zap.Error(err))
	}
}

func (s *DepartmentService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, departmentCacheKey).Err(); err != nil {
		s.logger.Debug("department cache invalidation failed", zap.Error(err))
	}
}
