package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/grievance-service/internal/auth"
	"github.com/spec-kit/grievance-service/internal/config"
	"github.com/spec-kit/grievance-service/internal/domain"
	"github.com/spec-kit/grievance-service/internal/policy"
	"github.com/spec-kit/grievance-service/internal/repository"
	apperrors "github.com/spec-kit/grievance-service/pkg/util"
)

// AuthService manages registration, login and credential flows.
type AuthService struct {
	cfg    config.Config
	actors repository.ActorRepository
	resets repository.PasswordResetRepository
	tokens *auth.TokenManager
}

// AuthDependencies bundles repositories for the auth service.
type AuthDependencies struct {
	ActorRepo         repository.ActorRepository
	PasswordResetRepo repository.PasswordResetRepository
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		cfg:    cfg,
		actors: deps.ActorRepo,
		resets: deps.PasswordResetRepo,
		tokens: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Register creates a citizen account. The role is always Citizen: any role
// supplied by the caller is ignored, elevated roles only exist through
// admin provisioning.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Actor, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if name == "" || email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("name, email, password required", nil)
	}

	if existing, err := s.actors.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.cfg.Auth.BcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	actor := &domain.Actor{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         policy.RegistrationRole(),
		Status:       domain.ActorStatusActive,
	}
	if err := s.actors.Create(ctx, actor); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, expiresAt, err := s.tokens.GenerateToken(actor.ID, actor.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return actor, token, expiresAt, nil
}

// Login authenticates an actor by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Actor, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	actor, err := s.actors.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if actor.Status != domain.ActorStatusActive {
		return nil, "", time.Time{}, apperrors.NewForbidden("account suspended")
	}
	if err := auth.ComparePassword(actor.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(actor.ID, actor.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return actor, token, expiresAt, nil
}

// ProvisionActor creates an officer or admin account; admin only.
func (s *AuthService) ProvisionActor(ctx context.Context, actor *domain.Actor, name, email, password string, role domain.Role) (*domain.Actor, error) {
	if !policy.Can(actor, policy.ActionProvisionActors, policy.Resource{}) {
		return nil, apperrors.NewForbidden("actor provisioning requires admin role")
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if existing, err := s.actors.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.cfg.Auth.BcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	created := &domain.Actor{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.ActorStatusActive,
	}
	if err := s.actors.Create(ctx, created); err != nil {
		return nil, apperrors.MapError(err)
	}
	return created, nil
}

// ChangePassword rotates the caller's password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, actor *domain.Actor, current, next string) error {
	if err := auth.ComparePassword(actor.PasswordHash, current); err != nil {
		return apperrors.NewUnauthorized("current password incorrect")
	}
	hash, err := auth.HashPassword(next, s.cfg.Auth.BcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	actor.PasswordHash = hash
	if err := s.actors.Update(ctx, actor); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// RequestPasswordReset issues a reset token. The token is returned to the
// caller here; delivery is the notification layer's concern.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	actor, err := s.actors.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Do not reveal whether the address exists.
			return "", nil
		}
		return "", apperrors.MapError(err)
	}

	token := &repository.PasswordResetToken{
		ActorID:   actor.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.Auth.PasswordResetTTLMinutes) * time.Minute),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return "", apperrors.MapError(err)
	}
	return token.Token, nil
}

// ConfirmPasswordReset consumes a reset token and sets the new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("invalid reset token")
		}
		return apperrors.MapError(err)
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewUnauthorized("reset token expired")
	}

	actor, err := s.actors.GetByID(ctx, token.ActorID)
	if err != nil {
		return apperrors.MapError(err)
	}
	hash, err := auth.HashPassword(newPassword, s.cfg.Auth.BcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	actor.PasswordHash = hash
	if err := s.actors.Update(ctx, actor); err != nil {
		return apperrors.MapError(err)
	}
	return s.resets.MarkUsed(ctx, token.ID)
}
