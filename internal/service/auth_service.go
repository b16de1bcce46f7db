package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/repository"
	"github.com/spec-kit/maintenance-service/internal/store"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// AuthService handles technician login and credential changes. This is
// surrounding application code, not engine logic.
type AuthService struct {
	directory *store.TechnicianDirectory
	repo      repository.TechnicianRepository
	tokens    *auth.TokenManager
	cfg       config.AuthConfig
	logger    *zap.Logger
}

// NewAuthService constructs the service. repo may be nil when persistence
// is off.
func NewAuthService(directory *store.TechnicianDirectory, repo repository.TechnicianRepository, cfg config.AuthConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		directory: directory,
		repo:      repo,
		tokens:    auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		cfg:       cfg,
		logger:    logger,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(email, password string) (string, time.Time, *domain.Technician, error) {
	tech, ok := s.directory.ByEmail(email)
	if !ok || !tech.Active {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(tech.PasswordHash, password); err != nil {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	token, expiresAt, err := s.tokens.GenerateToken(tech.ID, tech.Role)
	if err != nil {
		return "", time.Time{}, nil, apperrors.NewInternalError(err)
	}
	return token, expiresAt, &tech, nil
}

// ChangePassword swaps the technician's credential after verifying the old
// one.
func (s *AuthService) ChangePassword(ctx context.Context, technicianID, oldPassword, newPassword string) error {
	tech, ok := s.directory.ByID(technicianID)
	if !ok {
		return apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
	}
	if err := auth.ComparePassword(tech.PasswordHash, oldPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	s.directory.SetPasswordHash(technicianID, hash)

	if s.repo != nil {
		tech.PasswordHash = hash
		tech.UpdatedAt = time.Now().UTC()
		if err := s.repo.SaveTechnician(ctx, &tech); err != nil {
			s.logger.Warn("technician write-through failed",
				zap.String("technician_id", technicianID), zap.Error(err))
		}
	}
	return nil
}
