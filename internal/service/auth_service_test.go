package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/store"
)

func newAuthFixture(t *testing.T) (*AuthService, *store.TechnicianDirectory) {
	t.Helper()
	hash, err := auth.HashPassword("hunter2", 4)
	require.NoError(t, err)

	roster := []domain.Technician{
		{
			ID: "tech-huber", Name: "M. Huber", Email: "huber@example.com",
			PasswordHash: hash, Role: domain.RoleTechnician, Active: true,
			Availability: domain.AvailabilityAvailable,
		},
		{
			ID: "tech-alt", Name: "Ehemaliger", Email: "alt@example.com",
			PasswordHash: hash, Role: domain.RoleTechnician, Active: false,
			Availability: domain.AvailabilityAvailable,
		},
	}
	directory := store.NewTechnicianDirectory(roster)
	cfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4}
	return NewAuthService(directory, nil, cfg, zap.NewNop()), directory
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	token, expiresAt, tech, err := svc.Login("huber@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())
	assert.Equal(t, "tech-huber", tech.ID)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "tech-huber", claims.TechnicianID)
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newAuthFixture(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "niemand@example.com", password: "hunter2"},
		{name: "wrong password", email: "huber@example.com", password: "falsch"},
		{name: "inactive technician", email: "alt@example.com", password: "hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := svc.Login(tt.email, tt.password)
			assert.Error(t, err)
		})
	}
}

func TestChangePassword(t *testing.T) {
	svc, directory := newAuthFixture(t)

	require.NoError(t, svc.ChangePassword(context.Background(), "tech-huber", "hunter2", "neu-und-sicher"))

	tech, _ := directory.ByID("tech-huber")
	assert.NoError(t, auth.ComparePassword(tech.PasswordHash, "neu-und-sicher"))
	assert.Error(t, auth.ComparePassword(tech.PasswordHash, "hunter2"))

	assert.Error(t, svc.ChangePassword(context.Background(), "tech-huber", "hunter2", "nochmal"))
	assert.Error(t, svc.ChangePassword(context.Background(), "tech-missing", "x", "y"))
}
