package dto

import (
	"github.com/spec-kit/maintenance-service/internal/domain"
)

// TechnicianResponse is the roster entry shape. Credentials never leave
// the service.
type TechnicianResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	Role         domain.TechnicianRole `json:"role"`
	Active       bool                  `json:"active"`
	Availability domain.Availability   `json:"availability"`
	Skills       []string              `json:"skills"`
	OpenLoad     int                   `json:"open_load"`
}

// SetAvailabilityRequest updates a technician's duty state.
type SetAvailabilityRequest struct {
	Availability domain.Availability `json:"availability"`
}

// LoginRequest carries technician credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the issued session token.
type LoginResponse struct {
	Token     string             `json:"token"`
	ExpiresAt string             `json:"expires_at"`
	Profile   TechnicianResponse `json:"profile"`
}

// ChangePasswordRequest swaps credentials.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
