package domain

import "time"

// TechnicianRole enumerates operator roles. Admins never receive
// automatic assignments.
type TechnicianRole string

const (
	RoleTechnician TechnicianRole = "TECHNICIAN"
	RoleAdmin      TechnicianRole = "ADMIN"
)

// Availability enumerates duty states for a technician.
type Availability string

const (
	AvailabilityAvailable   Availability = "AVAILABLE"
	AvailabilityOnLeave     Availability = "ON_LEAVE"
	AvailabilityUnavailable Availability = "UNAVAILABLE"
)

// Technician models a maintenance worker or administrator.
type Technician struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         TechnicianRole
	Active       bool
	Availability Availability
	Skills       []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasSkill reports whether the technician's skill set contains skill.
func (t *Technician) HasSkill(skill string) bool {
	for _, s := range t.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Assignable reports whether the technician may receive new tickets.
func (t *Technician) Assignable() bool {
	return t.Role == RoleTechnician && t.Active && t.Availability == AvailabilityAvailable
}
