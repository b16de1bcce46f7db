package store

import (
	"sync"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// TechnicianDirectory is the read-mostly roster the engine consults when
// assigning work. The engine itself never mutates it; updates come from the
// host (availability changes, onboarding).
type TechnicianDirectory struct {
	mu          sync.RWMutex
	technicians []domain.Technician
}

// NewTechnicianDirectory creates a directory seeded with the given roster.
func NewTechnicianDirectory(technicians []domain.Technician) *TechnicianDirectory {
	return &TechnicianDirectory{technicians: append([]domain.Technician(nil), technicians...)}
}

// List returns the roster in directory order. Order matters: the resolver
// breaks load ties by first encountered.
func (d *TechnicianDirectory) List() []domain.Technician {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]domain.Technician(nil), d.technicians...)
}

// ByID returns the technician with the given ID.
func (d *TechnicianDirectory) ByID(id string) (domain.Technician, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, t := range d.technicians {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Technician{}, false
}

// ByEmail returns the technician with the given login email.
func (d *TechnicianDirectory) ByEmail(email string) (domain.Technician, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, t := range d.technicians {
		if t.Email == email {
			return t, true
		}
	}
	return domain.Technician{}, false
}

// SetAvailability updates a technician's duty state.
func (d *TechnicianDirectory) SetAvailability(id string, availability domain.Availability) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.technicians {
		if d.technicians[i].ID == id {
			d.technicians[i].Availability = availability
			return true
		}
	}
	return false
}

// SetPasswordHash stores a new credential hash for the technician.
func (d *TechnicianDirectory) SetPasswordHash(id, hash string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.technicians {
		if d.technicians[i].ID == id {
			d.technicians[i].PasswordHash = hash
			return true
		}
	}
	return false
}

// Replace swaps the whole roster, used when hydrating from persistence.
func (d *TechnicianDirectory) Replace(technicians []domain.Technician) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.technicians = append([]domain.Technician(nil), technicians...)
}
