package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

func TestTechnicianDirectory(t *testing.T) {
	roster := SeedTechnicians(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	d := NewTechnicianDirectory(roster)

	listed := d.List()
	require.Len(t, listed, len(roster))
	// Directory order is the resolver tie-break; it must survive listing.
	for i := range roster {
		assert.Equal(t, roster[i].ID, listed[i].ID)
	}

	tech, ok := d.ByID("tech-huber")
	require.True(t, ok)
	assert.Contains(t, tech.Skills, "Sanitär")

	_, ok = d.ByID("tech-missing")
	assert.False(t, ok)

	tech, ok = d.ByEmail("keller@example.com")
	require.True(t, ok)
	assert.Equal(t, "tech-keller", tech.ID)
}

func TestTechnicianDirectorySetAvailability(t *testing.T) {
	d := NewTechnicianDirectory(SeedTechnicians(time.Now().UTC()))

	require.True(t, d.SetAvailability("tech-huber", domain.AvailabilityOnLeave))
	tech, _ := d.ByID("tech-huber")
	assert.Equal(t, domain.AvailabilityOnLeave, tech.Availability)
	assert.False(t, tech.Assignable())

	assert.False(t, d.SetAvailability("tech-missing", domain.AvailabilityAvailable))
}

func TestTechnicianDirectorySetPasswordHash(t *testing.T) {
	d := NewTechnicianDirectory(SeedTechnicians(time.Now().UTC()))

	require.True(t, d.SetPasswordHash("tech-wagner", "new-hash"))
	tech, _ := d.ByID("tech-wagner")
	assert.Equal(t, "new-hash", tech.PasswordHash)
}
