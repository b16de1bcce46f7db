package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaintenancePlanDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		lastGenerated time.Time
		intervalDays  int
		want          bool
	}{
		{name: "never run is always due", lastGenerated: time.Time{}, intervalDays: 180, want: true},
		{name: "interval elapsed", lastGenerated: now.AddDate(0, 0, -181), intervalDays: 180, want: true},
		{name: "due exactly at the boundary", lastGenerated: now.AddDate(0, 0, -180), intervalDays: 180, want: true},
		{name: "not yet due", lastGenerated: now.AddDate(0, 0, -179), intervalDays: 180, want: false},
		{name: "generated today", lastGenerated: now, intervalDays: 180, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := MaintenancePlan{LastGenerated: tt.lastGenerated, IntervalDays: tt.intervalDays}
			assert.Equal(t, tt.want, plan.Due(now))
		})
	}
}

func TestMaintenancePlanNextDue(t *testing.T) {
	last := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	plan := MaintenancePlan{LastGenerated: last, IntervalDays: 30}
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), plan.NextDue())
}
