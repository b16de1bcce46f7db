package domain

import "time"

// Location is a place in a facility where assets live.
type Location struct {
	ID       string
	Name     string
	Building string
	Floor    string
}

// Asset is a maintained piece of equipment.
type Asset struct {
	ID           string
	Name         string
	LocationID   string
	Type         string
	Manufacturer string
	Model        string
	InstalledAt  time.Time
	PlanID       *string
}

// MaintenancePlan generates recurring preventive tickets for an asset.
// LastGenerated is mutated only by the maintenance scheduler, once per
// emission.
type MaintenancePlan struct {
	ID             string
	AssetID        string
	Task           string
	IntervalDays   int
	RequiredSkill  string
	TicketPriority TicketPriority
	LastGenerated  time.Time
}

// NextDue returns the point at which the plan is due again.
func (p *MaintenancePlan) NextDue() time.Time {
	return p.LastGenerated.AddDate(0, 0, p.IntervalDays)
}

// Due reports whether the plan should emit a ticket at now.
func (p *MaintenancePlan) Due(now time.Time) bool {
	if p.LastGenerated.IsZero() {
		return true
	}
	return !p.NextDue().After(now)
}
