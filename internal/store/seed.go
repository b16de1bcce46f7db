package store

import (
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// Seed data for running without a database. Password hashes are filled in
// at boot by the host.

// SeedTechnicians returns the stock roster. Directory order matters for
// resolver tie-breaks, so this stays a slice.
func SeedTechnicians(now time.Time) []domain.Technician {
	return []domain.Technician{
		{
			ID: "tech-huber", Name: "M. Huber", Email: "huber@example.com",
			Role: domain.RoleTechnician, Active: true,
			Availability: domain.AvailabilityAvailable,
			Skills:       []string{"Sanitär", "HLK"},
			CreatedAt:    now, UpdatedAt: now,
		},
		{
			ID: "tech-keller", Name: "S. Keller", Email: "keller@example.com",
			Role: domain.RoleTechnician, Active: true,
			Availability: domain.AvailabilityAvailable,
			Skills:       []string{"Elektrik", "Brandschutz"},
			CreatedAt:    now, UpdatedAt: now,
		},
		{
			ID: "tech-wagner", Name: "T. Wagner", Email: "wagner@example.com",
			Role: domain.RoleTechnician, Active: true,
			Availability: domain.AvailabilityAvailable,
			Skills:       []string{"Schließtechnik", "Sanitär"},
			CreatedAt:    now, UpdatedAt: now,
		},
		{
			ID: "admin-vogel", Name: "A. Vogel", Email: "vogel@example.com",
			Role: domain.RoleAdmin, Active: true,
			Availability: domain.AvailabilityAvailable,
			Skills:       []string{},
			CreatedAt:    now, UpdatedAt: now,
		},
	}
}

// SeedLocations returns the stock facility layout.
func SeedLocations() []domain.Location {
	return []domain.Location{
		{ID: "loc-keller", Name: "Keller", Building: "Haupthaus", Floor: "UG"},
		{ID: "loc-dach", Name: "Dachzentrale", Building: "Haupthaus", Floor: "DG"},
		{ID: "loc-eingang", Name: "Eingangshalle", Building: "Haupthaus", Floor: "EG"},
	}
}

// SeedAssets returns the stock equipment list.
func SeedAssets(now time.Time) []domain.Asset {
	planHeizung := "plan-heizung"
	planLueftung := "plan-lueftung"
	return []domain.Asset{
		{
			ID: "asset-heizung", Name: "Heizkessel 1", LocationID: "loc-keller",
			Type: "Heizung", Manufacturer: "Viessmann", Model: "Vitoplex 200",
			InstalledAt: now.AddDate(-6, 0, 0), PlanID: &planHeizung,
		},
		{
			ID: "asset-lueftung", Name: "Lüftungsanlage Süd", LocationID: "loc-dach",
			Type: "Lüftung", Manufacturer: "Wolf", Model: "CKL 4000",
			InstalledAt: now.AddDate(-3, 0, 0), PlanID: &planLueftung,
		},
	}
}

// SeedPlans returns the stock maintenance plans, both immediately due so a
// fresh process demonstrates generation on its first tick.
func SeedPlans() []domain.MaintenancePlan {
	return []domain.MaintenancePlan{
		{
			ID: "plan-heizung", AssetID: "asset-heizung",
			Task: "Jahreswartung Heizkessel, Brenner prüfen", IntervalDays: 365,
			RequiredSkill: "HLK", TicketPriority: domain.TicketPriorityHigh,
		},
		{
			ID: "plan-lueftung", AssetID: "asset-lueftung",
			Task: "Filterwechsel und Funktionsprüfung Lüftung", IntervalDays: 180,
			RequiredSkill: "HLK", TicketPriority: domain.TicketPriorityMedium,
		},
	}
}
