package dto

import (
	"github.com/spec-kit/maintenance-service/internal/domain"
)

// MaintenancePlanResponse is the boundary shape for plans. LastGenerated
// uses the plan bookkeeping form (year-month-day).
type MaintenancePlanResponse struct {
	ID             string                `json:"id"`
	AssetID        string                `json:"asset_id"`
	AssetName      string                `json:"asset_name,omitempty"`
	Task           string                `json:"task"`
	IntervalDays   int                   `json:"interval_days"`
	RequiredSkill  string                `json:"required_skill"`
	TicketPriority domain.TicketPriority `json:"ticket_priority"`
	LastGenerated  string                `json:"last_generated"`
	NextDue        string                `json:"next_due"`
}

// NewMaintenancePlanResponse maps a plan to its boundary shape.
func NewMaintenancePlanResponse(p *domain.MaintenancePlan, assetName string) MaintenancePlanResponse {
	resp := MaintenancePlanResponse{
		ID:             p.ID,
		AssetID:        p.AssetID,
		AssetName:      assetName,
		Task:           p.Task,
		IntervalDays:   p.IntervalDays,
		RequiredSkill:  p.RequiredSkill,
		TicketPriority: p.TicketPriority,
		LastGenerated:  domain.FormatPlanDate(p.LastGenerated),
	}
	if !p.LastGenerated.IsZero() {
		resp.NextDue = domain.FormatPlanDate(p.NextDue())
	}
	return resp
}

// TickResultResponse summarizes a manually triggered engine pass.
type TickResultResponse struct {
	EmittedTickets []TicketResponse `json:"emitted_tickets"`
	ChangedTickets []TicketResponse `json:"changed_tickets,omitempty"`
}
