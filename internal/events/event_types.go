package events

import (
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// EventType enumerates engine event identifiers.
type EventType string

const (
	EventTicketCreated        EventType = "ticket_created"
	EventTicketAssigned       EventType = "ticket_assigned"
	EventTicketStatusChanged  EventType = "ticket_status_changed"
	EventTicketOverdue        EventType = "ticket_overdue"
	EventTicketNoteAdded      EventType = "ticket_note_added"
	EventMaintenanceGenerated EventType = "maintenance_ticket_generated"
)

// Event is emitted by the engine whenever a notification-worthy change
// happens to a ticket.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload describes a freshly inserted ticket.
type TicketCreatedPayload struct {
	Title      string                `json:"title"`
	CategoryID string                `json:"category_id"`
	Priority   domain.TicketPriority `json:"priority"`
	Type       domain.TicketType     `json:"ticket_type"`
	AssigneeID *string               `json:"assignee_id,omitempty"`
	DueAt      time.Time             `json:"due_at"`
}

// TicketAssignedPayload describes a reassignment.
type TicketAssignedPayload struct {
	OldAssigneeID *string `json:"old_assignee_id,omitempty"`
	NewAssigneeID *string `json:"new_assignee_id,omitempty"`
}

// TicketStatusChangedPayload covers both manual transitions and the
// automatic sweep transitions.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Automatic bool                `json:"automatic"`
	DueAt     time.Time           `json:"due_at"`
}

// TicketNoteAddedPayload describes a new note on a ticket.
type TicketNoteAddedPayload struct {
	NoteID string `json:"note_id"`
	Author string `json:"author"`
}

// MaintenanceGeneratedPayload describes a scheduler-emitted ticket.
type MaintenanceGeneratedPayload struct {
	PlanID  string `json:"plan_id"`
	AssetID string `json:"asset_id"`
}
