package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusOverdue    TicketStatus = "OVERDUE"
	TicketStatusDone       TicketStatus = "DONE"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
)

// TicketType distinguishes user-reported faults from scheduler output.
type TicketType string

const (
	TicketTypeReactive   TicketType = "REACTIVE"
	TicketTypePreventive TicketType = "PREVENTIVE"
)

// TicketNote is one entry in a ticket's append-only note log.
type TicketNote struct {
	ID        string
	Author    string
	Body      string
	CreatedAt time.Time
}

// Ticket is the aggregate for maintenance work.
//
// CompletedAt is set exactly once, when the ticket enters DONE, and cleared
// if the host moves it back out. DueAt is always present after intake.
type Ticket struct {
	ID          string
	Title       string
	Description string
	CategoryID  string
	Priority    TicketPriority
	Status      TicketStatus
	AssigneeID  *string
	Type        TicketType
	IsEmergency bool
	AssetID     *string
	LocationID  *string
	Notes       []TicketNote
	CreatedAt   time.Time
	DueAt       time.Time
	CompletedAt *time.Time
	UpdatedAt   time.Time
}

// Assigned reports whether the ticket has a technician.
func (t *Ticket) Assigned() bool {
	return t.AssigneeID != nil && *t.AssigneeID != ""
}

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusOverdue, TicketStatusDone:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known priority.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}
