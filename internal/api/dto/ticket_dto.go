package dto

import (
	"github.com/spec-kit/maintenance-service/internal/domain"
)

// CreateTicketRequest is the intake payload for reported faults.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	CategoryID  string                `json:"category_id"`
	Priority    domain.TicketPriority `json:"priority,omitempty"`
	IsEmergency bool                  `json:"is_emergency,omitempty"`
	AssetID     *string               `json:"asset_id,omitempty"`
	LocationID  *string               `json:"location_id,omitempty"`
}

// UpdateTicketRequest is a partial ticket mutation. DueDate uses the
// user-facing day.month.year form.
type UpdateTicketRequest struct {
	Status        *domain.TicketStatus   `json:"status,omitempty"`
	Priority      *domain.TicketPriority `json:"priority,omitempty"`
	AssigneeID    *string                `json:"assignee_id,omitempty"`
	ClearAssignee bool                   `json:"clear_assignee,omitempty"`
	DueDate       *string                `json:"due_date,omitempty"`
	MarkEmergency bool                   `json:"mark_emergency,omitempty"`
}

// AddNoteRequest appends to a ticket's note log.
type AddNoteRequest struct {
	Body string `json:"body"`
}

// TicketNoteResponse is one note entry.
type TicketNoteResponse struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// TicketResponse is the user-facing ticket shape. All dates are rendered in
// the day.month.year form.
type TicketResponse struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	CategoryID     string                `json:"category_id"`
	Priority       domain.TicketPriority `json:"priority"`
	Status         domain.TicketStatus   `json:"status"`
	AssigneeID     *string               `json:"assignee_id"`
	AssigneeName   string                `json:"assignee_name,omitempty"`
	Type           domain.TicketType     `json:"ticket_type"`
	IsEmergency    bool                  `json:"is_emergency"`
	AssetID        *string               `json:"asset_id,omitempty"`
	LocationID     *string               `json:"location_id,omitempty"`
	EntryDate      string                `json:"entry_date"`
	DueDate        string                `json:"due_date"`
	CompletionDate string                `json:"completion_date,omitempty"`
	Notes          []TicketNoteResponse  `json:"notes"`
}

// NewTicketResponse maps a domain ticket to its boundary shape.
func NewTicketResponse(t *domain.Ticket, assigneeName string) TicketResponse {
	notes := make([]TicketNoteResponse, 0, len(t.Notes))
	for _, note := range t.Notes {
		notes = append(notes, TicketNoteResponse{
			ID:        note.ID,
			Author:    note.Author,
			Body:      note.Body,
			CreatedAt: domain.FormatUserDate(note.CreatedAt),
		})
	}
	resp := TicketResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		CategoryID:   t.CategoryID,
		Priority:     t.Priority,
		Status:       t.Status,
		AssigneeID:   t.AssigneeID,
		AssigneeName: assigneeName,
		Type:         t.Type,
		IsEmergency:  t.IsEmergency,
		AssetID:      t.AssetID,
		LocationID:   t.LocationID,
		EntryDate:    domain.FormatUserDate(t.CreatedAt),
		DueDate:      domain.FormatUserDate(t.DueAt),
		Notes:        notes,
	}
	if t.CompletedAt != nil {
		resp.CompletionDate = domain.FormatUserDate(*t.CompletedAt)
	}
	return resp
}
