package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/catalog"
	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/engine"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/store"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// TicketService is the single inbound surface for ticket intake and
// mutation. Every mutation runs as one atomic pass against the TicketStore,
// including the derived side effects (recovery due-date bump, immediate
// re-evaluation) the state machine requires.
type TicketService struct {
	tickets    *store.TicketStore
	directory  *store.TechnicianDirectory
	rules      catalog.Provider
	dispatcher events.Dispatcher
	engineCfg  config.EngineConfig
	logger     *zap.Logger
	clock      func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Store      *store.TicketStore
	Directory  *store.TechnicianDirectory
	Rules      catalog.Provider
	Dispatcher events.Dispatcher
	EngineCfg  config.EngineConfig
	Logger     *zap.Logger
	Clock      func() time.Time
}

// TicketCreateInput describes intake payload for both reactive and
// preventive tickets.
type TicketCreateInput struct {
	Title       string
	Description string
	CategoryID  string
	Priority    domain.TicketPriority
	Type        domain.TicketType
	IsEmergency bool
	AssetID     *string
	LocationID  *string
}

// TicketUpdateInput describes a partial ticket mutation. Nil fields are
// untouched.
type TicketUpdateInput struct {
	Status        *domain.TicketStatus
	Priority      *domain.TicketPriority
	AssigneeID    *string
	ClearAssignee bool
	DueAt         *time.Time
	MarkEmergency bool
}

// TicketFilter narrows listing results.
type TicketFilter struct {
	Statuses   []domain.TicketStatus
	Priorities []domain.TicketPriority
	AssigneeID *string
	Type       *domain.TicketType
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &TicketService{
		tickets:    deps.Store,
		directory:  deps.Directory,
		rules:      deps.Rules,
		dispatcher: deps.Dispatcher,
		engineCfg:  deps.EngineCfg,
		logger:     deps.Logger,
		clock:      clock,
	}
}

// CreateTicket runs the full intake path: priority determination, keyword
// routing to a technician, SLA due-date computation, then insertion with
// status OPEN. An unassigned result is a normal outcome.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	rules := s.rules.Catalog()
	if _, ok := rules.CategoryByID(input.CategoryID); !ok {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category_id": input.CategoryID})
	}

	now := s.clock().UTC()
	priority := engine.DeterminePriority(input.Priority, input.CategoryID, rules.Categories, s.engineCfg.DefaultPriority)
	matcher := engine.KeywordMatcher{Rules: rules.RoutingRules}

	ticket := &domain.Ticket{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		CategoryID:  input.CategoryID,
		Priority:    priority,
		Status:      domain.TicketStatusOpen,
		Type:        ticketTypeOrDefault(input.Type),
		AssetID:     input.AssetID,
		LocationID:  input.LocationID,
		CreatedAt:   now,
		DueAt:       engine.ComputeDueDate(input.CategoryID, priority, rules.SLARules, s.engineCfg.FallbackDays(), now),
		UpdatedAt:   now,
	}

	if assigneeID, ok := engine.Resolve(ticket.Title, ticket.Description, matcher, s.directory.List(), s.tickets.List()); ok {
		ticket.AssigneeID = &assigneeID
	}

	if input.IsEmergency {
		engine.MarkEmergency(ticket, now)
	}

	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:      ticket.Title,
			CategoryID: ticket.CategoryID,
			Priority:   ticket.Priority,
			Type:       ticket.Type,
			AssigneeID: ticket.AssigneeID,
			DueAt:      ticket.DueAt,
		},
	})
	return ticket, nil
}

// UpdateTicket applies a partial mutation as one pass. Manual status
// transitions carry their recovery side effects, and the ticket is
// re-evaluated against the automatic overdue rules before the pass ends so
// no sweep can observe an intermediate state.
func (s *TicketService) UpdateTicket(ctx context.Context, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	if input.Status != nil && !domain.ValidStatus(*input.Status) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *input.Status})
	}
	if input.Priority != nil && !domain.ValidPriority(*input.Priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": *input.Priority})
	}
	if input.AssigneeID != nil {
		tech, ok := s.directory.ByID(*input.AssigneeID)
		if !ok {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": *input.AssigneeID})
		}
		if !tech.Active {
			return nil, apperrors.NewConflict("technician inactive", map[string]any{"technician_id": tech.ID})
		}
	}

	now := s.clock().UTC()
	bumps := engine.RecoveryBumps{
		ReopenDays: s.engineCfg.ReopenBumpDays,
		ResumeDays: s.engineCfg.ResumeBumpDays,
	}

	var oldStatus domain.TicketStatus
	var oldAssignee *string
	updated, err := s.tickets.Update(ctx, ticketID, func(t *domain.Ticket, _ []domain.Ticket) {
		oldStatus = t.Status
		oldAssignee = t.AssigneeID

		if input.ClearAssignee {
			t.AssigneeID = nil
		} else if input.AssigneeID != nil {
			id := *input.AssigneeID
			t.AssigneeID = &id
		}
		if input.Priority != nil {
			t.Priority = *input.Priority
		}
		if input.DueAt != nil {
			t.DueAt = input.DueAt.UTC()
		}
		if input.Status != nil {
			engine.ApplyStatus(t, *input.Status, bumps, now)
		}
		if input.MarkEmergency {
			engine.MarkEmergency(t, now)
		}
		// Same-pass re-evaluation: a pushed-forward due date on an OVERDUE
		// ticket drops back to IN_PROGRESS here, and a bumped recovery date
		// is already in place before any sweep sees the ticket.
		engine.SweepTicket(t, now)
		t.UpdatedAt = now
	})
	if err != nil {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}

	if updated.Status != oldStatus {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: updated.ID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: updated.Status,
				Automatic: false,
				DueAt:     updated.DueAt,
			},
		})
	}
	if !sameAssignee(oldAssignee, updated.AssigneeID) {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketAssigned,
			TicketID: updated.ID,
			Payload: events.TicketAssignedPayload{
				OldAssigneeID: oldAssignee,
				NewAssigneeID: updated.AssigneeID,
			},
		})
	}
	return &updated, nil
}

// AddNote appends to the ticket's note log and flags a notification.
func (s *TicketService) AddNote(ctx context.Context, ticketID, author, body string) (*domain.Ticket, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("note body required", nil)
	}
	now := s.clock().UTC()
	note := domain.TicketNote{
		ID:        uuid.NewString(),
		Author:    author,
		Body:      body,
		CreatedAt: now,
	}
	updated, err := s.tickets.Update(ctx, ticketID, func(t *domain.Ticket, _ []domain.Ticket) {
		t.Notes = append(t.Notes, note)
		t.UpdatedAt = now
	})
	if err != nil {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketNoteAdded,
		TicketID: updated.ID,
		Payload:  events.TicketNoteAddedPayload{NoteID: note.ID, Author: author},
	})
	return &updated, nil
}

// GetTicket fetches one ticket.
func (s *TicketService) GetTicket(ticketID string) (*domain.Ticket, error) {
	t, ok := s.tickets.Get(ticketID)
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	return &t, nil
}

// ListTickets returns tickets matching the filter, in insertion order.
func (s *TicketService) ListTickets(filter TicketFilter) []domain.Ticket {
	all := s.tickets.List()
	out := make([]domain.Ticket, 0, len(all))
	for _, t := range all {
		if !matchesFilter(&t, filter) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesFilter(t *domain.Ticket, filter TicketFilter) bool {
	if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, t.Status) {
		return false
	}
	if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, t.Priority) {
		return false
	}
	if filter.AssigneeID != nil {
		if t.AssigneeID == nil || *t.AssigneeID != *filter.AssigneeID {
			return false
		}
	}
	if filter.Type != nil && t.Type != *filter.Type {
		return false
	}
	return true
}

func containsStatus(set []domain.TicketStatus, s domain.TicketStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsPriority(set []domain.TicketPriority, p domain.TicketPriority) bool {
	for _, v := range set {
		if v == p {
			return true
		}
	}
	return false
}

func sameAssignee(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func ticketTypeOrDefault(t domain.TicketType) domain.TicketType {
	if t == domain.TicketTypePreventive {
		return t
	}
	return domain.TicketTypeReactive
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock().UTC()
	}
	s.dispatcher.Publish(ctx, event)
}
