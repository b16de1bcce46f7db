package store

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// Persister writes tickets through to durable storage. The store treats it
// as a fire-and-forget collaborator: persistence failures are logged, never
// surfaced into engine passes.
type Persister interface {
	SaveTicket(ctx context.Context, ticket *domain.Ticket) error
}

// TicketStore is the in-memory single source of truth for tickets. All
// mutation goes through Insert, Update and Sweep, each of which runs as one
// atomic pass under the store lock so user mutations and the automatic
// sweep can never interleave mid-ticket.
type TicketStore struct {
	mu        sync.Mutex
	tickets   map[string]*domain.Ticket
	order     []string
	persister Persister
	logger    *zap.Logger
}

// NewTicketStore creates an empty store. persister may be nil.
func NewTicketStore(persister Persister, logger *zap.Logger) *TicketStore {
	return &TicketStore{
		tickets:   make(map[string]*domain.Ticket),
		persister: persister,
		logger:    logger,
	}
}

// Insert adds a new ticket. A duplicate identifier is a precondition
// violation and rejected hard; identifiers are generated, never reused.
func (s *TicketStore) Insert(ctx context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tickets[ticket.ID]; exists {
		return fmt.Errorf("duplicate ticket id %s", ticket.ID)
	}
	copied := cloneTicket(ticket)
	s.tickets[ticket.ID] = copied
	s.order = append(s.order, ticket.ID)
	s.persist(ctx, copied)
	return nil
}

// Get returns a copy of the ticket with the given ID.
func (s *TicketStore) Get(id string) (domain.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return domain.Ticket{}, false
	}
	return *cloneTicket(t), true
}

// List returns copies of all tickets in insertion order.
func (s *TicketStore) List() []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Update runs mutate on the ticket under the store lock, passing a snapshot
// of all tickets so derived rules (load counting, sweep re-evaluation) see
// a consistent view. It returns the mutated ticket.
func (s *TicketStore) Update(ctx context.Context, id string, mutate func(t *domain.Ticket, all []domain.Ticket)) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return domain.Ticket{}, fmt.Errorf("ticket %s not found", id)
	}
	mutate(t, s.snapshotLocked())
	s.persist(ctx, t)
	return *cloneTicket(t), nil
}

// Sweep runs visit over every ticket as one atomic pass. Tickets for which
// visit reports a change are persisted and returned as copies.
func (s *TicketStore) Sweep(ctx context.Context, visit func(t *domain.Ticket) bool) []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed []domain.Ticket
	for _, id := range s.order {
		t := s.tickets[id]
		if visit(t) {
			s.persist(ctx, t)
			changed = append(changed, *cloneTicket(t))
		}
	}
	return changed
}

// Load replaces the store contents, used when hydrating from persistence at
// boot. Duplicate IDs in the input are a hard failure.
func (s *TicketStore) Load(tickets []domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := make(map[string]*domain.Ticket, len(tickets))
	order := make([]string, 0, len(tickets))
	for i := range tickets {
		t := tickets[i]
		if _, exists := fresh[t.ID]; exists {
			return fmt.Errorf("duplicate ticket id %s in snapshot", t.ID)
		}
		fresh[t.ID] = cloneTicket(&t)
		order = append(order, t.ID)
	}
	s.tickets = fresh
	s.order = order
	return nil
}

func (s *TicketStore) snapshotLocked() []domain.Ticket {
	out := make([]domain.Ticket, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *cloneTicket(s.tickets[id]))
	}
	return out
}

func (s *TicketStore) persist(ctx context.Context, t *domain.Ticket) {
	if s.persister == nil {
		return
	}
	if err := s.persister.SaveTicket(ctx, t); err != nil && s.logger != nil {
		s.logger.Warn("ticket write-through failed",
			zap.String("ticket_id", t.ID), zap.Error(err))
	}
}

func cloneTicket(t *domain.Ticket) *domain.Ticket {
	copied := *t
	if t.AssigneeID != nil {
		v := *t.AssigneeID
		copied.AssigneeID = &v
	}
	if t.AssetID != nil {
		v := *t.AssetID
		copied.AssetID = &v
	}
	if t.LocationID != nil {
		v := *t.LocationID
		copied.LocationID = &v
	}
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		copied.CompletedAt = &v
	}
	copied.Notes = append([]domain.TicketNote(nil), t.Notes...)
	return &copied
}
