package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

type recordingPersister struct {
	saved []string
	err   error
}

func (p *recordingPersister) SaveTicket(_ context.Context, t *domain.Ticket) error {
	p.saved = append(p.saved, t.ID)
	return p.err
}

func newTicket(id string) *domain.Ticket {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &domain.Ticket{
		ID:        id,
		Title:     "Ticket " + id,
		Status:    domain.TicketStatusOpen,
		Priority:  domain.TicketPriorityMedium,
		CreatedAt: now,
		DueAt:     now.AddDate(0, 0, 3),
		UpdatedAt: now,
	}
}

func TestTicketStoreInsertAndGet(t *testing.T) {
	persister := &recordingPersister{}
	s := NewTicketStore(persister, zap.NewNop())

	require.NoError(t, s.Insert(context.Background(), newTicket("t-1")))
	assert.Equal(t, []string{"t-1"}, persister.saved)

	got, ok := s.Get("t-1")
	require.True(t, ok)
	assert.Equal(t, "Ticket t-1", got.Title)

	_, ok = s.Get("t-missing")
	assert.False(t, ok)
}

func TestTicketStoreInsertRejectsDuplicateID(t *testing.T) {
	s := NewTicketStore(nil, zap.NewNop())
	require.NoError(t, s.Insert(context.Background(), newTicket("t-1")))
	assert.Error(t, s.Insert(context.Background(), newTicket("t-1")))
	assert.Len(t, s.List(), 1)
}

func TestTicketStorePersistFailureDoesNotSurface(t *testing.T) {
	persister := &recordingPersister{err: errors.New("connection refused")}
	s := NewTicketStore(persister, zap.NewNop())

	require.NoError(t, s.Insert(context.Background(), newTicket("t-1")))
	_, ok := s.Get("t-1")
	assert.True(t, ok)
}

func TestTicketStoreListPreservesInsertionOrder(t *testing.T) {
	s := NewTicketStore(nil, zap.NewNop())
	for _, id := range []string{"t-3", "t-1", "t-2"} {
		require.NoError(t, s.Insert(context.Background(), newTicket(id)))
	}

	var ids []string
	for _, ticket := range s.List() {
		ids = append(ids, ticket.ID)
	}
	assert.Equal(t, []string{"t-3", "t-1", "t-2"}, ids)
}

func TestTicketStoreReturnsCopies(t *testing.T) {
	s := NewTicketStore(nil, zap.NewNop())
	require.NoError(t, s.Insert(context.Background(), newTicket("t-1")))

	got, _ := s.Get("t-1")
	got.Title = "mutated"
	assignee := "tech-x"
	got.AssigneeID = &assignee

	fresh, _ := s.Get("t-1")
	assert.Equal(t, "Ticket t-1", fresh.Title)
	assert.Nil(t, fresh.AssigneeID)
}

func TestTicketStoreUpdate(t *testing.T) {
	persister := &recordingPersister{}
	s := NewTicketStore(persister, zap.NewNop())
	require.NoError(t, s.Insert(context.Background(), newTicket("t-1")))
	require.NoError(t, s.Insert(context.Background(), newTicket("t-2")))

	updated, err := s.Update(context.Background(), "t-1", func(ticket *domain.Ticket, all []domain.Ticket) {
		assert.Len(t, all, 2)
		ticket.Status = domain.TicketStatusInProgress
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)
	assert.Equal(t, []string{"t-1", "t-2", "t-1"}, persister.saved)

	_, err = s.Update(context.Background(), "t-missing", func(*domain.Ticket, []domain.Ticket) {})
	assert.Error(t, err)
}

func TestTicketStoreSweepCollectsChangedTickets(t *testing.T) {
	persister := &recordingPersister{}
	s := NewTicketStore(persister, zap.NewNop())
	for _, id := range []string{"t-1", "t-2", "t-3"} {
		require.NoError(t, s.Insert(context.Background(), newTicket(id)))
	}
	persister.saved = nil

	changed := s.Sweep(context.Background(), func(ticket *domain.Ticket) bool {
		if ticket.ID == "t-2" {
			return false
		}
		ticket.Status = domain.TicketStatusOverdue
		return true
	})

	require.Len(t, changed, 2)
	assert.Equal(t, "t-1", changed[0].ID)
	assert.Equal(t, "t-3", changed[1].ID)
	// Only touched tickets are written through.
	assert.Equal(t, []string{"t-1", "t-3"}, persister.saved)
}

func TestTicketStoreLoad(t *testing.T) {
	s := NewTicketStore(nil, zap.NewNop())
	require.NoError(t, s.Insert(context.Background(), newTicket("stale")))

	require.NoError(t, s.Load([]domain.Ticket{*newTicket("t-1"), *newTicket("t-2")}))
	assert.Len(t, s.List(), 2)
	_, ok := s.Get("stale")
	assert.False(t, ok)

	err := s.Load([]domain.Ticket{*newTicket("dup"), *newTicket("dup")})
	assert.Error(t, err)
}
