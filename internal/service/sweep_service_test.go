package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/observability"
	"github.com/spec-kit/maintenance-service/internal/store"
)

func newSweepFixture(t *testing.T) (*SweepService, *store.TicketStore, *eventRecorder) {
	t.Helper()
	dispatcher := events.NewDispatcher()
	recorder := &eventRecorder{}
	dispatcher.Subscribe(events.EventTicketOverdue, recorder.record)
	dispatcher.Subscribe(events.EventTicketStatusChanged, recorder.record)

	tickets := store.NewTicketStore(nil, zap.NewNop())
	sweep := NewSweepService(tickets, dispatcher, observability.NewMetrics(), zap.NewNop())
	return sweep, tickets, recorder
}

func insertTicket(t *testing.T, tickets *store.TicketStore, id string, status domain.TicketStatus, dueAt time.Time) {
	t.Helper()
	require.NoError(t, tickets.Insert(context.Background(), &domain.Ticket{
		ID:       id,
		Title:    "Ticket " + id,
		Status:   status,
		Priority: domain.TicketPriorityMedium,
		DueAt:    dueAt,
	}))
}

func TestRunOverdueSweepMarksLapsedTickets(t *testing.T) {
	sweep, tickets, recorder := newSweepFixture(t)
	past := fixedNow.Add(-time.Hour)
	future := fixedNow.Add(time.Hour)

	insertTicket(t, tickets, "t-lapsed-open", domain.TicketStatusOpen, past)
	insertTicket(t, tickets, "t-lapsed-work", domain.TicketStatusInProgress, past)
	insertTicket(t, tickets, "t-on-time", domain.TicketStatusOpen, future)
	insertTicket(t, tickets, "t-done", domain.TicketStatusDone, past)

	changed := sweep.RunOverdueSweep(context.Background(), fixedNow)
	require.Len(t, changed, 2)
	assert.Equal(t, "t-lapsed-open", changed[0].ID)
	assert.Equal(t, "t-lapsed-work", changed[1].ID)
	for _, ticket := range changed {
		assert.Equal(t, domain.TicketStatusOverdue, ticket.Status)
	}

	// Untouched tickets kept their state.
	onTime, _ := tickets.Get("t-on-time")
	assert.Equal(t, domain.TicketStatusOpen, onTime.Status)
	done, _ := tickets.Get("t-done")
	assert.Equal(t, domain.TicketStatusDone, done.Status)

	overdueEvents := recorder.ofType(events.EventTicketOverdue)
	require.Len(t, overdueEvents, 2)
	payload, ok := overdueEvents[0].Payload.(events.TicketStatusChangedPayload)
	require.True(t, ok)
	assert.True(t, payload.Automatic)
	assert.Equal(t, domain.TicketStatusOverdue, payload.NewStatus)
}

func TestRunOverdueSweepIsIdempotent(t *testing.T) {
	sweep, tickets, _ := newSweepFixture(t)
	insertTicket(t, tickets, "t-lapsed", domain.TicketStatusOpen, fixedNow.Add(-time.Hour))

	first := sweep.RunOverdueSweep(context.Background(), fixedNow)
	require.Len(t, first, 1)

	second := sweep.RunOverdueSweep(context.Background(), fixedNow)
	assert.Empty(t, second)
}

func TestRunOverdueSweepReversesWhenDueDateMovesForward(t *testing.T) {
	sweep, tickets, recorder := newSweepFixture(t)
	insertTicket(t, tickets, "t-recovered", domain.TicketStatusOverdue, fixedNow.Add(time.Hour))

	changed := sweep.RunOverdueSweep(context.Background(), fixedNow)
	require.Len(t, changed, 1)
	assert.Equal(t, domain.TicketStatusInProgress, changed[0].Status)

	statusEvents := recorder.ofType(events.EventTicketStatusChanged)
	require.Len(t, statusEvents, 1)
	payload, ok := statusEvents[0].Payload.(events.TicketStatusChangedPayload)
	require.True(t, ok)
	assert.True(t, payload.Automatic)
	assert.Equal(t, domain.TicketStatusOverdue, payload.OldStatus)
	assert.Equal(t, domain.TicketStatusInProgress, payload.NewStatus)
}

func TestRunOverdueSweepLeavesEmergenciesAlone(t *testing.T) {
	sweep, tickets, _ := newSweepFixture(t)
	require.NoError(t, tickets.Insert(context.Background(), &domain.Ticket{
		ID:          "t-emergency",
		Status:      domain.TicketStatusOverdue,
		Priority:    domain.TicketPriorityHigh,
		IsEmergency: true,
		DueAt:       fixedNow.Add(time.Hour),
	}))

	changed := sweep.RunOverdueSweep(context.Background(), fixedNow)
	assert.Empty(t, changed)

	ticket, _ := tickets.Get("t-emergency")
	assert.Equal(t, domain.TicketStatusOverdue, ticket.Status)
}
