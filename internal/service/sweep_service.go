package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/engine"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/observability"
	"github.com/spec-kit/maintenance-service/internal/store"
)

// SweepService runs the periodic overdue evaluation over the whole ticket
// store as one atomic pass.
type SweepService struct {
	tickets    *store.TicketStore
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewSweepService constructs the service.
func NewSweepService(tickets *store.TicketStore, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *SweepService {
	return &SweepService{
		tickets:    tickets,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// RunOverdueSweep re-evaluates every ticket's due date at now. Non-DONE
// tickets past due become OVERDUE; OVERDUE tickets whose due date was
// pushed forward drop back to IN_PROGRESS. The sweep is idempotent.
func (s *SweepService) RunOverdueSweep(ctx context.Context, now time.Time) []domain.Ticket {
	now = now.UTC()
	var transitions []events.Event

	changed := s.tickets.Sweep(ctx, func(t *domain.Ticket) bool {
		before := t.Status
		if !engine.SweepTicket(t, now) {
			return false
		}
		eventType := events.EventTicketStatusChanged
		if t.Status == domain.TicketStatusOverdue {
			eventType = events.EventTicketOverdue
		}
		transitions = append(transitions, events.Event{
			ID:        uuid.NewString(),
			Type:      eventType,
			TicketID:  t.ID,
			Timestamp: now,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: before,
				NewStatus: t.Status,
				Automatic: true,
				DueAt:     t.DueAt,
			},
		})
		return true
	})

	for _, event := range transitions {
		if s.dispatcher != nil {
			s.dispatcher.Publish(ctx, event)
		}
	}

	s.metrics.RecordSweep(len(changed))
	if len(changed) > 0 {
		s.logger.Info("overdue sweep moved tickets", zap.Int("count", len(changed)))
	}
	return changed
}
