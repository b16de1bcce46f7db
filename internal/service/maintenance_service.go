package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/observability"
	"github.com/spec-kit/maintenance-service/internal/store"
)

// PreventiveCategoryID is the catalog category stamped on scheduler-emitted
// tickets.
const PreventiveCategoryID = "cat-wartung"

// MaintenanceService turns due maintenance plans into preventive tickets.
type MaintenanceService struct {
	plans      *store.PlanStore
	intake     *TicketService
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewMaintenanceService constructs the service.
func NewMaintenanceService(plans *store.PlanStore, intake *TicketService, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{
		plans:      plans,
		intake:     intake,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// RunMaintenanceTick scans all plans at now and emits at most one
// preventive ticket per due plan. Each emitted ticket goes through the full
// intake path; the scheduler itself never pre-assigns or pre-dates.
//
// LastGenerated is stamped with now, not the computed next-due point, so a
// long-idle scheduler produces one ticket per plan instead of a catch-up
// storm, and the stamp is applied before the next plan is evaluated, which
// makes a second tick in the same due window a no-op.
func (m *MaintenanceService) RunMaintenanceTick(ctx context.Context, now time.Time) []domain.Ticket {
	now = now.UTC()
	var emitted []domain.Ticket

	for _, snapshot := range m.plans.Plans() {
		// Re-read: an earlier emission in this tick (or a concurrent one)
		// may already have advanced LastGenerated.
		plan, ok := m.plans.Plan(snapshot.ID)
		if !ok || !plan.Due(now) {
			continue
		}

		asset, ok := m.plans.AssetByID(plan.AssetID)
		if !ok {
			m.logger.Warn("maintenance plan references unknown asset; skipping",
				zap.String("plan_id", plan.ID), zap.String("asset_id", plan.AssetID))
			continue
		}

		var locationID *string
		if _, ok := m.plans.LocationByID(asset.LocationID); ok {
			id := asset.LocationID
			locationID = &id
		} else {
			m.logger.Warn("asset references unknown location",
				zap.String("asset_id", asset.ID), zap.String("location_id", asset.LocationID))
		}

		assetID := asset.ID
		ticket, err := m.intake.CreateTicket(ctx, TicketCreateInput{
			Title:       fmt.Sprintf("Wartung fällig: %s", asset.Name),
			Description: fmt.Sprintf("%s (Gewerk: %s)", plan.Task, plan.RequiredSkill),
			CategoryID:  PreventiveCategoryID,
			Priority:    plan.TicketPriority,
			Type:        domain.TicketTypePreventive,
			AssetID:     &assetID,
			LocationID:  locationID,
		})
		if err != nil {
			m.logger.Error("preventive ticket intake failed",
				zap.String("plan_id", plan.ID), zap.Error(err))
			continue
		}

		m.plans.MarkGenerated(ctx, plan.ID, now)
		emitted = append(emitted, *ticket)

		if m.dispatcher != nil {
			m.dispatcher.Publish(ctx, events.Event{
				ID:        uuid.NewString(),
				Type:      events.EventMaintenanceGenerated,
				TicketID:  ticket.ID,
				Timestamp: now,
				Payload:   events.MaintenanceGeneratedPayload{PlanID: plan.ID, AssetID: asset.ID},
			})
		}
	}

	m.metrics.RecordMaintenanceTick(len(emitted))
	if len(emitted) > 0 {
		m.logger.Info("maintenance tick emitted tickets", zap.Int("count", len(emitted)))
	}
	return emitted
}
