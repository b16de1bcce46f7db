package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// PlanPersister writes maintenance-plan bookkeeping through to durable
// storage with the same fire-and-forget contract as Persister.
type PlanPersister interface {
	SavePlan(ctx context.Context, plan *domain.MaintenancePlan) error
}

// PlanStore holds maintenance plans together with the assets and locations
// they reference. Only the scheduler mutates plans, and only their
// LastGenerated field.
type PlanStore struct {
	mu        sync.Mutex
	plans     []domain.MaintenancePlan
	assets    map[string]domain.Asset
	locations map[string]domain.Location
	persister PlanPersister
	logger    *zap.Logger
}

// NewPlanStore builds the store from seed data. persister may be nil.
func NewPlanStore(plans []domain.MaintenancePlan, assets []domain.Asset, locations []domain.Location, persister PlanPersister, logger *zap.Logger) *PlanStore {
	s := &PlanStore{
		plans:     append([]domain.MaintenancePlan(nil), plans...),
		assets:    make(map[string]domain.Asset, len(assets)),
		locations: make(map[string]domain.Location, len(locations)),
		persister: persister,
		logger:    logger,
	}
	for _, a := range assets {
		s.assets[a.ID] = a
	}
	for _, l := range locations {
		s.locations[l.ID] = l
	}
	return s
}

// Plans returns a copy of all plans in catalog order.
func (s *PlanStore) Plans() []domain.MaintenancePlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.MaintenancePlan(nil), s.plans...)
}

// Plan returns the current state of one plan. The scheduler re-reads a plan
// through this before evaluating it so that eagerly applied LastGenerated
// updates are visible within the same tick.
func (s *PlanStore) Plan(id string) (domain.MaintenancePlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.plans {
		if p.ID == id {
			return p, true
		}
	}
	return domain.MaintenancePlan{}, false
}

// AssetByID resolves an asset reference.
func (s *PlanStore) AssetByID(id string) (domain.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[id]
	return a, ok
}

// LocationByID resolves a location reference.
func (s *PlanStore) LocationByID(id string) (domain.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locations[id]
	return l, ok
}

// MarkGenerated stamps the plan's LastGenerated and writes it through. The
// stamp is the tick's own now, not the computed next-due point, so a
// scheduler that slept through several intervals emits one ticket instead
// of a catch-up storm.
func (s *PlanStore) MarkGenerated(ctx context.Context, id string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.plans {
		if s.plans[i].ID != id {
			continue
		}
		s.plans[i].LastGenerated = now
		if s.persister != nil {
			if err := s.persister.SavePlan(ctx, &s.plans[i]); err != nil && s.logger != nil {
				s.logger.Warn("plan write-through failed",
					zap.String("plan_id", id), zap.Error(err))
			}
		}
		return true
	}
	return false
}

// Replace swaps store contents, used when hydrating from persistence.
func (s *PlanStore) Replace(plans []domain.MaintenancePlan, assets []domain.Asset, locations []domain.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = append([]domain.MaintenancePlan(nil), plans...)
	s.assets = make(map[string]domain.Asset, len(assets))
	for _, a := range assets {
		s.assets[a.ID] = a
	}
	s.locations = make(map[string]domain.Location, len(locations))
	for _, l := range locations {
		s.locations[l.ID] = l
	}
}
