package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// PlanRepository persists maintenance plans, assets and locations.
// LastGenerated is stored in the plan bookkeeping form (year-month-day);
// the canonical in-memory form stays time.Time.
type PlanRepository interface {
	LoadPlans(ctx context.Context) ([]domain.MaintenancePlan, error)
	LoadAssets(ctx context.Context) ([]domain.Asset, error)
	LoadLocations(ctx context.Context) ([]domain.Location, error)
	SavePlan(ctx context.Context, plan *domain.MaintenancePlan) error
}

type planRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPlanRepository instantiates the repository.
func NewPlanRepository(pool *pgxpool.Pool, logger *zap.Logger) PlanRepository {
	return &planRepository{pool: pool, logger: logger}
}

func (r *planRepository) LoadPlans(ctx context.Context) ([]domain.MaintenancePlan, error) {
	const query = `
        SELECT id, asset_id, task, interval_days, required_skill, ticket_priority, last_generated
        FROM maintenance_plans ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MaintenancePlan
	for rows.Next() {
		var plan domain.MaintenancePlan
		var lastGenerated string
		if err := rows.Scan(
			&plan.ID,
			&plan.AssetID,
			&plan.Task,
			&plan.IntervalDays,
			&plan.RequiredSkill,
			&plan.TicketPriority,
			&lastGenerated,
		); err != nil {
			return nil, err
		}
		// Malformed dates are a data-quality problem, not a crash: the plan
		// loads with an absent LastGenerated and is treated as never run.
		parsed, ok := domain.ParsePlanDate(lastGenerated)
		if !ok && lastGenerated != "" {
			r.logger.Warn("maintenance plan has malformed last_generated",
				zap.String("plan_id", plan.ID), zap.String("value", lastGenerated))
		}
		plan.LastGenerated = parsed
		result = append(result, plan)
	}
	return result, rows.Err()
}

func (r *planRepository) LoadAssets(ctx context.Context) ([]domain.Asset, error) {
	const query = `
        SELECT id, name, location_id, asset_type, manufacturer, model, installed_at, plan_id
        FROM assets ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Asset
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(
			&asset.ID,
			&asset.Name,
			&asset.LocationID,
			&asset.Type,
			&asset.Manufacturer,
			&asset.Model,
			&asset.InstalledAt,
			&asset.PlanID,
		); err != nil {
			return nil, err
		}
		result = append(result, asset)
	}
	return result, rows.Err()
}

func (r *planRepository) LoadLocations(ctx context.Context) ([]domain.Location, error) {
	const query = `SELECT id, name, building, floor FROM locations ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Location
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Building, &loc.Floor); err != nil {
			return nil, err
		}
		result = append(result, loc)
	}
	return result, rows.Err()
}

func (r *planRepository) SavePlan(ctx context.Context, plan *domain.MaintenancePlan) error {
	const query = `
        UPDATE maintenance_plans SET last_generated=$1 WHERE id=$2`
	_, err := r.pool.Exec(ctx, query, domain.FormatPlanDate(plan.LastGenerated), plan.ID)
	return err
}
