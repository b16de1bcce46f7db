package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/catalog"
	"github.com/spec-kit/maintenance-service/internal/domain"
)

// CatalogRepository loads the rule catalog. Routing and SLA rules carry an
// explicit position column because evaluation order is part of the
// contract; rows are always read in that order.
type CatalogRepository interface {
	LoadCatalog(ctx context.Context, fallbackDays map[domain.TicketPriority]int) (catalog.Catalog, error)
}

type catalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository instantiates the repository.
func NewCatalogRepository(pool *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{pool: pool}
}

func (r *catalogRepository) LoadCatalog(ctx context.Context, fallbackDays map[domain.TicketPriority]int) (catalog.Catalog, error) {
	result := catalog.Catalog{FallbackDays: fallbackDays}

	rules, err := r.loadRoutingRules(ctx)
	if err != nil {
		return catalog.Catalog{}, err
	}
	result.RoutingRules = rules

	slas, err := r.loadSLARules(ctx)
	if err != nil {
		return catalog.Catalog{}, err
	}
	result.SLARules = slas

	categories, err := r.loadCategories(ctx)
	if err != nil {
		return catalog.Catalog{}, err
	}
	result.Categories = categories

	return result, nil
}

func (r *catalogRepository) loadRoutingRules(ctx context.Context) ([]domain.RoutingRule, error) {
	const query = `SELECT id, keywords, skill FROM routing_rules ORDER BY position`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RoutingRule
	for rows.Next() {
		var rule domain.RoutingRule
		if err := rows.Scan(&rule.ID, &rule.Keywords, &rule.Skill); err != nil {
			return nil, err
		}
		result = append(result, rule)
	}
	return result, rows.Err()
}

func (r *catalogRepository) loadSLARules(ctx context.Context) ([]domain.SLARule, error) {
	const query = `SELECT id, category_id, priority, response_hours FROM sla_rules ORDER BY position`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SLARule
	for rows.Next() {
		var rule domain.SLARule
		if err := rows.Scan(&rule.ID, &rule.CategoryID, &rule.Priority, &rule.ResponseHours); err != nil {
			return nil, err
		}
		result = append(result, rule)
	}
	return result, rows.Err()
}

func (r *catalogRepository) loadCategories(ctx context.Context) ([]domain.Category, error) {
	const query = `SELECT id, name, default_priority FROM categories ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.DefaultPriority); err != nil {
			return nil, err
		}
		result = append(result, cat)
	}
	return result, rows.Err()
}
