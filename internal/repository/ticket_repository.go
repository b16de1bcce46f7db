package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// TicketRepository persists the in-memory ticket store. Writes are
// idempotent upserts so the write-through path can replay safely.
type TicketRepository interface {
	SaveTicket(ctx context.Context, ticket *domain.Ticket) error
	LoadAll(ctx context.Context) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) SaveTicket(ctx context.Context, ticket *domain.Ticket) error {
	notes, err := json.Marshal(ticket.Notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	const query = `
        INSERT INTO tickets (id, title, description, category_id, priority, status, assignee_id,
                             ticket_type, is_emergency, asset_id, location_id, notes,
                             created_at, due_at, completed_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        ON CONFLICT (id) DO UPDATE SET
            title=EXCLUDED.title, description=EXCLUDED.description,
            category_id=EXCLUDED.category_id, priority=EXCLUDED.priority,
            status=EXCLUDED.status, assignee_id=EXCLUDED.assignee_id,
            ticket_type=EXCLUDED.ticket_type, is_emergency=EXCLUDED.is_emergency,
            asset_id=EXCLUDED.asset_id, location_id=EXCLUDED.location_id,
            notes=EXCLUDED.notes, due_at=EXCLUDED.due_at,
            completed_at=EXCLUDED.completed_at, updated_at=EXCLUDED.updated_at`
	_, err = r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Title,
		ticket.Description,
		ticket.CategoryID,
		ticket.Priority,
		ticket.Status,
		ticket.AssigneeID,
		ticket.Type,
		ticket.IsEmergency,
		ticket.AssetID,
		ticket.LocationID,
		notes,
		ticket.CreatedAt,
		ticket.DueAt,
		ticket.CompletedAt,
		ticket.UpdatedAt,
	)
	return err
}

func (r *ticketRepository) LoadAll(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT id, title, description, category_id, priority, status, assignee_id,
               ticket_type, is_emergency, asset_id, location_id, notes,
               created_at, due_at, completed_at, updated_at
        FROM tickets ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		var notes []byte
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.CategoryID,
			&ticket.Priority,
			&ticket.Status,
			&ticket.AssigneeID,
			&ticket.Type,
			&ticket.IsEmergency,
			&ticket.AssetID,
			&ticket.LocationID,
			&notes,
			&ticket.CreatedAt,
			&ticket.DueAt,
			&ticket.CompletedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(notes) > 0 {
			if err := json.Unmarshal(notes, &ticket.Notes); err != nil {
				return nil, fmt.Errorf("decode notes for %s: %w", ticket.ID, err)
			}
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
