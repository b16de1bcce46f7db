package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// TechnicianRepository loads and persists the technician roster.
type TechnicianRepository interface {
	LoadAll(ctx context.Context) ([]domain.Technician, error)
	SaveTechnician(ctx context.Context, tech *domain.Technician) error
}

type technicianRepository struct {
	pool *pgxpool.Pool
}

// NewTechnicianRepository instantiates the repository.
func NewTechnicianRepository(pool *pgxpool.Pool) TechnicianRepository {
	return &technicianRepository{pool: pool}
}

func (r *technicianRepository) LoadAll(ctx context.Context) ([]domain.Technician, error) {
	const query = `
        SELECT id, name, email, password_hash, role, active, availability, skills,
               created_at, updated_at
        FROM technicians ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Technician
	for rows.Next() {
		var tech domain.Technician
		var skills []byte
		if err := rows.Scan(
			&tech.ID,
			&tech.Name,
			&tech.Email,
			&tech.PasswordHash,
			&tech.Role,
			&tech.Active,
			&tech.Availability,
			&skills,
			&tech.CreatedAt,
			&tech.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(skills) > 0 {
			if err := json.Unmarshal(skills, &tech.Skills); err != nil {
				return nil, fmt.Errorf("decode skills for %s: %w", tech.ID, err)
			}
		}
		result = append(result, tech)
	}
	return result, rows.Err()
}

func (r *technicianRepository) SaveTechnician(ctx context.Context, tech *domain.Technician) error {
	skills, err := json.Marshal(tech.Skills)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}
	const query = `
        INSERT INTO technicians (id, name, email, password_hash, role, active, availability, skills,
                                 created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        ON CONFLICT (id) DO UPDATE SET
            name=EXCLUDED.name, email=EXCLUDED.email,
            password_hash=EXCLUDED.password_hash, role=EXCLUDED.role,
            active=EXCLUDED.active, availability=EXCLUDED.availability,
            skills=EXCLUDED.skills, updated_at=EXCLUDED.updated_at`
	_, err = r.pool.Exec(ctx, query,
		tech.ID,
		tech.Name,
		tech.Email,
		tech.PasswordHash,
		tech.Role,
		tech.Active,
		tech.Availability,
		skills,
		tech.CreatedAt,
		tech.UpdatedAt,
	)
	return err
}
