// Package postgres implements the registry stores on a pgx pool.
// Each store persists a full snapshot of one entity's in-memory state:
// the registries own the data, the database trails them (write-behind).
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zacxu/internship_hub/internal/model"
)

type InternshipStore struct {
	pool *pgxpool.Pool
}

func NewInternshipStore(pool *pgxpool.Pool) *InternshipStore {
	return &InternshipStore{pool: pool}
}

func (s *InternshipStore) LoadAll(ctx context.Context) ([]*model.Internship, error) {
	query := `
		SELECT id, title, description, level, preferred_major, opening_date, closing_date,
		       status, company_name, company_rep_id, total_slots, filled_slots, visible
		FROM internships
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query internships: %w", err)
	}
	defer rows.Close()

	var internships []*model.Internship
	for rows.Next() {
		var internship model.Internship
		err := rows.Scan(
			&internship.ID,
			&internship.Title,
			&internship.Description,
			&internship.Level,
			&internship.PreferredMajor,
			&internship.OpeningDate,
			&internship.ClosingDate,
			&internship.Status,
			&internship.CompanyName,
			&internship.CompanyRepID,
			&internship.TotalSlots,
			&internship.FilledSlots,
			&internship.Visible,
		)
		if err != nil {
			return nil, fmt.Errorf("scan internship: %w", err)
		}
		internships = append(internships, &internship)
	}

	return internships, rows.Err()
}

func (s *InternshipStore) ReplaceAll(ctx context.Context, internships []*model.Internship) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM internships`); err != nil {
		return fmt.Errorf("clear internships: %w", err)
	}

	query := `
		INSERT INTO internships (id, title, description, level, preferred_major, opening_date,
		                         closing_date, status, company_name, company_rep_id,
		                         total_slots, filled_slots, visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	for _, internship := range internships {
		_, err := tx.Exec(ctx, query,
			internship.ID,
			internship.Title,
			internship.Description,
			internship.Level,
			internship.PreferredMajor,
			internship.OpeningDate,
			internship.ClosingDate,
			internship.Status,
			internship.CompanyName,
			internship.CompanyRepID,
			internship.TotalSlots,
			internship.FilledSlots,
			internship.Visible,
		)
		if err != nil {
			return fmt.Errorf("insert internship %s: %w", internship.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
