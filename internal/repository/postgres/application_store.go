package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zacxu/internship_hub/internal/model"
)

type ApplicationStore struct {
	pool *pgxpool.Pool
}

func NewApplicationStore(pool *pgxpool.Pool) *ApplicationStore {
	return &ApplicationStore{pool: pool}
}

func (s *ApplicationStore) LoadAll(ctx context.Context) ([]*model.Application, error) {
	query := `
		SELECT id, student_id, internship_id, status, application_date
		FROM applications
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var applications []*model.Application
	for rows.Next() {
		var application model.Application
		err := rows.Scan(
			&application.ID,
			&application.StudentID,
			&application.InternshipID,
			&application.Status,
			&application.ApplicationDate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		applications = append(applications, &application)
	}

	return applications, rows.Err()
}

func (s *ApplicationStore) ReplaceAll(ctx context.Context, applications []*model.Application) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM applications`); err != nil {
		return fmt.Errorf("clear applications: %w", err)
	}

	query := `
		INSERT INTO applications (id, student_id, internship_id, status, application_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, application := range applications {
		_, err := tx.Exec(ctx, query,
			application.ID,
			application.StudentID,
			application.InternshipID,
			application.Status,
			application.ApplicationDate,
		)
		if err != nil {
			return fmt.Errorf("insert application %s: %w", application.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
