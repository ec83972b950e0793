package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zacxu/internship_hub/internal/model"
)

type WithdrawalStore struct {
	pool *pgxpool.Pool
}

func NewWithdrawalStore(pool *pgxpool.Pool) *WithdrawalStore {
	return &WithdrawalStore{pool: pool}
}

func (s *WithdrawalStore) LoadAll(ctx context.Context) ([]*model.WithdrawalRequest, error) {
	query := `
		SELECT id, application_id, student_id, internship_id, after_placement,
		       status, request_date, reason
		FROM withdrawal_requests
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query withdrawal requests: %w", err)
	}
	defer rows.Close()

	var requests []*model.WithdrawalRequest
	for rows.Next() {
		var request model.WithdrawalRequest
		err := rows.Scan(
			&request.ID,
			&request.ApplicationID,
			&request.StudentID,
			&request.InternshipID,
			&request.AfterPlacement,
			&request.Status,
			&request.RequestDate,
			&request.Reason,
		)
		if err != nil {
			return nil, fmt.Errorf("scan withdrawal request: %w", err)
		}
		requests = append(requests, &request)
	}

	return requests, rows.Err()
}

func (s *WithdrawalStore) ReplaceAll(ctx context.Context, requests []*model.WithdrawalRequest) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM withdrawal_requests`); err != nil {
		return fmt.Errorf("clear withdrawal requests: %w", err)
	}

	query := `
		INSERT INTO withdrawal_requests (id, application_id, student_id, internship_id,
		                                 after_placement, status, request_date, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, request := range requests {
		_, err := tx.Exec(ctx, query,
			request.ID,
			request.ApplicationID,
			request.StudentID,
			request.InternshipID,
			request.AfterPlacement,
			request.Status,
			request.RequestDate,
			request.Reason,
		)
		if err != nil {
			return fmt.Errorf("insert withdrawal request %s: %w", request.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
