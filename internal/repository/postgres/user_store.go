package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zacxu/internship_hub/internal/model"
)

// UserStore keeps all three actor kinds in one table, discriminated by
// the role column. Role-specific columns are null for other roles.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) LoadAll(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT id, role, name, year_of_study, major, applied_internship_ids,
		       accepted_internship_id, company_name, department, position,
		       approved, created_internship_ids
		FROM users
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var (
			id, role, name       string
			yearOfStudy          *int
			major                *string
			appliedInternshipIDs []string
			acceptedInternshipID *string
			companyName          *string
			department           *string
			position             *string
			approved             *bool
			createdInternshipIDs []string
		)
		err := rows.Scan(
			&id, &role, &name, &yearOfStudy, &major, &appliedInternshipIDs,
			&acceptedInternshipID, &companyName, &department, &position,
			&approved, &createdInternshipIDs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}

		switch model.Role(role) {
		case model.RoleStudent:
			student := &model.Student{
				ID:                   id,
				Name:                 name,
				AppliedInternshipIDs: appliedInternshipIDs,
			}
			if yearOfStudy != nil {
				student.YearOfStudy = *yearOfStudy
			}
			if major != nil {
				student.Major = *major
			}
			if acceptedInternshipID != nil {
				student.AcceptedInternshipID = *acceptedInternshipID
			}
			users = append(users, student)
		case model.RoleCompanyRep:
			rep := &model.CompanyRepresentative{
				ID:                   id,
				Name:                 name,
				CreatedInternshipIDs: createdInternshipIDs,
			}
			if companyName != nil {
				rep.CompanyName = *companyName
			}
			if department != nil {
				rep.Department = *department
			}
			if position != nil {
				rep.Position = *position
			}
			if approved != nil {
				rep.Approved = *approved
			}
			users = append(users, rep)
		case model.RoleStaff:
			users = append(users, &model.CareerCenterStaff{ID: id, Name: name})
		default:
			return nil, fmt.Errorf("unknown user role %q for user %s", role, id)
		}
	}

	return users, rows.Err()
}

func (s *UserStore) ReplaceAll(ctx context.Context, users []model.User) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}

	query := `
		INSERT INTO users (id, role, name, year_of_study, major, applied_internship_ids,
		                   accepted_internship_id, company_name, department, position,
		                   approved, created_internship_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, user := range users {
		var args []any
		switch u := user.(type) {
		case *model.Student:
			var accepted *string
			if u.AcceptedInternshipID != "" {
				accepted = &u.AcceptedInternshipID
			}
			args = []any{u.ID, string(model.RoleStudent), u.Name, u.YearOfStudy, u.Major,
				u.AppliedInternshipIDs, accepted, nil, nil, nil, nil, nil}
		case *model.CompanyRepresentative:
			args = []any{u.ID, string(model.RoleCompanyRep), u.Name, nil, nil, nil,
				nil, u.CompanyName, u.Department, u.Position, u.Approved, u.CreatedInternshipIDs}
		case *model.CareerCenterStaff:
			args = []any{u.ID, string(model.RoleStaff), u.Name, nil, nil, nil,
				nil, nil, nil, nil, nil, nil}
		default:
			return fmt.Errorf("unknown user type for user %s", user.UserID())
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert user %s: %w", user.UserID(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
