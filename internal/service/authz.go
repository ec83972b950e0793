package service

import (
	"github.com/zacxu/internship_hub/internal/apperr"
	"github.com/zacxu/internship_hub/internal/model"
	"github.com/zacxu/internship_hub/internal/repository"
)

// Role checks sit at the boundary of every manager operation. The
// engine never authenticates; it trusts the actor id handed in by the
// caller and only decides role and ownership.

func requireStudent(users *repository.UserRegistry, actorID string) (*model.Student, error) {
	student := users.Student(actorID)
	if student == nil {
		return nil, apperr.Invalid("only students can perform this action")
	}
	return student, nil
}

func requireCompanyRep(users *repository.UserRegistry, actorID string) (*model.CompanyRepresentative, error) {
	rep := users.CompanyRep(actorID)
	if rep == nil {
		return nil, apperr.Invalid("only company representatives can perform this action")
	}
	return rep, nil
}

// requireApprovedRep additionally enforces the registration gate: an
// unapproved representative may not act at all.
func requireApprovedRep(users *repository.UserRegistry, actorID string) (*model.CompanyRepresentative, error) {
	rep, err := requireCompanyRep(users, actorID)
	if err != nil {
		return nil, err
	}
	if !rep.Approved {
		return nil, apperr.Invalid("company representative is not approved yet")
	}
	return rep, nil
}

func requireStaff(users *repository.UserRegistry, actorID string) (*model.CareerCenterStaff, error) {
	staff, ok := users.GetByID(actorID).(*model.CareerCenterStaff)
	if !ok {
		return nil, apperr.Invalid("only career center staff can perform this action")
	}
	return staff, nil
}
