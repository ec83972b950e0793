package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/zacxu/internship_hub/internal/apperr"
	"github.com/zacxu/internship_hub/internal/model"
	"github.com/zacxu/internship_hub/internal/repository"
)

// registrySaver is what the write-behind step needs from a registry.
type registrySaver interface {
	Save(ctx context.Context) error
}

// persist flushes the touched registries after an in-memory mutation.
// A failure is logged and surfaced as a SaveError; the mutation stays
// applied either way.
func persist(ctx context.Context, logger *zap.Logger, savers ...registrySaver) error {
	var firstErr error
	for _, saver := range savers {
		if err := saver.Save(ctx); err != nil {
			logger.Error("Persist failed", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return apperr.SaveFailed(firstErr)
	}
	return nil
}

// Engine is the placement lifecycle engine: the three managers wired
// over shared registries, all guarded by one mutex. The acceptance and
// withdrawal cascades mutate student, application and internship state
// together, so per-entity locks would let a reader observe a cascade
// half applied.
type Engine struct {
	mu sync.Mutex

	users        *repository.UserRegistry
	internships  *repository.InternshipRegistry
	applications *repository.ApplicationRegistry
	withdrawals  *repository.WithdrawalRegistry

	Internships  *InternshipService
	Applications *ApplicationService
	Withdrawals  *WithdrawalService

	logger *zap.Logger
}

func NewEngine(
	users *repository.UserRegistry,
	internships *repository.InternshipRegistry,
	applications *repository.ApplicationRegistry,
	withdrawals *repository.WithdrawalRegistry,
	logger *zap.Logger,
) *Engine {
	e := &Engine{
		users:        users,
		internships:  internships,
		applications: applications,
		withdrawals:  withdrawals,
		logger:       logger,
	}

	e.Internships = NewInternshipService(&e.mu, users, internships, applications, logger)
	e.Applications = NewApplicationService(&e.mu, users, internships, applications, logger)
	e.Withdrawals = NewWithdrawalService(&e.mu, users, internships, e.Applications, applications, withdrawals, logger)

	return e
}

// Load pulls every registry from its store and reconciles derived
// state: each loaded application's internship id is ensured present in
// its student's applied set.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.users.Load(ctx); err != nil {
		return fmt.Errorf("initialise user registry: %w", err)
	}
	if err := e.internships.Load(ctx); err != nil {
		return fmt.Errorf("initialise internship registry: %w", err)
	}
	if err := e.applications.Load(ctx); err != nil {
		return fmt.Errorf("initialise application registry: %w", err)
	}
	if err := e.withdrawals.Load(ctx); err != nil {
		return fmt.Errorf("initialise withdrawal registry: %w", err)
	}

	for _, application := range e.applications.All() {
		if student := e.users.Student(application.StudentID); student != nil {
			student.AddAppliedInternship(application.InternshipID)
		}
	}

	e.logger.Info("Placement engine loaded",
		zap.Int("users", len(e.users.All())),
		zap.Int("internships", e.internships.Count()),
		zap.Int("applications", e.applications.Count()),
		zap.Int("withdrawal_requests", e.withdrawals.Count()),
	)

	return nil
}

// Actor resolves an acting user by id.
func (e *Engine) Actor(actorID string) (model.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user := e.users.GetByID(actorID)
	if user == nil {
		return nil, apperr.NotFound("user %s not found", actorID)
	}
	return user, nil
}

// Student returns a copy of a student's profile, applied set and
// placement included.
func (e *Engine) Student(studentID string) (*model.Student, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	student := e.users.Student(studentID)
	if student == nil {
		return nil, apperr.NotFound("student %s not found", studentID)
	}
	return student.Clone(), nil
}

// ApproveRepresentative clears a company representative to act. Staff
// only.
func (e *Engine) ApproveRepresentative(ctx context.Context, actorID, repID string) (*model.CompanyRepresentative, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := requireStaff(e.users, actorID); err != nil {
		return nil, err
	}
	rep := e.users.CompanyRep(repID)
	if rep == nil {
		return nil, apperr.NotFound("company representative %s not found", repID)
	}
	if rep.Approved {
		return nil, apperr.Invalid("company representative is already approved")
	}

	rep.Approved = true

	e.logger.Info("Company representative approved",
		zap.String("company_rep_id", rep.ID),
		zap.String("approved_by", actorID),
	)

	return rep.Clone(), persist(ctx, e.logger, e.users)
}
