package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zacxu/internship_hub/internal/apperr"
	"github.com/zacxu/internship_hub/internal/model"
	"github.com/zacxu/internship_hub/internal/repository"
)

// ApplicationService owns the application state machine: pending ->
// successful/unsuccessful by company or staff decision, and the
// acceptance cascade that commits a student to a single placement.
type ApplicationService struct {
	mu           *sync.Mutex
	users        *repository.UserRegistry
	internships  *repository.InternshipRegistry
	applications *repository.ApplicationRegistry
	logger       *zap.Logger
	now          func() time.Time
}

func NewApplicationService(
	mu *sync.Mutex,
	users *repository.UserRegistry,
	internships *repository.InternshipRegistry,
	applications *repository.ApplicationRegistry,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		mu:           mu,
		users:        users,
		internships:  internships,
		applications: applications,
		logger:       logger,
		now:          time.Now,
	}
}

// Apply files a new application for the acting student. The quota,
// duplicate, year/level, major and open-window checks all run before
// anything is mutated.
func (s *ApplicationService) Apply(ctx context.Context, actorID, internshipID string) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := requireStudent(s.users, actorID)
	if err != nil {
		return nil, err
	}

	internship := s.internships.GetByID(internshipID)
	if internship == nil {
		return nil, apperr.NotFound("internship %s not found", internshipID)
	}

	if student.HasAppliedTo(internshipID) {
		return nil, apperr.Invalid("you have already applied for this internship")
	}
	if err := ValidateApplicationEligibility(student, internship, s.now()); err != nil {
		return nil, err
	}

	application := &model.Application{
		ID:              s.applications.NextID(),
		StudentID:       student.ID,
		InternshipID:    internshipID,
		Status:          model.ApplicationStatusPending,
		ApplicationDate: s.now(),
	}

	s.applications.Add(application)
	student.AddAppliedInternship(internshipID)

	s.logger.Info("Application filed",
		zap.String("application_id", application.ID),
		zap.String("student_id", student.ID),
		zap.String("internship_id", internshipID),
	)

	return application.Clone(), s.persist(ctx, s.applications, s.users)
}

// Decide settles a pending application as successful or unsuccessful.
// Staff may decide any application; a company representative only
// those against their own internships. Slots are untouched here: they
// are consumed at acceptance, not at the offer.
func (s *ApplicationService) Decide(ctx context.Context, actorID, applicationID string, outcome model.ApplicationStatus) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !model.ValidOutcome(outcome) {
		return nil, apperr.Invalid("outcome must be successful or unsuccessful")
	}

	application, err := s.requireApplication(applicationID)
	if err != nil {
		return nil, err
	}
	internship := s.internships.GetByID(application.InternshipID)
	if internship == nil {
		return nil, apperr.NotFound("internship %s not found", application.InternshipID)
	}

	if _, staffErr := requireStaff(s.users, actorID); staffErr != nil {
		rep, err := requireApprovedRep(s.users, actorID)
		if err != nil {
			return nil, apperr.Invalid("only career center staff or company representatives can decide applications")
		}
		if internship.CompanyRepID != rep.ID {
			return nil, apperr.Invalid("you can only decide applications for your own internships")
		}
	}

	if !application.IsPending() {
		return nil, apperr.Invalid("application has already been decided")
	}

	application.Status = outcome

	s.logger.Info("Application decided",
		zap.String("application_id", application.ID),
		zap.String("status", string(outcome)),
		zap.String("decided_by", actorID),
	)

	return application.Clone(), s.persist(ctx, s.applications)
}

// AcceptPlacement commits the acting student to a successful
// application. In one unit: the student's accepted internship is set,
// every other application of the student is deleted, and the
// internship consumes a slot (possibly becoming filled). This is the
// irrevocable narrowing of the student's options; marked for the
// engine-wide lock because a reader must never observe it half done.
func (s *ApplicationService) AcceptPlacement(ctx context.Context, actorID, applicationID string) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := requireStudent(s.users, actorID)
	if err != nil {
		return nil, err
	}
	application, err := s.requireApplication(applicationID)
	if err != nil {
		return nil, err
	}

	if application.StudentID != student.ID {
		return nil, apperr.Invalid("you can only accept your own placements")
	}
	if !application.IsSuccessful() {
		return nil, apperr.Invalid("only successful applications can be accepted")
	}
	if student.HasAcceptedPlacement() {
		return nil, apperr.Invalid("you have already accepted a placement")
	}

	student.AcceptedInternshipID = application.InternshipID

	for _, other := range s.applications.ByStudent(student.ID) {
		if other.ID != applicationID {
			s.removeLocked(other.ID)
		}
	}

	if internship := s.internships.GetByID(application.InternshipID); internship != nil {
		internship.IncrementFilledSlots()
	}

	s.logger.Info("Placement accepted",
		zap.String("application_id", application.ID),
		zap.String("student_id", student.ID),
		zap.String("internship_id", application.InternshipID),
	)

	return application.Clone(), s.persist(ctx, s.applications, s.users, s.internships)
}

// GetByID returns a copy of the application.
func (s *ApplicationService) GetByID(applicationID string) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	application := s.applications.GetByID(applicationID)
	if application == nil {
		return nil, apperr.NotFound("application %s not found", applicationID)
	}
	return application.Clone(), nil
}

// ByStudent returns copies of a student's applications.
func (s *ApplicationService) ByStudent(studentID string) []*model.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneApplications(s.applications.ByStudent(studentID))
}

// ByInternship returns copies of the applications against an
// internship.
func (s *ApplicationService) ByInternship(internshipID string) []*model.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneApplications(s.applications.ByInternship(internshipID))
}

// ByStatus returns copies of the applications in a given state.
func (s *ApplicationService) ByStatus(status model.ApplicationStatus) []*model.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneApplications(s.applications.ByStatus(status))
}

// removeLocked deletes an application outright and keeps the owning
// student's applied set consistent. Callers hold the engine lock; it
// is shared by the acceptance cascade and withdrawal approval.
func (s *ApplicationService) removeLocked(applicationID string) {
	application := s.applications.GetByID(applicationID)
	if application == nil {
		return
	}
	s.applications.Remove(applicationID)
	if student := s.users.Student(application.StudentID); student != nil {
		student.RemoveAppliedInternship(application.InternshipID)
	}
}

func (s *ApplicationService) requireApplication(applicationID string) (*model.Application, error) {
	application := s.applications.GetByID(applicationID)
	if application == nil {
		return nil, apperr.NotFound("application %s not found", applicationID)
	}
	return application, nil
}

func (s *ApplicationService) persist(ctx context.Context, savers ...registrySaver) error {
	return persist(ctx, s.logger, savers...)
}

func cloneApplications(applications []*model.Application) []*model.Application {
	result := make([]*model.Application, len(applications))
	for i, application := range applications {
		result[i] = application.Clone()
	}
	return result
}
