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

// WithdrawalService owns the withdrawal-request state machine:
// pending -> approved/rejected by staff, terminal thereafter. Approval
// reverses the application's effects across student, internship and
// application state in one unit.
type WithdrawalService struct {
	mu           *sync.Mutex
	users        *repository.UserRegistry
	internships  *repository.InternshipRegistry
	applications *ApplicationService
	withdrawals  *repository.WithdrawalRegistry
	appRegistry  *repository.ApplicationRegistry
	logger       *zap.Logger
	now          func() time.Time
}

func NewWithdrawalService(
	mu *sync.Mutex,
	users *repository.UserRegistry,
	internships *repository.InternshipRegistry,
	applications *ApplicationService,
	appRegistry *repository.ApplicationRegistry,
	withdrawals *repository.WithdrawalRegistry,
	logger *zap.Logger,
) *WithdrawalService {
	return &WithdrawalService{
		mu:           mu,
		users:        users,
		internships:  internships,
		applications: applications,
		appRegistry:  appRegistry,
		withdrawals:  withdrawals,
		logger:       logger,
		now:          time.Now,
	}
}

// Request files a withdrawal request for one of the acting student's
// applications. Only pending or successful applications can be
// withdrawn, and at most one pending request may exist per
// application. AfterPlacement is fixed here: it records whether the
// student had already accepted this exact internship.
func (s *WithdrawalService) Request(ctx context.Context, actorID, applicationID, reason string) (*model.WithdrawalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student, err := requireStudent(s.users, actorID)
	if err != nil {
		return nil, err
	}

	application := s.appRegistry.GetByID(applicationID)
	if application == nil {
		return nil, apperr.NotFound("application %s not found", applicationID)
	}
	if application.StudentID != student.ID {
		return nil, apperr.Invalid("you can only withdraw your own applications")
	}
	if !application.IsWithdrawable() {
		return nil, apperr.Invalid("application cannot be withdrawn")
	}
	if s.withdrawals.HasPendingForApplication(applicationID) {
		return nil, apperr.Invalid("a pending withdrawal request already exists for this application")
	}

	afterPlacement := student.HasAcceptedPlacement() &&
		student.AcceptedInternshipID == application.InternshipID

	request := &model.WithdrawalRequest{
		ID:             s.withdrawals.NextID(),
		ApplicationID:  applicationID,
		StudentID:      student.ID,
		InternshipID:   application.InternshipID,
		AfterPlacement: afterPlacement,
		Status:         model.WithdrawalStatusPending,
		RequestDate:    s.now(),
		Reason:         reason,
	}

	s.withdrawals.Add(request)

	s.logger.Info("Withdrawal requested",
		zap.String("request_id", request.ID),
		zap.String("application_id", applicationID),
		zap.Bool("after_placement", afterPlacement),
	)

	return request.Clone(), s.persist(ctx, s.withdrawals)
}

// Approve grants a pending withdrawal request. Staff only. In one
// unit: the request is approved, the student's accepted placement is
// cleared if it was this internship, the internship id leaves the
// student's applied set, a successful application gives its slot back
// (possibly reverting filled -> approved), and the application is
// deleted.
func (s *WithdrawalService) Approve(ctx context.Context, actorID, requestID string) (*model.WithdrawalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := requireStaff(s.users, actorID); err != nil {
		return nil, err
	}
	request, err := s.requireRequest(requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsPending() {
		return nil, apperr.Invalid("withdrawal request has already been settled")
	}

	request.Status = model.WithdrawalStatusApproved

	application := s.appRegistry.GetByID(request.ApplicationID)
	if application != nil {
		if student := s.users.Student(request.StudentID); student != nil {
			student.RemoveAppliedInternship(request.InternshipID)
			if student.AcceptedInternshipID == request.InternshipID {
				student.AcceptedInternshipID = ""
			}
		}

		if application.IsSuccessful() {
			if internship := s.internships.GetByID(request.InternshipID); internship != nil {
				internship.DecrementFilledSlots()
			}
		}

		s.applications.removeLocked(request.ApplicationID)
	}

	s.logger.Info("Withdrawal approved",
		zap.String("request_id", request.ID),
		zap.String("application_id", request.ApplicationID),
		zap.String("student_id", request.StudentID),
	)

	return request.Clone(), s.persist(ctx, s.withdrawals, s.appRegistry, s.users, s.internships)
}

// Reject declines a pending withdrawal request. Staff only. The
// application stays exactly as it was.
func (s *WithdrawalService) Reject(ctx context.Context, actorID, requestID string) (*model.WithdrawalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := requireStaff(s.users, actorID); err != nil {
		return nil, err
	}
	request, err := s.requireRequest(requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsPending() {
		return nil, apperr.Invalid("withdrawal request has already been settled")
	}

	request.Status = model.WithdrawalStatusRejected

	s.logger.Info("Withdrawal rejected", zap.String("request_id", request.ID))

	return request.Clone(), s.persist(ctx, s.withdrawals)
}

// GetByID returns a copy of the request.
func (s *WithdrawalService) GetByID(requestID string) (*model.WithdrawalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request := s.withdrawals.GetByID(requestID)
	if request == nil {
		return nil, apperr.NotFound("withdrawal request %s not found", requestID)
	}
	return request.Clone(), nil
}

// Pending returns the requests awaiting a staff decision. Staff only.
func (s *WithdrawalService) Pending(actorID string) ([]*model.WithdrawalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := requireStaff(s.users, actorID); err != nil {
		return nil, err
	}
	return cloneWithdrawals(s.withdrawals.Pending()), nil
}

// ByStudent returns copies of a student's requests, settled ones
// included.
func (s *WithdrawalService) ByStudent(studentID string) []*model.WithdrawalRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneWithdrawals(s.withdrawals.ByStudent(studentID))
}

func (s *WithdrawalService) requireRequest(requestID string) (*model.WithdrawalRequest, error) {
	request := s.withdrawals.GetByID(requestID)
	if request == nil {
		return nil, apperr.NotFound("withdrawal request %s not found", requestID)
	}
	return request, nil
}

func (s *WithdrawalService) persist(ctx context.Context, savers ...registrySaver) error {
	return persist(ctx, s.logger, savers...)
}

func cloneWithdrawals(requests []*model.WithdrawalRequest) []*model.WithdrawalRequest {
	result := make([]*model.WithdrawalRequest, len(requests))
	for i, request := range requests {
		result[i] = request.Clone()
	}
	return result
}
