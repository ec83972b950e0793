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

// InternshipFields carries the representative-editable attributes for
// create and update.
type InternshipFields struct {
	Title          string
	Description    string
	Level          model.InternshipLevel
	PreferredMajor string
	OpeningDate    time.Time
	ClosingDate    time.Time
	TotalSlots     int
}

// InternshipService owns the internship state machine:
// pending -> approved/rejected by staff, approved <-> filled driven by
// slot accounting. Slot transitions themselves happen inside the
// acceptance and withdrawal cascades, under the same engine lock.
type InternshipService struct {
	mu           *sync.Mutex
	users        *repository.UserRegistry
	internships  *repository.InternshipRegistry
	applications *repository.ApplicationRegistry
	logger       *zap.Logger
	now          func() time.Time
}

func NewInternshipService(
	mu *sync.Mutex,
	users *repository.UserRegistry,
	internships *repository.InternshipRegistry,
	applications *repository.ApplicationRegistry,
	logger *zap.Logger,
) *InternshipService {
	return &InternshipService{
		mu:           mu,
		users:        users,
		internships:  internships,
		applications: applications,
		logger:       logger,
		now:          time.Now,
	}
}

// Create registers a new internship in pending state. Only an approved
// representative under the creation quota may create one.
func (s *InternshipService) Create(ctx context.Context, actorID string, fields InternshipFields) (*model.Internship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rep, err := requireApprovedRep(s.users, actorID)
	if err != nil {
		return nil, err
	}

	if rep.CreatedCount() >= MaxInternshipsPerRep {
		return nil, apperr.Invalid("maximum number of internships (%d) reached", MaxInternshipsPerRep)
	}

	if err := validateFields(fields); err != nil {
		return nil, err
	}

	internship := &model.Internship{
		ID:             s.internships.NextID(),
		Title:          fields.Title,
		Description:    fields.Description,
		Level:          fields.Level,
		PreferredMajor: fields.PreferredMajor,
		OpeningDate:    fields.OpeningDate,
		ClosingDate:    fields.ClosingDate,
		Status:         model.InternshipStatusPending,
		CompanyName:    rep.CompanyName,
		CompanyRepID:   rep.ID,
		TotalSlots:     fields.TotalSlots,
		FilledSlots:    0,
		Visible:        true,
	}

	s.internships.Add(internship)
	rep.AddCreatedInternship(internship.ID)

	s.logger.Info("Internship created",
		zap.String("internship_id", internship.ID),
		zap.String("company_rep_id", rep.ID),
		zap.Int("total_slots", internship.TotalSlots),
	)

	return internship.Clone(), s.persist(ctx, s.internships, s.users)
}

// Update edits an internship the actor owns. Editing is forbidden once
// the internship has been approved or filled, since its terms are
// public by then.
func (s *InternshipService) Update(ctx context.Context, actorID, internshipID string, fields InternshipFields) (*model.Internship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	internship, err := s.requireInternship(internshipID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(actorID, internship); err != nil {
		return nil, err
	}

	if internship.Status == model.InternshipStatusApproved || internship.Status == model.InternshipStatusFilled {
		return nil, apperr.Invalid("cannot edit an internship that is already approved or filled")
	}
	if err := validateFields(fields); err != nil {
		return nil, err
	}
	if fields.TotalSlots < internship.FilledSlots {
		return nil, apperr.Invalid("total slots cannot be less than filled slots")
	}

	internship.Title = fields.Title
	internship.Description = fields.Description
	internship.Level = fields.Level
	internship.PreferredMajor = fields.PreferredMajor
	internship.OpeningDate = fields.OpeningDate
	internship.ClosingDate = fields.ClosingDate
	internship.TotalSlots = fields.TotalSlots

	s.logger.Info("Internship updated", zap.String("internship_id", internship.ID))

	return internship.Clone(), s.persist(ctx, s.internships)
}

// Delete removes an internship the actor owns. An approved internship
// that already has applications cannot be deleted. Applications against
// a deleted non-approved internship are intentionally left in place.
func (s *InternshipService) Delete(ctx context.Context, actorID, internshipID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	internship, err := s.requireInternship(internshipID)
	if err != nil {
		return err
	}
	if err := s.requireOwner(actorID, internship); err != nil {
		return err
	}

	if internship.Status == model.InternshipStatusApproved && len(s.applications.ByInternship(internshipID)) > 0 {
		return apperr.Invalid("cannot delete internship with existing applications")
	}

	s.internships.Remove(internshipID)
	if rep := s.users.CompanyRep(internship.CompanyRepID); rep != nil {
		rep.RemoveCreatedInternship(internshipID)
	}

	s.logger.Info("Internship deleted",
		zap.String("internship_id", internshipID),
		zap.String("company_rep_id", internship.CompanyRepID),
	)

	return s.persist(ctx, s.internships, s.users)
}

// ToggleVisibility flips the visibility flag, nothing else.
func (s *InternshipService) ToggleVisibility(ctx context.Context, actorID, internshipID string) (*model.Internship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	internship, err := s.requireInternship(internshipID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(actorID, internship); err != nil {
		return nil, err
	}

	internship.ToggleVisibility()

	s.logger.Info("Internship visibility toggled",
		zap.String("internship_id", internship.ID),
		zap.Bool("visible", internship.Visible),
	)

	return internship.Clone(), s.persist(ctx, s.internships)
}

// Approve moves a pending internship to approved. Staff only.
func (s *InternshipService) Approve(ctx context.Context, actorID, internshipID string) (*model.Internship, error) {
	return s.review(ctx, actorID, internshipID, model.InternshipStatusApproved)
}

// Reject moves a pending internship to rejected. Staff only. Rejected
// is terminal.
func (s *InternshipService) Reject(ctx context.Context, actorID, internshipID string) (*model.Internship, error) {
	return s.review(ctx, actorID, internshipID, model.InternshipStatusRejected)
}

func (s *InternshipService) review(ctx context.Context, actorID, internshipID string, outcome model.InternshipStatus) (*model.Internship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := requireStaff(s.users, actorID); err != nil {
		return nil, err
	}
	internship, err := s.requireInternship(internshipID)
	if err != nil {
		return nil, err
	}
	if !internship.IsPending() {
		return nil, apperr.Invalid("only pending internships can be reviewed")
	}

	internship.Status = outcome

	s.logger.Info("Internship reviewed",
		zap.String("internship_id", internship.ID),
		zap.String("status", string(outcome)),
	)

	return internship.Clone(), s.persist(ctx, s.internships)
}

// GetByID returns a copy of the internship.
func (s *InternshipService) GetByID(internshipID string) (*model.Internship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	internship := s.internships.GetByID(internshipID)
	if internship == nil {
		return nil, apperr.NotFound("internship %s not found", internshipID)
	}
	return internship.Clone(), nil
}

// All returns copies of every internship.
func (s *InternshipService) All() []*model.Internship {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneInternships(s.internships.All())
}

// Visible returns copies of the internships currently visible to
// students.
func (s *InternshipService) Visible() []*model.Internship {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneInternships(s.internships.Visible())
}

// ByCompanyRep returns copies of the internships a representative
// created.
func (s *InternshipService) ByCompanyRep(repID string) []*model.Internship {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneInternships(s.internships.ByCompanyRep(repID))
}

// Pending returns the internships awaiting review. Staff only.
func (s *InternshipService) Pending(actorID string) ([]*model.Internship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := requireStaff(s.users, actorID); err != nil {
		return nil, err
	}
	return cloneInternships(s.internships.ByStatus(model.InternshipStatusPending)), nil
}

func (s *InternshipService) requireInternship(internshipID string) (*model.Internship, error) {
	internship := s.internships.GetByID(internshipID)
	if internship == nil {
		return nil, apperr.NotFound("internship %s not found", internshipID)
	}
	return internship, nil
}

func (s *InternshipService) requireOwner(actorID string, internship *model.Internship) error {
	rep, err := requireApprovedRep(s.users, actorID)
	if err != nil {
		return err
	}
	if internship.CompanyRepID != rep.ID {
		return apperr.Invalid("you can only manage your own internships")
	}
	return nil
}

func (s *InternshipService) persist(ctx context.Context, savers ...registrySaver) error {
	return persist(ctx, s.logger, savers...)
}

func validateFields(fields InternshipFields) error {
	if fields.Title == "" {
		return apperr.Invalid("title is required")
	}
	if !model.ValidLevel(fields.Level) {
		return apperr.Invalid("unknown internship level %q", fields.Level)
	}
	if fields.PreferredMajor == "" {
		return apperr.Invalid("preferred major is required")
	}
	if !IsWithinSlotLimit(fields.TotalSlots) {
		return apperr.Invalid("slots must be between %d and %d", MinSlotsPerInternship, MaxSlotsPerInternship)
	}
	if !IsDateRangeValid(fields.OpeningDate, fields.ClosingDate) {
		return apperr.Invalid("closing date must not be before opening date")
	}
	return nil
}

func cloneInternships(internships []*model.Internship) []*model.Internship {
	result := make([]*model.Internship, len(internships))
	for i, internship := range internships {
		result[i] = internship.Clone()
	}
	return result
}
