package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/zacxu/internship_hub/internal/model"
	"github.com/zacxu/internship_hub/internal/repository"
)

// Stub stores back the registries in tests. failSave simulates a
// broken persistence layer to exercise the write-behind contract.

type stubUserStore struct {
	data     []model.User
	failSave bool
	saves    int
}

func (s *stubUserStore) LoadAll(context.Context) ([]model.User, error) { return s.data, nil }

func (s *stubUserStore) ReplaceAll(_ context.Context, users []model.User) error {
	if s.failSave {
		return errors.New("disk full")
	}
	s.data = users
	s.saves++
	return nil
}

type stubInternshipStore struct {
	data     []*model.Internship
	failSave bool
	saves    int
}

func (s *stubInternshipStore) LoadAll(context.Context) ([]*model.Internship, error) {
	return s.data, nil
}

func (s *stubInternshipStore) ReplaceAll(_ context.Context, internships []*model.Internship) error {
	if s.failSave {
		return errors.New("disk full")
	}
	s.data = internships
	s.saves++
	return nil
}

type stubApplicationStore struct {
	data     []*model.Application
	failSave bool
	saves    int
}

func (s *stubApplicationStore) LoadAll(context.Context) ([]*model.Application, error) {
	return s.data, nil
}

func (s *stubApplicationStore) ReplaceAll(_ context.Context, applications []*model.Application) error {
	if s.failSave {
		return errors.New("disk full")
	}
	s.data = applications
	s.saves++
	return nil
}

type stubWithdrawalStore struct {
	data     []*model.WithdrawalRequest
	failSave bool
	saves    int
}

func (s *stubWithdrawalStore) LoadAll(context.Context) ([]*model.WithdrawalRequest, error) {
	return s.data, nil
}

func (s *stubWithdrawalStore) ReplaceAll(_ context.Context, requests []*model.WithdrawalRequest) error {
	if s.failSave {
		return errors.New("disk full")
	}
	s.data = requests
	s.saves++
	return nil
}

// testDay is the fixed "today" every service clock returns in tests.
var testDay = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	engine *Engine

	users        *repository.UserRegistry
	internships  *repository.InternshipRegistry
	applications *repository.ApplicationRegistry
	withdrawals  *repository.WithdrawalRegistry

	userStore        *stubUserStore
	internshipStore  *stubInternshipStore
	applicationStore *stubApplicationStore
	withdrawalStore  *stubWithdrawalStore
}

func newFixture() *fixture {
	f := &fixture{
		userStore:        &stubUserStore{},
		internshipStore:  &stubInternshipStore{},
		applicationStore: &stubApplicationStore{},
		withdrawalStore:  &stubWithdrawalStore{},
	}

	f.users = repository.NewUserRegistry(f.userStore)
	f.internships = repository.NewInternshipRegistry(f.internshipStore)
	f.applications = repository.NewApplicationRegistry(f.applicationStore)
	f.withdrawals = repository.NewWithdrawalRegistry(f.withdrawalStore)

	f.engine = NewEngine(f.users, f.internships, f.applications, f.withdrawals, zap.NewNop())
	f.engine.Internships.now = func() time.Time { return testDay }
	f.engine.Applications.now = func() time.Time { return testDay }
	f.engine.Withdrawals.now = func() time.Time { return testDay }

	return f
}

func (f *fixture) addStudent(id string, year int, major string) *model.Student {
	student := &model.Student{ID: id, Name: "Student " + id, YearOfStudy: year, Major: major}
	f.users.Add(student)
	return student
}

func (f *fixture) addRep(id string, approved bool) *model.CompanyRepresentative {
	rep := &model.CompanyRepresentative{
		ID:          id,
		Name:        "Rep " + id,
		CompanyName: "Acme",
		Approved:    approved,
	}
	f.users.Add(rep)
	return rep
}

func (f *fixture) addStaff(id string) *model.CareerCenterStaff {
	staff := &model.CareerCenterStaff{ID: id, Name: "Staff " + id}
	f.users.Add(staff)
	return staff
}

// addInternship seeds an internship directly into the registry in the
// given status, open around testDay, owned by repID.
func (f *fixture) addInternship(id, repID string, level model.InternshipLevel, major string, status model.InternshipStatus, totalSlots int) *model.Internship {
	internship := &model.Internship{
		ID:             id,
		Title:          "Internship " + id,
		Level:          level,
		PreferredMajor: major,
		OpeningDate:    testDay.AddDate(0, 0, -7),
		ClosingDate:    testDay.AddDate(0, 1, 0),
		Status:         status,
		CompanyName:    "Acme",
		CompanyRepID:   repID,
		TotalSlots:     totalSlots,
		Visible:        true,
	}
	f.internships.Add(internship)
	if rep := f.users.CompanyRep(repID); rep != nil {
		rep.AddCreatedInternship(id)
	}
	return internship
}

func validFields() InternshipFields {
	return InternshipFields{
		Title:          "Backend Intern",
		Description:    "Build services",
		Level:          model.LevelBasic,
		PreferredMajor: "CSC",
		OpeningDate:    testDay.AddDate(0, 0, -1),
		ClosingDate:    testDay.AddDate(0, 2, 0),
		TotalSlots:     3,
	}
}
