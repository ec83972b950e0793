package service

import (
	"strings"
	"time"

	"github.com/zacxu/internship_hub/internal/apperr"
	"github.com/zacxu/internship_hub/internal/model"
)

const (
	// MaxApplicationsPerStudent caps concurrently open applications.
	// Withdrawn and superseded applications are deleted outright, so
	// the count only ever covers live rows.
	MaxApplicationsPerStudent = 3

	// MaxInternshipsPerRep caps internships a representative may have
	// created at once.
	MaxInternshipsPerRep = 5

	MinSlotsPerInternship = 1
	MaxSlotsPerInternship = 10

	// BasicLevelMaxYear is the highest year of study restricted to
	// basic-level internships. Years above it may apply to any level.
	BasicLevelMaxYear = 2
)

// IsMajorMatch reports a case-insensitive exact match between the
// student's major and the internship's preferred major.
func IsMajorMatch(student *model.Student, internship *model.Internship) bool {
	return strings.EqualFold(student.Major, internship.PreferredMajor)
}

// IsYearLevelEligible applies the single canonical year/level rule:
// basic is open to every year, intermediate and advanced require a
// year of study above BasicLevelMaxYear.
func IsYearLevelEligible(student *model.Student, internship *model.Internship) bool {
	if internship.Level == model.LevelBasic {
		return true
	}
	return student.YearOfStudy > BasicLevelMaxYear
}

// IsOpenForApplication reports whether the internship currently
// accepts applications: approved, visible, inside its date window and
// not yet at capacity.
func IsOpenForApplication(internship *model.Internship, today time.Time) bool {
	day := dateOnly(today)
	return internship.Status == model.InternshipStatusApproved &&
		internship.Visible &&
		!day.Before(dateOnly(internship.OpeningDate)) &&
		!day.After(dateOnly(internship.ClosingDate)) &&
		internship.FilledSlots < internship.TotalSlots
}

// IsDateRangeValid requires the closing date to be on or after the
// opening date.
func IsDateRangeValid(opening, closing time.Time) bool {
	return !dateOnly(closing).Before(dateOnly(opening))
}

func IsWithinSlotLimit(slots int) bool {
	return slots >= MinSlotsPerInternship && slots <= MaxSlotsPerInternship
}

// ValidateApplicationEligibility composes the application checks and
// returns the first failing reason, or nil when the student may apply.
func ValidateApplicationEligibility(student *model.Student, internship *model.Internship, today time.Time) error {
	if student.ApplicationCount() >= MaxApplicationsPerStudent {
		return apperr.Invalid("maximum number of applications (%d) reached", MaxApplicationsPerStudent)
	}
	if !IsYearLevelEligible(student, internship) {
		return apperr.Invalid("internship level not permitted for year %d of study", student.YearOfStudy)
	}
	if !IsMajorMatch(student, internship) {
		return apperr.Invalid("preferred major does not match")
	}
	if !IsOpenForApplication(internship, today) {
		return apperr.Invalid("internship is not open for applications")
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
