package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zacxu/internship_hub/internal/apperr"
	"github.com/zacxu/internship_hub/internal/model"
)

func TestCreateInternship(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	ctx := context.Background()

	created, err := f.engine.Internships.Create(ctx, "REP01", validFields())
	require.NoError(t, err)

	assert.Equal(t, "INT00001", created.ID)
	assert.Equal(t, model.InternshipStatusPending, created.Status)
	assert.Equal(t, 0, created.FilledSlots)
	assert.True(t, created.Visible)
	assert.Equal(t, "Acme", created.CompanyName)
	assert.Equal(t, "REP01", created.CompanyRepID)

	rep := f.users.CompanyRep("REP01")
	assert.Contains(t, rep.CreatedInternshipIDs, "INT00001")
	assert.Positive(t, f.internshipStore.saves)
}

func TestCreateInternshipRequiresApprovedRep(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", false)
	f.addStudent("S01", 3, "CSC")

	_, err := f.engine.Internships.Create(context.Background(), "REP01", validFields())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not approved")

	_, err = f.engine.Internships.Create(context.Background(), "S01", validFields())
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidOperation(err))
}

func TestCreateInternshipQuota(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	ctx := context.Background()

	for i := 0; i < MaxInternshipsPerRep; i++ {
		_, err := f.engine.Internships.Create(ctx, "REP01", validFields())
		require.NoError(t, err)
	}

	_, err := f.engine.Internships.Create(ctx, "REP01", validFields())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum number of internships")
}

func TestCreateInternshipFieldValidation(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	ctx := context.Background()

	tooFew := validFields()
	tooFew.TotalSlots = 0
	_, err := f.engine.Internships.Create(ctx, "REP01", tooFew)
	assert.True(t, apperr.IsInvalidOperation(err))

	tooMany := validFields()
	tooMany.TotalSlots = 11
	_, err = f.engine.Internships.Create(ctx, "REP01", tooMany)
	assert.True(t, apperr.IsInvalidOperation(err))

	inverted := validFields()
	inverted.ClosingDate = inverted.OpeningDate.AddDate(0, 0, -2)
	_, err = f.engine.Internships.Create(ctx, "REP01", inverted)
	assert.True(t, apperr.IsInvalidOperation(err))

	badLevel := validFields()
	badLevel.Level = "expert"
	_, err = f.engine.Internships.Create(ctx, "REP01", badLevel)
	assert.True(t, apperr.IsInvalidOperation(err))
}

func TestUpdateInternship(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	f.addInternship("INT00001", "REP01", model.LevelBasic, "CSC", model.InternshipStatusPending, 3)

	fields := validFields()
	fields.Title = "Revised"
	fields.TotalSlots = 5

	updated, err := f.engine.Internships.Update(context.Background(), "REP01", "INT00001", fields)
	require.NoError(t, err)
	assert.Equal(t, "Revised", updated.Title)
	assert.Equal(t, 5, updated.TotalSlots)
}

func TestUpdateInternshipForbiddenOnceApproved(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	f.addInternship("INT00001", "REP01", model.LevelBasic, "CSC", model.InternshipStatusApproved, 3)

	_, err := f.engine.Internships.Update(context.Background(), "REP01", "INT00001", validFields())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approved or filled")
}

func TestUpdateInternshipSlotsBelowFilled(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	internship := f.addInternship("INT00001", "REP01", model.LevelBasic, "CSC", model.InternshipStatusPending, 3)
	internship.FilledSlots = 2

	fields := validFields()
	fields.TotalSlots = 1
	_, err := f.engine.Internships.Update(context.Background(), "REP01", "INT00001", fields)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "less than filled")
}

func TestUpdateInternshipOwnerOnly(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	f.addRep("REP02", true)
	f.addInternship("INT00001", "REP01", model.LevelBasic, "CSC", model.InternshipStatusPending, 3)

	_, err := f.engine.Internships.Update(context.Background(), "REP02", "INT00001", validFields())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "your own internships")
}

func TestDeleteInternship(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	f.addInternship("INT00001", "REP01", model.LevelBasic, "CSC", model.InternshipStatusPending, 3)

	require.NoError(t, f.engine.Internships.Delete(context.Background(), "REP01", "INT00001"))

	_, err := f.engine.Internships.GetByID("INT00001")
	assert.True(t, apperr.IsNotFound(err))
	assert.NotContains(t, f.users.CompanyRep("REP01").CreatedInternshipIDs, "INT00001")
}

func TestDeleteApprovedInternshipWithApplicationsBlocked(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	f.addStudent("S01", 3, "CSC")
	f.addInternship("INT00001", "REP01", model.LevelBasic, "CSC", model.InternshipStatusApproved, 3)

	_, err := f.engine.Applications.Apply(context.Background(), "S01", "INT00001")
	require.NoError(t, err)

	err = f.engine.Internships.Delete(context.Background(), "REP01", "INT00001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "existing applications")
}

func TestDeletePendingInternshipLeavesApplicationsBehind(t *testing.T) {
	// Deleting a non-approved internship does not cascade onto its
	// applications; the orphaned rows are a known gap kept on purpose.
	f := newFixture()
	f.addRep("REP01", true)
	f.addStudent("S01", 3, "CSC")
	internship := f.addInternship("INT00001", "REP01", model.LevelBasic, "CSC", model.InternshipStatusApproved, 3)

	_, err := f.engine.Applications.Apply(context.Background(), "S01", "INT00001")
	require.NoError(t, err)

	internship.Status = model.InternshipStatusPending

	require.NoError(t, f.engine.Internships.Delete(context.Background(), "REP01", "INT00001"))
	assert.Len(t, f.engine.Applications.ByInternship("INT00001"), 1)
}

func TestToggleVisibility(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	f.addInternship("INT00001", "REP01", model.LevelBasic, "CSC", model.InternshipStatusApproved, 3)

	updated, err := f.engine.Internships.ToggleVisibility(context.Background(), "REP01", "INT00001")
	require.NoError(t, err)
	assert.False(t, updated.Visible)

	updated, err = f.engine.Internships.ToggleVisibility(context.Background(), "REP01", "INT00001")
	require.NoError(t, err)
	assert.True(t, updated.Visible)
}

func TestApproveAndRejectInternship(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	f.addStaff("ST01")
	f.addInternship("INT00001", "REP01", model.LevelBasic, "CSC", model.InternshipStatusPending, 3)
	f.addInternship("INT00002", "REP01", model.LevelBasic, "CSC", model.InternshipStatusPending, 3)
	ctx := context.Background()

	approved, err := f.engine.Internships.Approve(ctx, "ST01", "INT00001")
	require.NoError(t, err)
	assert.Equal(t, model.InternshipStatusApproved, approved.Status)

	rejected, err := f.engine.Internships.Reject(ctx, "ST01", "INT00002")
	require.NoError(t, err)
	assert.Equal(t, model.InternshipStatusRejected, rejected.Status)

	// Both states are terminal for review.
	_, err = f.engine.Internships.Approve(ctx, "ST01", "INT00001")
	assert.True(t, apperr.IsInvalidOperation(err))
	_, err = f.engine.Internships.Approve(ctx, "ST01", "INT00002")
	assert.True(t, apperr.IsInvalidOperation(err))
}

func TestReviewRequiresStaff(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	f.addInternship("INT00001", "REP01", model.LevelBasic, "CSC", model.InternshipStatusPending, 3)

	_, err := f.engine.Internships.Approve(context.Background(), "REP01", "INT00001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "career center staff")
}

func TestInternshipQueries(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	f.addRep("REP02", true)
	f.addStaff("ST01")
	f.addInternship("INT00001", "REP01", model.LevelBasic, "CSC", model.InternshipStatusApproved, 3)
	hidden := f.addInternship("INT00002", "REP01", model.LevelBasic, "CSC", model.InternshipStatusPending, 3)
	hidden.Visible = false
	f.addInternship("INT00003", "REP02", model.LevelBasic, "CSC", model.InternshipStatusPending, 3)

	assert.Len(t, f.engine.Internships.All(), 3)
	assert.Len(t, f.engine.Internships.Visible(), 2)
	assert.Len(t, f.engine.Internships.ByCompanyRep("REP01"), 2)

	pending, err := f.engine.Internships.Pending("ST01")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	_, err = f.engine.Internships.Pending("REP01")
	assert.Error(t, err)
}

func TestQueriesReturnCopies(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	f.addInternship("INT00001", "REP01", model.LevelBasic, "CSC", model.InternshipStatusApproved, 3)

	got, err := f.engine.Internships.GetByID("INT00001")
	require.NoError(t, err)
	got.Title = "tampered"

	again, err := f.engine.Internships.GetByID("INT00001")
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", again.Title)
}

func TestCreateSurfacesSaveFailure(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	f.internshipStore.failSave = true

	created, err := f.engine.Internships.Create(context.Background(), "REP01", validFields())
	require.Error(t, err)
	assert.True(t, apperr.IsSaveFailure(err))

	// The mutation stays applied even though the save failed.
	require.NotNil(t, created)
	stored, getErr := f.engine.Internships.GetByID(created.ID)
	require.NoError(t, getErr)
	assert.Equal(t, created.ID, stored.ID)
}

func TestInternshipInvariantAfterOperations(t *testing.T) {
	f := newFixture()
	f.addRep("REP01", true)
	f.addStaff("ST01")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		fields := validFields()
		fields.TotalSlots = i + 1
		created, err := f.engine.Internships.Create(ctx, "REP01", fields)
		require.NoError(t, err)
		_, err = f.engine.Internships.Approve(ctx, "ST01", created.ID)
		require.NoError(t, err)
	}

	for _, internship := range f.engine.Internships.All() {
		assert.GreaterOrEqual(t, internship.FilledSlots, 0)
		assert.LessOrEqual(t, internship.FilledSlots, internship.TotalSlots)
		assert.Equal(t,
			internship.FilledSlots == internship.TotalSlots,
			internship.Status == model.InternshipStatusFilled,
			fmt.Sprintf("internship %s: filled=%d total=%d status=%s",
				internship.ID, internship.FilledSlots, internship.TotalSlots, internship.Status))
	}
}
