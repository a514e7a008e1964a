package payroll

import (
	"context"
	"testing"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/payroll"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/settings"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/staff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() settings.PayrollSettings {
	return settings.PayrollSettings{
		PenaltyType: settings.PenaltyPerMinute,
		PenaltyRate: money("50"),
		NormDays:    22,
	}
}

func monthlyTeacher(id string) staff.Profile {
	return staff.Profile{
		ID:             id,
		FullName:       "Aliya Nurgalieva",
		Role:           staff.RoleTeacher,
		BaseSalary:     money("100000"),
		BaseSalaryType: "month",
		NormDays:       22,
		Active:         true,
	}
}

func seedDraft(t *testing.T, repo *fakePayrollRepo, staffID, period string) payroll.Record {
	t.Helper()

	rec := payroll.Record{
		StaffID:        staffID,
		Period:         period,
		BaseSalary:     money("100000"),
		BaseSalaryType: payroll.BaseSalaryMonth,
		NormDays:       22,
		WorkedDays:     20,
		Status:         payroll.StatusDraft,
	}
	rec.Accruals = money("90909")
	recomputeTotals(&rec)

	created, err := repo.Create(context.Background(), rec)
	require.NoError(t, err)
	return created
}

func TestAddFineUpdatesLedgerAndTotal(t *testing.T) {
	repo := newFakePayrollRepo()
	rec := seedDraft(t, repo, "s1", "2025-01")

	svc := newTestService(repo, &fakeStaffRepo{}, &fakeAttendanceRepo{}, testPolicy())

	result, err := svc.AddFine(context.Background(), "admin-1", payroll.AddFineRequest{
		PayrollID: rec.ID,
		Amount:    money("5000"),
		Reason:    "damaged equipment",
	})
	require.NoError(t, err)

	require.Len(t, result.Fines, 1)
	assert.NotEmpty(t, result.Fines[0].ID)
	assert.Equal(t, "manual", result.Fines[0].Type)
	assert.Equal(t, "admin-1", result.Fines[0].CreatedBy)
	assert.True(t, result.UserFines.Equal(money("5000")), "userFines %s", result.UserFines)
	assert.True(t, result.Total.Equal(money("85909")), "total %s", result.Total)
}

func TestAddFineMaterializesDraft(t *testing.T) {
	repo := newFakePayrollRepo()
	staffRepo := &fakeStaffRepo{profiles: []staff.Profile{monthlyTeacher("s1")}}

	svc := newTestService(repo, staffRepo, &fakeAttendanceRepo{}, testPolicy())

	result, err := svc.AddFine(context.Background(), "admin-1", payroll.AddFineRequest{
		StaffID: "s1",
		Period:  "2025-01",
		Amount:  money("1000"),
		Reason:  "late fee",
	})
	require.NoError(t, err)

	assert.Equal(t, "draft", result.Status)
	require.Len(t, result.Fines, 1)

	stored, err := repo.GetByStaffPeriod(context.Background(), "s1", "2025-01")
	require.NoError(t, err)
	assert.True(t, stored.UserFines.Equal(money("1000")))
}

func TestAddFineRejectsNonDraft(t *testing.T) {
	repo := newFakePayrollRepo()
	rec := seedDraft(t, repo, "s1", "2025-01")
	_, err := repo.UpdateStatus(context.Background(), rec.ID, payroll.StatusDraft, payroll.StatusApproved)
	require.NoError(t, err)

	svc := newTestService(repo, &fakeStaffRepo{}, &fakeAttendanceRepo{}, testPolicy())

	_, err = svc.AddFine(context.Background(), "admin-1", payroll.AddFineRequest{
		PayrollID: rec.ID,
		Amount:    money("5000"),
		Reason:    "damaged equipment",
	})
	require.ErrorIs(t, err, payroll.ErrRecordNotEditable)
}

func TestAddFineValidation(t *testing.T) {
	svc := newTestService(newFakePayrollRepo(), &fakeStaffRepo{}, &fakeAttendanceRepo{}, testPolicy())

	_, err := svc.AddFine(context.Background(), "admin-1", payroll.AddFineRequest{
		PayrollID: "rec-1",
		Amount:    money("-5"),
		Reason:    "",
	})
	require.Error(t, err)
}

func TestRemoveFineRecomputesTotal(t *testing.T) {
	repo := newFakePayrollRepo()
	rec := seedDraft(t, repo, "s1", "2025-01")

	svc := newTestService(repo, &fakeStaffRepo{}, &fakeAttendanceRepo{}, testPolicy())

	withFine, err := svc.AddFine(context.Background(), "admin-1", payroll.AddFineRequest{
		PayrollID: rec.ID,
		Amount:    money("5000"),
		Reason:    "damaged equipment",
	})
	require.NoError(t, err)

	result, err := svc.RemoveFine(context.Background(), rec.ID, withFine.Fines[0].ID)
	require.NoError(t, err)

	assert.Empty(t, result.Fines)
	assert.True(t, result.UserFines.IsZero())
	assert.True(t, result.Total.Equal(money("90909")), "total %s", result.Total)
}

func TestRemoveFineUnknownID(t *testing.T) {
	repo := newFakePayrollRepo()
	rec := seedDraft(t, repo, "s1", "2025-01")

	svc := newTestService(repo, &fakeStaffRepo{}, &fakeAttendanceRepo{}, testPolicy())

	_, err := svc.RemoveFine(context.Background(), rec.ID, "no-such-fine")
	require.ErrorIs(t, err, payroll.ErrFineNotFound)
}
