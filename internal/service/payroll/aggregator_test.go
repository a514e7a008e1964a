package payroll

import (
	"testing"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/attendance"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateCountsWorkedUnits(t *testing.T) {
	records := []attendance.Record{
		{StaffID: "s1", Date: day(1), Status: attendance.StatusPresent},
		{StaffID: "s1", Date: day(2), Status: attendance.StatusLate, LateMinutes: 17},
		{StaffID: "s1", Date: day(3), Status: attendance.StatusAbsent},
		{StaffID: "s1", Date: day(4), Status: attendance.StatusSick},
		{StaffID: "s1", Date: day(5), Status: attendance.StatusVacation},
		{StaffID: "s1", Date: day(6), Status: attendance.StatusPresent, OvertimeMinutes: 60},
	}

	summary, err := Aggregate(records, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.WorkedDays, "present and late days count as worked")
	assert.Equal(t, 1, summary.UnexcusedAbsences, "sick and vacation are excused")
	assert.Equal(t, 17, summary.TotalLateMinutes)
	assert.Equal(t, []int{17}, summary.LateMinutesByDay)
	assert.Equal(t, 60, summary.TotalOvertimeMinutes)
}

func TestAggregateRejectsDuplicateDay(t *testing.T) {
	records := []attendance.Record{
		{StaffID: "s1", Date: day(1), Status: attendance.StatusPresent},
		{StaffID: "s1", Date: day(1), Status: attendance.StatusLate, LateMinutes: 5},
	}

	_, err := Aggregate(records, nil)
	require.ErrorIs(t, err, payroll.ErrDuplicateAttendance)
}

func TestAggregateRejectsNegativeMinutes(t *testing.T) {
	records := []attendance.Record{
		{StaffID: "s1", Date: day(1), Status: attendance.StatusLate, LateMinutes: -10},
	}

	_, err := Aggregate(records, nil)
	require.ErrorIs(t, err, payroll.ErrInconsistentAttendance)
}

func TestAggregateShiftsNeedWorkedAttendance(t *testing.T) {
	records := []attendance.Record{
		{StaffID: "s1", Date: day(1), Status: attendance.StatusPresent},
		{StaffID: "s1", Date: day(2), Status: attendance.StatusAbsent},
	}
	shifts := []attendance.Shift{
		{StaffID: "s1", Date: day(1), Type: attendance.ShiftFull},
		{StaffID: "s1", Date: day(2), Type: attendance.ShiftFull},
		{StaffID: "s1", Date: day(3), Type: attendance.ShiftFull},
	}

	summary, err := Aggregate(records, shifts)
	require.NoError(t, err)

	// Only the shift backed by a worked day counts.
	assert.Equal(t, 1, summary.WorkedShifts)
}
