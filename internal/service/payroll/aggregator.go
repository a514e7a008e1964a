package payroll

import (
	"fmt"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/attendance"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/payroll"
)

// AttendanceSummary is the reduction of one staff member's attendance facts
// over one period.
type AttendanceSummary struct {
	WorkedDays           int
	WorkedShifts         int
	TotalLateMinutes     int
	TotalOvertimeMinutes int
	UnexcusedAbsences    int

	// LateMinutesByDay holds the late minutes of each late day separately;
	// interval penalty modes round up per day, not over the period sum.
	LateMinutesByDay []int
}

// Aggregate reduces attendance records (and, for shift-rate staff, shifts)
// into worked-unit counts. More than one record per day is a computation
// error: silently picking one would make totals non-reproducible.
func Aggregate(records []attendance.Record, shifts []attendance.Shift) (AttendanceSummary, error) {
	var summary AttendanceSummary

	seen := make(map[string]bool, len(records))
	worked := make(map[string]bool, len(records))

	for _, rec := range records {
		day := rec.Date.Format("2006-01-02")
		if seen[day] {
			return AttendanceSummary{}, fmt.Errorf("%w: staff %s on %s", payroll.ErrDuplicateAttendance, rec.StaffID, day)
		}
		seen[day] = true

		if rec.LateMinutes < 0 || rec.OvertimeMinutes < 0 {
			return AttendanceSummary{}, fmt.Errorf("%w: negative minutes for staff %s on %s", payroll.ErrInconsistentAttendance, rec.StaffID, day)
		}

		if rec.Worked() {
			summary.WorkedDays++
			worked[day] = true
		}
		if rec.Status == attendance.StatusAbsent {
			summary.UnexcusedAbsences++
		}
		if rec.LateMinutes > 0 {
			summary.TotalLateMinutes += rec.LateMinutes
			summary.LateMinutesByDay = append(summary.LateMinutesByDay, rec.LateMinutes)
		}
		summary.TotalOvertimeMinutes += rec.OvertimeMinutes
	}

	// A shift counts only when the day's attendance confirms it was worked.
	for _, shift := range shifts {
		if shift.Type != attendance.ShiftFull && shift.Type != attendance.ShiftOvertime {
			continue
		}
		if worked[shift.Date.Format("2006-01-02")] {
			summary.WorkedShifts++
		}
	}

	return summary, nil
}
