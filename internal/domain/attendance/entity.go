package attendance

import "time"

// Status enum
type Status string

const (
	StatusPresent  Status = "present"
	StatusAbsent   Status = "absent"
	StatusLate     Status = "late"
	StatusSick     Status = "sick"
	StatusVacation Status = "vacation"
)

// Record is one staff member's attendance fact for one day. The capture
// workflow (clock-in/out, geolocation) lives elsewhere; the payroll engine
// only reads these.
type Record struct {
	ID              string
	StaffID         string
	Date            time.Time
	Status          Status
	LateMinutes     int
	OvertimeMinutes int
	ActualStart     *time.Time
	ActualEnd       *time.Time
}

// Worked reports whether the day counts as a compensable worked day.
func (r Record) Worked() bool {
	return r.Status == StatusPresent || r.Status == StatusLate
}

// ShiftType enum
type ShiftType string

const (
	ShiftFull     ShiftType = "full"
	ShiftOvertime ShiftType = "overtime"
)

// Shift is a scheduled shift, relevant only for shift-rate staff.
type Shift struct {
	ID             string
	StaffID        string
	Date           time.Time
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Type           ShiftType
}
