package payroll

import "errors"

var (
	ErrRecordNotFound          = errors.New("payroll record not found")
	ErrRecordAlreadyExists     = errors.New("payroll record already exists for this period")
	ErrRecordNotEditable       = errors.New("payroll record is no longer a draft, cannot modify")
	ErrCannotDeletePaidRecord  = errors.New("cannot delete paid payroll record")
	ErrInvalidStatusTransition = errors.New("invalid payroll status transition")
	ErrFineNotFound            = errors.New("fine not found on payroll record")
	ErrInvalidPeriod           = errors.New("invalid payroll period, expected YYYY-MM")
	ErrStaffNotEligible        = errors.New("staff member is not payroll-eligible")
	ErrNoBaseSalary            = errors.New("staff member has no base salary configured")

	// Computation errors: aggregation input that would make totals
	// non-reproducible. Batch generation records these per staff member
	// instead of aborting.
	ErrDuplicateAttendance    = errors.New("duplicate attendance record for the same day")
	ErrInconsistentAttendance = errors.New("inconsistent attendance data")
)
