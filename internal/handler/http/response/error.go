package response

import (
	"errors"
	"net/http"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/payroll"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/settings"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/staff"
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrFineNotFound):
		NotFound(w, "Fine not found")
	case errors.Is(err, payroll.ErrRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrRecordNotEditable):
		Conflict(w, "Payroll record is no longer a draft")
	case errors.Is(err, payroll.ErrInvalidStatusTransition):
		Conflict(w, "Invalid payroll status transition")
	case errors.Is(err, payroll.ErrCannotDeletePaidRecord):
		Conflict(w, "Paid payroll records cannot be deleted")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid period, expected YYYY-MM", nil)
	case errors.Is(err, payroll.ErrStaffNotEligible):
		BadRequest(w, "Staff member is not payroll-eligible", nil)
	case errors.Is(err, payroll.ErrNoBaseSalary):
		BadRequest(w, "Staff member has no base salary configured", nil)
	case errors.Is(err, payroll.ErrDuplicateAttendance):
		Conflict(w, "Duplicate attendance record for the same day")
	case errors.Is(err, payroll.ErrInconsistentAttendance):
		BadRequest(w, "Inconsistent attendance data", nil)

	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff member not found")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Payroll settings not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
