package settings

import (
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SettingsResponse struct {
	ID          string          `json:"id"`
	PenaltyType string          `json:"penaltyType"`
	PenaltyRate decimal.Decimal `json:"penaltyRate"`
	AbsenceRate decimal.Decimal `json:"absenceRate"`
	NormDays    int             `json:"normDays"`
}

type UpdateSettingsRequest struct {
	PenaltyType *string          `json:"penaltyType,omitempty"`
	PenaltyRate *decimal.Decimal `json:"penaltyRate,omitempty"`
	AbsenceRate *decimal.Decimal `json:"absenceRate,omitempty"`
	NormDays    *int             `json:"normDays,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PenaltyType != nil && !PenaltyType(*r.PenaltyType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "penaltyType", Message: "must be fixed, per_minute, per_5_minutes or per_10_minutes"})
	}
	if r.PenaltyRate != nil && r.PenaltyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "penaltyRate", Message: "must be non-negative"})
	}
	if r.AbsenceRate != nil && r.AbsenceRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "absenceRate", Message: "must be non-negative"})
	}
	if r.NormDays != nil && (*r.NormDays < 1 || *r.NormDays > 31) {
		errs = append(errs, validator.ValidationError{Field: "normDays", Message: "must be between 1 and 31"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
