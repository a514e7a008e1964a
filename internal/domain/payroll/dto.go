package payroll

import (
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// The wire shape of records and fines is the admin console's contract:
// camelCase field names, period as "YYYY-MM".

// ========== GENERATION DTOs ==========

type GenerateSheetsRequest struct {
	Period string `json:"period"`
	Force  bool   `json:"force,omitempty"`
}

func (r *GenerateSheetsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be YYYY-MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GenerationError captures one staff member's failure inside a batch run.
type GenerationError struct {
	StaffID string `json:"staffId"`
	Error   string `json:"error"`
}

type GenerateSheetsResult struct {
	Generated int               `json:"generated"`
	Skipped   int               `json:"skipped"`
	Errors    []GenerationError `json:"errors"`
}

// ========== DEBT DTOs ==========

type CalculateDebtRequest struct {
	Period string `json:"period"`
}

func (r *CalculateDebtRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be YYYY-MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CalculateDebtResult struct {
	Processed int             `json:"processed"`
	TotalDebt decimal.Decimal `json:"totalDebt"`
}

// ========== FINE DTOs ==========

// AddFineRequest attaches a fine either to an existing record (PayrollID) or
// to a (StaffID, Period) pair, creating a draft record on demand.
type AddFineRequest struct {
	PayrollID string          `json:"payrollId,omitempty"`
	StaffID   string          `json:"staffId,omitempty"`
	Period    string          `json:"period,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	Type      string          `json:"type,omitempty"` // late|absence|manual, defaults to manual
}

func (r *AddFineRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PayrollID == "" {
		if r.StaffID == "" {
			errs = append(errs, validator.ValidationError{Field: "staffId", Message: "is required when payrollId is absent"})
		}
		if !validator.IsValidPeriod(r.Period) {
			errs = append(errs, validator.ValidationError{Field: "period", Message: "must be YYYY-MM"})
		}
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}
	if r.Type != "" && !validator.IsInSlice(r.Type, []string{string(FineTypeLate), string(FineTypeAbsence), string(FineTypeManual)}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be late, absence or manual"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RECORD DTOs ==========

// UpdateRecordRequest carries admin overrides. Every field that is set is
// stored verbatim and marked overridden, so non-forced regeneration keeps it.
type UpdateRecordRequest struct {
	ID               string
	Accruals         *decimal.Decimal `json:"accruals,omitempty"`
	Bonuses          *decimal.Decimal `json:"bonuses,omitempty"`
	Advance          *decimal.Decimal `json:"advance,omitempty"`
	Deductions       *decimal.Decimal `json:"deductions,omitempty"`
	LatePenalties    *decimal.Decimal `json:"latePenalties,omitempty"`
	AbsencePenalties *decimal.Decimal `json:"absencePenalties,omitempty"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, v := range map[string]*decimal.Decimal{
		"accruals":         r.Accruals,
		"bonuses":          r.Bonuses,
		"advance":          r.Advance,
		"deductions":       r.Deductions,
		"latePenalties":    r.LatePenalties,
		"absencePenalties": r.AbsencePenalties,
	} {
		if v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FineResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	Type      string          `json:"type"`
	Date      string          `json:"date"`
	CreatedBy string          `json:"createdBy"`
}

type RecordResponse struct {
	ID               string                     `json:"id"`
	StaffID          string                     `json:"staffId"`
	StaffName        *string                    `json:"staffName,omitempty"`
	Period           string                     `json:"period"`
	BaseSalary       decimal.Decimal            `json:"baseSalary"`
	BaseSalaryType   string                     `json:"baseSalaryType"`
	ShiftRate        decimal.Decimal            `json:"shiftRate"`
	NormDays         int                        `json:"normDays"`
	WorkedDays       int                        `json:"workedDays"`
	WorkedShifts     int                        `json:"workedShifts"`
	Accruals         decimal.Decimal            `json:"accruals"`
	Bonuses          decimal.Decimal            `json:"bonuses"`
	BonusDetails     map[string]decimal.Decimal `json:"bonusDetails,omitempty"`
	Advance          decimal.Decimal            `json:"advance"`
	LatePenalties    decimal.Decimal            `json:"latePenalties"`
	AbsencePenalties decimal.Decimal            `json:"absencePenalties"`
	Fines            []FineResponse             `json:"fines"`
	UserFines        decimal.Decimal            `json:"userFines"`
	Deductions       decimal.Decimal            `json:"deductions"`
	DebtCarryIn      decimal.Decimal            `json:"debtCarryIn"`
	Total            decimal.Decimal            `json:"total"`
	Debt             decimal.Decimal            `json:"debt"`
	Overrides        []string                   `json:"overrides,omitempty"`
	Status           string                     `json:"status"`
	CreatedAt        string                     `json:"createdAt"`
	UpdatedAt        string                     `json:"updatedAt"`
}

type Filter struct {
	Period    *string
	StaffID   *string
	Status    *string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type ListRecordsResponse struct {
	Data       []RecordResponse `json:"data"`
	TotalCount int64            `json:"totalCount"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

type PeriodSummaryResponse struct {
	Period         string          `json:"period"`
	TotalStaff     int             `json:"totalStaff"`
	TotalAccruals  decimal.Decimal `json:"totalAccruals"`
	TotalBonuses   decimal.Decimal `json:"totalBonuses"`
	TotalPenalties decimal.Decimal `json:"totalPenalties"`
	TotalFines     decimal.Decimal `json:"totalFines"`
	TotalDebt      decimal.Decimal `json:"totalDebt"`
	TotalPayable   decimal.Decimal `json:"totalPayable"`
	DraftCount     int             `json:"draftCount"`
	ApprovedCount  int             `json:"approvedCount"`
	PaidCount      int             `json:"paidCount"`
}
