package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseSalaryType enum
type BaseSalaryType string

const (
	BaseSalaryMonth BaseSalaryType = "month"
	BaseSalaryShift BaseSalaryType = "shift"
)

// Status enum. Transitions are one-directional: draft -> approved -> paid.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
)

// FineType enum
type FineType string

const (
	FineTypeLate    FineType = "late"
	FineTypeAbsence FineType = "absence"
	FineTypeManual  FineType = "manual"
)

// FineEntry is one row of the fines ledger attached to a payroll record.
// Entries are addressed by ID, never by position, so concurrent removals
// cannot hit the wrong fine.
type FineEntry struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	Type      FineType        `json:"type"`
	Date      time.Time       `json:"date"`
	CreatedBy string          `json:"created_by"`
}

// Override field names. A field listed in Record.Overrides holds an
// admin-entered value that non-forced regeneration must not recompute.
const (
	OverrideAccruals   = "accruals"
	OverrideBonuses    = "bonuses"
	OverrideAdvance    = "advance"
	OverrideDeductions = "deductions"
	OverridePenalties  = "penalties"
)

// Overrides marks which fields carry admin-entered values instead of
// computed ones.
type Overrides map[string]bool

func (o Overrides) Has(field string) bool {
	return o != nil && o[field]
}

func (o Overrides) Set(field string) Overrides {
	if o == nil {
		o = make(Overrides)
	}
	o[field] = true
	return o
}

// Record is one employee's compensation for one period ("YYYY-MM").
// Exactly one row exists per (staff_id, period), enforced by a unique key.
type Record struct {
	ID             string
	StaffID        string
	Period         string
	BaseSalary     decimal.Decimal
	BaseSalaryType BaseSalaryType
	ShiftRate      decimal.Decimal
	NormDays       int
	WorkedDays     int
	WorkedShifts   int

	Accruals         decimal.Decimal
	Bonuses          decimal.Decimal
	BonusDetails     map[string]decimal.Decimal
	Advance          decimal.Decimal
	LatePenalties    decimal.Decimal
	AbsencePenalties decimal.Decimal
	Fines            []FineEntry
	UserFines        decimal.Decimal
	Deductions       decimal.Decimal
	DebtCarryIn      decimal.Decimal
	Total            decimal.Decimal

	Debt          decimal.Decimal
	DebtProcessed bool

	Overrides Overrides
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	StaffName *string
	StaffRole *string
}

// FindFine returns the ledger entry with the given id, if present.
func (r *Record) FindFine(fineID string) (FineEntry, bool) {
	for _, f := range r.Fines {
		if f.ID == fineID {
			return f, true
		}
	}
	return FineEntry{}, false
}

// CanTransition reports whether the status change follows the
// draft -> approved -> paid order.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusDraft:
		return to == StatusApproved
	case StatusApproved:
		return to == StatusPaid
	default:
		return false
	}
}

// PeriodSummary aggregates one period's records for the console dashboard.
type PeriodSummary struct {
	Period           string
	TotalStaff       int
	TotalAccruals    decimal.Decimal
	TotalBonuses     decimal.Decimal
	TotalPenalties   decimal.Decimal
	TotalFines       decimal.Decimal
	TotalDebt        decimal.Decimal
	TotalPayable     decimal.Decimal
	DraftCount       int
	ApprovedCount    int
	PaidCount        int
}
