package payroll

import (
	"github.com/Dammmup/detsad-f-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// computeAccruals derives earned base compensation from worked units.
//
// month: the day rate (baseSalary / normDays) is fixed to currency cents
// before multiplying, so the result is stable across recomputations.
// shift: shiftRate x workedShifts.
func computeAccruals(rec payroll.Record) decimal.Decimal {
	if rec.BaseSalaryType == payroll.BaseSalaryShift {
		return rec.ShiftRate.Mul(decimal.NewFromInt(int64(rec.WorkedShifts))).Round(2)
	}

	if rec.NormDays <= 0 {
		return decimal.Zero
	}
	dayRate := rec.BaseSalary.Div(decimal.NewFromInt(int64(rec.NormDays))).Round(2)
	return dayRate.Mul(decimal.NewFromInt(int64(rec.WorkedDays))).Round(2)
}

// recomputeTotals rebuilds the record's derived fields from its components.
// userFines is always the ledger sum; total follows the single formula
//
//	total = accruals + bonuses - latePenalties - absencePenalties
//	      - userFines - advance - deductions - debtCarryIn
//
// Recomputing from unchanged inputs yields an identical total.
func recomputeTotals(rec *payroll.Record) {
	userFines := decimal.Zero
	for _, f := range rec.Fines {
		userFines = userFines.Add(f.Amount)
	}
	rec.UserFines = userFines.Round(2)

	rec.Total = rec.Accruals.
		Add(rec.Bonuses).
		Sub(rec.LatePenalties).
		Sub(rec.AbsencePenalties).
		Sub(rec.UserFines).
		Sub(rec.Advance).
		Sub(rec.Deductions).
		Sub(rec.DebtCarryIn).
		Round(2)
}
