package payroll

import (
	"context"
	"errors"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CalculateDebt carries every negative total of the period into the next
// one. Each source record is marked processed as it is consumed, so
// re-running the operation for the same period is a no-op.
func (s *ServiceImpl) CalculateDebt(ctx context.Context, period string) (payroll.CalculateDebtResult, error) {
	if _, err := payroll.ParsePeriod(period); err != nil {
		return payroll.CalculateDebtResult{}, err
	}

	next, err := payroll.NextPeriod(period)
	if err != nil {
		return payroll.CalculateDebtResult{}, err
	}

	result := payroll.CalculateDebtResult{TotalDebt: decimal.Zero}

	err = s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		records, err := s.payrollRepo.ListUnprocessedDebtsForUpdate(txCtx, period)
		if err != nil {
			return err
		}

		for _, rec := range records {
			debt := rec.Total.Neg().Round(2)

			if err := s.payrollRepo.MarkDebtProcessed(txCtx, rec.ID, debt); err != nil {
				return err
			}

			// If the next period's sheet already exists as a draft, pull the
			// carry in now; otherwise generation picks it up later.
			nextRec, err := s.payrollRepo.GetByStaffPeriodForUpdate(txCtx, rec.StaffID, next)
			switch {
			case err == nil:
				if nextRec.Status == payroll.StatusDraft {
					nextRec.DebtCarryIn = debt
					recomputeTotals(&nextRec)
					if _, err := s.payrollRepo.UpdateComputed(txCtx, nextRec, payroll.StatusDraft); err != nil {
						return err
					}
				}
			case errors.Is(err, payroll.ErrRecordNotFound):
				// nothing to update yet
			default:
				return err
			}

			result.Processed++
			result.TotalDebt = result.TotalDebt.Add(debt)
		}
		return nil
	})
	if err != nil {
		return payroll.CalculateDebtResult{}, err
	}
	return result, nil
}
