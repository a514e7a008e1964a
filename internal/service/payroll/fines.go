package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/payroll"
	"github.com/google/uuid"
)

// AddFine appends a ledger entry and recomputes the record's totals in one
// transaction. When the request names a (staffId, period) with no record
// yet, a draft is materialized first so the fine has a home.
func (s *ServiceImpl) AddFine(ctx context.Context, createdBy string, req payroll.AddFineRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	var out payroll.Record
	err := s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.resolveFineTarget(txCtx, req)
		if err != nil {
			return err
		}
		if rec.Status != payroll.StatusDraft {
			return payroll.ErrRecordNotEditable
		}

		fineType := payroll.FineType(req.Type)
		if fineType == "" {
			fineType = payroll.FineTypeManual
		}

		rec.Fines = append(rec.Fines, payroll.FineEntry{
			ID:        uuid.NewString(),
			Amount:    req.Amount.Round(2),
			Reason:    req.Reason,
			Type:      fineType,
			Date:      time.Now().UTC(),
			CreatedBy: createdBy,
		})

		recomputeTotals(&rec)

		out, err = s.payrollRepo.UpdateComputed(txCtx, rec, payroll.StatusDraft)
		return err
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(out), nil
}

func (s *ServiceImpl) resolveFineTarget(ctx context.Context, req payroll.AddFineRequest) (payroll.Record, error) {
	if req.PayrollID != "" {
		return s.payrollRepo.GetByIDForUpdate(ctx, req.PayrollID)
	}

	rec, err := s.payrollRepo.GetByStaffPeriodForUpdate(ctx, req.StaffID, req.Period)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, payroll.ErrRecordNotFound) {
		return payroll.Record{}, err
	}
	return s.materializeDraft(ctx, req.StaffID, req.Period)
}

// RemoveFine deletes one ledger entry by id and recomputes the totals.
func (s *ServiceImpl) RemoveFine(ctx context.Context, payrollID, fineID string) (payroll.RecordResponse, error) {
	var out payroll.Record
	err := s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.payrollRepo.GetByIDForUpdate(txCtx, payrollID)
		if err != nil {
			return err
		}
		if rec.Status != payroll.StatusDraft {
			return payroll.ErrRecordNotEditable
		}

		if _, ok := rec.FindFine(fineID); !ok {
			return payroll.ErrFineNotFound
		}

		kept := rec.Fines[:0]
		for _, f := range rec.Fines {
			if f.ID != fineID {
				kept = append(kept, f)
			}
		}
		rec.Fines = kept

		recomputeTotals(&rec)

		out, err = s.payrollRepo.UpdateComputed(txCtx, rec, payroll.StatusDraft)
		return err
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(out), nil
}
