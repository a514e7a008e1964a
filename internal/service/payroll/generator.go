package payroll

import (
	"context"
	"errors"
	"sync"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/payroll"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/settings"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/staff"
	"golang.org/x/sync/errgroup"
)

// GenerateSheets (re)builds draft records for every payroll-eligible staff
// member. Staff are processed in parallel up to the configured limit; one
// staff member's failure is reported in the result and does not abort the
// batch.
func (s *ServiceImpl) GenerateSheets(ctx context.Context, req payroll.GenerateSheetsRequest) (payroll.GenerateSheetsResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateSheetsResult{}, err
	}

	cfg, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return payroll.GenerateSheetsResult{}, err
	}

	staffList, err := s.staffRepo.ListPayrollEligible(ctx)
	if err != nil {
		return payroll.GenerateSheetsResult{}, err
	}

	runCtx := ctx
	if s.generationTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.generationTimeout)
		defer cancel()
	}

	var (
		mu     sync.Mutex
		result payroll.GenerateSheetsResult
	)

	g, gCtx := errgroup.WithContext(runCtx)
	g.SetLimit(s.parallelism)

	for _, profile := range staffList {
		profile := profile
		g.Go(func() error {
			// Once the batch deadline passes, staff still waiting on a
			// worker slot are reported without being dispatched.
			if err := gCtx.Err(); err != nil {
				mu.Lock()
				result.Errors = append(result.Errors, payroll.GenerationError{
					StaffID: profile.ID,
					Error:   err.Error(),
				})
				mu.Unlock()
				return nil
			}

			generated, err := s.generateOne(gCtx, profile, req.Period, cfg, req.Force)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				// A per-staff failure, including an in-flight cancellation,
				// never discards what the rest of the batch produced.
				result.Errors = append(result.Errors, payroll.GenerationError{
					StaffID: profile.ID,
					Error:   err.Error(),
				})
			case generated:
				result.Generated++
			default:
				result.Skipped++
			}
			return nil
		})
	}

	_ = g.Wait() // workers report outcomes through result, never errors
	return result, nil
}

// generateOne builds and persists one staff member's record. It returns
// false when the record was intentionally left alone.
func (s *ServiceImpl) generateOne(
	ctx context.Context,
	profile staff.Profile,
	period string,
	cfg settings.PayrollSettings,
	force bool,
) (bool, error) {
	switch payroll.BaseSalaryType(profile.BaseSalaryType) {
	case payroll.BaseSalaryMonth:
		if !profile.BaseSalary.IsPositive() {
			return false, payroll.ErrNoBaseSalary
		}
	case payroll.BaseSalaryShift:
		if !profile.ShiftRate.IsPositive() {
			return false, payroll.ErrNoBaseSalary
		}
	default:
		return false, payroll.ErrNoBaseSalary
	}

	// The record stays locked from the snapshot read until the write lands,
	// so fines or edits committed mid-rebuild cannot be erased.
	var generated bool
	err := s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.payrollRepo.GetByStaffPeriodForUpdate(txCtx, profile.ID, period)
		switch {
		case err == nil:
			if existing.Status == payroll.StatusPaid {
				return nil
			}
			if existing.Status == payroll.StatusApproved && !force {
				return nil
			}
		case errors.Is(err, payroll.ErrRecordNotFound):
			// first generation for this staff member
		default:
			return err
		}

		var existingPtr *payroll.Record
		if err == nil {
			existingPtr = &existing
		}

		rec, err := s.buildRecord(txCtx, profile, period, cfg, existingPtr, force)
		if err != nil {
			return err
		}

		if existingPtr != nil && existingPtr.Status == payroll.StatusApproved {
			// Forced regeneration demotes the approved record back to draft.
			if _, err := s.payrollRepo.UpdateComputed(txCtx, rec, payroll.StatusApproved); err != nil {
				return err
			}
			generated = true
			return nil
		}

		// A false written flag means the row moved out of draft after the
		// eligibility check; the record is left alone and counted skipped.
		_, written, err := s.payrollRepo.UpsertDraft(txCtx, rec)
		if err != nil {
			return err
		}
		generated = written
		return nil
	})
	return generated, err
}
