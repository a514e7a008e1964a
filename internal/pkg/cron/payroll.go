package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/payroll"
)

// PayrollJobs keeps the current period's draft sheets materialized and
// sweeps the previous period's debts forward.
type PayrollJobs struct {
	payrollSvc payroll.Service
}

func NewPayrollJobs(payrollSvc payroll.Service) *PayrollJobs {
	return &PayrollJobs{payrollSvc: payrollSvc}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, every time.Duration) {
	scheduler.AddJob("generate_current_period_sheets", every, j.GenerateCurrentPeriod)
	scheduler.AddJob("rollover_previous_period_debt", 24*time.Hour, j.RolloverPreviousPeriodDebt)
}

// GenerateCurrentPeriod refreshes draft sheets for the running month.
// Approved and paid records are never touched.
func (j *PayrollJobs) GenerateCurrentPeriod(ctx context.Context) error {
	period := payroll.PeriodOf(time.Now())

	result, err := j.payrollSvc.GenerateSheets(ctx, payroll.GenerateSheetsRequest{Period: period})
	if err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		slog.Warn("Sheet generation completed with per-staff errors",
			"period", period, "generated", result.Generated, "errors", len(result.Errors))
	}
	return nil
}

// RolloverPreviousPeriodDebt is idempotent: already-processed records are
// skipped inside CalculateDebt.
func (j *PayrollJobs) RolloverPreviousPeriodDebt(ctx context.Context) error {
	prev, err := payroll.PrevPeriod(payroll.PeriodOf(time.Now()))
	if err != nil {
		return err
	}

	result, err := j.payrollSvc.CalculateDebt(ctx, prev)
	if err != nil {
		return err
	}

	if result.Processed > 0 {
		slog.Info("Debt rollover processed records",
			"period", prev, "processed", result.Processed, "total_debt", result.TotalDebt)
	}
	return nil
}
