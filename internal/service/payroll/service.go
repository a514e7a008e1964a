package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/attendance"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/payroll"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/settings"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/staff"
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/database"
)

type ServiceImpl struct {
	db             database.Transactor
	payrollRepo    payroll.Repository
	staffRepo      staff.Repository
	attendanceRepo attendance.Repository
	settingsSvc    settings.Service

	generationTimeout time.Duration
	parallelism       int
}

func NewPayrollService(
	db database.Transactor,
	payrollRepo payroll.Repository,
	staffRepo staff.Repository,
	attendanceRepo attendance.Repository,
	settingsSvc settings.Service,
	generationTimeout time.Duration,
	parallelism int,
) payroll.Service {
	if parallelism < 1 {
		parallelism = 1
	}
	return &ServiceImpl{
		db:                db,
		payrollRepo:       payrollRepo,
		staffRepo:         staffRepo,
		attendanceRepo:    attendanceRepo,
		settingsSvc:       settingsSvc,
		generationTimeout: generationTimeout,
		parallelism:       parallelism,
	}
}

// buildRecord runs the full per-staff pipeline: aggregate attendance,
// apply the penalty policy, and combine everything into a draft record.
// Values carried from an existing record (the fines ledger, admin-entered
// bonuses/advance/deductions, debt state) survive regeneration; overridden
// computed fields survive unless force clears the markers.
func (s *ServiceImpl) buildRecord(
	ctx context.Context,
	profile staff.Profile,
	period string,
	cfg settings.PayrollSettings,
	existing *payroll.Record,
	force bool,
) (payroll.Record, error) {
	from, to, err := payroll.PeriodBounds(period)
	if err != nil {
		return payroll.Record{}, err
	}

	records, err := s.attendanceRepo.ListRecords(ctx, profile.ID, from, to)
	if err != nil {
		return payroll.Record{}, err
	}

	var shifts []attendance.Shift
	if profile.BaseSalaryType == string(payroll.BaseSalaryShift) {
		shifts, err = s.attendanceRepo.ListShifts(ctx, profile.ID, from, to)
		if err != nil {
			return payroll.Record{}, err
		}
	}

	summary, err := Aggregate(records, shifts)
	if err != nil {
		return payroll.Record{}, err
	}

	normDays := profile.NormDays
	if normDays <= 0 {
		normDays = cfg.NormDays
	}

	rec := payroll.Record{
		StaffID:        profile.ID,
		Period:         period,
		BaseSalary:     profile.BaseSalary,
		BaseSalaryType: payroll.BaseSalaryType(profile.BaseSalaryType),
		ShiftRate:      profile.ShiftRate,
		NormDays:       normDays,
		WorkedDays:     summary.WorkedDays,
		WorkedShifts:   summary.WorkedShifts,
		Status:         payroll.StatusDraft,
	}

	rec.LatePenalties = LatePenalties(cfg, summary.LateMinutesByDay)
	rec.AbsencePenalties = AbsencePenalties(cfg, summary.UnexcusedAbsences)

	// Debt from the previous period is a deduction here, whether the carry
	// was written before or after this record first materialized.
	prev, err := payroll.PrevPeriod(period)
	if err != nil {
		return payroll.Record{}, err
	}
	carry, err := s.payrollRepo.GetProcessedDebt(ctx, profile.ID, prev)
	if err != nil {
		return payroll.Record{}, err
	}
	rec.DebtCarryIn = carry.Round(2)

	if existing != nil {
		rec.ID = existing.ID
		rec.Fines = existing.Fines
		rec.Bonuses = existing.Bonuses
		rec.BonusDetails = existing.BonusDetails
		rec.Advance = existing.Advance
		rec.Deductions = existing.Deductions
		rec.Debt = existing.Debt
		rec.DebtProcessed = existing.DebtProcessed
		if !force {
			rec.Overrides = existing.Overrides
		}
	}

	rec.Accruals = computeAccruals(rec)

	// Overridden fields keep their admin-entered values.
	if existing != nil && !force {
		if rec.Overrides.Has(payroll.OverrideAccruals) {
			rec.Accruals = existing.Accruals
		}
		if rec.Overrides.Has(payroll.OverridePenalties) {
			rec.LatePenalties = existing.LatePenalties
			rec.AbsencePenalties = existing.AbsencePenalties
		}
	}

	recomputeTotals(&rec)
	return rec, nil
}

// ========== RECORD OPERATIONS ==========

func (s *ServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	rec, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(rec), nil
}

func (s *ServiceImpl) ListRecords(ctx context.Context, filter payroll.Filter) (payroll.ListRecordsResponse, error) {
	records, totalCount, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListRecordsResponse{}, err
	}

	return payroll.ListRecordsResponse{
		Data:       mapToRecordResponses(records),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *ServiceImpl) GetSummary(ctx context.Context, period string) (payroll.PeriodSummaryResponse, error) {
	if _, err := payroll.ParsePeriod(period); err != nil {
		return payroll.PeriodSummaryResponse{}, err
	}

	summary, err := s.payrollRepo.Summary(ctx, period)
	if err != nil {
		return payroll.PeriodSummaryResponse{}, err
	}

	return payroll.PeriodSummaryResponse{
		Period:         summary.Period,
		TotalStaff:     summary.TotalStaff,
		TotalAccruals:  summary.TotalAccruals,
		TotalBonuses:   summary.TotalBonuses,
		TotalPenalties: summary.TotalPenalties,
		TotalFines:     summary.TotalFines,
		TotalDebt:      summary.TotalDebt,
		TotalPayable:   summary.TotalPayable,
		DraftCount:     summary.DraftCount,
		ApprovedCount:  summary.ApprovedCount,
		PaidCount:      summary.PaidCount,
	}, nil
}

// UpdateRecord applies admin overrides to a draft record. Each supplied
// field is stored verbatim, marked overridden, and the total recomputed in
// the same transaction.
func (s *ServiceImpl) UpdateRecord(ctx context.Context, req payroll.UpdateRecordRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	var out payroll.Record
	err := s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.payrollRepo.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			return err
		}
		if rec.Status != payroll.StatusDraft {
			return payroll.ErrRecordNotEditable
		}

		if req.Accruals != nil {
			rec.Accruals = req.Accruals.Round(2)
			rec.Overrides = rec.Overrides.Set(payroll.OverrideAccruals)
		}
		if req.Bonuses != nil {
			rec.Bonuses = req.Bonuses.Round(2)
			rec.Overrides = rec.Overrides.Set(payroll.OverrideBonuses)
		}
		if req.Advance != nil {
			rec.Advance = req.Advance.Round(2)
			rec.Overrides = rec.Overrides.Set(payroll.OverrideAdvance)
		}
		if req.Deductions != nil {
			rec.Deductions = req.Deductions.Round(2)
			rec.Overrides = rec.Overrides.Set(payroll.OverrideDeductions)
		}
		if req.LatePenalties != nil {
			rec.LatePenalties = req.LatePenalties.Round(2)
			rec.Overrides = rec.Overrides.Set(payroll.OverridePenalties)
		}
		if req.AbsencePenalties != nil {
			rec.AbsencePenalties = req.AbsencePenalties.Round(2)
			rec.Overrides = rec.Overrides.Set(payroll.OverridePenalties)
		}

		recomputeTotals(&rec)

		out, err = s.payrollRepo.UpdateComputed(txCtx, rec, payroll.StatusDraft)
		return err
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(out), nil
}

func (s *ServiceImpl) Approve(ctx context.Context, payrollID string) (payroll.RecordResponse, error) {
	return s.transition(ctx, payrollID, payroll.StatusDraft, payroll.StatusApproved)
}

func (s *ServiceImpl) MarkAsPaid(ctx context.Context, payrollID string) (payroll.RecordResponse, error) {
	return s.transition(ctx, payrollID, payroll.StatusApproved, payroll.StatusPaid)
}

func (s *ServiceImpl) transition(ctx context.Context, id string, from, to payroll.Status) (payroll.RecordResponse, error) {
	if !from.CanTransition(to) {
		return payroll.RecordResponse{}, payroll.ErrInvalidStatusTransition
	}

	rec, err := s.payrollRepo.UpdateStatus(ctx, id, from, to)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(rec), nil
}

func (s *ServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	return s.payrollRepo.Delete(ctx, id)
}

// materializeDraft builds and inserts a draft record for (staffID, period),
// used when a fine arrives before the sheet was generated. It runs inside
// the caller's transaction.
func (s *ServiceImpl) materializeDraft(ctx context.Context, staffID, period string) (payroll.Record, error) {
	profile, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return payroll.Record{}, err
	}
	if !profile.PayrollEligible() {
		return payroll.Record{}, payroll.ErrStaffNotEligible
	}

	cfg, err := s.settingsSvc.Get(ctx)
	if err != nil {
		return payroll.Record{}, err
	}

	rec, err := s.buildRecord(ctx, profile, period, cfg, nil, false)
	if err != nil {
		return payroll.Record{}, err
	}

	created, err := s.payrollRepo.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, payroll.ErrRecordAlreadyExists) {
			// Lost the race; lock the row the other writer created.
			return s.payrollRepo.GetByStaffPeriodForUpdate(ctx, staffID, period)
		}
		return payroll.Record{}, err
	}
	return created, nil
}

// ========== HELPERS ==========

func mapToRecordResponse(r payroll.Record) payroll.RecordResponse {
	fines := make([]payroll.FineResponse, 0, len(r.Fines))
	for _, f := range r.Fines {
		fines = append(fines, payroll.FineResponse{
			ID:        f.ID,
			Amount:    f.Amount,
			Reason:    f.Reason,
			Type:      string(f.Type),
			Date:      f.Date.Format("2006-01-02"),
			CreatedBy: f.CreatedBy,
		})
	}

	var overrides []string
	for field, set := range r.Overrides {
		if set {
			overrides = append(overrides, field)
		}
	}

	return payroll.RecordResponse{
		ID:               r.ID,
		StaffID:          r.StaffID,
		StaffName:        r.StaffName,
		Period:           r.Period,
		BaseSalary:       r.BaseSalary,
		BaseSalaryType:   string(r.BaseSalaryType),
		ShiftRate:        r.ShiftRate,
		NormDays:         r.NormDays,
		WorkedDays:       r.WorkedDays,
		WorkedShifts:     r.WorkedShifts,
		Accruals:         r.Accruals,
		Bonuses:          r.Bonuses,
		BonusDetails:     r.BonusDetails,
		Advance:          r.Advance,
		LatePenalties:    r.LatePenalties,
		AbsencePenalties: r.AbsencePenalties,
		Fines:            fines,
		UserFines:        r.UserFines,
		Deductions:       r.Deductions,
		DebtCarryIn:      r.DebtCarryIn,
		Total:            r.Total,
		Debt:             r.Debt,
		Overrides:        overrides,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        r.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToRecordResponses(records []payroll.Record) []payroll.RecordResponse {
	result := make([]payroll.RecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r))
	}
	return result
}
