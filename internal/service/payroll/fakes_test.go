package payroll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/attendance"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/payroll"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/settings"
	"github.com/Dammmup/detsad-f-sub001/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// noopTransactor runs the function directly; the in-memory fakes have no
// transactions to speak of.
type noopTransactor struct{}

func (noopTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakePayrollRepo is an in-memory payroll.Repository.
type fakePayrollRepo struct {
	mu      sync.Mutex
	records map[string]payroll.Record
	nextID  int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.Record)}
}

func (f *fakePayrollRepo) Create(ctx context.Context, rec payroll.Record) (payroll.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.records {
		if existing.StaffID == rec.StaffID && existing.Period == rec.Period {
			return payroll.Record{}, payroll.ErrRecordAlreadyExists
		}
	}

	f.nextID++
	rec.ID = fmt.Sprintf("rec-%d", f.nextID)
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[id]
	if !ok {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakePayrollRepo) GetByIDForUpdate(ctx context.Context, id string) (payroll.Record, error) {
	return f.GetByID(ctx, id)
}

func (f *fakePayrollRepo) GetByStaffPeriod(ctx context.Context, staffID, period string) (payroll.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rec := range f.records {
		if rec.StaffID == staffID && rec.Period == period {
			return rec, nil
		}
	}
	return payroll.Record{}, payroll.ErrRecordNotFound
}

func (f *fakePayrollRepo) GetByStaffPeriodForUpdate(ctx context.Context, staffID, period string) (payroll.Record, error) {
	return f.GetByStaffPeriod(ctx, staffID, period)
}

func (f *fakePayrollRepo) UpsertDraft(ctx context.Context, rec payroll.Record) (payroll.Record, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.records {
		if existing.StaffID == rec.StaffID && existing.Period == rec.Period {
			if existing.Status != payroll.StatusDraft {
				return payroll.Record{}, false, nil
			}
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
			rec.UpdatedAt = time.Now()
			f.records[rec.ID] = rec
			return rec, true, nil
		}
	}

	f.nextID++
	rec.ID = fmt.Sprintf("rec-%d", f.nextID)
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	f.records[rec.ID] = rec
	return rec, true, nil
}

func (f *fakePayrollRepo) UpdateComputed(ctx context.Context, rec payroll.Record, expected payroll.Status) (payroll.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.records[rec.ID]
	if !ok {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	if existing.Status != expected {
		return payroll.Record{}, payroll.ErrRecordNotEditable
	}

	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now()
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakePayrollRepo) UpdateStatus(ctx context.Context, id string, from, to payroll.Status) (payroll.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[id]
	if !ok {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	if rec.Status != from {
		return payroll.Record{}, payroll.ErrInvalidStatusTransition
	}

	rec.Status = to
	rec.UpdatedAt = time.Now()
	f.records[id] = rec
	return rec, nil
}

func (f *fakePayrollRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[id]
	if !ok {
		return payroll.ErrRecordNotFound
	}
	if rec.Status == payroll.StatusPaid {
		return payroll.ErrCannotDeletePaidRecord
	}

	delete(f.records, id)
	return nil
}

func (f *fakePayrollRepo) List(ctx context.Context, filter payroll.Filter) ([]payroll.Record, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []payroll.Record
	for _, rec := range f.records {
		if filter.Period != nil && rec.Period != *filter.Period {
			continue
		}
		if filter.StaffID != nil && rec.StaffID != *filter.StaffID {
			continue
		}
		if filter.Status != nil && string(rec.Status) != *filter.Status {
			continue
		}
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (f *fakePayrollRepo) ListUnprocessedDebtsForUpdate(ctx context.Context, period string) ([]payroll.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []payroll.Record
	for _, rec := range f.records {
		if rec.Period == period && rec.Total.IsNegative() && !rec.DebtProcessed {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) MarkDebtProcessed(ctx context.Context, id string, debt decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[id]
	if !ok || rec.DebtProcessed {
		return payroll.ErrRecordNotFound
	}

	rec.Debt = debt
	rec.DebtProcessed = true
	f.records[id] = rec
	return nil
}

func (f *fakePayrollRepo) GetProcessedDebt(ctx context.Context, staffID, period string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rec := range f.records {
		if rec.StaffID == staffID && rec.Period == period && rec.DebtProcessed {
			return rec.Debt, nil
		}
	}
	return decimal.Zero, nil
}

func (f *fakePayrollRepo) Summary(ctx context.Context, period string) (payroll.PeriodSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	summary := payroll.PeriodSummary{
		Period:         period,
		TotalAccruals:  decimal.Zero,
		TotalBonuses:   decimal.Zero,
		TotalPenalties: decimal.Zero,
		TotalFines:     decimal.Zero,
		TotalDebt:      decimal.Zero,
		TotalPayable:   decimal.Zero,
	}
	for _, rec := range f.records {
		if rec.Period != period {
			continue
		}
		summary.TotalStaff++
		summary.TotalAccruals = summary.TotalAccruals.Add(rec.Accruals)
		summary.TotalBonuses = summary.TotalBonuses.Add(rec.Bonuses)
		summary.TotalPenalties = summary.TotalPenalties.Add(rec.LatePenalties).Add(rec.AbsencePenalties)
		summary.TotalFines = summary.TotalFines.Add(rec.UserFines)
		summary.TotalDebt = summary.TotalDebt.Add(rec.DebtCarryIn)
		summary.TotalPayable = summary.TotalPayable.Add(rec.Total)
		switch rec.Status {
		case payroll.StatusDraft:
			summary.DraftCount++
		case payroll.StatusApproved:
			summary.ApprovedCount++
		case payroll.StatusPaid:
			summary.PaidCount++
		}
	}
	return summary, nil
}

// fakeStaffRepo serves a fixed set of profiles.
type fakeStaffRepo struct {
	profiles []staff.Profile
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string) (staff.Profile, error) {
	for _, p := range f.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return staff.Profile{}, staff.ErrStaffNotFound
}

func (f *fakeStaffRepo) ListPayrollEligible(ctx context.Context) ([]staff.Profile, error) {
	var out []staff.Profile
	for _, p := range f.profiles {
		if p.PayrollEligible() {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeAttendanceRepo serves fixed attendance facts keyed by staff id.
type fakeAttendanceRepo struct {
	records map[string][]attendance.Record
	shifts  map[string][]attendance.Shift
}

func (f *fakeAttendanceRepo) ListRecords(ctx context.Context, staffID string, from, to time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records[staffID] {
		if !rec.Date.Before(from) && rec.Date.Before(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListShifts(ctx context.Context, staffID string, from, to time.Time) ([]attendance.Shift, error) {
	var out []attendance.Shift
	for _, sh := range f.shifts[staffID] {
		if !sh.Date.Before(from) && sh.Date.Before(to) {
			out = append(out, sh)
		}
	}
	return out, nil
}

// fakeSettingsService serves a fixed policy.
type fakeSettingsService struct {
	cfg settings.PayrollSettings
}

func (f *fakeSettingsService) Get(ctx context.Context) (settings.PayrollSettings, error) {
	return f.cfg, nil
}

func (f *fakeSettingsService) GetResponse(ctx context.Context) (settings.SettingsResponse, error) {
	return settings.SettingsResponse{
		PenaltyType: string(f.cfg.PenaltyType),
		PenaltyRate: f.cfg.PenaltyRate,
		AbsenceRate: f.cfg.AbsenceRate,
		NormDays:    f.cfg.NormDays,
	}, nil
}

func (f *fakeSettingsService) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	return f.GetResponse(ctx)
}

func newTestService(repo *fakePayrollRepo, staffRepo *fakeStaffRepo, attRepo *fakeAttendanceRepo, cfg settings.PayrollSettings) payroll.Service {
	return NewPayrollService(
		noopTransactor{},
		repo,
		staffRepo,
		attRepo,
		&fakeSettingsService{cfg: cfg},
		time.Minute,
		4,
	)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) time.Time {
	return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
}

// presentDays builds n consecutive present days starting January 1st.
func presentDays(staffID string, n int) []attendance.Record {
	out := make([]attendance.Record, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, attendance.Record{
			ID:      fmt.Sprintf("att-%d", i),
			StaffID: staffID,
			Date:    day(i),
			Status:  attendance.StatusPresent,
		})
	}
	return out
}
