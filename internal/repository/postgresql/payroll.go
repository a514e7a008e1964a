package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/payroll"
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	p.id, p.staff_id, p.period, p.base_salary, p.base_salary_type, p.shift_rate,
	p.norm_days, p.worked_days, p.worked_shifts,
	p.accruals, p.bonuses, p.bonus_details, p.advance,
	p.late_penalties, p.absence_penalties, p.fines, p.user_fines,
	p.deductions, p.debt_carry_in, p.total,
	p.debt, p.debt_processed, p.overrides, p.status,
	p.created_at, p.updated_at,
	s.full_name, s.role
`

const payrollFrom = `
	FROM payroll_records p
	LEFT JOIN staff s ON s.id = p.staff_id
`

func scanPayrollRecord(row pgx.Row) (payroll.Record, error) {
	var (
		rec          payroll.Record
		bonusDetails []byte
		fines        []byte
		overrides    []byte
	)

	err := row.Scan(
		&rec.ID, &rec.StaffID, &rec.Period, &rec.BaseSalary, &rec.BaseSalaryType, &rec.ShiftRate,
		&rec.NormDays, &rec.WorkedDays, &rec.WorkedShifts,
		&rec.Accruals, &rec.Bonuses, &bonusDetails, &rec.Advance,
		&rec.LatePenalties, &rec.AbsencePenalties, &fines, &rec.UserFines,
		&rec.Deductions, &rec.DebtCarryIn, &rec.Total,
		&rec.Debt, &rec.DebtProcessed, &overrides, &rec.Status,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.StaffName, &rec.StaffRole,
	)
	if err != nil {
		return payroll.Record{}, err
	}

	if len(bonusDetails) > 0 {
		if err := json.Unmarshal(bonusDetails, &rec.BonusDetails); err != nil {
			return payroll.Record{}, fmt.Errorf("failed to decode bonus details: %w", err)
		}
	}
	if len(fines) > 0 {
		if err := json.Unmarshal(fines, &rec.Fines); err != nil {
			return payroll.Record{}, fmt.Errorf("failed to decode fines ledger: %w", err)
		}
	}
	if len(overrides) > 0 {
		if err := json.Unmarshal(overrides, &rec.Overrides); err != nil {
			return payroll.Record{}, fmt.Errorf("failed to decode overrides: %w", err)
		}
	}

	return rec, nil
}

func encodeJSONColumns(rec payroll.Record) (bonusDetails, fines, overrides []byte, err error) {
	if rec.BonusDetails == nil {
		rec.BonusDetails = map[string]decimal.Decimal{}
	}
	bonusDetails, err = json.Marshal(rec.BonusDetails)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode bonus details: %w", err)
	}

	if rec.Fines == nil {
		rec.Fines = []payroll.FineEntry{}
	}
	fines, err = json.Marshal(rec.Fines)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode fines ledger: %w", err)
	}

	if rec.Overrides == nil {
		rec.Overrides = payroll.Overrides{}
	}
	overrides, err = json.Marshal(rec.Overrides)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode overrides: %w", err)
	}

	return bonusDetails, fines, overrides, nil
}

// Create implements payroll.Repository.
func (r *payrollRepository) Create(ctx context.Context, rec payroll.Record) (payroll.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	bonusDetails, fines, overrides, err := encodeJSONColumns(rec)
	if err != nil {
		return payroll.Record{}, err
	}

	query := `
		INSERT INTO payroll_records (
			staff_id, period, base_salary, base_salary_type, shift_rate,
			norm_days, worked_days, worked_shifts,
			accruals, bonuses, bonus_details, advance,
			late_penalties, absence_penalties, fines, user_fines,
			deductions, debt_carry_in, total,
			debt, debt_processed, overrides, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		) RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		rec.StaffID, rec.Period, rec.BaseSalary, rec.BaseSalaryType, rec.ShiftRate,
		rec.NormDays, rec.WorkedDays, rec.WorkedShifts,
		rec.Accruals, rec.Bonuses, bonusDetails, rec.Advance,
		rec.LatePenalties, rec.AbsencePenalties, fines, rec.UserFines,
		rec.Deductions, rec.DebtCarryIn, rec.Total,
		rec.Debt, rec.DebtProcessed, overrides, rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Record{}, payroll.ErrRecordAlreadyExists
		}
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) getOne(ctx context.Context, where string, lock bool, args ...any) (payroll.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `SELECT ` + payrollColumns + payrollFrom + ` WHERE ` + where
	if lock {
		query += ` FOR UPDATE OF p`
	}

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

// GetByID implements payroll.Repository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	return r.getOne(ctx, `p.id = $1`, false, id)
}

// GetByIDForUpdate implements payroll.Repository.
func (r *payrollRepository) GetByIDForUpdate(ctx context.Context, id string) (payroll.Record, error) {
	return r.getOne(ctx, `p.id = $1`, true, id)
}

// GetByStaffPeriod implements payroll.Repository.
func (r *payrollRepository) GetByStaffPeriod(ctx context.Context, staffID, period string) (payroll.Record, error) {
	return r.getOne(ctx, `p.staff_id = $1 AND p.period = $2`, false, staffID, period)
}

// GetByStaffPeriodForUpdate implements payroll.Repository.
func (r *payrollRepository) GetByStaffPeriodForUpdate(ctx context.Context, staffID, period string) (payroll.Record, error) {
	return r.getOne(ctx, `p.staff_id = $1 AND p.period = $2`, true, staffID, period)
}

// UpsertDraft implements payroll.Repository. The unique key on
// (staff_id, period) makes concurrent generation race-free: the loser of an
// insert race falls into the ON CONFLICT branch, and the conflict update is
// itself guarded to drafts only.
func (r *payrollRepository) UpsertDraft(ctx context.Context, rec payroll.Record) (payroll.Record, bool, error) {
	q := database.QuerierFrom(ctx, r.db)

	bonusDetails, fines, overrides, err := encodeJSONColumns(rec)
	if err != nil {
		return payroll.Record{}, false, err
	}

	query := `
		INSERT INTO payroll_records (
			staff_id, period, base_salary, base_salary_type, shift_rate,
			norm_days, worked_days, worked_shifts,
			accruals, bonuses, bonus_details, advance,
			late_penalties, absence_penalties, fines, user_fines,
			deductions, debt_carry_in, total,
			debt, debt_processed, overrides, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		)
		ON CONFLICT (staff_id, period) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			base_salary_type = EXCLUDED.base_salary_type,
			shift_rate = EXCLUDED.shift_rate,
			norm_days = EXCLUDED.norm_days,
			worked_days = EXCLUDED.worked_days,
			worked_shifts = EXCLUDED.worked_shifts,
			accruals = EXCLUDED.accruals,
			bonuses = EXCLUDED.bonuses,
			bonus_details = EXCLUDED.bonus_details,
			advance = EXCLUDED.advance,
			late_penalties = EXCLUDED.late_penalties,
			absence_penalties = EXCLUDED.absence_penalties,
			fines = EXCLUDED.fines,
			user_fines = EXCLUDED.user_fines,
			deductions = EXCLUDED.deductions,
			debt_carry_in = EXCLUDED.debt_carry_in,
			total = EXCLUDED.total,
			overrides = EXCLUDED.overrides,
			updated_at = NOW()
		WHERE payroll_records.status = 'draft'
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		rec.StaffID, rec.Period, rec.BaseSalary, rec.BaseSalaryType, rec.ShiftRate,
		rec.NormDays, rec.WorkedDays, rec.WorkedShifts,
		rec.Accruals, rec.Bonuses, bonusDetails, rec.Advance,
		rec.LatePenalties, rec.AbsencePenalties, fines, rec.UserFines,
		rec.Deductions, rec.DebtCarryIn, rec.Total,
		rec.Debt, rec.DebtProcessed, overrides, rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict row exists but is not a draft.
			return payroll.Record{}, false, nil
		}
		return payroll.Record{}, false, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return rec, true, nil
}

// UpdateComputed implements payroll.Repository.
func (r *payrollRepository) UpdateComputed(ctx context.Context, rec payroll.Record, expected payroll.Status) (payroll.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	bonusDetails, fines, overrides, err := encodeJSONColumns(rec)
	if err != nil {
		return payroll.Record{}, err
	}

	query := `
		UPDATE payroll_records SET
			base_salary = $1, base_salary_type = $2, shift_rate = $3,
			norm_days = $4, worked_days = $5, worked_shifts = $6,
			accruals = $7, bonuses = $8, bonus_details = $9, advance = $10,
			late_penalties = $11, absence_penalties = $12, fines = $13, user_fines = $14,
			deductions = $15, debt_carry_in = $16, total = $17,
			overrides = $18, status = $19,
			updated_at = NOW()
		WHERE id = $20 AND status = $21
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		rec.BaseSalary, rec.BaseSalaryType, rec.ShiftRate,
		rec.NormDays, rec.WorkedDays, rec.WorkedShifts,
		rec.Accruals, rec.Bonuses, bonusDetails, rec.Advance,
		rec.LatePenalties, rec.AbsencePenalties, fines, rec.UserFines,
		rec.Deductions, rec.DebtCarryIn, rec.Total,
		overrides, rec.Status,
		rec.ID, expected,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing record from one that moved on.
			if _, getErr := r.GetByID(ctx, rec.ID); errors.Is(getErr, payroll.ErrRecordNotFound) {
				return payroll.Record{}, payroll.ErrRecordNotFound
			}
			return payroll.Record{}, payroll.ErrRecordNotEditable
		}
		return payroll.Record{}, fmt.Errorf("failed to update payroll record: %w", err)
	}

	return rec, nil
}

// UpdateStatus implements payroll.Repository.
func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, from, to payroll.Status) (payroll.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE payroll_records SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, to, id, from).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, payroll.ErrRecordNotFound) {
				return payroll.Record{}, payroll.ErrRecordNotFound
			}
			return payroll.Record{}, payroll.ErrInvalidStatusTransition
		}
		return payroll.Record{}, fmt.Errorf("failed to update payroll status: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// Delete implements payroll.Repository.
func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := database.QuerierFrom(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1 AND status <> 'paid'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr == nil {
			return payroll.ErrCannotDeletePaidRecord
		}
		return payroll.ErrRecordNotFound
	}
	return nil
}

// List implements payroll.Repository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.Record, int64, error) {
	q := database.QuerierFrom(ctx, r.db)

	var (
		conditions []string
		args       []any
	)
	addCondition := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Period != nil {
		addCondition("p.period = $%d", *filter.Period)
	}
	if filter.StaffID != nil {
		addCondition("p.staff_id = $%d", *filter.StaffID)
	}
	if filter.Status != nil {
		addCondition("p.status = $%d", *filter.Status)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM payroll_records p` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	sortColumn := "p.created_at"
	switch filter.SortBy {
	case "period":
		sortColumn = "p.period"
	case "total":
		sortColumn = "p.total"
	case "staffName":
		sortColumn = "s.full_name"
	case "status":
		sortColumn = "p.status"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	query := `SELECT ` + payrollColumns + payrollFrom + whereClause +
		fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", sortColumn, sortOrder, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, totalCount, nil
}

// ListUnprocessedDebtsForUpdate implements payroll.Repository.
func (r *payrollRepository) ListUnprocessedDebtsForUpdate(ctx context.Context, period string) ([]payroll.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `SELECT ` + payrollColumns + payrollFrom + `
		WHERE p.period = $1 AND p.total < 0 AND NOT p.debt_processed
		ORDER BY p.staff_id
		FOR UPDATE OF p
	`

	rows, err := q.Query(ctx, query, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list unprocessed debts: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate unprocessed debts: %w", err)
	}

	return records, nil
}

// MarkDebtProcessed implements payroll.Repository.
func (r *payrollRepository) MarkDebtProcessed(ctx context.Context, id string, debt decimal.Decimal) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE payroll_records SET debt = $1, debt_processed = TRUE, updated_at = NOW()
		WHERE id = $2 AND NOT debt_processed
	`

	tag, err := q.Exec(ctx, query, debt, id)
	if err != nil {
		return fmt.Errorf("failed to mark debt processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}
	return nil
}

// GetProcessedDebt implements payroll.Repository.
func (r *payrollRepository) GetProcessedDebt(ctx context.Context, staffID, period string) (decimal.Decimal, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT debt FROM payroll_records
		WHERE staff_id = $1 AND period = $2 AND debt_processed
	`

	var debt decimal.Decimal
	err := q.QueryRow(ctx, query, staffID, period).Scan(&debt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to get processed debt: %w", err)
	}
	return debt, nil
}

// Summary implements payroll.Repository.
func (r *payrollRepository) Summary(ctx context.Context, period string) (payroll.PeriodSummary, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(accruals), 0),
			COALESCE(SUM(bonuses), 0),
			COALESCE(SUM(late_penalties + absence_penalties), 0),
			COALESCE(SUM(user_fines), 0),
			COALESCE(SUM(debt_carry_in), 0),
			COALESCE(SUM(total), 0),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'paid')
		FROM payroll_records
		WHERE period = $1
	`

	summary := payroll.PeriodSummary{Period: period}
	err := q.QueryRow(ctx, query, period).Scan(
		&summary.TotalStaff,
		&summary.TotalAccruals,
		&summary.TotalBonuses,
		&summary.TotalPenalties,
		&summary.TotalFines,
		&summary.TotalDebt,
		&summary.TotalPayable,
		&summary.DraftCount,
		&summary.ApprovedCount,
		&summary.PaidCount,
	)
	if err != nil {
		return payroll.PeriodSummary{}, fmt.Errorf("failed to build period summary: %w", err)
	}

	return summary, nil
}
