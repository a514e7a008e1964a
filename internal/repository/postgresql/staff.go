package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/staff"
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.Repository {
	return &staffRepository{db: db}
}

const staffColumns = `
	id, full_name, role, base_salary, base_salary_type, shift_rate, norm_days,
	active, created_at, updated_at
`

// GetByID implements staff.Repository.
func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.Profile, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`

	var p staff.Profile
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FullName, &p.Role, &p.BaseSalary, &p.BaseSalaryType, &p.ShiftRate, &p.NormDays,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Profile{}, staff.ErrStaffNotFound
		}
		return staff.Profile{}, fmt.Errorf("failed to get staff profile: %w", err)
	}

	return p, nil
}

// ListPayrollEligible implements staff.Repository. Role filtering happens in
// the domain so the excluded-role list lives in exactly one place.
func (r *staffRepository) ListPayrollEligible(ctx context.Context) ([]staff.Profile, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE active ORDER BY full_name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var profiles []staff.Profile
	for rows.Next() {
		var p staff.Profile
		err := rows.Scan(
			&p.ID, &p.FullName, &p.Role, &p.BaseSalary, &p.BaseSalaryType, &p.ShiftRate, &p.NormDays,
			&p.Active, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff profile: %w", err)
		}
		if p.PayrollEligible() {
			profiles = append(profiles, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate staff: %w", err)
	}

	return profiles, nil
}
