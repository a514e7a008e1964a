package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/settings"
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.Repository {
	return &settingsRepository{db: db}
}

// Get implements settings.Repository. The table holds at most one row.
func (r *settingsRepository) Get(ctx context.Context) (settings.PayrollSettings, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, penalty_type, penalty_rate, absence_rate, norm_days, created_at, updated_at
		FROM payroll_settings
		LIMIT 1
	`

	var s settings.PayrollSettings
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.PenaltyType, &s.PenaltyRate, &s.AbsenceRate, &s.NormDays, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.PayrollSettings{}, settings.ErrSettingsNotFound
		}
		return settings.PayrollSettings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	return s, nil
}

// Upsert implements settings.Repository. A fixed singleton key keeps the
// table at one row no matter how many admins save concurrently.
func (r *settingsRepository) Upsert(ctx context.Context, s settings.PayrollSettings) (settings.PayrollSettings, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO payroll_settings (singleton, penalty_type, penalty_rate, absence_rate, norm_days)
		VALUES (TRUE, $1, $2, $3, $4)
		ON CONFLICT (singleton) DO UPDATE SET
			penalty_type = EXCLUDED.penalty_type,
			penalty_rate = EXCLUDED.penalty_rate,
			absence_rate = EXCLUDED.absence_rate,
			norm_days = EXCLUDED.norm_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, s.PenaltyType, s.PenaltyRate, s.AbsenceRate, s.NormDays).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return settings.PayrollSettings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}

	return s, nil
}
