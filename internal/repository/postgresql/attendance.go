package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/attendance"
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// ListRecords implements attendance.Repository.
func (r *attendanceRepository) ListRecords(ctx context.Context, staffID string, from, to time.Time) ([]attendance.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, staff_id, date, status, late_minutes, overtime_minutes,
			   actual_start, actual_end
		FROM attendance_records
		WHERE staff_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID, &rec.StaffID, &rec.Date, &rec.Status, &rec.LateMinutes, &rec.OvertimeMinutes,
			&rec.ActualStart, &rec.ActualEnd,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

// ListShifts implements attendance.Repository.
func (r *attendanceRepository) ListShifts(ctx context.Context, staffID string, from, to time.Time) ([]attendance.Shift, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, staff_id, date, scheduled_start, scheduled_end, type
		FROM staff_shifts
		WHERE staff_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []attendance.Shift
	for rows.Next() {
		var sh attendance.Shift
		err := rows.Scan(&sh.ID, &sh.StaffID, &sh.Date, &sh.ScheduledStart, &sh.ScheduledEnd, &sh.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}
