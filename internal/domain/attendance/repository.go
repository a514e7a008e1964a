package attendance

import (
	"context"
	"time"
)

// Repository reads recorded attendance facts. The engine never writes them.
type Repository interface {
	// ListRecords returns attendance rows for one staff member in
	// [from, to), ordered by date.
	ListRecords(ctx context.Context, staffID string, from, to time.Time) ([]Record, error)

	// ListShifts returns scheduled shifts for one staff member in
	// [from, to), ordered by date.
	ListShifts(ctx context.Context, staffID string, from, to time.Time) ([]Shift, error)
}
