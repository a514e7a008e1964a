package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines data access for payroll records.
//
// Writes to a record are always full recompute-and-persist of its mutable
// totals; there is no partial field patch that could desynchronize
// user_fines from the fines ledger. The *ForUpdate variants take a row lock
// and must run inside a transaction (see postgresql.WithTransaction).
type Repository interface {
	Create(ctx context.Context, rec Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetByIDForUpdate(ctx context.Context, id string) (Record, error)
	GetByStaffPeriod(ctx context.Context, staffID, period string) (Record, error)
	GetByStaffPeriodForUpdate(ctx context.Context, staffID, period string) (Record, error)

	// UpsertDraft inserts the record or, when a row for (staff_id, period)
	// already exists at draft, overwrites its computed fields. The bool
	// result reports whether a row was written; false means the existing
	// row is approved/paid and was left untouched.
	UpsertDraft(ctx context.Context, rec Record) (Record, bool, error)

	// UpdateComputed persists every mutable total of the record in one
	// statement, guarded by the expected current status. ErrRecordNotEditable
	// is returned when a concurrent transition moved the record on.
	UpdateComputed(ctx context.Context, rec Record, expected Status) (Record, error)

	// UpdateStatus performs a guarded one-directional transition.
	UpdateStatus(ctx context.Context, id string, from, to Status) (Record, error)

	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter) ([]Record, int64, error)

	// Debt helpers
	ListUnprocessedDebtsForUpdate(ctx context.Context, period string) ([]Record, error)
	MarkDebtProcessed(ctx context.Context, id string, debt decimal.Decimal) error
	GetProcessedDebt(ctx context.Context, staffID, period string) (decimal.Decimal, error)

	Summary(ctx context.Context, period string) (PeriodSummary, error)
}
