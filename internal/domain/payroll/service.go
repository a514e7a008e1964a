package payroll

import "context"

// Service is the payroll engine's operation surface, transport-agnostic.
type Service interface {
	// GenerateSheets (re)materializes draft records for every eligible
	// staff member. Safe to re-run; approved/paid records are untouched
	// unless Force, and paid records never.
	GenerateSheets(ctx context.Context, req GenerateSheetsRequest) (GenerateSheetsResult, error)

	// CalculateDebt carries negative totals of the period forward.
	// Idempotent per record.
	CalculateDebt(ctx context.Context, period string) (CalculateDebtResult, error)

	AddFine(ctx context.Context, createdBy string, req AddFineRequest) (RecordResponse, error)
	RemoveFine(ctx context.Context, payrollID, fineID string) (RecordResponse, error)

	Approve(ctx context.Context, payrollID string) (RecordResponse, error)
	MarkAsPaid(ctx context.Context, payrollID string) (RecordResponse, error)

	UpdateRecord(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error)
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter Filter) (ListRecordsResponse, error)
	GetSummary(ctx context.Context, period string) (PeriodSummaryResponse, error)
	DeleteRecord(ctx context.Context, id string) error
}
