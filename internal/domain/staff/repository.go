package staff

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Profile, error)

	// ListPayrollEligible returns active profiles whose role is payable.
	ListPayrollEligible(ctx context.Context) ([]Profile, error)
}
