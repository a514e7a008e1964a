package settings

import "context"

type Repository interface {
	Get(ctx context.Context) (PayrollSettings, error)
	Upsert(ctx context.Context, s PayrollSettings) (PayrollSettings, error)
}

// Service fronts the repository with a cache; the penalty policy is read on
// every generated sheet.
type Service interface {
	Get(ctx context.Context) (PayrollSettings, error)
	GetResponse(ctx context.Context) (SettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
