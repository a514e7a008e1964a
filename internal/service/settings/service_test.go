package settings

import (
	"context"
	"testing"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/settings"
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	stored   *settings.PayrollSettings
	getCalls int
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (settings.PayrollSettings, error) {
	f.getCalls++
	if f.stored == nil {
		return settings.PayrollSettings{}, settings.ErrSettingsNotFound
	}
	return *f.stored, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, s settings.PayrollSettings) (settings.PayrollSettings, error) {
	s.ID = "settings-1"
	f.stored = &s
	return s, nil
}

func TestGetFallsBackToDefaults(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, cache.NewMemory())

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, settings.PenaltyFixed, cfg.PenaltyType)
	assert.Equal(t, settings.DefaultNormDays, cfg.NormDays)
	assert.True(t, cfg.AbsenceRate.IsZero())
}

func TestGetUsesCache(t *testing.T) {
	repo := &fakeSettingsRepo{stored: &settings.PayrollSettings{
		ID:          "settings-1",
		PenaltyType: settings.PenaltyPerMinute,
		PenaltyRate: decimal.NewFromInt(50),
		NormDays:    22,
	}}
	svc := NewSettingsService(repo, cache.NewMemory())

	_, err := svc.Get(context.Background())
	require.NoError(t, err)

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.getCalls, "second read must come from the cache")
	assert.Equal(t, settings.PenaltyPerMinute, cfg.PenaltyType)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	repo := &fakeSettingsRepo{stored: &settings.PayrollSettings{
		ID:          "settings-1",
		PenaltyType: settings.PenaltyFixed,
		PenaltyRate: decimal.NewFromInt(50),
		NormDays:    22,
	}}
	svc := NewSettingsService(repo, cache.NewMemory())

	_, err := svc.Get(context.Background())
	require.NoError(t, err)

	newType := string(settings.PenaltyPer10Minutes)
	_, err = svc.Update(context.Background(), settings.UpdateSettingsRequest{PenaltyType: &newType})
	require.NoError(t, err)

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, settings.PenaltyPer10Minutes, cfg.PenaltyType)
}

func TestUpdatePartialFields(t *testing.T) {
	repo := &fakeSettingsRepo{stored: &settings.PayrollSettings{
		ID:          "settings-1",
		PenaltyType: settings.PenaltyPerMinute,
		PenaltyRate: decimal.NewFromInt(50),
		AbsenceRate: decimal.NewFromInt(1000),
		NormDays:    22,
	}}
	svc := NewSettingsService(repo, cache.NewMemory())

	normDays := 21
	result, err := svc.Update(context.Background(), settings.UpdateSettingsRequest{NormDays: &normDays})
	require.NoError(t, err)

	assert.Equal(t, 21, result.NormDays)
	assert.Equal(t, string(settings.PenaltyPerMinute), result.PenaltyType)
	assert.True(t, result.PenaltyRate.Equal(decimal.NewFromInt(50)))
}

func TestUpdateRejectsInvalidValues(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{}, cache.NewMemory())

	badType := "per_hour"
	_, err := svc.Update(context.Background(), settings.UpdateSettingsRequest{PenaltyType: &badType})
	require.Error(t, err)

	badDays := 0
	_, err = svc.Update(context.Background(), settings.UpdateSettingsRequest{NormDays: &badDays})
	require.Error(t, err)
}
