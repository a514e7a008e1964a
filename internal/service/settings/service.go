package settings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Dammmup/detsad-f-sub001/internal/domain/settings"
	"github.com/Dammmup/detsad-f-sub001/internal/pkg/cache"
)

const (
	settingsCacheKey = "payroll:settings"
	settingsCacheTTL = 5 * time.Minute
)

// ServiceImpl fronts the settings repository with a cache. The penalty
// policy is read once per generated sheet, so generation of a full period
// would otherwise hammer a single row.
type ServiceImpl struct {
	repo  settings.Repository
	cache cache.Cache
}

func NewSettingsService(repo settings.Repository, c cache.Cache) settings.Service {
	return &ServiceImpl{repo: repo, cache: c}
}

func (s *ServiceImpl) Get(ctx context.Context) (settings.PayrollSettings, error) {
	if raw, ok, err := s.cache.Get(ctx, settingsCacheKey); err == nil && ok {
		var cfg settings.PayrollSettings
		if err := json.Unmarshal(raw, &cfg); err == nil {
			return cfg, nil
		}
		// Corrupt cache entry; drop it and fall through to the repository.
		_ = s.cache.Delete(ctx, settingsCacheKey)
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.Default(), nil
		}
		return settings.PayrollSettings{}, err
	}

	s.cacheSet(ctx, cfg)
	return cfg, nil
}

func (s *ServiceImpl) GetResponse(ctx context.Context) (settings.SettingsResponse, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return mapToResponse(cfg), nil
}

func (s *ServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.SettingsResponse{}, err
		}
		cfg = settings.Default()
	}

	if req.PenaltyType != nil {
		cfg.PenaltyType = settings.PenaltyType(*req.PenaltyType)
	}
	if req.PenaltyRate != nil {
		cfg.PenaltyRate = req.PenaltyRate.Round(2)
	}
	if req.AbsenceRate != nil {
		cfg.AbsenceRate = req.AbsenceRate.Round(2)
	}
	if req.NormDays != nil {
		cfg.NormDays = *req.NormDays
	}

	updated, err := s.repo.Upsert(ctx, cfg)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	if err := s.cache.Delete(ctx, settingsCacheKey); err != nil {
		slog.WarnContext(ctx, "failed to invalidate settings cache", slog.Any("error", err))
	}

	return mapToResponse(updated), nil
}

func (s *ServiceImpl) cacheSet(ctx context.Context, cfg settings.PayrollSettings) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, settingsCacheKey, raw, settingsCacheTTL); err != nil {
		slog.WarnContext(ctx, "failed to cache settings", slog.Any("error", err))
	}
}

func mapToResponse(cfg settings.PayrollSettings) settings.SettingsResponse {
	return settings.SettingsResponse{
		ID:          cfg.ID,
		PenaltyType: string(cfg.PenaltyType),
		PenaltyRate: cfg.PenaltyRate,
		AbsenceRate: cfg.AbsenceRate,
		NormDays:    cfg.NormDays,
	}
}
