package services

import (
	"context"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
	"github.com/arcline-labs/arcline-core/internal/core/ports/driven"
	"github.com/arcline-labs/arcline-core/internal/core/ports/driving"
)

// Ensure settingsService implements SettingsService
var _ driving.SettingsService = (*settingsService)(nil)

// settingsService implements the SettingsService interface
type settingsService struct {
	settingsStore driven.SettingsStore
	teamID        string
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsStore driven.SettingsStore, teamID string) driving.SettingsService {
	return &settingsService{
		settingsStore: settingsStore,
		teamID:        teamID,
	}
}

// Get retrieves the current settings
func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	return s.settingsStore.GetSettings(ctx, s.teamID)
}

// Update updates settings (admin only)
func (s *settingsService) Update(ctx context.Context, updaterID string, req driving.UpdateSettingsRequest) (*domain.Settings, error) {
	settings, err := s.settingsStore.GetSettings(ctx, s.teamID)
	if err != nil {
		// If settings don't exist, create defaults
		settings = domain.DefaultSettings(s.teamID)
	}

	// Apply updates
	if req.ResultsPerPage != nil {
		if *req.ResultsPerPage <= 0 {
			return nil, domain.ErrInvalidInput
		}
		settings.ResultsPerPage = *req.ResultsPerPage
		if settings.ResultsPerPage > settings.MaxResultsPerPage {
			settings.ResultsPerPage = settings.MaxResultsPerPage
		}
	}
	if req.DefaultTimeWindowDays != nil {
		if *req.DefaultTimeWindowDays < 0 {
			return nil, domain.ErrInvalidInput
		}
		settings.DefaultTimeWindowDays = *req.DefaultTimeWindowDays
	}
	if req.MultiTenant != nil {
		settings.MultiTenant = *req.MultiTenant
	}
	if req.AdminsSeeHidden != nil {
		settings.AdminsSeeHidden = *req.AdminsSeeHidden
	}

	settings.UpdatedBy = updaterID

	if err := s.settingsStore.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
