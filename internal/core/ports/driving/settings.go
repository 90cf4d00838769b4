package driving

import (
	"context"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
)

// UpdateSettingsRequest represents a request to update settings
type UpdateSettingsRequest struct {
	ResultsPerPage        *int  `json:"results_per_page,omitempty"`
	DefaultTimeWindowDays *int  `json:"default_time_window_days,omitempty"`
	MultiTenant           *bool `json:"multi_tenant,omitempty"`
	AdminsSeeHidden       *bool `json:"admins_see_hidden,omitempty"`
}

// SettingsService manages team-wide settings (admin only)
type SettingsService interface {
	// Get retrieves the current settings
	Get(ctx context.Context) (*domain.Settings, error)

	// Update updates settings (admin only)
	Update(ctx context.Context, updaterID string, req UpdateSettingsRequest) (*domain.Settings, error)
}
