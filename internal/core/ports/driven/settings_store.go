package driven

import (
	"context"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
)

// SettingsStore persists team settings
type SettingsStore interface {
	// GetSettings retrieves settings for a team
	GetSettings(ctx context.Context, teamID string) (*domain.Settings, error)

	// SaveSettings persists team settings
	SaveSettings(ctx context.Context, settings *domain.Settings) error
}
