package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
	"github.com/arcline-labs/arcline-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore implements driven.SettingsStore using PostgreSQL
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a new SettingsStore
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// GetSettings retrieves settings for a team
func (s *SettingsStore) GetSettings(ctx context.Context, teamID string) (*domain.Settings, error) {
	query := `
		SELECT team_id, results_per_page, max_results_per_page,
			   default_time_window_days, multi_tenant, admins_see_hidden,
			   updated_at, updated_by
		FROM settings
		WHERE team_id = $1
	`

	var settings domain.Settings
	var updatedBy sql.NullString

	err := s.db.QueryRowContext(ctx, query, teamID).Scan(
		&settings.TeamID,
		&settings.ResultsPerPage,
		&settings.MaxResultsPerPage,
		&settings.DefaultTimeWindowDays,
		&settings.MultiTenant,
		&settings.AdminsSeeHidden,
		&settings.UpdatedAt,
		&updatedBy,
	)
	if err == sql.ErrNoRows {
		// Return default settings if not found
		return domain.DefaultSettings(teamID), nil
	}
	if err != nil {
		return nil, err
	}

	settings.UpdatedBy = updatedBy.String

	return &settings, nil
}

// SaveSettings persists team settings
func (s *SettingsStore) SaveSettings(ctx context.Context, settings *domain.Settings) error {
	query := `
		INSERT INTO settings (team_id, results_per_page, max_results_per_page,
							  default_time_window_days, multi_tenant, admins_see_hidden,
							  updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (team_id) DO UPDATE SET
			results_per_page = EXCLUDED.results_per_page,
			max_results_per_page = EXCLUDED.max_results_per_page,
			default_time_window_days = EXCLUDED.default_time_window_days,
			multi_tenant = EXCLUDED.multi_tenant,
			admins_see_hidden = EXCLUDED.admins_see_hidden,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
	`

	settings.UpdatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, query,
		settings.TeamID,
		settings.ResultsPerPage,
		settings.MaxResultsPerPage,
		settings.DefaultTimeWindowDays,
		settings.MultiTenant,
		settings.AdminsSeeHidden,
		settings.UpdatedAt,
		NullString(settings.UpdatedBy),
	)
	return err
}
