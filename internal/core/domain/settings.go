package domain

import "time"

// Settings holds team-wide search configuration
type Settings struct {
	TeamID string `json:"team_id"`

	// Search Defaults
	ResultsPerPage    int `json:"results_per_page"`
	MaxResultsPerPage int `json:"max_results_per_page"`

	// DefaultTimeWindowDays bounds searches that supply no explicit time
	// range. Zero means unbounded.
	DefaultTimeWindowDays int `json:"default_time_window_days"`

	// MultiTenant enables tenant-scoped filtering for this deployment
	MultiTenant bool `json:"multi_tenant"`

	// AdminsSeeHidden lets admin callers request hidden documents
	AdminsSeeHidden bool `json:"admins_see_hidden"`

	// Metadata
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"` // User ID
}

// DefaultSettings returns sensible defaults for a new team
func DefaultSettings(teamID string) *Settings {
	return &Settings{
		TeamID:            teamID,
		ResultsPerPage:    20,
		MaxResultsPerPage: 100,
		MultiTenant:       false,
		AdminsSeeHidden:   true,
		UpdatedAt:         time.Now(),
	}
}
