package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
	"github.com/arcline-labs/arcline-core/internal/core/ports/driven"
	"github.com/arcline-labs/arcline-core/internal/core/ports/driving"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// searchService implements the SearchService interface
type searchService struct {
	searchEngine  driven.SearchEngine
	settingsStore driven.SettingsStore
	aclStore      driven.ACLStore // optional cache; may be nil
	teamID        string
	logger        *slog.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(
	searchEngine driven.SearchEngine,
	settingsStore driven.SettingsStore,
	aclStore driven.ACLStore,
	teamID string,
	logger *slog.Logger,
) driving.SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &searchService{
		searchEngine:  searchEngine,
		settingsStore: settingsStore,
		aclStore:      aclStore,
		teamID:        teamID,
		logger:        logger,
	}
}

// Search performs a filtered search on behalf of the given caller
func (s *searchService) Search(ctx context.Context, caller *domain.AuthContext, query string, opts domain.SearchOptions) (*domain.SearchResult, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}

	start := time.Now()

	settings, err := s.settingsStore.GetSettings(ctx, s.teamID)
	if err != nil {
		s.logger.Warn("failed to load settings, using defaults", "error", err)
		settings = domain.DefaultSettings(s.teamID)
	}

	// Apply defaults
	if opts.Limit <= 0 {
		opts.Limit = settings.ResultsPerPage
	}
	if opts.Limit > settings.MaxResultsPerPage {
		opts.Limit = settings.MaxResultsPerPage
	}

	// Hidden documents are only visible to admins, and only when the
	// deployment allows it
	if opts.IncludeHidden && !(caller.IsAdmin() && settings.AdminsSeeHidden) {
		opts.IncludeHidden = false
	}

	// The caller's access set always wins over request-supplied entries
	opts.Filters.AccessControlList = s.aclEntries(ctx, caller)

	// Tenant scoping: the flag and the tenant ID travel together so the
	// engine's clause decision cannot diverge from the populated value
	opts.MultiTenant = settings.MultiTenant
	if settings.MultiTenant {
		opts.Filters.TenantID = caller.TenantID
	} else {
		opts.Filters.TenantID = ""
	}

	// Bound untimed searches when the team configures a default window
	if settings.DefaultTimeWindowDays > 0 && opts.Filters.TimeRange.IsZero() {
		windowStart := time.Now().AddDate(0, 0, -settings.DefaultTimeWindowDays)
		opts.Filters.TimeRange = &domain.TimeRange{Start: &windowStart}
	}

	s.logger.Debug("executing search",
		"user_id", caller.UserID,
		"limit", opts.Limit,
		"include_hidden", opts.IncludeHidden,
		"acl_entries", len(opts.Filters.AccessControlList),
	)

	results, total, err := s.searchEngine.Search(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	return &domain.SearchResult{
		Query:      query,
		Results:    results,
		TotalCount: total,
		Took:       time.Since(start),
	}, nil
}

// GetDocumentChunks fetches one document's chunks by identity
func (s *searchService) GetDocumentChunks(ctx context.Context, caller *domain.AuthContext, request domain.ChunkRequest) ([]*domain.Chunk, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	return s.searchEngine.RetrieveDocumentChunks(ctx, request)
}

// InvalidateACL drops a user's cached access set so the next search
// re-derives it from fresh claims
func (s *searchService) InvalidateACL(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrInvalidInput
	}
	if s.aclStore == nil {
		return nil
	}
	return s.aclStore.Invalidate(ctx, userID)
}

// aclEntries resolves the caller's access set, preferring the cached
// pre-computed set and falling back to the claims-derived entries
func (s *searchService) aclEntries(ctx context.Context, caller *domain.AuthContext) []string {
	derived := caller.ACLEntries()
	if s.aclStore == nil || caller.UserID == "" {
		return derived
	}

	cached, err := s.aclStore.GetEntries(ctx, caller.UserID)
	if err == nil {
		return cached
	}
	if err != domain.ErrNotFound {
		s.logger.Warn("acl cache lookup failed", "user_id", caller.UserID, "error", err)
		return derived
	}

	if err := s.aclStore.SaveEntries(ctx, caller.UserID, derived); err != nil {
		s.logger.Warn("acl cache save failed", "user_id", caller.UserID, "error", err)
	}
	return derived
}
