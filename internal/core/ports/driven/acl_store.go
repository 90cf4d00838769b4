package driven

import "context"

// ACLStore caches the pre-computed access-control entry set per user.
// The entries returned here are authoritative: the search service passes
// them straight into the index filters with no second check post retrieval.
type ACLStore interface {
	// GetEntries returns the cached ACL entries for a user, or
	// domain.ErrNotFound when no entry set is cached
	GetEntries(ctx context.Context, userID string) ([]string, error)

	// SaveEntries caches a user's ACL entries
	SaveEntries(ctx context.Context, userID string, entries []string) error

	// Invalidate drops a user's cached entries
	Invalidate(ctx context.Context, userID string) error
}
