package driving

import (
	"context"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
)

// SearchService handles document search operations
type SearchService interface {
	// Search performs a filtered search on behalf of the given caller.
	// The caller's ACL entries always override any entries supplied in
	// the options.
	Search(ctx context.Context, caller *domain.AuthContext, query string, opts domain.SearchOptions) (*domain.SearchResult, error)

	// GetDocumentChunks fetches one document's chunks by identity,
	// optionally capped to a chunk-index range
	GetDocumentChunks(ctx context.Context, caller *domain.AuthContext, request domain.ChunkRequest) ([]*domain.Chunk, error)

	// InvalidateACL drops a user's cached access entries, forcing the
	// next search to re-derive them from that user's claims
	InvalidateACL(ctx context.Context, userID string) error
}
