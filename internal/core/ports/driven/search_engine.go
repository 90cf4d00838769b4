package driven

import (
	"context"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
)

// SearchEngine handles search indexing and querying (Vespa)
type SearchEngine interface {
	// Index indexes a document's chunks. Document-level attributes
	// (visibility, connector, status, metadata) are taken from doc so
	// the indexed entries match what the filter compiler emits.
	Index(ctx context.Context, doc *domain.Document, chunks []*domain.Chunk) error

	// Search performs a filtered search query
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]*domain.RankedChunk, int, error)

	// RetrieveDocumentChunks fetches one document's chunks by identity,
	// optionally capped to a chunk-index range
	RetrieveDocumentChunks(ctx context.Context, request domain.ChunkRequest) ([]*domain.Chunk, error)

	// Delete deletes chunks by IDs
	Delete(ctx context.Context, chunkIDs []string) error

	// HealthCheck verifies the search engine is available
	HealthCheck(ctx context.Context) error
}
