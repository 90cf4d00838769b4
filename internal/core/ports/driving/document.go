package driving

import (
	"context"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
)

// DocumentService manages stored documents and their index visibility
type DocumentService interface {
	// Upsert persists a document and indexes its chunks
	Upsert(ctx context.Context, doc *domain.Document, chunks []*domain.Chunk) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// ListByConnector retrieves a connector's documents with pagination
	ListByConnector(ctx context.Context, connectorName string, limit, offset int) ([]*domain.Document, error)

	// Count returns the total number of stored documents
	Count(ctx context.Context) (int, error)

	// SetHidden marks a document hidden or visible and pushes the new
	// flag to the indexed chunks
	SetHidden(ctx context.Context, id string, hidden bool) error

	// Delete removes a document and its indexed chunks
	Delete(ctx context.Context, id string) error
}
