package driven

import (
	"context"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
)

// DocumentStore handles document persistence (PostgreSQL)
type DocumentStore interface {
	// Save creates or updates a document
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// SetHidden marks a document hidden or visible
	SetHidden(ctx context.Context, id string, hidden bool) error

	// ListByConnector retrieves documents for a connector with pagination
	ListByConnector(ctx context.Context, connectorName string, limit, offset int) ([]*domain.Document, error)

	// Delete deletes a document
	Delete(ctx context.Context, id string) error

	// Count returns total document count
	Count(ctx context.Context) (int, error)
}
