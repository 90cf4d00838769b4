package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
	"github.com/arcline-labs/arcline-core/internal/core/ports/driven"
	"github.com/arcline-labs/arcline-core/internal/core/ports/driving"
)

// defaultListLimit bounds unpaginated document listings
const defaultListLimit = 50

// documentService implements driving.DocumentService
type documentService struct {
	documentStore driven.DocumentStore
	searchEngine  driven.SearchEngine
	logger        *slog.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentStore driven.DocumentStore,
	searchEngine driven.SearchEngine,
	logger *slog.Logger,
) driving.DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentService{
		documentStore: documentStore,
		searchEngine:  searchEngine,
		logger:        logger,
	}
}

// Upsert persists a document and indexes its chunks
func (s *documentService) Upsert(ctx context.Context, doc *domain.Document, chunks []*domain.Chunk) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}
	for _, c := range chunks {
		if c.Content == "" || c.ChunkInd < 0 {
			return domain.ErrInvalidInput
		}
	}

	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	doc.IndexedAt = now

	if err := s.documentStore.Save(ctx, doc); err != nil {
		return err
	}

	s.logger.Debug("indexing document",
		"document_id", doc.ID,
		"connector", doc.ConnectorName,
		"chunks", len(chunks))

	return s.searchEngine.Index(ctx, doc, chunks)
}

// Get retrieves a document by ID
func (s *documentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.documentStore.Get(ctx, id)
}

// ListByConnector retrieves a connector's documents with pagination
func (s *documentService) ListByConnector(ctx context.Context, connectorName string, limit, offset int) ([]*domain.Document, error) {
	if connectorName == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.documentStore.ListByConnector(ctx, connectorName, limit, offset)
}

// Count returns the total number of stored documents
func (s *documentService) Count(ctx context.Context) (int, error) {
	return s.documentStore.Count(ctx)
}

// SetHidden flips a document's visibility flag and re-indexes its
// chunks so the flag takes effect at query time
func (s *documentService) SetHidden(ctx context.Context, id string, hidden bool) error {
	if id == "" {
		return domain.ErrInvalidInput
	}

	if err := s.documentStore.SetHidden(ctx, id, hidden); err != nil {
		return err
	}

	doc, err := s.documentStore.Get(ctx, id)
	if err != nil {
		return err
	}

	chunks, err := s.searchEngine.RetrieveDocumentChunks(ctx, domain.ChunkRequest{DocumentID: id})
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return nil
	}

	s.logger.Debug("updating chunk visibility",
		"document_id", id,
		"hidden", hidden,
		"chunks", len(chunks))

	return s.searchEngine.Index(ctx, doc, chunks)
}

// Delete removes a document and its indexed chunks
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}

	chunks, err := s.searchEngine.RetrieveDocumentChunks(ctx, domain.ChunkRequest{DocumentID: id})
	if err != nil {
		return err
	}
	if len(chunks) > 0 {
		chunkIDs := make([]string, 0, len(chunks))
		for _, c := range chunks {
			chunkIDs = append(chunkIDs, c.ID)
		}
		if err := s.searchEngine.Delete(ctx, chunkIDs); err != nil {
			return err
		}
	}

	return s.documentStore.Delete(ctx, id)
}
