package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
	"github.com/arcline-labs/arcline-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using PostgreSQL
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Save creates or updates a document
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO documents (id, connector_name, source_type, external_id, title, link,
							   hidden, status, metadata, document_sets,
							   created_at, updated_at, indexed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			connector_name = EXCLUDED.connector_name,
			source_type = EXCLUDED.source_type,
			external_id = EXCLUDED.external_id,
			title = EXCLUDED.title,
			link = EXCLUDED.link,
			hidden = EXCLUDED.hidden,
			status = EXCLUDED.status,
			metadata = EXCLUDED.metadata,
			document_sets = EXCLUDED.document_sets,
			updated_at = EXCLUDED.updated_at,
			indexed_at = EXCLUDED.indexed_at
	`

	_, err = s.db.ExecContext(ctx, query,
		doc.ID,
		doc.ConnectorName,
		string(doc.SourceType),
		doc.ExternalID,
		doc.Title,
		doc.Link,
		doc.Hidden,
		doc.Status,
		metadataJSON,
		pq.Array(doc.DocumentSets),
		doc.CreatedAt,
		doc.UpdatedAt,
		NullTime(doc.IndexedAt),
	)
	return err
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	query := `
		SELECT id, connector_name, source_type, external_id, title, link,
			   hidden, status, metadata, document_sets,
			   created_at, updated_at, indexed_at
		FROM documents
		WHERE id = $1
	`

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// SetHidden marks a document hidden or visible
func (s *DocumentStore) SetHidden(ctx context.Context, id string, hidden bool) error {
	query := `UPDATE documents SET hidden = $2, updated_at = NOW() WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id, hidden)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByConnector retrieves documents for a connector with pagination
func (s *DocumentStore) ListByConnector(ctx context.Context, connectorName string, limit, offset int) ([]*domain.Document, error) {
	query := `
		SELECT id, connector_name, source_type, external_id, title, link,
			   hidden, status, metadata, document_sets,
			   created_at, updated_at, indexed_at
		FROM documents
		WHERE connector_name = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, connectorName, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Delete deletes a document
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return err
}

// Count returns total document count
func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

// scanner abstracts sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row scanner) (*domain.Document, error) {
	var doc domain.Document
	var metadataJSON []byte
	var documentSets pq.StringArray
	var indexedAt sql.NullTime

	err := row.Scan(
		&doc.ID,
		&doc.ConnectorName,
		(*string)(&doc.SourceType),
		&doc.ExternalID,
		&doc.Title,
		&doc.Link,
		&doc.Hidden,
		&doc.Status,
		&metadataJSON,
		&documentSets,
		&doc.CreatedAt,
		&doc.UpdatedAt,
		&indexedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &doc.Metadata); err != nil {
			return nil, err
		}
	}
	doc.DocumentSets = documentSets
	if indexedAt.Valid {
		doc.IndexedAt = indexedAt.Time
	}

	return &doc, nil
}
