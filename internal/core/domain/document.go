package domain

import "time"

// Document represents an indexed document from a connector
type Document struct {
	ID            string            `json:"id"`
	ConnectorName string            `json:"connector_name"`
	SourceType    SourceType        `json:"source_type"`
	ExternalID    string            `json:"external_id"` // ID from the source system
	Title         string            `json:"title"`
	Link          string            `json:"link,omitempty"`
	Hidden        bool              `json:"hidden"`
	Status        string            `json:"status,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	DocumentSets  []string          `json:"document_sets,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	IndexedAt     time.Time         `json:"indexed_at"`
}

// Chunk represents a searchable chunk of a document
type Chunk struct {
	ID           string     `json:"id"`
	DocumentID   string     `json:"document_id"`
	ChunkInd     int        `json:"chunk_ind"` // Chunk position within document
	Content      string     `json:"content"`
	TenantID     string     `json:"tenant_id,omitempty"`
	SourceType   SourceType `json:"source_type,omitempty"`
	Hidden       bool       `json:"hidden"`
	AccessList   []string   `json:"access_list,omitempty"`   // Allowed principal tokens
	MetadataList []string   `json:"metadata_list,omitempty"` // Composite key===value entries
	DocumentSets []string   `json:"document_sets,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DocumentWithChunks combines a document with its chunks
type DocumentWithChunks struct {
	Document *Document `json:"document"`
	Chunks   []*Chunk  `json:"chunks"`
}
