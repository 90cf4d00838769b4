package vespa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
	"github.com/arcline-labs/arcline-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SearchEngine = (*SearchEngine)(nil)

// SearchEngine implements driven.SearchEngine using Vespa
type SearchEngine struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds Vespa connection configuration
type Config struct {
	// BaseURL is the Vespa endpoint (e.g., http://localhost:19071)
	BaseURL string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// NewSearchEngine creates a new Vespa-backed SearchEngine
func NewSearchEngine(cfg Config) *SearchEngine {
	return &SearchEngine{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// vespaDocument represents a document in Vespa format
type vespaDocument struct {
	Fields vespaFields `json:"fields"`
}

type vespaFields struct {
	DocumentID   string   `json:"document_id"`
	ChunkID      int      `json:"chunk_id"`
	Content      string   `json:"content"`
	TenantID     string   `json:"tenant_id,omitempty"`
	SourceType   string   `json:"source_type,omitempty"`
	Hidden       bool     `json:"hidden"`
	AccessList   []string `json:"access_control_list,omitempty"`
	MetadataList []string `json:"metadata_list,omitempty"`
	DocumentSets []string `json:"document_sets,omitempty"`
	DocUpdatedAt int64    `json:"doc_updated_at,omitempty"`
}

// Index indexes a document's chunks. Document-level attributes are
// flattened into each chunk; metadata_list entries use the same
// composite form the filter compiler matches against.
func (s *SearchEngine) Index(ctx context.Context, doc *domain.Document, chunks []*domain.Chunk) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}
	for _, chunk := range chunks {
		if err := s.indexChunk(ctx, doc, chunk); err != nil {
			return fmt.Errorf("failed to index chunk %d of %s: %w", chunk.ChunkInd, doc.ID, err)
		}
	}
	return nil
}

// metadataEntries composes the document's metadata_list for indexing
func metadataEntries(doc *domain.Document) []string {
	var entries []string
	if doc.ConnectorName != "" {
		entries = append(entries, MetadataEntry("connector_name", doc.ConnectorName))
	}
	if doc.Status != "" {
		entries = append(entries, MetadataEntry("status", doc.Status))
	}
	for key, value := range doc.Metadata {
		if key == "" || value == "" {
			continue
		}
		entries = append(entries, MetadataEntry(key, value))
	}
	return entries
}

func (s *SearchEngine) indexChunk(ctx context.Context, parent *domain.Document, chunk *domain.Chunk) error {
	var updatedAt int64
	if !parent.UpdatedAt.IsZero() {
		updatedAt = parent.UpdatedAt.Unix()
	}

	doc := vespaDocument{
		Fields: vespaFields{
			DocumentID:   parent.ID,
			ChunkID:      chunk.ChunkInd,
			Content:      chunk.Content,
			TenantID:     chunk.TenantID,
			SourceType:   parent.SourceType.String(),
			Hidden:       parent.Hidden,
			AccessList:   chunk.AccessList,
			MetadataList: metadataEntries(parent),
			DocumentSets: parent.DocumentSets,
			DocUpdatedAt: updatedAt,
		},
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	// Vespa document API: POST /document/v1/{namespace}/{doctype}/docid/{docid}.
	// The docid mirrors what hitToChunk reconstructs on the read path.
	url := fmt.Sprintf("%s/document/v1/arcline/chunk/docid/%s-%d", s.baseURL, parent.ID, chunk.ChunkInd)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("vespa index failed: %s - %s", resp.Status, string(respBody))
	}

	return nil
}

// Search performs a filtered search query. The compiled filter expression
// is spliced in front of the text condition, so it keeps its trailing
// conjunction.
func (s *SearchEngine) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]*domain.RankedChunk, int, error) {
	yql := s.buildYQL(query, opts)

	searchReq := map[string]interface{}{
		"yql":             yql,
		"hits":            opts.Limit,
		"offset":          opts.Offset,
		"ranking.profile": "bm25",
	}

	searchResp, err := s.runQuery(ctx, searchReq)
	if err != nil {
		return nil, 0, err
	}

	results := make([]*domain.RankedChunk, 0, len(searchResp.Root.Children))
	for _, hit := range searchResp.Root.Children {
		ranked := &domain.RankedChunk{
			Chunk: hitToChunk(hit.Fields),
			Score: hit.Relevance,
		}
		results = append(results, ranked)
	}

	totalCount := int(searchResp.Root.Fields.TotalCount)
	return results, totalCount, nil
}

func (s *SearchEngine) buildYQL(query string, opts domain.SearchOptions) string {
	// With no text condition the filters alone form the where clause,
	// so the trailing conjunction must go
	filterStr := BuildFilters(opts.Filters, FilterOptions{
		IncludeHidden:     opts.IncludeHidden,
		MultiTenant:       opts.MultiTenant,
		RemoveTrailingAnd: query == "",
	})

	if query == "" {
		if filterStr == "" {
			filterStr = "true"
		}
		return fmt.Sprintf("select * from chunk where %s", filterStr)
	}

	return fmt.Sprintf(`select * from chunk where %scontent contains "%s"`, filterStr, escapeValue(query))
}

// RetrieveDocumentChunks fetches one document's chunks by identity,
// optionally capped to a chunk-index range.
func (s *SearchEngine) RetrieveDocumentChunks(ctx context.Context, request domain.ChunkRequest) ([]*domain.Chunk, error) {
	section, err := BuildIDRetrievalYQL(request)
	if err != nil {
		return nil, err
	}

	searchReq := map[string]interface{}{
		"yql":             fmt.Sprintf("select * from chunk where %s", section),
		"hits":            400,
		"ranking.profile": "unranked",
	}

	searchResp, err := s.runQuery(ctx, searchReq)
	if err != nil {
		return nil, err
	}

	chunks := make([]*domain.Chunk, 0, len(searchResp.Root.Children))
	for _, hit := range searchResp.Root.Children {
		chunks = append(chunks, hitToChunk(hit.Fields))
	}
	return chunks, nil
}

func (s *SearchEngine) runQuery(ctx context.Context, searchReq map[string]interface{}) (*vespaSearchResponse, error) {
	body, err := json.Marshal(searchReq)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/search/", s.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("vespa search failed: %s - %s", resp.Status, string(respBody))
	}

	var searchResp vespaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, err
	}
	return &searchResp, nil
}

func hitToChunk(fields vespaFields) *domain.Chunk {
	chunk := &domain.Chunk{
		DocumentID:   fields.DocumentID,
		ChunkInd:     fields.ChunkID,
		Content:      fields.Content,
		TenantID:     fields.TenantID,
		SourceType:   domain.SourceType(fields.SourceType),
		Hidden:       fields.Hidden,
		AccessList:   fields.AccessList,
		MetadataList: fields.MetadataList,
		DocumentSets: fields.DocumentSets,
	}
	if fields.DocUpdatedAt > 0 {
		chunk.UpdatedAt = time.Unix(fields.DocUpdatedAt, 0).UTC()
	}
	chunk.ID = fmt.Sprintf("%s-%d", fields.DocumentID, fields.ChunkID)
	return chunk
}

// vespaSearchResponse represents Vespa's search response format
type vespaSearchResponse struct {
	Root struct {
		Fields struct {
			TotalCount int64 `json:"totalCount"`
		} `json:"fields"`
		Children []struct {
			Relevance float64     `json:"relevance"`
			Fields    vespaFields `json:"fields"`
		} `json:"children"`
	} `json:"root"`
}

// Delete deletes chunks by IDs
func (s *SearchEngine) Delete(ctx context.Context, chunkIDs []string) error {
	for _, id := range chunkIDs {
		if err := s.deleteChunk(ctx, id); err != nil {
			return fmt.Errorf("failed to delete chunk %s: %w", id, err)
		}
	}
	return nil
}

func (s *SearchEngine) deleteChunk(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/document/v1/arcline/chunk/docid/%s", s.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 404 is OK - document already deleted
	if resp.StatusCode >= 400 && resp.StatusCode != 404 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("vespa delete failed: %s - %s", resp.Status, string(respBody))
	}

	return nil
}

// HealthCheck verifies the search engine is available
func (s *SearchEngine) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/state/v1/health", s.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vespa health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vespa unhealthy: %s", resp.Status)
	}

	return nil
}
