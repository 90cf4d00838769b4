package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
	"github.com/arcline-labs/arcline-core/internal/core/ports/driving"
)

// Response types

// ErrorResponse is the shape of every error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse reports a health state
type StatusResponse struct {
	Status string `json:"status"`
}

// VersionResponse reports the running version
type VersionResponse struct {
	Version string `json:"version"`
}

// Health endpoints

// handleHealth returns the liveness status of the API
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady checks the server's backing connections
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion returns the current API version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Search endpoints

type searchRequest struct {
	Query         string              `json:"query"`
	Limit         int                 `json:"limit,omitempty"`
	Offset        int                 `json:"offset,omitempty"`
	IncludeHidden bool                `json:"include_hidden,omitempty"`
	Filters       domain.IndexFilters `json:"filters,omitempty"`
}

// handleSearch executes a filtered search for the authenticated caller.
// Any access_control_list supplied in the body is discarded by the
// search service in favour of the caller's own entries.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	opts := domain.SearchOptions{
		Limit:         req.Limit,
		Offset:        req.Offset,
		Filters:       req.Filters,
		IncludeHidden: req.IncludeHidden,
	}

	result, err := s.searchService.Search(r.Context(), GetAuthContext(r.Context()), req.Query, opts)
	if err != nil {
		switch err {
		case domain.ErrUnauthorized:
			writeError(w, http.StatusUnauthorized, "unauthorized")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "invalid search request")
		default:
			writeError(w, http.StatusInternalServerError, "search failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Document endpoints

// handleGetDocumentChunks fetches one document's chunks by identity.
// Passing max_chunk caps the range; min_chunk defaults to 0.
func (s *Server) handleGetDocumentChunks(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing document id")
		return
	}

	req := domain.ChunkRequest{DocumentID: id}

	q := r.URL.Query()
	if raw := q.Get("min_chunk"); raw != "" {
		min, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid min_chunk")
			return
		}
		req.MinChunkInd = &min
		req.IsCapped = true
	}
	if raw := q.Get("max_chunk"); raw != "" {
		max, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid max_chunk")
			return
		}
		req.MaxChunkInd = &max
		req.IsCapped = true
	}

	chunks, err := s.searchService.GetDocumentChunks(r.Context(), GetAuthContext(r.Context()), req)
	if err != nil {
		switch err {
		case domain.ErrUnauthorized:
			writeError(w, http.StatusUnauthorized, "unauthorized")
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "invalid chunk range")
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get chunks")
		}
		return
	}

	writeJSON(w, http.StatusOK, chunks)
}

type upsertDocumentRequest struct {
	ConnectorName string            `json:"connector_name"`
	SourceType    domain.SourceType `json:"source_type"`
	ExternalID    string            `json:"external_id,omitempty"`
	Title         string            `json:"title"`
	Link          string            `json:"link,omitempty"`
	Hidden        bool              `json:"hidden,omitempty"`
	Status        string            `json:"status,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	DocumentSets  []string          `json:"document_sets,omitempty"`
	Chunks        []upsertChunk     `json:"chunks"`
}

type upsertChunk struct {
	ChunkInd   int      `json:"chunk_ind"`
	Content    string   `json:"content"`
	TenantID   string   `json:"tenant_id,omitempty"`
	AccessList []string `json:"access_list,omitempty"`
}

// handleUpsertDocument stores a document and indexes its chunks
func (s *Server) handleUpsertDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing document id")
		return
	}

	var req upsertDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc := &domain.Document{
		ID:            id,
		ConnectorName: req.ConnectorName,
		SourceType:    req.SourceType,
		ExternalID:    req.ExternalID,
		Title:         req.Title,
		Link:          req.Link,
		Hidden:        req.Hidden,
		Status:        req.Status,
		Metadata:      req.Metadata,
		DocumentSets:  req.DocumentSets,
	}

	chunks := make([]*domain.Chunk, 0, len(req.Chunks))
	for _, c := range req.Chunks {
		chunks = append(chunks, &domain.Chunk{
			DocumentID: id,
			ChunkInd:   c.ChunkInd,
			Content:    c.Content,
			TenantID:   c.TenantID,
			AccessList: c.AccessList,
		})
	}

	if err := s.docService.Upsert(r.Context(), doc, chunks); err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "invalid document")
		default:
			writeError(w, http.StatusInternalServerError, "failed to store document")
		}
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// handleListDocuments lists a connector's documents
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	connector := q.Get("connector")
	if connector == "" {
		writeError(w, http.StatusBadRequest, "missing connector parameter")
		return
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	docs, err := s.docService.ListByConnector(r.Context(), connector, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}

	writeJSON(w, http.StatusOK, docs)
}

// handleGetDocument returns a stored document by ID
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing document id")
		return
	}

	doc, err := s.docService.Get(r.Context(), id)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to get document")
		}
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

type setHiddenRequest struct {
	Hidden bool `json:"hidden"`
}

// handleSetDocumentHidden flips a document's visibility flag
func (s *Server) handleSetDocumentHidden(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing document id")
		return
	}

	var req setHiddenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.docService.SetHidden(r.Context(), id, req.Hidden); err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update document")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"hidden": req.Hidden})
}

// handleDeleteDocument removes a document and its indexed chunks
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing document id")
		return
	}

	if err := s.docService.Delete(r.Context(), id); err != nil {
		switch err {
		case domain.ErrNotFound:
			writeError(w, http.StatusNotFound, "document not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete document")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Admin endpoints

// handleGetAdminStats reports index-wide counters
func (s *Server) handleGetAdminStats(w http.ResponseWriter, r *http.Request) {
	count, err := s.docService.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"documents": count})
}

// handleInvalidateACL drops a user's cached access entries
func (s *Server) handleInvalidateACL(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	if err := s.searchService.InvalidateACL(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to invalidate acl cache")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Settings endpoints

// handleGetSettings returns the team settings
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsService.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateSettings applies a partial settings update
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req driving.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := s.settingsService.Update(r.Context(), authCtx.UserID, req)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "invalid settings values")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update settings")
		}
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
