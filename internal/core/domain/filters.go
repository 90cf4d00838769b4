package domain

import "time"

// SourceType identifies the kind of system a document was ingested from
type SourceType string

const (
	SourceTypeWeb        SourceType = "web"
	SourceTypeGithub     SourceType = "github"
	SourceTypeConfluence SourceType = "confluence"
	SourceTypeJira       SourceType = "jira"
	SourceTypeSlack      SourceType = "slack"
	SourceTypeDrive      SourceType = "google_drive"
	SourceTypeFile       SourceType = "file"
)

// String returns the wire value of the source type
func (s SourceType) String() string {
	return string(s)
}

// TimeRange restricts results by a document's last-updated instant.
// Either bound may be nil; a range with both bounds nil is a no-op.
type TimeRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// IsZero reports whether the range places no restriction at all
func (t *TimeRange) IsZero() bool {
	return t == nil || (t.Start == nil && t.End == nil)
}

// Tag is an exact key/value pair a document may carry.
// Both Key and Value must be non-empty for the tag to filter anything.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// IndexFilters aggregates every filterable dimension of a search request.
// All fields are optional; a dimension with no usable values contributes
// no clause to the compiled expression.
//
// AccessControlList is special: nil means "no ACL restriction requested"
// while a non-nil (even empty) slice means the caller's access set is
// authoritative and must be enforced.
type IndexFilters struct {
	TenantID          string       `json:"tenant_id,omitempty"`
	AccessControlList []string     `json:"access_control_list,omitempty"`
	SourceTypes       []SourceType `json:"source_types,omitempty"`

	// ConnectorName is the single-connector form kept for older callers;
	// ConnectorNames takes precedence when set.
	ConnectorName  string   `json:"connector_name,omitempty"`
	ConnectorNames []string `json:"connector_names,omitempty"`

	// Status may hold a single value or a comma-separated list
	Status   string `json:"status,omitempty"`
	TicketID string `json:"ticket_id,omitempty"`

	Tags         []Tag      `json:"tags,omitempty"`
	DocumentSets []string   `json:"document_sets,omitempty"`
	TimeRange    *TimeRange `json:"time_range,omitempty"`
}

// ChunkRequest identifies one document's chunks, optionally capped to a
// contiguous chunk-index range.
type ChunkRequest struct {
	DocumentID  string `json:"document_id"`
	IsCapped    bool   `json:"is_capped"`
	MinChunkInd *int   `json:"min_chunk_ind,omitempty"` // defaults to 0 when capped
	MaxChunkInd *int   `json:"max_chunk_ind,omitempty"` // required when capped
}

// Validate checks the request's required-field invariants
func (r ChunkRequest) Validate() error {
	if r.DocumentID == "" {
		return ErrInvalidInput
	}
	if r.IsCapped && r.MaxChunkInd == nil {
		return ErrInvalidInput
	}
	return nil
}
