package vespa

import (
	"errors"
	"testing"
	"time"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
)

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }

func TestBuildFilters_EmptyInput(t *testing.T) {
	got := BuildFilters(domain.IndexFilters{}, FilterOptions{IncludeHidden: true})
	if got != "" {
		t.Errorf("expected empty string for empty filters, got %q", got)
	}
}

func TestBuildFilters_HiddenClause(t *testing.T) {
	tests := []struct {
		name     string
		opts     FilterOptions
		expected string
	}{
		{
			name:     "hidden excluded by default",
			opts:     FilterOptions{},
			expected: "!(hidden=true) and ",
		},
		{
			name:     "hidden excluded and stripped",
			opts:     FilterOptions{RemoveTrailingAnd: true},
			expected: "!(hidden=true)",
		},
		{
			name:     "hidden included",
			opts:     FilterOptions{IncludeHidden: true},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFilters(domain.IndexFilters{}, tt.opts)
			if got != tt.expected {
				t.Errorf("BuildFilters() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildFilters_TenantClause(t *testing.T) {
	filters := domain.IndexFilters{TenantID: "tenant-1"}

	got := BuildFilters(filters, FilterOptions{IncludeHidden: true, MultiTenant: true})
	want := `(tenant_id contains "tenant-1") and `
	if got != want {
		t.Errorf("multi-tenant: BuildFilters() = %q, want %q", got, want)
	}

	// Without multi-tenant mode the tenant id is ignored
	got = BuildFilters(filters, FilterOptions{IncludeHidden: true})
	if got != "" {
		t.Errorf("single-tenant: BuildFilters() = %q, want empty", got)
	}
}

func TestBuildFilters_ACLClause(t *testing.T) {
	tests := []struct {
		name     string
		acl      []string
		expected string
	}{
		{
			name:     "two entries or-grouped",
			acl:      []string{"g1", "g2"},
			expected: `(access_control_list contains "g1" or access_control_list contains "g2") and `,
		},
		{
			name:     "single entry",
			acl:      []string{"user:a"},
			expected: `(access_control_list contains "user:a") and `,
		},
		{
			name:     "nil list emits nothing",
			acl:      nil,
			expected: "",
		},
		{
			name:     "empty list emits nothing",
			acl:      []string{},
			expected: "",
		},
		{
			name:     "empty entries dropped",
			acl:      []string{"", "g1", ""},
			expected: `(access_control_list contains "g1") and `,
		},
		{
			name:     "only empty entries emits nothing",
			acl:      []string{""},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFilters(domain.IndexFilters{AccessControlList: tt.acl}, FilterOptions{IncludeHidden: true})
			if got != tt.expected {
				t.Errorf("BuildFilters() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildFilters_SourceTypeClause(t *testing.T) {
	filters := domain.IndexFilters{
		SourceTypes: []domain.SourceType{domain.SourceTypeWeb, domain.SourceTypeGithub},
	}

	got := BuildFilters(filters, FilterOptions{IncludeHidden: true})
	want := `(source_type contains "web" or source_type contains "github") and `
	if got != want {
		t.Errorf("BuildFilters() = %q, want %q", got, want)
	}
}

func TestBuildFilters_ConnectorClause(t *testing.T) {
	tests := []struct {
		name     string
		filters  domain.IndexFilters
		expected string
	}{
		{
			name:     "single connector",
			filters:  domain.IndexFilters{ConnectorName: "jira-main"},
			expected: `(metadata_list contains "connector_name===jira-main") and `,
		},
		{
			name:     "connector list or-grouped",
			filters:  domain.IndexFilters{ConnectorNames: []string{"jira-main", "gh-docs"}},
			expected: `((metadata_list contains "connector_name===jira-main") or (metadata_list contains "connector_name===gh-docs")) and `,
		},
		{
			name: "list takes precedence over single",
			filters: domain.IndexFilters{
				ConnectorName:  "ignored",
				ConnectorNames: []string{"jira-main"},
			},
			expected: `((metadata_list contains "connector_name===jira-main")) and `,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFilters(tt.filters, FilterOptions{IncludeHidden: true})
			if got != tt.expected {
				t.Errorf("BuildFilters() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildFilters_StatusClause(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		expected string
	}{
		{
			name:     "single status",
			status:   "open",
			expected: `(metadata_list contains "status===open") and `,
		},
		{
			name:     "comma-separated statuses trimmed and or-grouped",
			status:   "open, closed",
			expected: `((metadata_list contains "status===open") or (metadata_list contains "status===closed")) and `,
		},
		{
			name:     "no status",
			status:   "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFilters(domain.IndexFilters{Status: tt.status}, FilterOptions{IncludeHidden: true})
			if got != tt.expected {
				t.Errorf("BuildFilters() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildFilters_TicketIDClause(t *testing.T) {
	got := BuildFilters(domain.IndexFilters{TicketID: "TICK-42"}, FilterOptions{IncludeHidden: true})
	want := `(metadata_list contains "id===TICK-42") and `
	if got != want {
		t.Errorf("BuildFilters() = %q, want %q", got, want)
	}
}

func TestBuildFilters_TagClause(t *testing.T) {
	tests := []struct {
		name     string
		tags     []domain.Tag
		expected string
	}{
		{
			name: "tags serialized with composite keys",
			tags: []domain.Tag{
				{Key: "status", Value: "open"},
				{Key: "priority", Value: "high"},
			},
			expected: `(metadata_list contains "status===open" or metadata_list contains "priority===high") and `,
		},
		{
			name:     "tag missing value skipped",
			tags:     []domain.Tag{{Key: "status"}, {Key: "priority", Value: "high"}},
			expected: `(metadata_list contains "priority===high") and `,
		},
		{
			name:     "tag missing key skipped",
			tags:     []domain.Tag{{Value: "open"}},
			expected: "",
		},
		{
			name:     "no tags",
			tags:     nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFilters(domain.IndexFilters{Tags: tt.tags}, FilterOptions{IncludeHidden: true})
			if got != tt.expected {
				t.Errorf("BuildFilters() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildFilters_DocumentSetClause(t *testing.T) {
	got := BuildFilters(domain.IndexFilters{DocumentSets: []string{"setX", "setY"}}, FilterOptions{IncludeHidden: true})
	want := `(document_sets contains "setX" or document_sets contains "setY") and `
	if got != want {
		t.Errorf("BuildFilters() = %q, want %q", got, want)
	}
}

func TestBuildFilters_TimeRangeClause(t *testing.T) {
	start := time.Unix(1700000000, 0).UTC()
	end := time.Unix(1700086400, 0).UTC()

	tests := []struct {
		name     string
		tr       *domain.TimeRange
		expected string
	}{
		{
			name:     "nil range",
			tr:       nil,
			expected: "",
		},
		{
			name:     "both bounds absent",
			tr:       &domain.TimeRange{},
			expected: "",
		},
		{
			name:     "start only",
			tr:       &domain.TimeRange{Start: timePtr(start)},
			expected: "(doc_updated_at >= 1700000000) and ",
		},
		{
			name:     "end only",
			tr:       &domain.TimeRange{End: timePtr(end)},
			expected: "(doc_updated_at <= 1700086400) and ",
		},
		{
			name:     "both bounds",
			tr:       &domain.TimeRange{Start: timePtr(start), End: timePtr(end)},
			expected: "(doc_updated_at >= 1700000000) and (doc_updated_at <= 1700086400) and ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFilters(domain.IndexFilters{TimeRange: tt.tr}, FilterOptions{IncludeHidden: true})
			if got != tt.expected {
				t.Errorf("BuildFilters() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildFilters_ClauseOrdering(t *testing.T) {
	start := time.Unix(1700000000, 0).UTC()
	filters := domain.IndexFilters{
		TenantID:          "t1",
		AccessControlList: []string{"user:a"},
		SourceTypes:       []domain.SourceType{domain.SourceTypeJira},
		ConnectorName:     "jira-main",
		Status:            "open",
		TicketID:          "TICK-1",
		Tags:              []domain.Tag{{Key: "team", Value: "sre"}},
		DocumentSets:      []string{"setX"},
		TimeRange:         &domain.TimeRange{Start: timePtr(start)},
	}

	got := BuildFilters(filters, FilterOptions{MultiTenant: true})
	want := `!(hidden=true) and ` +
		`(tenant_id contains "t1") and ` +
		`(access_control_list contains "user:a") and ` +
		`(source_type contains "jira") and ` +
		`(metadata_list contains "connector_name===jira-main") and ` +
		`(metadata_list contains "status===open") and ` +
		`(metadata_list contains "id===TICK-1") and ` +
		`(metadata_list contains "team===sre") and ` +
		`(document_sets contains "setX") and ` +
		`(doc_updated_at >= 1700000000) and `
	if got != want {
		t.Errorf("BuildFilters() = %q, want %q", got, want)
	}
}

func TestBuildFilters_EndToEnd(t *testing.T) {
	filters := domain.IndexFilters{
		AccessControlList: []string{"user:a"},
		DocumentSets:      []string{"setX"},
	}

	got := BuildFilters(filters, FilterOptions{RemoveTrailingAnd: true})
	want := `!(hidden=true) and (access_control_list contains "user:a") and (document_sets contains "setX")`
	if got != want {
		t.Errorf("BuildFilters() = %q, want %q", got, want)
	}
}

func TestBuildFilters_Idempotent(t *testing.T) {
	filters := domain.IndexFilters{
		AccessControlList: []string{"g1", "g2"},
		Status:            "open, closed",
		DocumentSets:      []string{"setX"},
	}
	opts := FilterOptions{RemoveTrailingAnd: true}

	first := BuildFilters(filters, opts)
	second := BuildFilters(filters, opts)
	if first != second {
		t.Errorf("compilation not idempotent: %q vs %q", first, second)
	}
}

func TestBuildFilters_StripOnlyTrailingSeparator(t *testing.T) {
	filters := domain.IndexFilters{DocumentSets: []string{"set and more"}}

	// The value itself contains " and "; only the trailing separator goes
	got := BuildFilters(filters, FilterOptions{IncludeHidden: true, RemoveTrailingAnd: true})
	want := `(document_sets contains "set and more")`
	if got != want {
		t.Errorf("BuildFilters() = %q, want %q", got, want)
	}
}

func TestBuildFilters_EscapesValues(t *testing.T) {
	filters := domain.IndexFilters{
		AccessControlList: []string{`group:"quoted"`},
		TicketID:          `a\b`,
	}

	got := BuildFilters(filters, FilterOptions{IncludeHidden: true})
	want := `(access_control_list contains "group:\"quoted\"") and ` +
		`(metadata_list contains "id===a\\b") and `
	if got != want {
		t.Errorf("BuildFilters() = %q, want %q", got, want)
	}
}

func TestBuildIDRetrievalYQL(t *testing.T) {
	tests := []struct {
		name     string
		request  domain.ChunkRequest
		expected string
		wantErr  bool
	}{
		{
			name:     "uncapped",
			request:  domain.ChunkRequest{DocumentID: "doc1"},
			expected: `(document_id contains "doc1")`,
		},
		{
			name: "capped with default min",
			request: domain.ChunkRequest{
				DocumentID:  "doc1",
				IsCapped:    true,
				MaxChunkInd: intPtr(5),
			},
			expected: `(document_id contains "doc1" and chunk_id >= 0 and chunk_id <= 5)`,
		},
		{
			name: "capped with explicit bounds",
			request: domain.ChunkRequest{
				DocumentID:  "doc1",
				IsCapped:    true,
				MinChunkInd: intPtr(2),
				MaxChunkInd: intPtr(7),
			},
			expected: `(document_id contains "doc1" and chunk_id >= 2 and chunk_id <= 7)`,
		},
		{
			name: "capped without max rejected",
			request: domain.ChunkRequest{
				DocumentID: "doc1",
				IsCapped:   true,
			},
			wantErr: true,
		},
		{
			name:    "missing document id rejected",
			request: domain.ChunkRequest{IsCapped: false},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildIDRetrievalYQL(tt.request)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("BuildIDRetrievalYQL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBuildIDRetrievalYQL_EscapesDocumentID(t *testing.T) {
	got, err := BuildIDRetrievalYQL(domain.ChunkRequest{DocumentID: `doc"1`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `(document_id contains "doc\"1")`
	if got != want {
		t.Errorf("BuildIDRetrievalYQL() = %q, want %q", got, want)
	}
}
