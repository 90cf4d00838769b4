package vespa

import (
	"fmt"
	"strings"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
)

// FilterOptions controls how a filter expression is compiled
type FilterOptions struct {
	// IncludeHidden lifts the default exclusion of hidden documents
	IncludeHidden bool

	// MultiTenant enables the tenant clause; without it TenantID is ignored
	MultiTenant bool

	// RemoveTrailingAnd strips the trailing conjunction so the result is a
	// complete boolean expression rather than a fragment awaiting more
	// clauses. Set it when the expression is used as a full where-clause.
	RemoveTrailingAnd bool
}

// escapeValue escapes backslashes and double quotes so interpolated filter
// values cannot break out of their quoted YQL string.
func escapeValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}

// buildOrFilters builds a parenthesized OR-group of containment tests over
// one field. A nil value list, empty key, or no non-empty values produces
// no clause at all.
func buildOrFilters(key string, vals []string) string {
	if vals == nil {
		return ""
	}

	valid := make([]string, 0, len(vals))
	for _, val := range vals {
		if val != "" {
			valid = append(valid, val)
		}
	}
	if key == "" || len(valid) == 0 {
		return ""
	}

	eqElems := make([]string, len(valid))
	for i, elem := range valid {
		eqElems[i] = fmt.Sprintf(`%s contains "%s"`, key, escapeValue(elem))
	}
	return "(" + strings.Join(eqElems, " or ") + ") and "
}

// buildTimeFilter builds the doc_updated_at bound conditions. A nil range
// or a range with both bounds absent produces no clause.
func buildTimeFilter(timeRange *domain.TimeRange) string {
	if timeRange.IsZero() {
		return ""
	}

	var conditions []string
	if timeRange.Start != nil {
		conditions = append(conditions, fmt.Sprintf("(%s >= %d)", docUpdatedAtField, timeRange.Start.Unix()))
	}
	if timeRange.End != nil {
		conditions = append(conditions, fmt.Sprintf("(%s <= %d)", docUpdatedAtField, timeRange.End.Unix()))
	}

	return strings.Join(conditions, " and ") + " and "
}

// BuildFilters compiles an IndexFilters value into a YQL boolean filter
// expression. Clause order is fixed; every dimension with no usable values
// degrades to no clause rather than an error, so one malformed dimension
// never blocks the rest of the query.
func BuildFilters(filters domain.IndexFilters, opts FilterOptions) string {
	filterStr := ""
	if !opts.IncludeHidden {
		filterStr = fmt.Sprintf("!(%s=true) and ", hiddenField)
	}

	if opts.MultiTenant && filters.TenantID != "" {
		filterStr += fmt.Sprintf(`(%s contains "%s") and `, tenantIDField, escapeValue(filters.TenantID))
	}

	// CAREFUL touching this one, there is no second ACL check post retrieval
	if filters.AccessControlList != nil {
		filterStr += buildOrFilters(accessControlListField, filters.AccessControlList)
	}

	var sourceStrs []string
	if len(filters.SourceTypes) > 0 {
		sourceStrs = make([]string, len(filters.SourceTypes))
		for i, s := range filters.SourceTypes {
			sourceStrs[i] = s.String()
		}
	}
	filterStr += buildOrFilters(sourceTypeField, sourceStrs)

	// Connector names live in metadata_list as composite keys. A list gets
	// an OR-group; the single-name form is kept for older callers.
	if len(filters.ConnectorNames) > 0 {
		connectorFilters := make([]string, len(filters.ConnectorNames))
		for i, connector := range filters.ConnectorNames {
			entry := MetadataEntry("connector_name", connector)
			connectorFilters[i] = fmt.Sprintf(`(%s contains "%s")`, metadataListField, escapeValue(entry))
		}
		filterStr += "(" + strings.Join(connectorFilters, " or ") + ") and "
	} else if filters.ConnectorName != "" {
		entry := MetadataEntry("connector_name", filters.ConnectorName)
		filterStr += fmt.Sprintf(`(%s contains "%s") and `, metadataListField, escapeValue(entry))
	}

	// Status accepts a comma-separated list
	if filters.Status != "" {
		if strings.Contains(filters.Status, ",") {
			parts := strings.Split(filters.Status, ",")
			statusFilters := make([]string, len(parts))
			for i, status := range parts {
				entry := MetadataEntry("status", strings.TrimSpace(status))
				statusFilters[i] = fmt.Sprintf(`(%s contains "%s")`, metadataListField, escapeValue(entry))
			}
			filterStr += "(" + strings.Join(statusFilters, " or ") + ") and "
		} else {
			entry := MetadataEntry("status", filters.Status)
			filterStr += fmt.Sprintf(`(%s contains "%s") and `, metadataListField, escapeValue(entry))
		}
	}

	if filters.TicketID != "" {
		entry := MetadataEntry("id", filters.TicketID)
		filterStr += fmt.Sprintf(`(%s contains "%s") and `, metadataListField, escapeValue(entry))
	}

	var tagAttributes []string
	for _, tag := range filters.Tags {
		// A tag filters nothing unless both halves are present
		if tag.Key == "" || tag.Value == "" {
			continue
		}
		tagAttributes = append(tagAttributes, MetadataEntry(tag.Key, tag.Value))
	}
	filterStr += buildOrFilters(metadataListField, tagAttributes)

	filterStr += buildOrFilters(documentSetsField, filters.DocumentSets)

	filterStr += buildTimeFilter(filters.TimeRange)

	if opts.RemoveTrailingAnd && strings.HasSuffix(filterStr, " and ") {
		filterStr = filterStr[:len(filterStr)-len(" and ")]
	}

	return filterStr
}

// BuildIDRetrievalYQL compiles a ChunkRequest into a self-contained YQL
// expression selecting one document's chunks, optionally capped to a
// chunk-index range. A capped request without an upper bound is rejected.
func BuildIDRetrievalYQL(request domain.ChunkRequest) (string, error) {
	if err := request.Validate(); err != nil {
		return "", fmt.Errorf("chunk request: %w", err)
	}

	section := fmt.Sprintf(`(%s contains "%s"`, documentIDField, escapeValue(request.DocumentID))

	if request.IsCapped {
		minInd := 0
		if request.MinChunkInd != nil {
			minInd = *request.MinChunkInd
		}
		section += fmt.Sprintf(" and %s >= %d", chunkIDField, minInd)
		section += fmt.Sprintf(" and %s <= %d", chunkIDField, *request.MaxChunkInd)
	}

	section += ")"
	return section, nil
}
