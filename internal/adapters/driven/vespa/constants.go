package vespa

// Chunk schema field names. These must match the deployed Vespa schema
// exactly or filter clauses silently match nothing.
const (
	hiddenField            = "hidden"
	tenantIDField          = "tenant_id"
	accessControlListField = "access_control_list"
	sourceTypeField        = "source_type"
	metadataListField      = "metadata_list"
	documentSetsField      = "document_sets"
	docUpdatedAtField      = "doc_updated_at"
	documentIDField        = "document_id"
	chunkIDField           = "chunk_id"
)

// indexSeparator joins a logical attribute name and its value into one
// metadata_list entry. The same token is used on the write path (see
// MetadataEntry); filters composed with any other separator never match.
const indexSeparator = "==="

// MetadataEntry composes a metadata_list entry from an attribute name and
// value. Indexing callers must use this to stay in sync with the filter
// compiler.
func MetadataEntry(key, value string) string {
	return key + indexSeparator + value
}
