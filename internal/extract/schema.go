// Package extract implements extract(snapshot, schema, selector?) -> value
// (spec.md §4.6): a minimal JSON-Schema-dialect-driven scrape over a
// semantic tree. The scoring-based field matcher is grounded on the
// teacher's header-inference approach for ARIA table rows
// (cpunion-agent-browser-go/snapshot.go's role-bucket classification),
// generalized from a fixed role bucket into an open per-property scoring
// function.
package extract

// Schema is the minimal JSON-Schema dialect of §4.6: type plus, depending on
// type, properties (object) or items (array).
type Schema struct {
	Type       string // "array" | "object" | "string" | "number" | "integer" | "boolean"
	Properties map[string]Schema
	Items      *Schema
}
