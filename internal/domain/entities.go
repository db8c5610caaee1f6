package domain

// FieldType is a declared field type in an index mapping.
type FieldType string

const (
	FieldText    FieldType = "text"
	FieldKeyword FieldType = "keyword"
	FieldInteger FieldType = "integer"
	FieldFloat   FieldType = "float"
	FieldBoolean FieldType = "boolean"
	FieldDate    FieldType = "date"
)

// FieldMapping declares the type of a single document field.
type FieldMapping struct {
	Type FieldType `json:"type"`
}

// Mapping maps dotted field paths to their declared types. Fields absent
// from the mapping are treated as text.
type Mapping map[string]FieldMapping

// Document is a flattened, normalized record keyed by field name. Values
// are scalars, nested maps, or slices.
type Document map[string]any

// Hit is a single ranked search result.
type Hit struct {
	ID       string   `json:"id"`
	Score    float64  `json:"score"`
	Document Document `json:"document"`
}

// IndexStats summarizes one index.
type IndexStats struct {
	DocumentCount int     `json:"document_count"`
	UniqueTerms   int     `json:"unique_terms"`
	Mapping       Mapping `json:"mapping"`
}
