package port

import "bookbot/internal/domain"

// Record is what a domain record must expose to be searchable: a stable
// identity (or derivable key), its scalar fields, and its multi-value
// fields in insertion order.
type Record interface {
	Key() string
	FieldValues() map[string]string
	MultiValues() map[string][]string
}

// RecordIndex bridges record-store mutations and queries to the search
// engine.
type RecordIndex interface {
	// InitializeBookIndex creates the index for a book if absent,
	// declaring every field as text. Reports whether it was created.
	InitializeBookIndex(book string, fields, multiValueFields []string) (bool, error)

	// IndexRecord flattens and indexes a record, returning its document ID.
	IndexRecord(book string, rec Record) (string, error)

	// UpdateRecord is delete-then-insert, not an in-place patch.
	UpdateRecord(book string, rec Record) (string, error)

	DeleteRecord(book string, recordID string) (bool, error)

	// SearchRecords runs a free-text query. Queries shorter than
	// MinSearchLength fail before reaching the engine.
	SearchRecords(book, query string, filters map[string]any, limit int) ([]domain.Document, error)

	// SearchRecordsByFields runs one search per term value and concatenates
	// the results without deduplication; callers collapse duplicates by ID.
	SearchRecordsByFields(book string, terms map[string]string, filters map[string]any, limit int) ([]domain.Document, error)
}
