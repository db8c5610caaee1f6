// Package book implements the record books (contacts, notes) the search
// engine serves. Every mutation is mirrored into the search index through
// the RecordIndex port; the records themselves live only in memory.
package book

import (
	"fmt"
	"log/slog"

	"bookbot/internal/domain"
	"bookbot/internal/logger"
	"bookbot/internal/port"
)

// Book holds one schema's records and keeps the search index in sync with
// them.
type Book struct {
	schema  *Schema
	index   port.RecordIndex
	log     *slog.Logger
	records []*Record
	byID    map[string]*Record
}

// New creates an empty book and makes sure its search index exists.
func New(schema *Schema, index port.RecordIndex) (*Book, error) {
	if _, err := index.InitializeBookIndex(schema.Name, schema.Fields, schema.MultiValue); err != nil {
		return nil, fmt.Errorf("initialize index for %s: %w", schema.Name, err)
	}
	return &Book{
		schema: schema,
		index:  index,
		log:    logger.WithComponent("book." + schema.Name),
		byID:   make(map[string]*Record),
	}, nil
}

func (b *Book) Name() string {
	return b.schema.Name
}

func (b *Book) Schema() *Schema {
	return b.schema
}

// AddRecord validates, stores and indexes a new record. A record whose
// duplicate-check fields match an existing one is rejected.
func (b *Book) AddRecord(values map[string]string) (*Record, error) {
	rec, err := NewRecord(b.schema, values)
	if err != nil {
		return nil, err
	}
	id := rec.Key()
	if _, exists := b.byID[id]; exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateRecord, id)
	}
	b.records = append(b.records, rec)
	b.byID[id] = rec
	if _, err := b.index.IndexRecord(b.schema.Name, rec); err != nil {
		b.log.Warn("index record failed", "id", id, "error", err)
	}
	return rec, nil
}

// Get returns the record with the given derived ID.
func (b *Book) Get(id string) (*Record, bool) {
	rec, ok := b.byID[id]
	return rec, ok
}

// All returns every record in insertion order.
func (b *Book) All() []*Record {
	return append([]*Record(nil), b.records...)
}

// Len returns the number of records.
func (b *Book) Len() int {
	return len(b.records)
}

// Find runs a free-text search and maps the result documents back to
// records. Query-length validation errors from the adapter propagate.
func (b *Book) Find(query string, limit int) ([]*Record, error) {
	docs, err := b.index.SearchRecords(b.schema.Name, query, nil, limit)
	if err != nil {
		return nil, err
	}
	return b.matchRecords(docs), nil
}

// FindByFields searches per-field terms and maps documents back to
// records, collapsing duplicates across sub-queries by derived ID.
func (b *Book) FindByFields(terms map[string]string, limit int) ([]*Record, error) {
	docs, err := b.index.SearchRecordsByFields(b.schema.Name, terms, nil, limit)
	if err != nil {
		return nil, err
	}
	return b.matchRecords(docs), nil
}

// matchRecords resolves flat documents to live records, dropping documents
// that no longer map to one and duplicates by ID.
func (b *Book) matchRecords(docs []domain.Document) []*Record {
	seen := make(map[string]bool)
	var matched []*Record
	for _, doc := range docs {
		id, _ := doc["id"].(string)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if rec, ok := b.byID[id]; ok {
			matched = append(matched, rec)
		}
	}
	return matched
}

// UpdateRecord applies scalar field updates to a record and re-indexes it.
// Updates are validated before any state changes; if the derived ID moves
// onto an existing record the update is rejected.
func (b *Book) UpdateRecord(id string, updates map[string]string) (*Record, error) {
	rec, ok := b.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
	}
	validated := make(map[string]string, len(updates))
	for field, value := range updates {
		if !b.schema.isScalarField(field) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedField, field)
		}
		v, err := b.schema.Validate(field, value)
		if err != nil {
			return nil, err
		}
		validated[field] = v
	}
	next := make(map[string]string, len(rec.fields)+len(validated))
	for field, value := range rec.fields {
		next[field] = value
	}
	for field, value := range validated {
		next[field] = value
	}
	newID := keyFor(b.schema, next)
	if newID != id {
		if _, exists := b.byID[newID]; exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateRecord, newID)
		}
	}
	for field, value := range validated {
		rec.fields[field] = value
	}
	if newID != id {
		delete(b.byID, id)
		b.byID[newID] = rec
		if _, err := b.index.DeleteRecord(b.schema.Name, id); err != nil {
			b.log.Warn("delete stale document failed", "id", id, "error", err)
		}
	}
	if _, err := b.index.UpdateRecord(b.schema.Name, rec); err != nil {
		b.log.Warn("reindex record failed", "id", newID, "error", err)
	}
	return rec, nil
}

// DeleteRecord removes a record and its search document.
func (b *Book) DeleteRecord(id string) error {
	rec, ok := b.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
	}
	delete(b.byID, id)
	for i, r := range b.records {
		if r == rec {
			b.records = append(b.records[:i], b.records[i+1:]...)
			break
		}
	}
	if _, err := b.index.DeleteRecord(b.schema.Name, id); err != nil {
		b.log.Warn("delete document failed", "id", id, "error", err)
	}
	return nil
}

// AddMultiValue appends an entry to a record's multi-value field and
// re-indexes the record.
func (b *Book) AddMultiValue(id, field, value string) error {
	return b.mutateMultiValue(id, func(rec *Record) error {
		return rec.AddMultiValue(field, value)
	})
}

// ReplaceMultiValue swaps one entry of a record's multi-value field.
func (b *Book) ReplaceMultiValue(id, field, oldValue, newValue string) error {
	return b.mutateMultiValue(id, func(rec *Record) error {
		return rec.ReplaceMultiValue(field, oldValue, newValue)
	})
}

// RemoveMultiValue deletes one entry of a record's multi-value field.
func (b *Book) RemoveMultiValue(id, field, value string) error {
	return b.mutateMultiValue(id, func(rec *Record) error {
		return rec.RemoveMultiValue(field, value)
	})
}

func (b *Book) mutateMultiValue(id string, mutate func(*Record) error) error {
	rec, ok := b.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
	}
	if err := mutate(rec); err != nil {
		return err
	}
	if _, err := b.index.UpdateRecord(b.schema.Name, rec); err != nil {
		b.log.Warn("reindex record failed", "id", id, "error", err)
	}
	return nil
}
