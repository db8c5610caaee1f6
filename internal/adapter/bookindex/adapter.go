// Package bookindex bridges record books to the search engine: it flattens
// records into searchable documents and mirrors record mutations into
// engine calls.
package bookindex

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"bookbot/internal/domain"
	"bookbot/internal/engine"
	"bookbot/internal/logger"
	"bookbot/internal/port"
)

// MinSearchLength is the shortest free-text query the adapter accepts,
// counted in characters, not bytes. Callers must check it before handing
// user input to SearchRecords.
const MinSearchLength = 3

type Adapter struct {
	engine *engine.Engine
	log    *slog.Logger
}

func New(eng *engine.Engine) *Adapter {
	return &Adapter{
		engine: eng,
		log:    logger.WithComponent("bookindex"),
	}
}

// InitializeBookIndex creates the index for a book if absent, declaring
// every scalar and multi-value field as text. Reports whether a new index
// was created.
func (a *Adapter) InitializeBookIndex(book string, fields, multiValueFields []string) (bool, error) {
	mapping := domain.Mapping{}
	for _, field := range fields {
		mapping[field] = domain.FieldMapping{Type: domain.FieldText}
	}
	for _, field := range multiValueFields {
		mapping[field] = domain.FieldMapping{Type: domain.FieldText}
	}
	if err := a.engine.CreateIndex(book, mapping); err != nil {
		if errors.Is(err, domain.ErrIndexExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IndexRecord flattens a record into a document and indexes it, returning
// the document ID.
func (a *Adapter) IndexRecord(book string, rec port.Record) (string, error) {
	doc, id := flattenRecord(rec)
	if err := a.engine.IndexDocument(book, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateRecord removes the record's previous document and indexes the
// current state. There is no in-place patch.
func (a *Adapter) UpdateRecord(book string, rec port.Record) (string, error) {
	id := recordID(rec)
	if _, err := a.engine.DeleteDocument(book, id); err != nil && !errors.Is(err, domain.ErrIndexNotFound) {
		return "", err
	}
	return a.IndexRecord(book, rec)
}

// DeleteRecord removes a record's document from the index.
func (a *Adapter) DeleteRecord(book string, recordID string) (bool, error) {
	return a.engine.DeleteDocument(book, recordID)
}

// SearchRecords runs a free-text query over a book and returns the
// matching flat documents. A query below MinSearchLength is rejected
// before the engine is touched; any engine failure degrades to an empty
// result.
func (a *Adapter) SearchRecords(book, query string, filters map[string]any, limit int) ([]domain.Document, error) {
	if query != "" {
		if utf8.RuneCountInString(query) < MinSearchLength {
			return nil, fmt.Errorf("%w: need at least %d characters", domain.ErrQueryTooShort, MinSearchLength)
		}
		hits, err := a.engine.Search(book, query, filters, limit)
		if err != nil {
			a.log.Warn("search failed", "book", book, "error", err)
			return []domain.Document{}, nil
		}
		return hitDocuments(hits), nil
	}
	if len(filters) > 0 {
		return a.scanWithFilters(book, filters, limit)
	}
	return []domain.Document{}, nil
}

// SearchRecordsByFields runs one search per term value and concatenates
// the result lists. Values that are empty or below MinSearchLength are
// skipped. Duplicates across sub-queries are not collapsed here; callers
// dedup by document ID.
func (a *Adapter) SearchRecordsByFields(book string, terms map[string]string, filters map[string]any, limit int) ([]domain.Document, error) {
	fields := make([]string, 0, len(terms))
	for field := range terms {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var docs []domain.Document
	for _, field := range fields {
		value := terms[field]
		if value == "" || utf8.RuneCountInString(value) < MinSearchLength {
			continue
		}
		hits, err := a.engine.Search(book, value, filters, limit)
		if err != nil {
			a.log.Warn("search failed", "book", book, "field", field, "error", err)
			continue
		}
		docs = append(docs, hitDocuments(hits)...)
	}
	return docs, nil
}

// scanWithFilters is the no-query path: a linear scan over every document
// with exact top-level equality matching.
func (a *Adapter) scanWithFilters(book string, filters map[string]any, limit int) ([]domain.Document, error) {
	ids, err := a.engine.DocumentIDs(book)
	if err != nil {
		a.log.Warn("filter scan failed", "book", book, "error", err)
		return []domain.Document{}, nil
	}
	var docs []domain.Document
	for _, id := range ids {
		doc, ok := a.engine.GetDocument(book, id)
		if !ok {
			continue
		}
		matches := true
		for key, want := range filters {
			got, ok := doc[key]
			if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
				matches = false
				break
			}
		}
		if matches {
			docs = append(docs, doc)
			if limit > 0 && len(docs) >= limit {
				break
			}
		}
	}
	return docs, nil
}

// flattenRecord builds the flat document: every scalar field, a guaranteed
// id, each multi-value field joined into one comma-separated string, and a
// synthetic _all field concatenating every non-id value for unweighted
// whole-record matching.
func flattenRecord(rec port.Record) (domain.Document, string) {
	doc := domain.Document{}
	for field, value := range rec.FieldValues() {
		doc[field] = value
	}
	id := recordID(rec)
	doc["id"] = id

	for field, values := range rec.MultiValues() {
		if len(values) > 0 {
			doc[field] = strings.Join(values, ", ")
		}
	}

	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var all []string
	for _, key := range keys {
		if key == "id" {
			continue
		}
		if value, ok := doc[key].(string); ok && value != "" {
			all = append(all, value)
		}
	}
	doc["_all"] = strings.Join(all, " ")
	return doc, id
}

func recordID(rec port.Record) string {
	if id := rec.FieldValues()["id"]; id != "" {
		return id
	}
	return rec.Key()
}

func hitDocuments(hits []domain.Hit) []domain.Document {
	docs := make([]domain.Document, 0, len(hits))
	for _, hit := range hits {
		docs = append(docs, hit.Document)
	}
	return docs
}
