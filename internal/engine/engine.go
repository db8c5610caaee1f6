// Package engine implements the in-process inverted-index search engine:
// index lifecycle, document indexing, TF-IDF ranked search, and snapshot
// persistence through a pluggable store.
package engine

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"bookbot/internal/adapter/analyzer"
	"bookbot/internal/adapter/cache"
	"bookbot/internal/domain"
	"bookbot/internal/logger"
	"bookbot/internal/port"
)

// Engine owns every IndexData instance. It is an explicit handle
// constructed once at startup and passed to collaborators; it assumes a
// single logical caller mutates a given index at a time.
type Engine struct {
	store    port.SnapshotStore
	cache    *cache.QueryCache
	log      *slog.Logger
	indices  map[string]*domain.IndexData
	mappings map[string]domain.Mapping
}

// New creates an Engine over the given snapshot store and loads every
// index named in the store's registry. Load failures are logged and
// skipped. A nil queryCache disables result caching.
func New(store port.SnapshotStore, queryCache *cache.QueryCache) *Engine {
	e := &Engine{
		store:    store,
		cache:    queryCache,
		log:      logger.WithComponent("engine"),
		indices:  make(map[string]*domain.IndexData),
		mappings: make(map[string]domain.Mapping),
	}
	e.loadAll()
	return e
}

func (e *Engine) loadAll() {
	names, err := e.store.LoadRegistry()
	if err != nil {
		e.log.Error("load registry failed", "error", err)
		return
	}
	for _, name := range names {
		data, err := e.store.LoadIndex(name)
		if err != nil {
			e.log.Error("load index failed", "index", name, "error", err)
			continue
		}
		mapping, err := e.store.LoadMapping(name)
		if err != nil {
			e.log.Error("load mapping failed", "index", name, "error", err)
			mapping = domain.Mapping{}
		}
		e.indices[name] = data
		e.mappings[name] = mapping
	}
}

// CreateIndex allocates an empty index with an optional mapping and
// persists it. Returns ErrIndexExists if the name is taken.
func (e *Engine) CreateIndex(name string, mapping domain.Mapping) error {
	if name == "" {
		return fmt.Errorf("%w: index name must be non-empty", domain.ErrInvalidDocument)
	}
	if _, ok := e.indices[name]; ok {
		return fmt.Errorf("%w: %s", domain.ErrIndexExists, name)
	}
	if mapping == nil {
		mapping = domain.Mapping{}
	}
	e.indices[name] = domain.NewIndexData()
	e.mappings[name] = mapping
	e.saveIndex(name)
	e.saveRegistry()
	return nil
}

// IndexDocument validates, normalizes and indexes a document, then
// persists the index. A missing index is auto-created with an empty
// mapping. Re-indexing an existing document ID first retracts the old
// contribution, so the document count never drifts.
func (e *Engine) IndexDocument(name, docID string, doc domain.Document) error {
	if docID == "" {
		return fmt.Errorf("%w: document ID must be non-empty", domain.ErrInvalidDocument)
	}
	if len(doc) == 0 {
		return fmt.Errorf("%w: document must have at least one field", domain.ErrInvalidDocument)
	}
	for key := range doc {
		if key == "" {
			return fmt.Errorf("%w: field names must be non-empty", domain.ErrInvalidDocument)
		}
	}
	if _, ok := e.indices[name]; !ok {
		if err := e.CreateIndex(name, nil); err != nil {
			return err
		}
	}
	mapping := e.mappings[name]
	if err := analyzer.ValidateDocument(doc, mapping); err != nil {
		return err
	}
	normalized, err := analyzer.NormalizeDocument(doc, mapping)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}

	data := e.indices[name]
	if _, exists := data.Documents[docID]; exists {
		e.removeDocument(data, docID)
	}

	tokens := analyzer.AnalyzeDocument(normalized)
	freqs := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freqs[tok]++
	}

	data.Documents[docID] = normalized
	data.TermFrequencies[docID] = freqs
	for tok := range freqs {
		postings := data.InvertedIndex[tok]
		if postings == nil {
			postings = make(map[string]bool)
			data.InvertedIndex[tok] = postings
		}
		if !postings[docID] {
			postings[docID] = true
			data.TermDocCount[tok]++
		}
	}
	data.DocumentCount++

	e.saveIndex(name)
	e.invalidate(name)
	return nil
}

// Search tokenizes the query, unions the posting lists of every query
// token (OR semantics), scores candidates by summed TF-IDF, applies exact
// top-level filters, and returns the highest-scoring documents up to
// limit. Returns ErrIndexNotFound for an unknown index.
func (e *Engine) Search(name, query string, filters map[string]any, limit int) ([]domain.Hit, error) {
	data, ok := e.indices[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, name)
	}
	if e.cache != nil {
		if hits, ok := e.cache.Get(name, query, filters, limit); ok {
			return hits, nil
		}
	}

	tokens := analyzer.Tokenize(query)
	if len(tokens) == 0 || len(data.InvertedIndex) == 0 {
		return []domain.Hit{}, nil
	}

	candidates := make(map[string]bool)
	for _, tok := range tokens {
		for docID := range data.InvertedIndex[tok] {
			candidates[docID] = true
		}
	}

	hits := make([]domain.Hit, 0, len(candidates))
	for docID := range candidates {
		var score float64
		for _, tok := range tokens {
			score += tfidf(data, tok, docID)
		}
		if score <= 0 {
			continue
		}
		doc := data.Documents[docID]
		if !matchesFilters(doc, filters) {
			continue
		}
		hits = append(hits, domain.Hit{ID: docID, Score: score, Document: doc})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	if e.cache != nil {
		e.cache.Put(name, query, filters, limit, hits)
	}
	return hits, nil
}

// tfidf scores one token's contribution to one document. The IDF factor is
// smoothed as ln(1 + N/df) so a term present in every document still
// scores positive. Tokens with zero document frequency contribute nothing.
func tfidf(data *domain.IndexData, token, docID string) float64 {
	freqs, ok := data.TermFrequencies[docID]
	if !ok {
		return 0
	}
	tf := freqs[token]
	if tf == 0 {
		return 0
	}
	df := data.TermDocCount[token]
	if df == 0 {
		return 0
	}
	idf := math.Log(1 + float64(data.DocumentCount)/float64(df))
	return float64(tf) * idf
}

func matchesFilters(doc domain.Document, filters map[string]any) bool {
	for key, want := range filters {
		got, ok := doc[key]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// GetDocument returns the stored document. Absence of the index or the
// document is reported as a soft miss, never an error.
func (e *Engine) GetDocument(name, docID string) (domain.Document, bool) {
	data, ok := e.indices[name]
	if !ok {
		return nil, false
	}
	doc, ok := data.Documents[docID]
	return doc, ok
}

// DeleteDocument removes a document and every trace it left in the
// inverted index. An unknown index is an error; an unknown document
// returns false.
func (e *Engine) DeleteDocument(name, docID string) (bool, error) {
	data, ok := e.indices[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, name)
	}
	if _, ok := data.Documents[docID]; !ok {
		return false, nil
	}
	e.removeDocument(data, docID)
	e.saveIndex(name)
	e.invalidate(name)
	return true, nil
}

// removeDocument retracts every token the document contributed. The stored
// term-frequency map is the canonical record of that contribution, so no
// re-tokenization is needed. Postings left empty are dropped from both the
// inverted index and the document-frequency table.
func (e *Engine) removeDocument(data *domain.IndexData, docID string) {
	for tok := range data.TermFrequencies[docID] {
		postings := data.InvertedIndex[tok]
		if postings == nil {
			continue
		}
		delete(postings, docID)
		if len(postings) == 0 {
			delete(data.InvertedIndex, tok)
			delete(data.TermDocCount, tok)
		} else {
			data.TermDocCount[tok]--
		}
	}
	delete(data.TermFrequencies, docID)
	delete(data.Documents, docID)
	data.DocumentCount--
}

// DocumentIDs returns every document ID in the index, sorted.
func (e *Engine) DocumentIDs(name string) ([]string, error) {
	data, ok := e.indices[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, name)
	}
	ids := make([]string, 0, len(data.Documents))
	for id := range data.Documents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ListIndices returns the known index names in sorted order.
func (e *Engine) ListIndices() []string {
	names := make([]string, 0, len(e.indices))
	for name := range e.indices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeleteIndex drops an index in memory and on disk, tolerating missing
// files. Reports whether the index existed.
func (e *Engine) DeleteIndex(name string) bool {
	if _, ok := e.indices[name]; !ok {
		return false
	}
	delete(e.indices, name)
	delete(e.mappings, name)
	if err := e.store.DeleteIndex(name); err != nil {
		e.log.Error("delete index files failed", "index", name, "error", err)
	}
	e.saveRegistry()
	e.invalidate(name)
	return true
}

// Stats reports document count, unique term count, and the mapping of an
// index.
func (e *Engine) Stats(name string) (domain.IndexStats, error) {
	data, ok := e.indices[name]
	if !ok {
		return domain.IndexStats{}, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, name)
	}
	return domain.IndexStats{
		DocumentCount: data.DocumentCount,
		UniqueTerms:   len(data.InvertedIndex),
		Mapping:       e.mappings[name],
	}, nil
}

// saveIndex persists a snapshot and mapping, logging failures instead of
// propagating them: the engine stays available even when the disk is not.
func (e *Engine) saveIndex(name string) {
	if err := e.store.SaveIndex(name, e.indices[name]); err != nil {
		e.log.Error("save index failed", "index", name, "error", err)
		return
	}
	if err := e.store.SaveMapping(name, e.mappings[name]); err != nil {
		e.log.Error("save mapping failed", "index", name, "error", err)
	}
}

func (e *Engine) saveRegistry() {
	if err := e.store.SaveRegistry(e.ListIndices()); err != nil {
		e.log.Error("save registry failed", "error", err)
	}
}

func (e *Engine) invalidate(name string) {
	if e.cache != nil {
		e.cache.Invalidate(name)
	}
}
