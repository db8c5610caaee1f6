// Package usecase orchestrates book and index operations for the CLI.
package usecase

import (
	"fmt"

	"bookbot/internal/book"
	"bookbot/internal/engine"
	"bookbot/internal/port"
)

// ProgressCallback reports bulk-operation progress to the caller.
type ProgressCallback func(processed, total int, current string)

// ReindexUseCase rebuilds every book's search index from its live records.
type ReindexUseCase struct {
	engine *engine.Engine
	index  port.RecordIndex
	books  []*book.Book
}

func NewReindexUseCase(eng *engine.Engine, index port.RecordIndex, books []*book.Book) *ReindexUseCase {
	return &ReindexUseCase{
		engine: eng,
		index:  index,
		books:  books,
	}
}

// ReindexResult summarizes one rebuild.
type ReindexResult struct {
	IndicesRebuilt int
	RecordsIndexed int
	Errors         []string
}

// Reindex drops and recreates each book's index, then re-feeds every
// record through the adapter. Documents not backed by a live record are
// lost, so a non-empty index is refused unless force is set. The callback,
// if non-nil, fires once per record.
func (u *ReindexUseCase) Reindex(force bool, progress ProgressCallback) (*ReindexResult, error) {
	if !force {
		for _, b := range u.books {
			stats, err := u.engine.Stats(b.Name())
			if err != nil {
				continue
			}
			if stats.DocumentCount > 0 {
				return nil, fmt.Errorf("index %q holds %d document(s) that a rebuild would discard; use force to proceed", b.Name(), stats.DocumentCount)
			}
		}
	}

	result := &ReindexResult{}

	total := 0
	for _, b := range u.books {
		total += b.Len()
	}

	processed := 0
	for _, b := range u.books {
		u.engine.DeleteIndex(b.Name())
		schema := b.Schema()
		if _, err := u.index.InitializeBookIndex(b.Name(), schema.Fields, schema.MultiValue); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("recreate index %s: %v", b.Name(), err))
			continue
		}
		result.IndicesRebuilt++

		for _, rec := range b.All() {
			if _, err := u.index.IndexRecord(b.Name(), rec); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("index %s record %s: %v", b.Name(), rec.Key(), err))
			} else {
				result.RecordsIndexed++
			}
			processed++
			if progress != nil {
				progress(processed, total, rec.Key())
			}
		}
	}
	return result, nil
}
