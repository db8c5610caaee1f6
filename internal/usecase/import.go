package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"bookbot/internal/book"
	"bookbot/internal/domain"
	"bookbot/internal/port"
)

// ImportUseCase bulk-loads records from JSON files found by a walker.
//
// Each file holds one batch:
//
//	{"book": "contact", "records": [{"firstname": "Alice", ...}, ...]}
type ImportUseCase struct {
	walker port.Walker
	books  map[string]*book.Book
}

func NewImportUseCase(walker port.Walker, books map[string]*book.Book) *ImportUseCase {
	return &ImportUseCase{
		walker: walker,
		books:  books,
	}
}

// ImportResult summarizes one import run.
type ImportResult struct {
	FilesRead       int
	RecordsImported int
	RecordsSkipped  int
	Errors          []string
}

type importFile struct {
	Book    string              `json:"book"`
	Records []map[string]string `json:"records"`
}

// Import reads every matching file under root and adds its records to the
// named book. Duplicates are skipped, malformed files and invalid records
// collected as errors. The callback, if non-nil, fires once per file.
func (u *ImportUseCase) Import(root string, progress ProgressCallback) (*ImportResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	result := &ImportResult{}
	for i, file := range files {
		if progress != nil {
			progress(i+1, len(files), file.Path)
		}

		blob, err := os.ReadFile(file.Path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("read %s: %v", file.Path, err))
			continue
		}
		var batch importFile
		if err := json.Unmarshal(blob, &batch); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("parse %s: %v", file.Path, err))
			continue
		}
		b, ok := u.books[batch.Book]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: unknown book %q", file.Path, batch.Book))
			continue
		}
		result.FilesRead++

		for _, values := range batch.Records {
			if _, err := b.AddRecord(values); err != nil {
				if errors.Is(err, domain.ErrDuplicateRecord) {
					result.RecordsSkipped++
					continue
				}
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.Path, err))
				continue
			}
			result.RecordsImported++
		}
	}
	return result, nil
}
