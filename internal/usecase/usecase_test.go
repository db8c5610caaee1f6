package usecase

import (
	"os"
	"path/filepath"
	"testing"

	"bookbot/internal/adapter/bookindex"
	"bookbot/internal/adapter/fs"
	"bookbot/internal/adapter/memstore"
	"bookbot/internal/book"
	"bookbot/internal/engine"
)

type fixture struct {
	engine  *engine.Engine
	adapter *bookindex.Adapter
	books   map[string]*book.Book
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	eng := engine.New(memstore.NewMemoryStore(), nil)
	adapter := bookindex.New(eng)
	contacts, err := book.New(book.ContactSchema(), adapter)
	if err != nil {
		t.Fatal(err)
	}
	notes, err := book.New(book.NoteSchema(), adapter)
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{
		engine:  eng,
		adapter: adapter,
		books:   map[string]*book.Book{"contact": contacts, "note": notes},
	}
}

func writeImportFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestImport(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	writeImportFile(t, dir, "contacts.json", `{
		"book": "contact",
		"records": [
			{"firstname": "Alice", "lastname": "Smith", "phone_number": "0501234567"},
			{"firstname": "Bob", "lastname": "Jones"},
			{"firstname": "Alice", "lastname": "Smith"},
			{"firstname": "NoLastName"}
		]
	}`)
	writeImportFile(t, dir, "notes.json", `{
		"book": "note",
		"records": [{"title": "groceries", "body": "milk bread"}]
	}`)

	u := NewImportUseCase(fs.NewWalker(nil, nil), f.books)
	var seen []string
	result, err := u.Import(dir, func(processed, total int, current string) {
		seen = append(seen, current)
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if result.FilesRead != 2 {
		t.Errorf("expected 2 files read, got %d", result.FilesRead)
	}
	if result.RecordsImported != 3 {
		t.Errorf("expected 3 records imported, got %d", result.RecordsImported)
	}
	if result.RecordsSkipped != 1 {
		t.Errorf("expected 1 duplicate skipped, got %d", result.RecordsSkipped)
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error for the invalid record, got %v", result.Errors)
	}
	if len(seen) != 2 {
		t.Errorf("expected the callback once per file, got %d calls", len(seen))
	}

	if f.books["contact"].Len() != 2 {
		t.Errorf("expected 2 contacts, got %d", f.books["contact"].Len())
	}
	recs, err := f.books["contact"].Find("alice", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Errorf("expected imported records searchable, got %d", len(recs))
	}
}

func TestImport_BadFiles(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	writeImportFile(t, dir, "broken.json", `{not json`)
	writeImportFile(t, dir, "unknown.json", `{"book": "calendar", "records": []}`)
	writeImportFile(t, dir, "skipped.txt", `not matched by the default pattern`)

	u := NewImportUseCase(fs.NewWalker(nil, nil), f.books)
	result, err := u.Import(dir, nil)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.FilesRead != 0 {
		t.Errorf("expected no files read, got %d", result.FilesRead)
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 errors (parse + unknown book), got %v", result.Errors)
	}
}

func TestReindex(t *testing.T) {
	f := newFixture(t)
	contacts := f.books["contact"]
	for _, name := range [][2]string{{"Alice", "Smith"}, {"Bob", "Jones"}} {
		if _, err := contacts.AddRecord(map[string]string{"firstname": name[0], "lastname": name[1]}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.books["note"].AddRecord(map[string]string{"title": "groceries", "body": "milk"}); err != nil {
		t.Fatal(err)
	}

	// Pollute the index with a document no live record backs.
	if _, err := f.adapter.IndexRecord("contact", stubRecord{id: "ghost", text: "phantom"}); err != nil {
		t.Fatal(err)
	}

	u := NewReindexUseCase(f.engine, f.adapter, []*book.Book{contacts, f.books["note"]})
	var calls int
	result, err := u.Reindex(true, func(processed, total int, current string) {
		calls++
		if total != 3 {
			t.Errorf("expected total 3, got %d", total)
		}
	})
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}

	if result.IndicesRebuilt != 2 {
		t.Errorf("expected 2 indices rebuilt, got %d", result.IndicesRebuilt)
	}
	if result.RecordsIndexed != 3 {
		t.Errorf("expected 3 records indexed, got %d", result.RecordsIndexed)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
	if calls != 3 {
		t.Errorf("expected the callback once per record, got %d calls", calls)
	}

	// The rebuild starts from live records only.
	hits, err := f.engine.Search("contact", "phantom", nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("expected the orphan document gone after reindex, got %d hits", len(hits))
	}
	hits, err = f.engine.Search("contact", "alice", nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("expected live records back in the index, got %d hits", len(hits))
	}
}

func TestReindex_RefusesNonEmptyIndexWithoutForce(t *testing.T) {
	f := newFixture(t)
	contacts := f.books["contact"]
	if _, err := contacts.AddRecord(map[string]string{"firstname": "Alice", "lastname": "Smith"}); err != nil {
		t.Fatal(err)
	}

	u := NewReindexUseCase(f.engine, f.adapter, []*book.Book{contacts})
	if _, err := u.Reindex(false, nil); err == nil {
		t.Fatal("expected an error rebuilding a non-empty index without force")
	}

	// The refused rebuild must leave the index untouched.
	hits, err := f.engine.Search("contact", "alice", nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("expected the index intact after the refusal, got %d hits", len(hits))
	}
}

func TestReindex_EmptyIndicesNeedNoForce(t *testing.T) {
	f := newFixture(t)
	u := NewReindexUseCase(f.engine, f.adapter, []*book.Book{f.books["contact"], f.books["note"]})
	result, err := u.Reindex(false, nil)
	if err != nil {
		t.Fatalf("empty indices must rebuild without force, got %v", err)
	}
	if result.IndicesRebuilt != 2 {
		t.Errorf("expected 2 indices rebuilt, got %d", result.IndicesRebuilt)
	}
}

type stubRecord struct {
	id   string
	text string
}

func (r stubRecord) Key() string { return r.id }
func (r stubRecord) FieldValues() map[string]string {
	return map[string]string{"id": r.id, "body": r.text}
}
func (r stubRecord) MultiValues() map[string][]string { return nil }
