package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bookbot/internal/domain"
	"bookbot/internal/port"
)

func sampleIndexData() *domain.IndexData {
	data := domain.NewIndexData()
	data.Documents["1"] = domain.Document{
		"name":    "Alice",
		"age":     int64(30),
		"score":   float64(1.5),
		"active":  true,
		"joined":  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		"tags":    []any{"friend", "work"},
		"address": map[string]any{"city": "Kyiv"},
	}
	data.InvertedIndex["alice"] = map[string]bool{"1": true}
	data.TermFrequencies["1"] = map[string]int{"alice": 1}
	data.TermDocCount["alice"] = 1
	data.DocumentCount = 1
	return data
}

func testStoreRoundTrip(t *testing.T, s port.SnapshotStore) {
	t.Helper()

	if err := s.SaveIndex("contact", sampleIndexData()); err != nil {
		t.Fatalf("save index: %v", err)
	}
	got, err := s.LoadIndex("contact")
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	if got.DocumentCount != 1 {
		t.Errorf("expected document count 1, got %d", got.DocumentCount)
	}
	doc, ok := got.Documents["1"]
	if !ok {
		t.Fatal("expected document 1 present")
	}
	if doc["name"] != "Alice" {
		t.Errorf("expected name Alice, got %v", doc["name"])
	}
	if doc["age"] != int64(30) {
		t.Errorf("expected int64 age back, got %T %v", doc["age"], doc["age"])
	}
	if doc["active"] != true {
		t.Errorf("expected active true, got %v", doc["active"])
	}
	nested, ok := doc["address"].(map[string]any)
	if !ok || nested["city"] != "Kyiv" {
		t.Errorf("expected nested map to survive, got %v", doc["address"])
	}
	if !got.InvertedIndex["alice"]["1"] {
		t.Error("expected posting alice->1 to survive")
	}
	if got.TermFrequencies["1"]["alice"] != 1 {
		t.Error("expected term frequencies to survive")
	}

	// Missing snapshot is os.ErrNotExist.
	if _, err := s.LoadIndex("ghost"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist for a missing snapshot, got %v", err)
	}

	// Mapping round-trip; missing mapping is empty, not an error.
	mapping := domain.Mapping{"name": {Type: domain.FieldText}}
	if err := s.SaveMapping("contact", mapping); err != nil {
		t.Fatalf("save mapping: %v", err)
	}
	loaded, err := s.LoadMapping("contact")
	if err != nil {
		t.Fatalf("load mapping: %v", err)
	}
	if loaded["name"].Type != domain.FieldText {
		t.Errorf("expected text mapping back, got %v", loaded)
	}
	empty, err := s.LoadMapping("ghost")
	if err != nil {
		t.Fatalf("load missing mapping: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty mapping, got %v", empty)
	}

	// Registry round-trip; missing registry is empty.
	if err := s.SaveRegistry([]string{"contact", "note"}); err != nil {
		t.Fatalf("save registry: %v", err)
	}
	names, err := s.LoadRegistry()
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	if len(names) != 2 || names[0] != "contact" || names[1] != "note" {
		t.Errorf("expected [contact note], got %v", names)
	}

	// Delete tolerates absence and removes both snapshot and mapping.
	if err := s.DeleteIndex("ghost"); err != nil {
		t.Errorf("delete of a missing index must succeed, got %v", err)
	}
	if err := s.DeleteIndex("contact"); err != nil {
		t.Fatalf("delete index: %v", err)
	}
	if _, err := s.LoadIndex("contact"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected snapshot gone after delete, got %v", err)
	}
	gone, err := s.LoadMapping("contact")
	if err != nil {
		t.Fatalf("load mapping after delete: %v", err)
	}
	if len(gone) != 0 {
		t.Errorf("expected mapping gone after delete, got %v", gone)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	testStoreRoundTrip(t, s)
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveIndex("contact", sampleIndexData()); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveMapping("contact", domain.Mapping{"name": {Type: domain.FieldText}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRegistry([]string{"contact"}); err != nil {
		t.Fatal(err)
	}
	for _, file := range []string{"contact.idx", "contact_mapping.json", "indices.json"} {
		if _, err := os.Stat(filepath.Join(dir, file)); err != nil {
			t.Errorf("expected %s on disk: %v", file, err)
		}
	}
}

func TestFileStore_EmptyDir(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	names, err := s.LoadRegistry()
	if err != nil {
		t.Fatalf("load registry from an empty dir: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no registered indices, got %v", names)
	}
}

func TestBoltStore(t *testing.T) {
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	testStoreRoundTrip(t, s)
}

func TestBoltStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	s, err := NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveIndex("note", sampleIndexData()); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRegistry([]string{"note"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	names, err := s2.LoadRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "note" {
		t.Errorf("expected [note] after reopen, got %v", names)
	}
	data, err := s2.LoadIndex("note")
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if data.DocumentCount != 1 {
		t.Errorf("expected document count 1 after reopen, got %d", data.DocumentCount)
	}
}
