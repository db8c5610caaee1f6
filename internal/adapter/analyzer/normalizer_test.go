package analyzer

import (
	"sort"
	"testing"
	"time"

	"bookbot/internal/domain"
)

func TestNormalizeValue_Scalars(t *testing.T) {
	if v, err := NormalizeValue(42, domain.FieldText); err != nil || v != "42" {
		t.Errorf("text: expected \"42\", got %v (err %v)", v, err)
	}
	if v, err := NormalizeValue("17", domain.FieldInteger); err != nil || v != int64(17) {
		t.Errorf("integer: expected 17, got %v (err %v)", v, err)
	}
	if v, err := NormalizeValue("1.5", domain.FieldFloat); err != nil || v != 1.5 {
		t.Errorf("float: expected 1.5, got %v (err %v)", v, err)
	}
	if v, err := NormalizeValue("true", domain.FieldBoolean); err != nil || v != true {
		t.Errorf("boolean: expected true, got %v (err %v)", v, err)
	}
}

func TestNormalizeValue_UnparsableFailsLoudly(t *testing.T) {
	if _, err := NormalizeValue("not a number", domain.FieldInteger); err == nil {
		t.Error("expected error for unparsable integer")
	}
	if _, err := NormalizeValue("maybe", domain.FieldBoolean); err == nil {
		t.Error("expected error for unparsable boolean")
	}
}

func TestNormalizeValue_Date(t *testing.T) {
	v, err := NormalizeValue("2024-03-01T10:00:00Z", domain.FieldDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsed, ok := v.(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", v)
	}
	if parsed.Year() != 2024 || parsed.Month() != time.March {
		t.Errorf("unexpected parsed date: %v", parsed)
	}

	// Unparsable dates fall back to the raw value.
	v, err = NormalizeValue("not a date", domain.FieldDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "not a date" {
		t.Errorf("expected raw fallback, got %v", v)
	}
}

func TestNormalizeValue_UnknownTypePassthrough(t *testing.T) {
	v, err := NormalizeValue(3.14, "")
	if err != nil || v != 3.14 {
		t.Errorf("expected passthrough, got %v (err %v)", v, err)
	}
}

func TestNormalizeDocument_Nested(t *testing.T) {
	mapping := domain.Mapping{
		"age":          {Type: domain.FieldInteger},
		"address.city": {Type: domain.FieldKeyword},
	}
	doc := domain.Document{
		"age": "30",
		"address": map[string]any{
			"city": "Kyiv",
		},
	}
	normalized, err := NormalizeDocument(doc, mapping)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if normalized["age"] != int64(30) {
		t.Errorf("expected age 30, got %v", normalized["age"])
	}
	nested, ok := normalized["address"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map, got %T", normalized["address"])
	}
	if nested["city"] != "Kyiv" {
		t.Errorf("expected city Kyiv, got %v", nested["city"])
	}
}

func TestAnalyzeDocument_CountsDuplicates(t *testing.T) {
	doc := domain.Document{
		"title": "go go go",
		"meta": map[string]any{
			"lang": "go",
		},
	}
	tokens := AnalyzeDocument(doc)
	count := 0
	for _, tok := range tokens {
		if tok == "go" {
			count++
		}
	}
	if count != 4 {
		t.Errorf("expected 4 occurrences of \"go\", got %d (tokens %v)", count, tokens)
	}
}

func TestAnalyzeDocument_AllFieldTypesTokenized(t *testing.T) {
	doc := domain.Document{
		"active": true,
		"count":  int64(7),
		"tags":   []any{"red", "blue"},
	}
	tokens := AnalyzeDocument(doc)
	sort.Strings(tokens)
	want := map[string]bool{"true": true, "7": true, "red": true, "blue": true}
	for tok := range want {
		found := false
		for _, got := range tokens {
			if got == tok {
				found = true
			}
		}
		if !found {
			t.Errorf("expected token %q in %v", tok, tokens)
		}
	}
}

func TestValidateDocument(t *testing.T) {
	mapping := domain.Mapping{
		"age": {Type: domain.FieldInteger},
	}
	if err := ValidateDocument(domain.Document{"age": "30"}, mapping); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateDocument(domain.Document{"age": "thirty"}, mapping); err == nil {
		t.Error("expected validation error for non-integer age")
	}
}
