package analyzer

import (
	"reflect"
	"testing"
)

func TestTokenize_Lowercases(t *testing.T) {
	tokens := Tokenize("Alice SMITH")
	want := []string{"alice", "smith"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("expected %v, got %v", want, tokens)
	}
}

func TestTokenize_WordBoundaries(t *testing.T) {
	tokens := Tokenize("hello, world! foo_bar-baz (42)")
	want := []string{"hello", "world", "foo_bar", "baz", "42"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("expected %v, got %v", want, tokens)
	}
}

func TestTokenize_PunctuationOnly(t *testing.T) {
	if tokens := Tokenize("!!! ... ---"); len(tokens) != 0 {
		t.Errorf("expected no tokens, got %v", tokens)
	}
}

func TestTokenize_Empty(t *testing.T) {
	if tokens := Tokenize(""); len(tokens) != 0 {
		t.Errorf("expected no tokens, got %v", tokens)
	}
}

func TestTokenize_KeepsShortAndCommonWords(t *testing.T) {
	// No stopword or length filtering: exact recall is the contract.
	tokens := Tokenize("a to the x")
	want := []string{"a", "to", "the", "x"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("expected %v, got %v", want, tokens)
	}
}

func TestTokenizeValue_NonString(t *testing.T) {
	tokens := TokenizeValue(42)
	if len(tokens) != 1 || tokens[0] != "42" {
		t.Errorf("expected [42], got %v", tokens)
	}
	tokens = TokenizeValue(true)
	if len(tokens) != 1 || tokens[0] != "true" {
		t.Errorf("expected [true], got %v", tokens)
	}
}
