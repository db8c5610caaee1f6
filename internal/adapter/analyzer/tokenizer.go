package analyzer

import (
	"fmt"
	"strings"
	"unicode"
)

// Tokenize splits text into lowercased word tokens. A token is a run of
// letters, digits and underscores; everything else is a boundary. Stemming
// and stopword removal are deliberately absent: callers rely on exact token
// recall (phone numbers, names, tags).
func Tokenize(text string) []string {
	words := splitWords(text)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		tokens = append(tokens, strings.ToLower(word))
	}
	return tokens
}

// TokenizeValue stringifies a non-string value and tokenizes it.
func TokenizeValue(value any) []string {
	return Tokenize(Stringify(value))
}

// Stringify renders a scalar value the way it should appear in search text.
func Stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// splitWords splits text into words using unicode word boundaries.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}
