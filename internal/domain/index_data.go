package domain

// IndexData is the full mutable search state of one named index. It is a
// plain container: every invariant (postings/df agreement, tf presence,
// atomic delete) is enforced by the engine, never here.
type IndexData struct {
	// Documents maps document ID to its normalized document.
	Documents map[string]Document
	// InvertedIndex maps a token to the set of document IDs containing it.
	InvertedIndex map[string]map[string]bool
	// TermFrequencies maps document ID to per-token occurrence counts.
	TermFrequencies map[string]map[string]int
	// TermDocCount maps a token to its document frequency.
	TermDocCount map[string]int
	// DocumentCount is the number of indexed documents.
	DocumentCount int
}

// NewIndexData returns an empty index.
func NewIndexData() *IndexData {
	return &IndexData{
		Documents:       make(map[string]Document),
		InvertedIndex:   make(map[string]map[string]bool),
		TermFrequencies: make(map[string]map[string]int),
		TermDocCount:    make(map[string]int),
	}
}
