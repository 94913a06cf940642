package symptoms

import (
	"strings"
)

// maxPhraseWords bounds the n-gram fallback window
const maxPhraseWords = 3

// Extractor finds vocabulary symptoms mentioned in free text
type Extractor struct {
	vocab *Vocabulary
}

// NewExtractor creates an extractor over a loaded vocabulary
func NewExtractor(vocab *Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Extract returns the symptom labels found in input, without duplicates and
// in vocabulary order.
//
// A label matches when its normalized form occurs anywhere in the normalized
// input. Only when that finds nothing, runs of 3, 2 and 1 words are glued
// together and compared for equality with normalized labels.
func (e *Extractor) Extract(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}

	found := make([]bool, e.vocab.Len())
	matched := e.matchSubstrings(Normalize(input), found)
	if !matched {
		e.matchPhrases(Words(input), found)
	}

	labels := make([]string, 0)
	for i, ok := range found {
		if ok {
			labels = append(labels, e.vocab.entries[i].Label)
		}
	}
	return labels
}

func (e *Extractor) matchSubstrings(normalized string, found []bool) bool {
	matched := false
	for i, entry := range e.vocab.entries {
		if entry.Normalized == "" {
			continue
		}
		if strings.Contains(normalized, entry.Normalized) {
			found[i] = true
			matched = true
		}
	}
	return matched
}

func (e *Extractor) matchPhrases(words []string, found []bool) {
	for n := maxPhraseWords; n >= 1; n-- {
		for start := 0; start+n <= len(words); start++ {
			phrase := strings.Join(words[start:start+n], "")
			for i, entry := range e.vocab.entries {
				if entry.Normalized == phrase {
					found[i] = true
					break
				}
			}
		}
	}
}
