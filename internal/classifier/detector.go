package classifier

import (
	"sort"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Detector flags messages that use medical vocabulary even when no known
// symptom could be extracted from them
type Detector struct {
	keywords map[string]struct{}
	phrases  []string
}

// NewDetector builds a detector from a keyword list. Keywords are matched
// case-insensitively against single words of the message. Entries that
// contain more than one word are kept but can never match; see
// UnreachablePhrases.
func NewDetector(keywords []string) *Detector {
	d := &Detector{keywords: make(map[string]struct{}, len(keywords))}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, seen := d.keywords[kw]; seen {
			continue
		}
		d.keywords[kw] = struct{}{}
		if len(Tokenize(kw)) != 1 {
			d.phrases = append(d.phrases, kw)
		}
	}
	sort.Strings(d.phrases)
	return d
}

// HasMedicalIntent reports whether any word of message is a medical keyword
func (d *Detector) HasMedicalIntent(message string) bool {
	for _, word := range Tokenize(message) {
		if _, ok := d.keywords[word]; ok {
			return true
		}
	}
	return false
}

// UnreachablePhrases lists keyword entries made of several words. The
// detector compares single words only, so these entries never fire.
func (d *Detector) UnreachablePhrases() []string {
	out := make([]string, len(d.phrases))
	copy(out, d.phrases)
	return out
}

// Size returns the number of distinct keyword entries
func (d *Detector) Size() int {
	return len(d.keywords)
}

// Tokenize splits text on Unicode word boundaries and returns lowercase
// words made of letters, digits and underscores. Segments that join words
// with apostrophes or periods ("doctor's", "e.g.") are split further, so
// "doctor's" yields "doctor" and "s".
func Tokenize(text string) []string {
	words := make([]string, 0)
	state := -1
	for len(text) > 0 {
		var segment string
		segment, text, state = uniseg.FirstWordInString(text, state)
		for _, word := range strings.FieldsFunc(segment, notWordRune) {
			words = append(words, strings.ToLower(word))
		}
	}
	return words
}

func notWordRune(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}
