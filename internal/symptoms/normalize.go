package symptoms

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// Normalize folds text to lowercase ASCII letters and digits only. Spaces,
// punctuation, separators and every non-ASCII character are dropped, so
// "Skin Rash", "skin_rash" and "skin-rash" all become "skinrash".
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Words splits text into lowercase ASCII alphanumeric runs
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}
