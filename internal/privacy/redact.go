package privacy

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// maxLogLength bounds user text written to logs
const maxLogLength = 200

type rule struct {
	name        string
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order. Longer digit groups go first so a card or SSN is not
// half-consumed by the phone pattern.
var rules = []rule{
	{
		name:        "card",
		pattern:     regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}[-\s]\d{4}\b`),
		placeholder: "[CARD]",
	},
	{
		name:        "ssn",
		pattern:     regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		placeholder: "[SSN]",
	},
	{
		name:        "email",
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		placeholder: "[EMAIL]",
	},
	{
		// 555-123-4567, (555) 123-4567, 555.123.4567, +1-555-123-4567, 555-1234
		name:        "phone",
		pattern:     regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]\d{4}\b|\b\d{3}[-.\s]\d{4}\b`),
		placeholder: "[PHONE]",
	},
	{
		name:        "medical_id",
		pattern:     regexp.MustCompile(`\b(MRN|[Mm]edical [Rr]ecord|[Pp]atient ID)[-:#\s]*[A-Z0-9]{6,}\b`),
		placeholder: "[MEDICAL_ID]",
	},
}

// RedactSensitiveData replaces personal identifiers in text with placeholders
func RedactSensitiveData(text string) string {
	for _, r := range rules {
		text = r.pattern.ReplaceAllString(text, r.placeholder)
	}
	return text
}

// SanitizeForLogging redacts text and truncates it for log lines. Text is
// NFKC-folded first so full-width digits and letters are caught by the
// ASCII patterns.
func SanitizeForLogging(text string) string {
	redacted := RedactSensitiveData(norm.NFKC.String(text))
	if len(redacted) <= maxLogLength {
		return redacted
	}

	// Cut on a rune boundary
	cut := maxLogLength - 3
	for cut > 0 && !runeStart(redacted[cut]) {
		cut--
	}
	return redacted[:cut] + "..."
}

// SanitizeForAPI redacts text before it is sent to an external provider.
// Symptom wording and numbers such as temperatures or durations are kept.
func SanitizeForAPI(text string) string {
	return RedactSensitiveData(text)
}

// ContainsPII reports whether any redaction rule matches the NFKC-folded text
func ContainsPII(text string) bool {
	text = norm.NFKC.String(text)
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// DetectedKinds names the rules that match the NFKC-folded text, in rule order
func DetectedKinds(text string) []string {
	text = norm.NFKC.String(text)
	var kinds []string
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			kinds = append(kinds, r.name)
		}
	}
	return kinds
}

func runeStart(b byte) bool {
	return b&0xC0 != 0x80
}
