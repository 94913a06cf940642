package symptoms

import (
	"reflect"
	"testing"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	vocab, err := NewVocabulary([]string{
		"itching",
		"skin_rash",
		"continuous_sneezing",
		"headache",
		"fever",
		"joint_pain",
		"stomach_pain",
		"loss_of_appetite",
	})
	if err != nil {
		t.Fatalf("NewVocabulary: %v", err)
	}
	return NewExtractor(vocab)
}

func TestExtractor_Extract(t *testing.T) {
	ext := newTestExtractor(t)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "blank", input: "   \t", want: []string{}},
		{name: "no symptoms", input: "hello, how are you", want: []string{}},
		{
			name:  "two plain words",
			input: "I have a bad headache and fever",
			want:  []string{"headache", "fever"},
		},
		{
			name:  "multi word label typed with spaces",
			input: "there is a Skin Rash on my arm",
			want:  []string{"skin_rash"},
		},
		{
			name:  "label glued into longer text",
			input: "lossofappetite since monday",
			want:  []string{"loss_of_appetite"},
		},
		{
			name:  "punctuation between words",
			input: "joint-pain!!! and stomach... pain",
			want:  []string{"joint_pain", "stomach_pain"},
		},
		{
			name:  "full width text is not a symptom",
			input: "I have ｆｅｖｅｒ",
			want:  []string{},
		},
		{
			name:  "repeated mention reported once",
			input: "fever, fever, FEVER",
			want:  []string{"fever"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ext.Extract(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractor_VerbatimLabelAlwaysFound(t *testing.T) {
	ext := newTestExtractor(t)

	for _, entry := range ext.vocab.entries {
		msg := "lately I noticed " + entry.Label + " quite often"
		got := ext.Extract(msg)
		if !contains(got, entry.Label) {
			t.Errorf("Extract(%q) = %v, missing %q", msg, got, entry.Label)
		}
	}
}

func TestExtractor_DirectMatchSkipsPhraseFallback(t *testing.T) {
	ext := newTestExtractor(t)

	// The direct pass finds headache; the phrase pass would only repeat what
	// the substring pass can already see, so the result is exactly the
	// direct-pass result.
	got := ext.Extract("headache plus continuous sneezing")
	direct := make([]bool, ext.vocab.Len())
	ext.matchSubstrings(Normalize("headache plus continuous sneezing"), direct)

	want := make([]string, 0)
	for i, ok := range direct {
		if ok {
			want = append(want, ext.vocab.entries[i].Label)
		}
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want direct-pass result %v", got, want)
	}
}

func TestExtractor_PhraseFallback(t *testing.T) {
	ext := newTestExtractor(t)

	found := make([]bool, ext.vocab.Len())
	ext.matchPhrases([]string{"my", "continuous", "sneezing", "and", "itching"}, found)

	var got []string
	for i, ok := range found {
		if ok {
			got = append(got, ext.vocab.entries[i].Label)
		}
	}
	want := []string{"itching", "continuous_sneezing"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("phrase fallback found %v, want %v", got, want)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
