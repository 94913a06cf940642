package lexicon

import (
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	lex, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	for _, kw := range []string{"fever", "doctor", "headache", "skin rash", "toxic look (typhos)"} {
		if !containsString(lex.MedicalKeywords, kw) {
			t.Errorf("built-in keywords missing %q", kw)
		}
	}
	for _, p := range []string{"my dog", "my cat", "my pet", "my name is"} {
		if !containsString(lex.DisclosurePhrases, p) {
			t.Errorf("built-in disclosure phrases missing %q", p)
		}
	}
	if !strings.HasPrefix(lex.SystemPrompt, "You are MediChat") {
		t.Errorf("system prompt = %q", lex.SystemPrompt)
	}
	if strings.Contains(lex.SystemPrompt, "\n") {
		t.Error("system prompt should be folded onto one line")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantErr    bool
		wantPrompt string
		wantKW     string
	}{
		{name: "empty path uses built-in", path: "", wantPrompt: "You are MediChat", wantKW: "fever"},
		{name: "override replaces given fields", path: "testdata/override.yaml", wantPrompt: "Eres un asistente", wantKW: "fiebre"},
		{name: "missing file", path: "testdata/none.yaml", wantErr: true},
		{name: "broken yaml", path: "testdata/broken.yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lex, err := Load(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !strings.HasPrefix(lex.SystemPrompt, tt.wantPrompt) {
				t.Errorf("SystemPrompt = %q, want prefix %q", lex.SystemPrompt, tt.wantPrompt)
			}
			if !containsString(lex.MedicalKeywords, tt.wantKW) {
				t.Errorf("MedicalKeywords missing %q", tt.wantKW)
			}
			if len(lex.DisclosurePhrases) == 0 {
				t.Error("DisclosurePhrases should keep built-in values")
			}
		})
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "no keywords", doc: "disclosure_phrases: [a]\nsystem_prompt: x\n"},
		{name: "no phrases", doc: "medical_keywords: [a]\nsystem_prompt: x\n"},
		{name: "blank prompt", doc: "medical_keywords: [a]\ndisclosure_phrases: [b]\nsystem_prompt: '  '\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
