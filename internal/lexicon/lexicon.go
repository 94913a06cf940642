package lexicon

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Lexicon holds the static word lists and prompt text of the assistant
type Lexicon struct {
	MedicalKeywords   []string `yaml:"medical_keywords"`
	DisclosurePhrases []string `yaml:"disclosure_phrases"`
	SystemPrompt      string   `yaml:"system_prompt"`
}

// Default returns the built-in lexicon
func Default() (*Lexicon, error) {
	return Parse(defaultYAML)
}

// Load reads a lexicon file. Fields missing from the file keep their
// built-in values. An empty path returns the built-in lexicon.
func Load(path string) (*Lexicon, error) {
	lex, err := Default()
	if err != nil {
		return nil, fmt.Errorf("built-in lexicon: %w", err)
	}
	if path == "" {
		return lex, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}

	var override Lexicon
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon %s: %w", path, err)
	}
	if len(override.MedicalKeywords) > 0 {
		lex.MedicalKeywords = override.MedicalKeywords
	}
	if len(override.DisclosurePhrases) > 0 {
		lex.DisclosurePhrases = override.DisclosurePhrases
	}
	if strings.TrimSpace(override.SystemPrompt) != "" {
		lex.SystemPrompt = override.SystemPrompt
	}

	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

// Parse decodes and validates a lexicon document
func Parse(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return &lex, nil
}

// Validate checks that every list the assistant depends on is present
func (l *Lexicon) Validate() error {
	if len(l.MedicalKeywords) == 0 {
		return errors.New("medical_keywords is empty")
	}
	if len(l.DisclosurePhrases) == 0 {
		return errors.New("disclosure_phrases is empty")
	}
	if strings.TrimSpace(l.SystemPrompt) == "" {
		return errors.New("system_prompt is empty")
	}
	return nil
}
