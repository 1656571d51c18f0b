// Package translate maps catalog terms and material names between the
// English table data and the Spanish display language.
//
// Dictionaries and pattern rules are data: they are decoded from YAML
// (the embedded terms.yaml by default) with their declaration order kept,
// so partial matches resolve the same way on every run.
package translate

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed terms.yaml
var defaultTerms []byte

// Pattern translates any term containing all of its tokens.
type Pattern struct {
	Tokens  []string `yaml:"tokens"`
	Display string   `yaml:"display"`
}

// matches reports whether every token occurs in s.
func (p Pattern) matches(s string) bool {
	for _, tok := range p.Tokens {
		if !strings.Contains(s, tok) {
			return false
		}
	}
	return true
}

// Terms is the decoded form of a terms file.
type Terms struct {
	Compound  Dictionary `yaml:"compound"`
	General   Dictionary `yaml:"general"`
	Patterns  []Pattern  `yaml:"patterns"`
	Materials struct {
		Complete Dictionary `yaml:"complete"`
		Basic    Dictionary `yaml:"basic"`
	} `yaml:"materials"`
}

// Mapper translates terms and materials. It is safe for concurrent use.
type Mapper struct {
	terms Terms

	termPartial     []Entry
	completePartial []Entry
	basicPartial    []Entry
}

// New builds a mapper from decoded terms.
func New(terms Terms) (*Mapper, error) {
	for i, p := range terms.Patterns {
		if len(p.Tokens) == 0 || p.Display == "" {
			return nil, fmt.Errorf("pattern %d: tokens and display are required", i)
		}
	}

	return &Mapper{
		terms:           terms,
		termPartial:     longestFirst(terms.General, terms.Compound),
		completePartial: longestFirst(terms.Materials.Complete),
		basicPartial:    longestFirst(terms.Materials.Basic),
	}, nil
}

// Load decodes a terms file.
func Load(r io.Reader) (*Mapper, error) {
	var terms Terms
	if err := yaml.NewDecoder(r).Decode(&terms); err != nil {
		return nil, fmt.Errorf("decode terms: %w", err)
	}
	return New(terms)
}

// LoadFile decodes the terms file at path.
func LoadFile(path string) (*Mapper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open terms file: %w", err)
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

var (
	defaultOnce   sync.Once
	defaultMapper *Mapper
	defaultErr    error
)

// Default returns the mapper for the embedded terms file.
func Default() (*Mapper, error) {
	defaultOnce.Do(func() {
		defaultMapper, defaultErr = Load(strings.NewReader(string(defaultTerms)))
	})
	return defaultMapper, defaultErr
}

// normalizeTerm lowercases, turns underscores into spaces and drops parentheses.
func normalizeTerm(key string) string {
	s := strings.ToLower(key)
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	return strings.TrimSpace(s)
}

// titleCase capitalizes each word. Casers are stateful, so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// TranslateTerm returns the display label for a column or specification key.
//
// Lookup order: exact compound phrase, exact general word, pattern rules,
// partial key replacement (longest key first), then the title-cased
// normalized key.
func (m *Mapper) TranslateTerm(key string) string {
	lowered := strings.ToLower(strings.TrimSpace(key))
	normalized := normalizeTerm(key)

	for _, candidate := range []string{lowered, normalized} {
		if v, ok := m.terms.Compound.Lookup(candidate); ok {
			return v
		}
		if v, ok := m.terms.General.Lookup(candidate); ok {
			return v
		}
	}

	for _, p := range m.terms.Patterns {
		if p.matches(normalized) {
			return p.Display
		}
	}

	for _, e := range m.termPartial {
		if e.Key != "" && strings.Contains(normalized, e.Key) {
			return strings.ReplaceAll(normalized, e.Key, e.Value)
		}
	}

	return titleCase(normalized)
}

// TranslateMaterial returns the display name for a table material.
func (m *Mapper) TranslateMaterial(name string) string {
	trimmed := strings.TrimSpace(name)
	normalized := strings.ToLower(trimmed)

	if v, ok := m.terms.Materials.Complete.Lookup(normalized); ok {
		return v
	}
	if v, ok := m.terms.Materials.Basic.Lookup(normalized); ok {
		return v
	}

	for _, partial := range [][]Entry{m.completePartial, m.basicPartial} {
		for _, e := range partial {
			if e.Key != "" && strings.Contains(normalized, e.Key) {
				return e.Value
			}
		}
	}

	switch {
	case strings.Contains(normalized, "aluminum") || strings.Contains(normalized, "aluminium"):
		return "Aluminio"
	case strings.Contains(normalized, "steel") && strings.Contains(normalized, "carbon"):
		return "Acero al Carbono"
	case strings.Contains(normalized, "steel") && strings.Contains(normalized, "stainless"):
		return "Acero Inoxidable"
	}

	return titleCase(trimmed)
}

// TranslateMaterialToCanonical maps a display name back to a table material.
// The reverse scan compares without case or accents, complete names before
// basic ones. Unknown names are returned unchanged.
func (m *Mapper) TranslateMaterialToCanonical(display string) string {
	folded := fold(display)
	if folded == "" {
		return display
	}

	for _, d := range []Dictionary{m.terms.Materials.Complete, m.terms.Materials.Basic} {
		for _, e := range d.entries {
			if fold(e.Value) == folded {
				return e.Key
			}
		}
	}

	switch {
	case strings.Contains(folded, "aluminio"):
		return "aluminum alloy"
	case strings.Contains(folded, "acero") && strings.Contains(folded, "carbono"):
		return "carbon steel"
	case strings.Contains(folded, "acero") && strings.Contains(folded, "inoxidable"):
		return "stainless steel"
	}

	return display
}

// Terms returns the decoded dictionaries.
func (m *Mapper) Terms() Terms {
	return m.terms
}

// fold lowercases, trims and strips combining marks.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
