package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVariations(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"Brass", []string{"brass"}},
		{"Aluminum", []string{"aluminum", "aluminium alloy", "aluminum alloy"}},
		{"Aluminium Alloy", []string{"aluminium alloy", "aluminum alloy"}},
		{"Carbon Steel", []string{"carbon steel"}},
		{"steel, carbon", []string{"steel, carbon", "carbon steel"}},
		{"Stainless Steel 304", []string{"stainless steel 304", "stainless steel"}},
		{"", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Variations(tt.query)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Variations(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		want      bool
	}{
		{"plain substring", "Carbon Steel", "Carbon Steel", true},
		{"plain matches process variant", "Carbon Steel", "Carbon Steel (O2)", true},
		{"case insensitive", "BRASS", "brass", true},
		{"synonym spelling", "Aluminum", "Aluminium Alloy", true},
		{"unrelated", "Copper", "Brass", false},

		{"o2 matches o2", "Carbon Steel (O2)", "Carbon Steel (O2)", true},
		{"o2 excludes negative focus", "Carbon Steel (O2)", "Carbon Steel (O2, Negative Focus)", false},
		{"o2 needs o2", "Carbon Steel (O2)", "Carbon Steel", false},

		{"negative matches negative focus", "Carbon Steel (O2, Negative Focus)", "Carbon Steel (O2, Negative Focus)", true},
		{"negative rejects plain o2", "Carbon Steel (O2, Negative Focus)", "Carbon Steel (O2)", false},
		{"negative without focus word", "o2 negative", "Carbon Steel (O2, Negative Focus)", true},

		{"mixed gas matches carbon steel mix", "Carbon Steel (Mixed Gas N2+Air)", "Carbon Steel (Mixed Gas N2+Air)", true},
		{"mixed gas needs carbon steel", "mixed gas", "Stainless Steel (Mixed Gas)", false},
		{"mixed gas needs mixed gas", "mixed gas", "Carbon Steel", false},
		{"mixed gas wins over o2", "Mixed Gas O2", "Carbon Steel (O2)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Matches(tt.query, tt.candidate, Variations(tt.query))
			if got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.query, tt.candidate, got, tt.want)
			}
		})
	}
}
