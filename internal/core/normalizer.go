package core

import "strings"

// Material name fragments used by the matching rules.
const (
	fragMixedGas      = "mixed gas"
	fragCarbonSteel   = "carbon steel"
	fragO2            = "o2"
	fragNegative      = "negative"
	fragNegativeFocus = "negative focus"
)

// synonymRule adds variations when every required fragment is present.
type synonymRule struct {
	anyOf []string // At least one must appear (empty means no constraint)
	allOf []string // Every one must appear
	add   []string
}

// synonymRules are applied in order; each matching rule appends its forms.
var synonymRules = []synonymRule{
	{anyOf: []string{"aluminum", "aluminium"}, add: []string{"aluminium alloy", "aluminum alloy"}},
	{allOf: []string{"steel", "carbon"}, add: []string{"carbon steel"}},
	{allOf: []string{"steel", "stainless"}, add: []string{"stainless steel"}},
}

func (r synonymRule) applies(q string) bool {
	for _, frag := range r.allOf {
		if !strings.Contains(q, frag) {
			return false
		}
	}
	if len(r.anyOf) == 0 {
		return true
	}
	for _, frag := range r.anyOf {
		if strings.Contains(q, frag) {
			return true
		}
	}
	return false
}

// Variations expands a material query into lowercase search forms.
// The lowercased query is always first; synonym forms follow without
// duplicates.
func Variations(query string) []string {
	q := strings.ToLower(query)
	out := []string{q}
	seen := map[string]bool{q: true}

	for _, rule := range synonymRules {
		if !rule.applies(q) {
			continue
		}
		for _, v := range rule.add {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// Matches reports whether a table material satisfies the query.
//
// Process variants are resolved before plain synonym matching, in this order:
// a mixed gas query only matches mixed gas carbon steel; an O2 negative focus
// query only matches O2 negative focus rows; any other O2 query matches O2 rows
// that are not negative focus. Otherwise the candidate matches when it
// contains any of the variations.
func Matches(query, candidate string, variations []string) bool {
	q := strings.ToLower(query)
	c := strings.ToLower(candidate)

	switch {
	case strings.Contains(q, fragMixedGas):
		return strings.Contains(c, fragMixedGas) && strings.Contains(c, fragCarbonSteel)
	case strings.Contains(q, fragO2) && strings.Contains(q, fragNegative):
		return strings.Contains(c, fragO2) && strings.Contains(c, fragNegativeFocus)
	case strings.Contains(q, fragO2):
		return strings.Contains(c, fragO2) && !strings.Contains(c, fragNegativeFocus)
	}

	for _, v := range variations {
		if strings.Contains(c, v) {
			return true
		}
	}
	return false
}
