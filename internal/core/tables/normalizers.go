package tables

import "strings"

// GasNames maps lowercase assist gas spellings to their canonical form.
var GasNames = map[string]string{
	"o2":       "O2",
	"oxygen":   "O2",
	"n2":       "N2",
	"nitrogen": "N2",
	"air":      "Air",
	"aire":     "Air",
	"ar":       "Ar",
	"argon":    "Ar",
}

// NormalizeGas canonicalizes assist gas names, including mixes written as
// "n2+air" or "N2/Air". Separators and unknown parts are kept as written.
func NormalizeGas(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	var (
		out  strings.Builder
		part strings.Builder
	)
	flush := func() {
		p := strings.TrimSpace(part.String())
		if g, ok := GasNames[strings.ToLower(p)]; ok {
			p = g
		}
		out.WriteString(p)
		part.Reset()
	}

	for _, r := range s {
		if r == '+' || r == '/' {
			flush()
			out.WriteRune(r)
			continue
		}
		part.WriteRune(r)
	}
	flush()

	return out.String()
}
