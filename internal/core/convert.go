package core

// convert.go provides tolerant conversion of CSV cells to record values.
//
// Parameter tables are hand-maintained spreadsheets, so cells carry the usual
// artifacts: stray whitespace, Excel formula prefixes (="value"), and speed
// ranges written as "1.0-1.2" or "1.0~1.2". Conversions never fail loudly;
// an unparseable cell becomes an absent value (nil).

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// speedRangeSeparators separate the bounds of a speed range.
const speedRangeSeparators = "-~"

// CleanCell removes common CSV artifacts from a cell value.
// Handles surrounding whitespace and Excel's ="value" text prefix.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// ParseText returns a pointer to the cleaned value, or nil when it is empty.
func ParseText(s string) *string {
	s = CleanCell(s)
	if s == "" {
		return nil
	}
	return &s
}

// ParseNumber converts a cell to a float.
// Returns nil for empty cells and anything that is not a plain decimal
// number (comma decimals, units and NaN/Inf are rejected).
func ParseNumber(s string) *float64 {
	s = CleanCell(s)
	if s == "" || !numericRegex.MatchString(s) {
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

// ParseSpeed converts a speed cell that may hold a single value or a range.
// For "a-b" and "a~b" the lower bound a is returned. A cell that starts with
// a separator has no lower bound and yields nil.
func ParseSpeed(s string) *float64 {
	s = CleanCell(s)
	idx := strings.IndexAny(s, speedRangeSeparators)
	switch {
	case idx == 0:
		return nil
	case idx > 0:
		return ParseNumber(s[:idx])
	default:
		return ParseNumber(s)
	}
}

// ParseThickness converts a thickness cell.
// Returns false for empty, unparseable, or negative values.
func ParseThickness(s string) (float64, bool) {
	f := ParseNumber(s)
	if f == nil || *f < 0 {
		return 0, false
	}
	return *f, true
}
