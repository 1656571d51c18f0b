package core

import "math"

// ExactThicknessTolerance is the largest thickness difference (exclusive)
// accepted as an exact match, in millimeters.
const ExactThicknessTolerance = 0.1

// MatchKind describes how a lookup result was selected.
type MatchKind int

const (
	MatchNone    MatchKind = iota // No record has a matching material
	MatchExact                    // Thickness within ExactThicknessTolerance
	MatchNearest                  // Closest thickness among matching materials
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchNearest:
		return "nearest"
	default:
		return "none"
	}
}

// Match selects the best record for a material and thickness.
//
// The first record in table order whose material matches and whose thickness
// is within ExactThicknessTolerance wins. Failing that, the matching record
// with the smallest thickness difference wins, the earliest on ties. Match
// never mutates the table.
func Match(table []ParameterRecord, material string, thickness float64) (ParameterRecord, MatchKind) {
	variations := Variations(material)

	nearest := -1
	nearestDiff := math.Inf(1)

	for i := range table {
		if !Matches(material, table[i].Material, variations) {
			continue
		}

		diff := math.Abs(table[i].Thickness - thickness)
		if diff < ExactThicknessTolerance {
			return table[i], MatchExact
		}
		if diff < nearestDiff {
			nearest = i
			nearestDiff = diff
		}
	}

	if nearest < 0 {
		return ParameterRecord{}, MatchNone
	}
	return table[nearest], MatchNearest
}

// FindBestMatch returns the best record for a material and thickness, or
// false when no record in the table has a matching material.
func FindBestMatch(table []ParameterRecord, material string, thickness float64) (ParameterRecord, bool) {
	rec, kind := Match(table, material, thickness)
	return rec, kind != MatchNone
}
