package core

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Known laser series, most powerful first.
var modelSeries = []string{"MFSC-1500X", "MFSC-1000X"}

// ModelLabel is the display label for the recommended model row.
const ModelLabel = "Modelo Recomendado"

// ModelSeries extracts the laser series from a record id.
// Ids without a known series are returned unchanged.
func ModelSeries(id string) string {
	for _, m := range modelSeries {
		if strings.Contains(id, m) {
			return m
		}
	}
	return id
}

// PrettyValue formats a numeric cell for display: whole numbers without a
// decimal point, everything else with one decimal. Non-numeric values are
// returned unchanged.
func PrettyValue(s string) string {
	f := ParseNumber(s)
	if f == nil {
		return s
	}
	if *f == math.Floor(*f) {
		return formatInt(*f)
	}
	return strconv.FormatFloat(*f, 'f', 1, 64)
}

// maxExactInt is the largest magnitude a float64 holds as an exact integer.
const maxExactInt = 1 << 53

// formatInt drops the fractional part. Magnitudes beyond maxExactInt keep
// float formatting since they do not fit an int64 reliably.
func formatInt(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) || math.Abs(f) >= maxExactInt {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatInt(int64(f), 10)
}

func formatOneDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// DisplayParameter is one labelled row of a presented result.
type DisplayParameter struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// TermTranslator translates column keys for display.
type TermTranslator interface {
	TranslateTerm(key string) string
}

// DisplayParameters lays out a record for presentation: the recommended
// model, the extra parameters sorted by key (series omitted), then power,
// speed, gas, collimation and thickness. Labels come from the translator.
func DisplayParameters(rec ParameterRecord, terms TermTranslator) []DisplayParameter {
	params := []DisplayParameter{{Key: "model", Label: ModelLabel, Value: ModelSeries(rec.ID)}}

	keys := make([]string, 0, len(rec.Extra))
	for k := range rec.Extra {
		if k != "series" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		params = append(params, DisplayParameter{Key: k, Label: terms.TranslateTerm(k), Value: PrettyValue(rec.Extra[k])})
	}

	if rec.Power != nil {
		params = append(params, DisplayParameter{Key: "power_w", Label: terms.TranslateTerm("power_w"), Value: formatInt(*rec.Power)})
	}
	if rec.Speed != nil {
		params = append(params, DisplayParameter{Key: "speed_m_per_min", Label: terms.TranslateTerm("speed_m_per_min"), Value: formatOneDecimal(*rec.Speed)})
	}
	if rec.Gas != nil {
		params = append(params, DisplayParameter{Key: "gas", Label: terms.TranslateTerm("gas"), Value: *rec.Gas})
	}
	if rec.Collimation != nil {
		params = append(params, DisplayParameter{Key: "collimation_mm", Label: terms.TranslateTerm("collimation_mm"), Value: formatInt(*rec.Collimation)})
	}
	params = append(params, DisplayParameter{Key: "thickness_mm", Label: terms.TranslateTerm("thickness_mm"), Value: formatOneDecimal(rec.Thickness)})

	return params
}
