package core

// ingest.go turns the raw text of a parameter table into ParameterRecords.
//
// The format is deliberately simple: newline-separated rows, comma-separated
// fields, and double quotes that toggle a quoted region so commas inside a
// remark survive. There is no escaping of quotes. Values are mapped to record
// fields by column position using the table's FieldSpecs; header names are
// only counted.

import (
	"strings"
)

// SplitLine splits one row into fields.
// A double quote toggles the quoted state and is not emitted; a comma outside
// quotes ends the current field. Fields are trimmed of surrounding whitespace.
func SplitLine(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// splitRows splits raw text into lines, trimming a trailing carriage return.
func splitRows(raw string) []string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Parse converts raw table text into records using the definition's
// positional schema. The first line is the header; only its column count is
// used. Rows with fewer values than header columns are dropped as malformed.
// Rows with an empty required value (id, thickness) or a negative thickness
// are dropped as rejected. Parse is pure: the same input always yields an
// equal result.
func Parse(raw string, def TableDefinition) ([]ParameterRecord, ParseStats) {
	var stats ParseStats

	lines := splitRows(raw)
	if len(lines) < 2 {
		return []ParameterRecord{}, stats
	}

	headerCount := len(SplitLine(lines[0]))
	records := make([]ParameterRecord, 0, len(lines)-1)

	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		stats.Lines++

		values := SplitLine(line)
		if len(values) < headerCount {
			stats.Malformed++
			continue
		}

		rec, ok := buildRecord(values, def)
		if !ok {
			stats.Rejected++
			continue
		}

		records = append(records, rec)
		stats.Kept++
	}

	return records, stats
}

// buildRecord maps row values onto a record by position.
func buildRecord(values []string, def TableDefinition) (ParameterRecord, bool) {
	rec := ParameterRecord{Kind: def.Info.Kind}
	haveThickness := false

	for pos, spec := range def.FieldSpecs {
		raw := ""
		if pos < len(values) {
			raw = CleanCell(values[pos])
		}
		if spec.Normalizer != nil && raw != "" {
			raw = spec.Normalizer(raw)
		}

		if spec.Required && raw == "" {
			return ParameterRecord{}, false
		}

		switch spec.Target {
		case TargetID:
			rec.ID = raw
		case TargetMaterial:
			rec.Material = raw
		case TargetThickness:
			t, ok := ParseThickness(raw)
			if !ok {
				return ParameterRecord{}, false
			}
			rec.Thickness = t
			haveThickness = true
		case TargetPower:
			rec.Power = parseTyped(raw, spec.Type)
		case TargetSpeed:
			rec.Speed = parseTyped(raw, spec.Type)
		case TargetCollimation:
			rec.Collimation = parseTyped(raw, spec.Type)
		case TargetGas:
			rec.Gas = ParseText(raw)
		default:
			if raw == "" || ReservedKeys[spec.Name] {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[spec.Name] = raw
		}
	}

	if rec.ID == "" || !haveThickness {
		return ParameterRecord{}, false
	}
	return rec, true
}

func parseTyped(raw string, ft FieldType) *float64 {
	if ft == FieldSpeed {
		return ParseSpeed(raw)
	}
	return ParseNumber(raw)
}
