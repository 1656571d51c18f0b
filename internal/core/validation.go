package core

// validation.go checks calculator input before any lookup runs.
//
// Invalid input never reaches the lookup engine: the caller gets a
// ValidationError carrying the field, the rejected value, and the message
// shown to the user.

import (
	"fmt"
	"math"
	"strings"
)

// User-facing validation messages.
const (
	MsgInvalidThickness = "Por favor ingrese un grosor válido."
	MsgInvalidMaterial  = "Por favor seleccione un material válido."
)

// Validated field names.
const (
	FieldThickness = "thickness"
	FieldMaterial  = "material"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidateThickness parses a thickness entered by a user.
// Empty, non-numeric, negative, and non-finite values are rejected.
func ValidateThickness(s string) (float64, error) {
	f := ParseNumber(s)
	if f == nil || *f < 0 || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return 0, ValidationError{
			Field:   FieldThickness,
			Value:   s,
			Message: MsgInvalidThickness,
		}
	}
	return *f, nil
}

// ValidateMaterial resolves a user-selected material against the materials
// offered to the user. The selection may be a display name (a key of
// displayToCanonical) or a canonical table material; the comparison ignores
// case and surrounding whitespace. Returns the canonical material.
func ValidateMaterial(s string, displayToCanonical map[string]string, canonical []string) (string, error) {
	sel := strings.TrimSpace(s)
	if sel == "" {
		return "", ValidationError{Field: FieldMaterial, Value: s, Message: MsgInvalidMaterial}
	}

	if c, ok := displayToCanonical[sel]; ok {
		return c, nil
	}
	for display, c := range displayToCanonical {
		if strings.EqualFold(display, sel) {
			return c, nil
		}
	}
	for _, c := range canonical {
		if strings.EqualFold(c, sel) {
			return c, nil
		}
	}

	return "", ValidationError{Field: FieldMaterial, Value: s, Message: MsgInvalidMaterial}
}
