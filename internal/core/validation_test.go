package core

import (
	"errors"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: FieldThickness, Value: "abc", Message: MsgInvalidThickness}
	want := "invalid thickness: Por favor ingrese un grosor válido."
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := ValidationError{Message: "bad"}
	if got := bare.Error(); got != "bad" {
		t.Errorf("Error() = %q, want %q", got, "bad")
	}
}

func TestValidateThickness(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"6", 6, false},
		{" 2.5 ", 2.5, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-1", 0, true},
		{"2,5", 0, true},
		{"NaN", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ValidateThickness(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateThickness(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				var ve ValidationError
				if !errors.As(err, &ve) || ve.Message != MsgInvalidThickness {
					t.Errorf("error = %#v, want thickness ValidationError", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ValidateThickness(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateMaterial(t *testing.T) {
	mapping := map[string]string{"Aluminio": "Aluminium Alloy", "Latón": "Brass"}
	canonical := []string{"Aluminium Alloy", "Brass"}

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"Aluminio", "Aluminium Alloy", false},
		{"latón", "Brass", false},
		{"brass", "Brass", false},
		{"  Aluminio  ", "Aluminium Alloy", false},
		{"", "", true},
		{"Cobre", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ValidateMaterial(tt.input, mapping, canonical)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateMaterial(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateMaterial(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
