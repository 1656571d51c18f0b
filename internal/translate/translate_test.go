package translate

import (
	"strings"
	"testing"
)

func newTestMapper(t *testing.T) *Mapper {
	t.Helper()
	m, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	return m
}

// -----------------------------------------------------------------------------
// Term Tests
// -----------------------------------------------------------------------------

func TestTranslateTerm(t *testing.T) {
	m := newTestMapper(t)

	tests := []struct {
		key  string
		want string
	}{
		// exact compound phrase, raw and normalized
		{"thickness_mm", "Grosor (mm)"},
		{"power_w", "Potencia (W)"},
		{"Speed_m_per_min", "Velocidad (m/min)"},
		{"nozzle height mm", "Altura de boquilla (mm)"},
		// exact general word
		{"DOF", "GDL"},
		{"Controller", "Controlador"},
		// pattern rules
		{"Payload_kg", "Carga Útil (kg)"},
		{"Reach_mm", "Alcance (mm)"},
		{"Body_Weight_kg", "Peso del Equipo (kg)"},
		{"Repeatability (mm)", "Repetibilidad (mm)"},
		{"heat_affected_zone", "Zona Afectada por el Calor"},
		// partial replacement
		{"max_payload", "max Carga Útil"},
		// title-cased fallback
		{"xyz_abc", "Xyz Abc"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := m.TranslateTerm(tt.key); got != tt.want {
				t.Errorf("TranslateTerm(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestTranslateTerm_LongestKeyWins(t *testing.T) {
	terms := Terms{
		General:  NewDictionary(Entry{"nozzle", "Boquilla"}),
		Compound: NewDictionary(Entry{"nozzle gap", "Separación de boquilla"}),
	}
	m, err := New(terms)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := m.TranslateTerm("nozzle_gap_mm"); got != "Separación de boquilla mm" {
		t.Errorf("TranslateTerm = %q, want %q", got, "Separación de boquilla mm")
	}
}

func TestTranslateTerm_DeclarationOrderBreaksTies(t *testing.T) {
	terms := Terms{
		General:  NewDictionary(Entry{"feed", "Avance"}),
		Compound: NewDictionary(Entry{"rate", "Tasa"}),
	}
	m, err := New(terms)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Both keys are four characters; the general dictionary is scanned first.
	for i := 0; i < 20; i++ {
		if got := m.TranslateTerm("feed rate"); got != "Avance rate" {
			t.Fatalf("TranslateTerm = %q, want %q", got, "Avance rate")
		}
	}
}

// -----------------------------------------------------------------------------
// Material Tests
// -----------------------------------------------------------------------------

func TestTranslateMaterial(t *testing.T) {
	m := newTestMapper(t)

	tests := []struct {
		name string
		want string
	}{
		{"Carbon Steel", "Acero al Carbono"},
		{"  carbon steel (O2)  ", "Acero al Carbono (O2)"},
		{"Carbon Steel (O2, Negative Focus)", "Acero al Carbono (O2, Foco Negativo)"},
		{"Aluminium Alloy", "Aluminio"},
		{"Bronze", "Bronce"},
		// partial, longest complete key wins
		{"Carbon Steel (O2) 2mm", "Acero al Carbono (O2)"},
		{"Stainless Steel (Mixed Gas)", "Acero Inoxidable"},
		// special cases
		{"Aluminium Sheet", "Aluminio"},
		// fallback
		{"unobtainium", "Unobtainium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.TranslateMaterial(tt.name); got != tt.want {
				t.Errorf("TranslateMaterial(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestTranslateMaterialToCanonical(t *testing.T) {
	m := newTestMapper(t)

	tests := []struct {
		display string
		want    string
	}{
		{"Acero al Carbono", "carbon steel"},
		{"acero inoxidable", "stainless steel"},
		{"Laton", "brass"},
		{"LATÓN", "brass"},
		{"Aluminio", "aluminum alloy"},
		{"Acero al Carbono (O2)", "carbon steel (o2)"},
		{"Bronce", "bronze"},
		// special cases
		{"aluminio fundido", "aluminum alloy"},
		{"acero carbono", "carbon steel"},
		// identity
		{"Madera", "Madera"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.display, func(t *testing.T) {
			if got := m.TranslateMaterialToCanonical(tt.display); got != tt.want {
				t.Errorf("TranslateMaterialToCanonical(%q) = %q, want %q", tt.display, got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Loading Tests
// -----------------------------------------------------------------------------

func TestLoad_KeepsOrder(t *testing.T) {
	const doc = `
compound:
  zeta: "Z"
  alpha: "A"
general:
  mid: "M"
materials:
  basic:
    steel: "Acero"
`
	m, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	entries := m.Terms().Compound.Entries()
	if len(entries) != 2 || entries[0].Key != "zeta" || entries[1].Key != "alpha" {
		t.Errorf("Compound entries = %v, want zeta then alpha", entries)
	}
	if got := m.TranslateMaterial("steel"); got != "Acero" {
		t.Errorf("TranslateMaterial(steel) = %q, want Acero", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"duplicate key", "general:\n  a: x\n  a: y\n"},
		{"not a mapping", "general: [a, b]\n"},
		{"nested value", "general:\n  a:\n    b: c\n"},
		{"empty pattern", "patterns:\n  - display: X\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/terms.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDictionary_NullValue(t *testing.T) {
	m, err := Load(strings.NewReader("general:\n  blank:\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	v, ok := m.Terms().General.Lookup("blank")
	if !ok || v != "" {
		t.Errorf("Lookup(blank) = %q, %v, want empty, true", v, ok)
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Latón", "laton"},
		{"  Acero  ", "acero"},
		{"Núcleo", "nucleo"},
	}
	for _, tt := range tests {
		if got := fold(tt.in); got != tt.want {
			t.Errorf("fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
