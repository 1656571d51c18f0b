package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/industrialdepot/internal/core"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return sb.String()
}

// -----------------------------------------------------------------------------
// Calculator Tests
// -----------------------------------------------------------------------------

func TestCalculator(t *testing.T) {
	options := []core.MaterialOption{
		{Canonical: "Brass", Display: "Latón"},
		{Canonical: "Copper", Display: "Cobre"},
	}

	tests := []struct {
		name    string
		data    CalculatorData
		want    []string
		notWant []string
	}{
		{
			name: "empty form",
			data: CalculatorData{Options: options},
			want: []string{
				"<!doctype html>",
				"<title>Calculadora de Parámetros</title>",
				`<option value="Latón">Latón</option>`,
				`<option value="Cobre">Cobre</option>`,
				`value=""`,
			},
			notWant: []string{" selected", `class="alert"`},
		},
		{
			name: "canonical material selects its option",
			data: CalculatorData{Options: options, Material: "Copper", Thickness: "2"},
			want: []string{
				`<option value="Cobre" selected>Cobre</option>`,
				`value="2"`,
			},
		},
		{
			name:    "submitted values are escaped",
			data:    CalculatorData{Options: options, Thickness: `"><script>`},
			want:    []string{`value="&#34;&gt;&lt;script&gt;"`},
			notWant: []string{"<script>"},
		},
		{
			name: "error alert",
			data: CalculatorData{Options: options, Error: &core.UserMessage{Message: "Grosor inválido", Code: "VAL001"}},
			want: []string{`<div class="alert" role="alert"><strong>Grosor inválido</strong>`, "Código: VAL001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, Calculator(tt.data))
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("output should not contain %q", w)
				}
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Result Tests
// -----------------------------------------------------------------------------

func TestResult(t *testing.T) {
	found := core.CalculationResult{
		Found:           true,
		DisplayMaterial: "Latón",
		Thickness:       3,
		Match:           core.MatchNearest.String(),
		Parameters: []core.DisplayParameter{
			{Key: "model", Label: core.ModelLabel, Value: "MFSC-1000X"},
		},
	}

	got := render(t, Result(found))
	for _, w := range []string{
		"<h2>Latón, 3 mm</h2>",
		"<tr><td>Modelo Recomendado</td><td>MFSC-1000X</td></tr>",
		"Grosor más cercano disponible en la tabla.",
	} {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q", w)
		}
	}

	found.Match = core.MatchExact.String()
	if got := render(t, Result(found)); strings.Contains(got, "más cercano") {
		t.Error("exact match should not show the nearest note")
	}

	missing := core.CalculationResult{Message: "No se encontraron parámetros"}
	got = render(t, Result(missing))
	if !strings.Contains(got, `<div class="notice" role="status">No se encontraron parámetros</div>`) {
		t.Errorf("output = %q", got)
	}
}

func TestErrorAlertOmitsEmptyAction(t *testing.T) {
	got := render(t, ErrorAlert("Falló", "", "ERR000"))
	if strings.Contains(got, "<p>") {
		t.Errorf("output = %q, want no action paragraph", got)
	}

	got = render(t, ErrorAlert("Falló", "Intente de nuevo", "ERR000"))
	if !strings.Contains(got, "<p>Intente de nuevo</p>") {
		t.Errorf("output = %q, want action paragraph", got)
	}
}
