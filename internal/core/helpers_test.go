package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
)

// testCutDef mirrors the registered cutting table without importing it.
func testCutDef() TableDefinition {
	return TableDefinition{
		Info: TableInfo{Key: "test_cut", Kind: KindCut, Label: "Cut"},
		FieldSpecs: []FieldSpec{
			{Name: "id", Target: TargetID, Required: true},
			{Name: "series"},
			{Name: "fiber_core_um", Type: FieldNumeric},
			{Name: "collimation_mm", Type: FieldNumeric, Target: TargetCollimation},
			{Name: "focus_lens_mm", Type: FieldNumeric},
			{Name: "material", Target: TargetMaterial},
			{Name: "thickness_mm", Type: FieldNumeric, Target: TargetThickness, Required: true},
			{Name: "speed_m_per_min", Type: FieldSpeed, Target: TargetSpeed},
			{Name: "power_w", Type: FieldNumeric, Target: TargetPower},
			{Name: "gas", Target: TargetGas},
			{Name: "pressure_bar", Type: FieldNumeric},
			{Name: "nozzle_diameter_mm", Type: FieldNumeric},
			{Name: "nozzle_type"},
			{Name: "focus_offset_mm", Type: FieldNumeric},
			{Name: "cutting_height_mm", Type: FieldNumeric},
			{Name: "remark"},
		},
	}
}

// testPerfDef is a reduced perforation table.
func testPerfDef() TableDefinition {
	return TableDefinition{
		Info: TableInfo{Key: "test_perf", Kind: KindPerforation, Label: "Perforation"},
		FieldSpecs: []FieldSpec{
			{Name: "id", Target: TargetID, Required: true},
			{Name: "material", Target: TargetMaterial},
			{Name: "thickness_mm", Type: FieldNumeric, Target: TargetThickness, Required: true},
			{Name: "gas", Target: TargetGas},
			{Name: "power_w", Type: FieldNumeric, Target: TargetPower},
			{Name: "perforation_time_ms", Type: FieldNumeric},
		},
	}
}

const cutHeader = "id,series,fiber_core_um,collimation_mm,focus_lens_mm,material,thickness_mm,speed_m_per_min,power_w,gas,pressure_bar,nozzle_diameter_mm,nozzle_type,focus_offset_mm,cutting_height_mm,remark"

// cutRow builds a cut CSV row with the given id, material, thickness and speed.
func cutRow(id, material, thickness, speed string) string {
	return id + ",MFSC-1000X,50,100,150," + material + "," + thickness + "," + speed + ",1000,N2,12,2.0,Single,0,0.8,"
}

func cutCSV(rows ...string) string {
	return cutHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func rec(id, material string, thickness float64) ParameterRecord {
	return ParameterRecord{ID: id, Kind: KindCut, Material: material, Thickness: thickness}
}

// stubSource serves fixed text, or an error when err is set.
type stubSource struct {
	name  string
	text  atomic.Value // string
	err   error
	opens atomic.Int32
}

func newStubSource(name, text string) *stubSource {
	s := &stubSource{name: name}
	s.text.Store(text)
	return s
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Open(ctx context.Context) (io.ReadCloser, error) {
	s.opens.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(s.text.Load().(string))), nil
}

func (s *stubSource) set(text string) { s.text.Store(text) }

var errMissing = errors.New("missing file")

// fakeTerms is a small Translator used by service tests.
type fakeTerms struct{}

var fakeMaterials = map[string]string{
	"Carbon Steel":    "Acero al Carbono",
	"Stainless Steel": "Acero Inoxidable",
	"Aluminium Alloy": "Aluminio",
	"Aluminum Alloy":  "Aluminio",
}

func (fakeTerms) TranslateTerm(key string) string {
	switch key {
	case "power_w":
		return "Potencia (W)"
	case "thickness_mm":
		return "Grosor (mm)"
	}
	return key
}

func (fakeTerms) TranslateMaterial(name string) string {
	if d, ok := fakeMaterials[name]; ok {
		return d
	}
	return name
}

func (fakeTerms) TranslateMaterialToCanonical(display string) string {
	if strings.EqualFold(display, "acero carbono") {
		return "carbon steel"
	}
	return display
}
