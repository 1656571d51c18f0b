package tables

import "github.com/JonMunkholm/industrialdepot/internal/core"

func init() {
	registerLaserCut()
}

// registerLaserCut registers the cutting table. Column order matches the
// exported laser_cut_params sheet.
func registerLaserCut() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   CutKey,
			Kind:  core.KindCut,
			Label: "Parámetros de Corte",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "id", Type: core.FieldText, Target: core.TargetID, Required: true},
			{Name: "series", Type: core.FieldText},
			{Name: "fiber_core_um", Type: core.FieldNumeric},
			{Name: "collimation_mm", Type: core.FieldNumeric, Target: core.TargetCollimation},
			{Name: "focus_lens_mm", Type: core.FieldNumeric},
			{Name: "material", Type: core.FieldText, Target: core.TargetMaterial},
			{Name: "thickness_mm", Type: core.FieldNumeric, Target: core.TargetThickness, Required: true},
			{Name: "speed_m_per_min", Type: core.FieldSpeed, Target: core.TargetSpeed},
			{Name: "power_w", Type: core.FieldNumeric, Target: core.TargetPower},
			{Name: "gas", Type: core.FieldText, Target: core.TargetGas, Normalizer: NormalizeGas},
			{Name: "pressure_bar", Type: core.FieldNumeric},
			{Name: "nozzle_diameter_mm", Type: core.FieldNumeric},
			{Name: "nozzle_type", Type: core.FieldText},
			{Name: "focus_offset_mm", Type: core.FieldNumeric},
			{Name: "cutting_height_mm", Type: core.FieldNumeric},
			{Name: "remark", Type: core.FieldText},
		},
	})
}
