package tables

import "github.com/JonMunkholm/industrialdepot/internal/core"

func init() {
	registerLaserPerforation()
}

// registerLaserPerforation registers the piercing table. It has no speed or
// collimation columns.
func registerLaserPerforation() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   PerforationKey,
			Kind:  core.KindPerforation,
			Label: "Parámetros de Perforación",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "id", Type: core.FieldText, Target: core.TargetID, Required: true},
			{Name: "series", Type: core.FieldText},
			{Name: "fiber_core_um", Type: core.FieldNumeric},
			{Name: "material", Type: core.FieldText, Target: core.TargetMaterial},
			{Name: "thickness_mm", Type: core.FieldNumeric, Target: core.TargetThickness, Required: true},
			{Name: "gas", Type: core.FieldText, Target: core.TargetGas, Normalizer: NormalizeGas},
			{Name: "stage", Type: core.FieldText},
			{Name: "power_w", Type: core.FieldNumeric, Target: core.TargetPower},
			{Name: "duty_percent", Type: core.FieldNumeric},
			{Name: "frequency_hz", Type: core.FieldNumeric},
			{Name: "nozzle_height_mm", Type: core.FieldNumeric},
			{Name: "air_pressure_bar", Type: core.FieldNumeric},
			{Name: "focus_offset_mm", Type: core.FieldNumeric},
			{Name: "perforation_time_ms", Type: core.FieldNumeric},
			{Name: "stop_blow_ms", Type: core.FieldNumeric},
			{Name: "remark", Type: core.FieldText},
		},
	})
}
