package core

import (
	"strings"
	"testing"
)

func withCleanRegistry(t *testing.T) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)
}

func TestRegisterAndGet(t *testing.T) {
	withCleanRegistry(t)

	Register(testCutDef())
	Register(testPerfDef())

	if got := TableCount(); got != 2 {
		t.Fatalf("TableCount() = %d, want 2", got)
	}

	def, ok := Get("test_cut")
	if !ok {
		t.Fatal("Get(test_cut) not found")
	}
	if len(def.Info.Columns) != 16 || def.Info.Columns[6] != "thickness_mm" {
		t.Errorf("Columns = %v, want 16 columns with thickness_mm at 6", def.Info.Columns)
	}

	if _, ok := Get("missing"); ok {
		t.Error("Get(missing) should not be found")
	}

	perf, ok := ByKind(KindPerforation)
	if !ok || perf.Info.Key != "test_perf" {
		t.Errorf("ByKind(perforation) = %q, %v", perf.Info.Key, ok)
	}

	all := All()
	if len(all) != 2 || all[0].Info.Kind != KindCut {
		t.Errorf("All() order = %v, want cut first", all)
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name    string
		defs    []TableDefinition
		wantMsg string
	}{
		{
			name:    "duplicate key",
			defs:    []TableDefinition{testCutDef(), testCutDef()},
			wantMsg: "already registered",
		},
		{
			name: "missing thickness",
			defs: []TableDefinition{{
				Info:       TableInfo{Key: "bad"},
				FieldSpecs: []FieldSpec{{Name: "id", Target: TargetID}},
			}},
			wantMsg: "required",
		},
		{
			name: "target promoted twice",
			defs: []TableDefinition{{
				Info: TableInfo{Key: "twice"},
				FieldSpecs: []FieldSpec{
					{Name: "id", Target: TargetID},
					{Name: "thickness_mm", Target: TargetThickness},
					{Name: "power_a", Target: TargetPower},
					{Name: "power_b", Target: TargetPower},
				},
			}},
			wantMsg: "promoted by 2 columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withCleanRegistry(t)
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				if msg, _ := r.(string); !strings.Contains(msg, tt.wantMsg) {
					t.Errorf("panic = %v, want containing %q", r, tt.wantMsg)
				}
			}()
			for _, def := range tt.defs {
				Register(def)
			}
		})
	}
}
