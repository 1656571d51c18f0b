// Package templates renders the HTML pages of the catalog.
//
// Components are written in .templ files; run `templ generate` after editing
// them.
package templates

import (
	"fmt"

	"github.com/JonMunkholm/industrialdepot/internal/core"
)

// CalculatorData is the state of the calculator page.
type CalculatorData struct {
	Options   []core.MaterialOption
	Material  string
	Thickness string
	Result    *core.CalculationResult
	Error     *core.UserMessage
}

// selected reports whether an option matches the submitted material, given
// either as display or canonical name.
func (d CalculatorData) selected(o core.MaterialOption) bool {
	return d.Material != "" && (o.Display == d.Material || o.Canonical == d.Material)
}

func resultHeading(res core.CalculationResult) string {
	return fmt.Sprintf("%s, %s mm", res.DisplayMaterial, core.PrettyValue(fmt.Sprint(res.Thickness)))
}
