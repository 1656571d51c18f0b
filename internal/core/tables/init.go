// Package tables registers the laser parameter table definitions with the
// core registry. Import this package to ensure all tables are registered.
package tables

// This file exists to provide a single import point.
// Each table file uses init() to register its tables.

// Registry keys of the parameter tables.
const (
	CutKey         = "laser_cut"
	PerforationKey = "laser_perforation"
)
