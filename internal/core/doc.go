// Package core provides the parameter lookup logic for the laser catalog.
//
// This package contains all domain logic independent of any transport or
// storage backend. It can be used by web handlers, CLI tools, or tests
// without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Table Definitions: registered via the registry, each table has a
//     positional schema of field specs.
//   - Ingestion: [Parse] turns raw delimited text into [ParameterRecord]s.
//   - Store: [Store] owns the cut and perforation tables and a parse cache.
//   - Lookup: [Match] finds the best record for a material and thickness.
//   - Service: [Service] is the query interface used by transports.
//
// # Table Registry
//
// Tables are registered at init time using [Register]. Columns are mapped by
// position; the Target of a spec promotes it to a typed record field:
//
//	core.Register(core.TableDefinition{
//	    Info: core.TableInfo{Key: "laser_cut", Kind: core.KindCut, Label: "Corte"},
//	    FieldSpecs: []core.FieldSpec{
//	        {Name: "id", Target: core.TargetID, Required: true},
//	        {Name: "thickness_mm", Type: core.FieldNumeric, Target: core.TargetThickness, Required: true},
//	    },
//	})
//
// # Material Matching
//
// Queries are expanded into lowercase [Variations] and compared with
// [Matches]. Process variants (O2, O2 negative focus, mixed gas) are
// resolved before plain synonym matching.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - SRC001-SRC002: Source errors (unavailable, encoding)
//   - VAL001-VAL003: Validation errors (thickness, material, request)
//   - LKP001-LKP002: Lookup errors (no match, equipment not found)
//   - REQ001-REQ003: Request errors (cancelled, timeout, refresh busy)
//   - RATE001: Rate limiting
//   - AUTH001-AUTH002: Authorization errors (missing or invalid API key)
package core
