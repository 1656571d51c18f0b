package core

import (
	"context"
	"io"
	"time"
)

// Source supplies the raw delimited text of one parameter table.
// Implementations live in the source package (embedded, file, postgres, s3).
type Source interface {
	// Name identifies the source in logs and status output.
	Name() string

	// Open returns the raw table text. Errors for missing or unreadable
	// sources should wrap ErrSourceUnavailable.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// TableKind distinguishes the two parameter tables.
type TableKind string

const (
	KindCut         TableKind = "cut"
	KindPerforation TableKind = "perforation"
)

// FieldType represents how a column value is parsed.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
	FieldSpeed // single value or "a-b" / "a~b" range
)

// Target names the typed ParameterRecord field a column is promoted to.
// Columns left at TargetExtra are stored in ParameterRecord.Extra.
type Target int

const (
	TargetExtra Target = iota
	TargetID
	TargetMaterial
	TargetThickness
	TargetPower
	TargetSpeed
	TargetGas
	TargetCollimation
)

// ReservedKeys are column names promoted to typed fields. They never appear
// in ParameterRecord.Extra, even when a schema lists them as extra columns.
var ReservedKeys = map[string]bool{
	"power_w":         true,
	"speed_m_per_min": true,
	"gas":             true,
	"collimation_mm":  true,
}

// FieldSpec describes one source column. The column position is the index of
// the FieldSpec in TableDefinition.FieldSpecs.
type FieldSpec struct {
	Name     string    // Column name; also the Extra key and translation key
	Type     FieldType // Parsing rule
	Target   Target    // Typed field this column fills (TargetExtra if none)
	Required bool      // Row is rejected when the value is empty or unparseable

	// Normalizer optionally rewrites a non-empty cleaned value before parsing.
	Normalizer func(string) string
}

// TableInfo contains display information about a parameter table.
type TableInfo struct {
	Key     string    // Unique identifier: "laser_cut"
	Kind    TableKind // cut or perforation
	Label   string    // Display name
	Columns []string  // Column names in position order
}

// TableDefinition is the positional schema of a parameter table.
// Values are mapped by column position, never by header name.
type TableDefinition struct {
	Info       TableInfo
	FieldSpecs []FieldSpec
}

// ParameterRecord is one row of a cutting or perforation table.
type ParameterRecord struct {
	ID          string            `json:"id"`
	Kind        TableKind         `json:"kind"`
	Material    string            `json:"material"`
	Thickness   float64           `json:"thickness"`
	Power       *float64          `json:"power,omitempty"`
	Speed       *float64          `json:"speed,omitempty"`
	Gas         *string           `json:"gas,omitempty"`
	Collimation *float64          `json:"collimation,omitempty"`
	Extra       map[string]string `json:"extraParameters,omitempty"`
}

// ParseStats counts what happened to each data line during ingestion.
type ParseStats struct {
	Lines     int // Non-empty data lines seen
	Kept      int // Records produced
	Malformed int // Rows with fewer values than the header
	Rejected  int // Rows violating record invariants (empty id, bad thickness)
}

// Dropped returns the total number of rows that did not become records.
func (s ParseStats) Dropped() int {
	return s.Malformed + s.Rejected
}

// RecordTable is an immutable snapshot of one loaded parameter table.
// Records must not be modified by callers; the slice may be shared with the
// store's parse cache.
type RecordTable struct {
	LoadID   string
	Kind     TableKind
	Source   string
	LoadedAt time.Time
	Records  []ParameterRecord
	Stats    ParseStats
	Cached   bool  // True when the records came from the parse cache
	Err      error // Non-nil when the source was unavailable
}

// Len returns the number of records in the table.
func (t *RecordTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// TableStatus summarizes a loaded table for status output.
type TableStatus struct {
	Kind     TableKind `json:"kind"`
	LoadID   string    `json:"loadId"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt"`
	Rows     int       `json:"rows"`
	Dropped  int       `json:"dropped"`
	Cached   bool      `json:"cached"`
	Error    string    `json:"error,omitempty"`
}
