// Package source reads the raw text of the parameter tables.
//
// Every source implements core.Source. Failures to locate or read a table
// wrap core.ErrSourceUnavailable so the store can install an empty table
// and report the problem.
package source

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/JonMunkholm/industrialdepot/internal/core"
)

//go:embed data/*.csv
var sampleData embed.FS

// Bundled sample tables.
const (
	SampleCutFile         = "data/laser_cut_params_subset_with_id.csv"
	SamplePerforationFile = "data/laser_perforation_params_subset_with_id.csv"
)

// Embedded reads a file from a read-only file system, by default the sample
// tables bundled with the binary.
type Embedded struct {
	FS   fs.FS
	Path string
}

// Sample returns the bundled table for a kind.
func Sample(kind core.TableKind) *Embedded {
	p := SampleCutFile
	if kind == core.KindPerforation {
		p = SamplePerforationFile
	}
	return &Embedded{FS: sampleData, Path: p}
}

// Name implements core.Source.
func (e *Embedded) Name() string {
	return "embedded:" + path.Base(e.Path)
}

// Open implements core.Source.
func (e *Embedded) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := e.FS.Open(e.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", e.Path, core.ErrSourceUnavailable, err)
	}
	return f, nil
}

// File reads a table from the local file system.
type File struct {
	Path string
}

// Name implements core.Source.
func (f *File) Name() string {
	return "file:" + f.Path
}

// Open implements core.Source.
func (f *File) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", f.Path, core.ErrSourceUnavailable, err)
	}
	return file, nil
}
