package source

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/industrialdepot/internal/config"
	"github.com/JonMunkholm/industrialdepot/internal/core"
)

// Kinds lists the tables every deployment binds, in load order.
var Kinds = []core.TableKind{core.KindCut, core.KindPerforation}

// FromConfig binds each registered table to the configured source. The
// returned function releases connections and is safe to call when err is
// non-nil.
func FromConfig(ctx context.Context, cfg *config.Config) ([]core.Binding, func(), error) {
	closeFn := func() {}

	var pick func(kind core.TableKind) core.Source
	switch cfg.Source.Kind {
	case config.SourceEmbedded, "":
		pick = func(kind core.TableKind) core.Source { return Sample(kind) }

	case config.SourceFile:
		pick = func(kind core.TableKind) core.Source {
			p := cfg.Source.CutPath
			if kind == core.KindPerforation {
				p = cfg.Source.PerforationPath
			}
			if p == "" {
				return nil
			}
			return &File{Path: p}
		}

	case config.SourcePostgres:
		pool, err := NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, closeFn, err
		}
		closeFn = pool.Close
		pick = func(kind core.TableKind) core.Source {
			if kind == core.KindPerforation {
				return NewPostgres(pool, string(kind), cfg.Database.PerforationQuery)
			}
			return NewPostgres(pool, string(kind), cfg.Database.CutQuery)
		}

	case config.SourceS3:
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, closeFn, err
		}
		pick = func(kind core.TableKind) core.Source {
			if kind == core.KindPerforation {
				return NewS3(client, cfg.S3.Bucket, cfg.S3.PerforationKey)
			}
			return NewS3(client, cfg.S3.Bucket, cfg.S3.CutKey)
		}

	default:
		return nil, closeFn, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}

	bindings := make([]core.Binding, 0, len(Kinds))
	for _, kind := range Kinds {
		def, ok := core.ByKind(kind)
		if !ok {
			closeFn()
			return nil, func() {}, fmt.Errorf("no table registered for %s", kind)
		}
		bindings = append(bindings, core.Binding{
			Def:      def,
			Source:   pick(kind),
			Encoding: cfg.Source.Encoding,
		})
	}

	return bindings, closeFn, nil
}
