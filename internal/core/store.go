package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Observer receives ingestion and lookup events, typically to record metrics.
type Observer interface {
	TableLoaded(table string, stats ParseStats, bytes int64, cached bool, elapsed time.Duration)
	SourceFailed(table string)
	LookupCompleted(kind TableKind, result MatchKind)
}

type nopObserver struct{}

func (nopObserver) TableLoaded(string, ParseStats, int64, bool, time.Duration) {}
func (nopObserver) SourceFailed(string)                                         {}
func (nopObserver) LookupCompleted(TableKind, MatchKind)                        {}

// Binding connects a table definition to the source its text is read from.
type Binding struct {
	Def      TableDefinition
	Source   Source
	Encoding string // WHATWG label; empty means UTF-8
}

// StoreOptions configures a Store. Zero values use defaults.
type StoreOptions struct {
	Logger   *slog.Logger
	Observer Observer
}

// cacheKey identifies parsed text: the table it was parsed for plus a
// content hash and length.
type cacheKey struct {
	table string
	sum   uint64
	size  int
}

type cacheEntry struct {
	records []ParameterRecord
	stats   ParseStats
}

// snapshot is the set of tables visible to readers at one point in time.
type snapshot struct {
	tables map[TableKind]*RecordTable
}

// Store owns the cut and perforation tables.
//
// Readers get the current snapshot without locking; Refresh builds complete
// new tables and publishes them with a single atomic swap, so a reader sees
// either the old or the new tables, never a mix. The parse cache is the only
// shared mutable state and is guarded by a mutex.
type Store struct {
	bindings []Binding
	logger   *slog.Logger
	observer Observer

	current atomic.Pointer[snapshot]

	cacheMu sync.Mutex
	cache   map[cacheKey]cacheEntry
}

// NewStore creates a store for the given bindings. Tables start empty until
// Refresh is called.
func NewStore(opts StoreOptions, bindings ...Binding) *Store {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	bs := append([]Binding(nil), bindings...)
	sort.SliceStable(bs, func(i, j int) bool {
		return bs[i].Def.Info.Kind < bs[j].Def.Info.Kind
	})

	s := &Store{
		bindings: bs,
		logger:   opts.Logger,
		observer: opts.Observer,
		cache:    make(map[cacheKey]cacheEntry),
	}

	empty := &snapshot{tables: make(map[TableKind]*RecordTable)}
	for _, b := range bs {
		empty.tables[b.Def.Info.Kind] = &RecordTable{Kind: b.Def.Info.Kind, Source: sourceName(b.Source), Records: []ParameterRecord{}}
	}
	s.current.Store(empty)

	return s
}

func sourceName(src Source) string {
	if src == nil {
		return ""
	}
	return src.Name()
}

// Refresh re-reads every bound source and atomically replaces all tables.
// A source that cannot be read yields an empty table for its kind; its error
// is joined into the returned error. Text identical to a previous load is not
// parsed again.
//
// A refresh interrupted by its context publishes nothing: the current tables
// stay in place and the context error is returned.
func (s *Store) Refresh(ctx context.Context) error {
	next := &snapshot{tables: make(map[TableKind]*RecordTable, len(s.bindings))}
	var errs []error

	for _, b := range s.bindings {
		table := s.load(ctx, b)
		if table.Err != nil {
			if interrupted(table.Err) {
				return table.Err
			}
			errs = append(errs, table.Err)
		}
		next.tables[b.Def.Info.Kind] = table
	}

	if err := ctx.Err(); err != nil {
		s.logger.Warn("refresh interrupted, keeping current tables", "error", err)
		return fmt.Errorf("refresh: %w", err)
	}

	s.current.Store(next)
	return errors.Join(errs...)
}

// interrupted reports whether a load failed because its context ended rather
// than because the source was unavailable.
func interrupted(err error) bool {
	if errors.Is(err, ErrSourceUnavailable) {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// load reads and ingests one bound table.
func (s *Store) load(ctx context.Context, b Binding) *RecordTable {
	start := time.Now()
	key := b.Def.Info.Key
	table := &RecordTable{
		LoadID:   uuid.NewString(),
		Kind:     b.Def.Info.Kind,
		Source:   sourceName(b.Source),
		LoadedAt: start,
		Records:  []ParameterRecord{},
	}

	raw, n, err := s.read(ctx, b)
	if err != nil {
		table.Err = fmt.Errorf("load %s: %w", key, err)
		s.observer.SourceFailed(key)
		s.logger.Error("parameter table unavailable",
			"table", key,
			"source", table.Source,
			"error", err,
		)
		return table
	}

	records, stats, cached := s.Ingest(b.Def, raw)
	table.Records = records
	table.Stats = stats
	table.Cached = cached

	elapsed := time.Since(start)
	s.observer.TableLoaded(key, stats, n, cached, elapsed)
	s.logger.Info("parameter table loaded",
		"table", key,
		"source", table.Source,
		"load_id", table.LoadID,
		"rows", stats.Kept,
		"malformed", stats.Malformed,
		"rejected", stats.Rejected,
		"bytes", n,
		"cached", cached,
		"duration_ms", elapsed.Milliseconds(),
	)
	return table
}

// read returns the decoded text of a bound source and its raw byte count.
func (s *Store) read(ctx context.Context, b Binding) (string, int64, error) {
	if b.Source == nil {
		return "", 0, fmt.Errorf("no source configured: %w", ErrSourceUnavailable)
	}

	rc, err := b.Source.Open(ctx)
	if err != nil {
		return "", 0, err
	}
	defer rc.Close()

	r, err := WrapForStreaming(rc, b.Encoding)
	if err != nil {
		return "", 0, err
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, r); err != nil {
		return "", r.BytesRead(), fmt.Errorf("read %s: %v: %w", b.Source.Name(), err, ErrSourceUnavailable)
	}
	return sb.String(), r.BytesRead(), nil
}

// Ingest parses raw text for a table definition, consulting the parse cache.
// Re-ingesting identical text for the same table returns the cached slice
// without parsing; cached reports whether that happened. The cache keeps the
// latest text per table.
func (s *Store) Ingest(def TableDefinition, raw string) (records []ParameterRecord, stats ParseStats, cached bool) {
	key := cacheKey{table: def.Info.Key, sum: xxhash.Sum64String(raw), size: len(raw)}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if e, ok := s.cache[key]; ok {
		return e.records, e.stats, true
	}

	records, stats = Parse(raw, def)
	for k := range s.cache {
		if k.table == key.table {
			delete(s.cache, k)
		}
	}
	s.cache[key] = cacheEntry{records: records, stats: stats}

	s.logger.Debug("parsed parameter table",
		"table", def.Info.Key,
		"lines", stats.Lines,
		"dropped", stats.Dropped(),
	)
	return records, stats, false
}

// Invalidate clears the parse cache so the next Refresh parses every table
// again. Published tables are not affected.
func (s *Store) Invalidate() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cache = make(map[cacheKey]cacheEntry)
}

// Table returns the current table for a kind, or nil when none is bound.
func (s *Store) Table(kind TableKind) *RecordTable {
	return s.current.Load().tables[kind]
}

// Records returns the current records for a kind. The slice must not be
// modified.
func (s *Store) Records(kind TableKind) []ParameterRecord {
	if t := s.Table(kind); t != nil {
		return t.Records
	}
	return nil
}

// Status summarizes every bound table.
func (s *Store) Status() []TableStatus {
	snap := s.current.Load()
	out := make([]TableStatus, 0, len(s.bindings))
	for _, b := range s.bindings {
		t := snap.tables[b.Def.Info.Kind]
		st := TableStatus{
			Kind:     t.Kind,
			LoadID:   t.LoadID,
			Source:   t.Source,
			LoadedAt: t.LoadedAt,
			Rows:     len(t.Records),
			Dropped:  t.Stats.Dropped(),
			Cached:   t.Cached,
		}
		if t.Err != nil {
			st.Error = t.Err.Error()
		}
		out = append(out, st)
	}
	return out
}
