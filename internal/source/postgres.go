package source

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/industrialdepot/internal/config"
	"github.com/JonMunkholm/industrialdepot/internal/core"
)

// NewPool connects a pgx pool with the configured limits and verifies it.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Postgres exports a query result as CSV with COPY ... TO STDOUT.
// The query must select the table columns in schema order.
//
// COPY escapes a double quote inside a value as "". The table splitter
// drops every double quote, so such values keep their field boundaries but
// lose the quote characters. Queries that need them should replace '"' in
// the selected columns.
type Postgres struct {
	pool  *pgxpool.Pool
	name  string
	query string
}

// NewPostgres creates a source for one query.
func NewPostgres(pool *pgxpool.Pool, name, query string) *Postgres {
	return &Postgres{pool: pool, name: name, query: query}
}

// Name implements core.Source.
func (p *Postgres) Name() string {
	return "postgres:" + p.name
}

// copySQL wraps the query in a CSV export with a header row.
func copySQL(query string) string {
	return fmt.Sprintf("COPY (%s) TO STDOUT WITH (FORMAT csv, HEADER true)", query)
}

// Open implements core.Source. The export is buffered so the connection is
// released before the text is parsed.
func (p *Postgres) Open(ctx context.Context) (io.ReadCloser, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w: %w", core.ErrSourceUnavailable, err)
	}
	defer conn.Release()

	var buf bytes.Buffer
	if _, err := conn.Conn().PgConn().CopyTo(ctx, &buf, copySQL(p.query)); err != nil {
		return nil, fmt.Errorf("copy %s: %w: %w", p.name, core.ErrSourceUnavailable, err)
	}
	return io.NopCloser(&buf), nil
}
