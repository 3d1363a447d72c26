package loader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoplore/ordersynth/internal/schema"
)

// Postgres loads into a PostgreSQL (or Supabase) warehouse over pgx.
type Postgres struct {
	pool *pgxpool.Pool
	qb   squirrel.StatementBuilderType
}

func (p *Postgres) Connect(ctx context.Context, url string) error {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec
	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	p.pool = pool
	p.qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return nil
}

func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Upsert(ctx context.Context, table string, rows []map[string]any, batchSize int) error {
	t, err := tableFor(table)
	if err != nil {
		return err
	}
	suffix := conflictClause(t)

	return chunked(rows, batchSize, func(chunk []map[string]any) error {
		builder := p.qb.Insert(t.Name).Columns(t.Columns...)
		for _, row := range chunk {
			builder = builder.Values(values(t, row)...)
		}
		sql, args, err := builder.Suffix(suffix).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build upsert for %s: %w", t.Name, err)
		}
		if _, err := p.pool.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("upsert into %s failed: %w", t.Name, err)
		}
		return nil
	})
}

func conflictClause(t schema.Table) string {
	pk := make(map[string]bool, len(t.PrimaryKey))
	for _, c := range t.PrimaryKey {
		pk[c] = true
	}
	var sets []string
	for _, c := range t.Columns {
		if !pk[c] {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
		}
	}
	conflict := strings.Join(t.PrimaryKey, ", ")
	if len(sets) == 0 {
		return fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", conflict)
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", conflict, strings.Join(sets, ", "))
}
