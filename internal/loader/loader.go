// Package loader writes cleaned rows into the warehouse with
// insert-or-replace semantics keyed on each table's primary key.
package loader

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/shoplore/ordersynth/internal/schema"
)

// DefaultBatchSize is the number of rows written per upsert statement.
const DefaultBatchSize = 1000

// Loader is one warehouse backend.
type Loader interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error
	Upsert(ctx context.Context, table string, rows []map[string]any, batchSize int) error
}

// New returns the loader for a provider. Unknown providers fall back to
// postgres.
func New(provider string) Loader {
	switch provider {
	case "sqlite", "sqlite3":
		return &SQLite{}
	case "mysql":
		return &MySQL{}
	default:
		return &Postgres{}
	}
}

// LoadBatch upserts every non-empty collection in foreign-key dependency
// order, so parent rows always land before children that reference them.
// The first failure aborts the whole batch.
func LoadBatch(ctx context.Context, l Loader, tables map[string][]map[string]any, batchSize int) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	for _, name := range schema.LoadOrder() {
		rows := tables[name]
		if len(rows) == 0 {
			continue
		}
		color.Cyan("📦 Upserting %d rows into %s...", len(rows), name)
		if err := l.Upsert(ctx, name, rows, batchSize); err != nil {
			return fmt.Errorf("failed to upsert %s: %w", name, err)
		}
	}
	return nil
}

func tableFor(name string) (schema.Table, error) {
	t, ok := schema.Get(name)
	if !ok {
		return schema.Table{}, fmt.Errorf("unknown table: %s", name)
	}
	return t, nil
}

// values renders a row in the table's column order; absent columns become
// NULLs.
func values(t schema.Table, row map[string]any) []any {
	out := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = row[c]
	}
	return out
}

func chunked(rows []map[string]any, size int, fn func([]map[string]any) error) error {
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		if err := fn(rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}
