package loader

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite loads into a local file database, useful for development runs
// without a warehouse.
type SQLite struct {
	db *sql.DB
}

func (s *SQLite) Connect(ctx context.Context, url string) error {
	path := strings.TrimPrefix(url, "sqlite://")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Upsert(ctx context.Context, table string, rows []map[string]any, batchSize int) error {
	t, err := tableFor(table)
	if err != nil {
		return err
	}

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(t.Columns)), ",") + ")"

	return chunked(rows, batchSize, func(chunk []map[string]any) error {
		var b strings.Builder
		fmt.Fprintf(&b, "INSERT OR REPLACE INTO %s (%s) VALUES ",
			t.Name, strings.Join(t.Columns, ", "))

		args := make([]any, 0, len(chunk)*len(t.Columns))
		for i, row := range chunk {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(placeholder)
			args = append(args, values(t, row)...)
		}

		if _, err := s.db.ExecContext(ctx, b.String(), args...); err != nil {
			return fmt.Errorf("upsert into %s failed: %w", t.Name, err)
		}
		return nil
	})
}
