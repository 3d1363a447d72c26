package loader

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
)

// MySQL loads into a MySQL warehouse.
type MySQL struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func (m *MySQL) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("mysql", url)
	if err != nil {
		return fmt.Errorf("failed to open mysql connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping mysql database: %w", err)
	}
	m.db = db
	m.qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	return nil
}

func (m *MySQL) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *MySQL) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *MySQL) Upsert(ctx context.Context, table string, rows []map[string]any, batchSize int) error {
	t, err := tableFor(table)
	if err != nil {
		return err
	}

	var sets []string
	for _, c := range t.Columns {
		sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", c, c))
	}
	suffix := "ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")

	return chunked(rows, batchSize, func(chunk []map[string]any) error {
		builder := m.qb.Insert(t.Name).Columns(t.Columns...)
		for _, row := range chunk {
			builder = builder.Values(values(t, row)...)
		}
		query, args, err := builder.Suffix(suffix).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build upsert for %s: %w", t.Name, err)
		}
		if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert into %s failed: %w", t.Name, err)
		}
		return nil
	})
}
