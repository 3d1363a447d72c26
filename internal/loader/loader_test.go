package loader

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shoplore/ordersynth/internal/schema"
)

func TestNewPicksProvider(t *testing.T) {
	if _, ok := New("sqlite").(*SQLite); !ok {
		t.Error("Expected sqlite loader")
	}
	if _, ok := New("mysql").(*MySQL); !ok {
		t.Error("Expected mysql loader")
	}
	if _, ok := New("postgresql").(*Postgres); !ok {
		t.Error("Expected postgres loader")
	}
	if _, ok := New("something-else").(*Postgres); !ok {
		t.Error("Unknown providers should fall back to postgres")
	}
}

func TestConflictClauseSingleKey(t *testing.T) {
	tbl, _ := schema.Get("orders")
	clause := conflictClause(tbl)

	if !strings.HasPrefix(clause, "ON CONFLICT (order_id) DO UPDATE SET") {
		t.Errorf("Unexpected clause: %s", clause)
	}
	if !strings.Contains(clause, "customer_id = EXCLUDED.customer_id") {
		t.Errorf("Clause missing non-key update: %s", clause)
	}
	if strings.Contains(clause, "order_id = EXCLUDED.order_id") {
		t.Errorf("Clause must not update the primary key: %s", clause)
	}
}

func TestConflictClauseCompositeKey(t *testing.T) {
	tbl, _ := schema.Get("order_items")
	clause := conflictClause(tbl)

	if !strings.Contains(clause, "ON CONFLICT (order_id, order_item_id)") {
		t.Errorf("Expected composite conflict target: %s", clause)
	}
}

func TestValuesFollowColumnOrder(t *testing.T) {
	tbl, _ := schema.Get("order_payments")
	row := map[string]any{
		"payment_value":      55.5,
		"order_id":           "o1",
		"payment_sequential": 1,
		"payment_type":       "voucher",
	}

	vals := values(tbl, row)
	if len(vals) != len(tbl.Columns) {
		t.Fatalf("Expected %d values, got %d", len(tbl.Columns), len(vals))
	}
	if vals[0] != "o1" || vals[2] != "voucher" {
		t.Errorf("Values out of column order: %v", vals)
	}
	// payment_installments was absent and must load as NULL.
	if vals[3] != nil {
		t.Errorf("Expected nil for absent column, got %v", vals[3])
	}
}

func TestChunked(t *testing.T) {
	rows := make([]map[string]any, 2500)
	var sizes []int
	err := chunked(rows, 1000, func(chunk []map[string]any) error {
		sizes = append(sizes, len(chunk))
		return nil
	})
	if err != nil {
		t.Fatalf("chunked failed: %v", err)
	}
	if len(sizes) != 3 || sizes[0] != 1000 || sizes[2] != 500 {
		t.Errorf("Expected chunks 1000/1000/500, got %v", sizes)
	}
}

func TestChunkedStopsOnError(t *testing.T) {
	rows := make([]map[string]any, 300)
	calls := 0
	err := chunked(rows, 100, func(chunk []map[string]any) error {
		calls++
		return errors.New("nope")
	})
	if err == nil || calls != 1 {
		t.Errorf("Expected first chunk to abort, got %d calls err=%v", calls, err)
	}
}

// failingLoader fails on a chosen table to exercise LoadBatch ordering.
type failingLoader struct {
	failOn string
	seen   []string
}

func (f *failingLoader) Connect(ctx context.Context, url string) error { return nil }
func (f *failingLoader) Close() error                                  { return nil }
func (f *failingLoader) Ping(ctx context.Context) error                { return nil }

func (f *failingLoader) Upsert(ctx context.Context, table string, rows []map[string]any, batchSize int) error {
	f.seen = append(f.seen, table)
	if table == f.failOn {
		return errors.New("constraint violation")
	}
	return nil
}

func TestLoadBatchRespectsDependencyOrder(t *testing.T) {
	l := &failingLoader{}
	tables := map[string][]map[string]any{
		"order_items": {{"order_id": "o1"}},
		"orders":      {{"order_id": "o1"}},
		"customers":   {{"customer_id": "c1"}},
	}

	if err := LoadBatch(context.Background(), l, tables, 100); err != nil {
		t.Fatalf("LoadBatch failed: %v", err)
	}
	want := []string{"customers", "orders", "order_items"}
	if len(l.seen) != len(want) {
		t.Fatalf("Expected %v, got %v", want, l.seen)
	}
	for i := range want {
		if l.seen[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], l.seen[i])
		}
	}
}

func TestLoadBatchAbortsOnFirstFailure(t *testing.T) {
	l := &failingLoader{failOn: "orders"}
	tables := map[string][]map[string]any{
		"customers":   {{"customer_id": "c1"}},
		"orders":      {{"order_id": "o1"}},
		"order_items": {{"order_id": "o1"}},
	}

	err := LoadBatch(context.Background(), l, tables, 100)
	if err == nil {
		t.Fatal("Expected failure on orders")
	}
	if !strings.Contains(err.Error(), "orders") {
		t.Errorf("Error should name the failing table: %v", err)
	}
	for _, name := range l.seen {
		if name == "order_items" {
			t.Error("order_items should not load after orders failed")
		}
	}
}
