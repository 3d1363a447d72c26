package schema

import "testing"

func TestLoadOrder(t *testing.T) {
	want := []string{
		"geolocation", "customers", "sellers", "products",
		"orders", "order_items", "order_payments", "order_reviews",
	}
	got := LoadOrder()
	if len(got) != len(want) {
		t.Fatalf("Expected %d tables, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestGet(t *testing.T) {
	tbl, ok := Get("order_items")
	if !ok {
		t.Fatal("order_items missing from registry")
	}
	if len(tbl.PrimaryKey) != 2 || tbl.PrimaryKey[0] != "order_id" || tbl.PrimaryKey[1] != "order_item_id" {
		t.Errorf("Unexpected primary key: %v", tbl.PrimaryKey)
	}
	if len(tbl.Columns) != 7 {
		t.Errorf("Expected 7 columns, got %d", len(tbl.Columns))
	}

	if _, ok := Get("nope"); ok {
		t.Error("Unknown table should not resolve")
	}
}

func TestLoadOrderReturnsCopy(t *testing.T) {
	a := LoadOrder()
	a[0] = "mutated"
	if LoadOrder()[0] != "geolocation" {
		t.Error("LoadOrder exposed internal state")
	}
}
