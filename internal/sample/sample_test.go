package sample_test

import (
	"strings"
	"testing"

	"erd-builder/internal/sample"
	"erd-builder/internal/schema"
)

func starDocument() schema.Document {
	return schema.Document{
		Tables: []schema.Table{
			{ID: "fact_sales", Name: "fact_sales", Kind: schema.KindFact, Columns: []schema.Column{
				{Name: "sale_id", Type: "INT", IsPK: true},
				{Name: "customer_id", Type: "INT", IsFK: true},
				{Name: "product_id", Type: "INT", IsFK: true},
				{Name: "amt", Type: "DECIMAL"},
				{Name: "sale_dt", Type: "DATE"},
			}},
			{ID: "dim_customer", Name: "dim_customer", Kind: schema.KindDimension, Columns: []schema.Column{
				{Name: "customer_id", Type: "INT", IsPK: true},
				{Name: "cust_nm", Type: "VARCHAR"},
				{Name: "email", Type: "VARCHAR", Nullable: true},
			}},
			{ID: "dim_product", Name: "dim_product", Kind: schema.KindDimension, Columns: []schema.Column{
				{Name: "product_id", Type: "INT", IsPK: true},
				{Name: "title", Type: "STRING"},
			}},
		},
		Relationships: []schema.Relationship{
			{ID: "fact_sales-dim_customer", SourceTableID: "fact_sales", TargetTableID: "dim_customer", Type: schema.OneToMany, FKColumn: "customer_id"},
			{ID: "fact_sales-dim_product", SourceTableID: "fact_sales", TargetTableID: "dim_product", Type: schema.OneToMany, FKColumn: "product_id"},
		},
	}
}

func TestAnalyzeMeaning(t *testing.T) {
	tests := []struct {
		col  string
		want string
	}{
		{"cust_nm", "customer name"},
		{"order_dt", "order date"},
		{"is_active", "yesno active"},
		{"amount", "amount"},
	}
	for _, tt := range tests {
		if got := sample.AnalyzeMeaning(tt.col); got != tt.want {
			t.Errorf("AnalyzeMeaning(%q) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestGenerate_ParentsFirstAndValidKeys(t *testing.T) {
	doc := starDocument()
	rows := sample.NewGenerator(42).Generate(doc, 5)

	if len(rows) != 3 {
		t.Fatalf("Expected 3 tables, got %d", len(rows))
	}
	if rows[2].Table != "fact_sales" {
		t.Errorf("Expected fact_sales last, got %s", rows[2].Table)
	}

	customers := make(map[any]bool)
	for _, tr := range rows {
		if len(tr.Rows) != 5 {
			t.Errorf("%s: expected 5 rows, got %d", tr.Table, len(tr.Rows))
		}
		if tr.Table == "dim_customer" {
			for i, r := range tr.Rows {
				if r[0] != i+1 {
					t.Errorf("dim_customer row %d: expected sequential key %d, got %v", i, i+1, r[0])
				}
				customers[r[0]] = true
			}
		}
	}

	for _, r := range rows[2].Rows {
		if !customers[r[1]] {
			t.Errorf("fact_sales.customer_id %v does not reference a generated customer", r[1])
		}
	}
}

func TestGenerate_SameSeedSameRows(t *testing.T) {
	doc := starDocument()
	a := sample.InsertSQL(sample.NewGenerator(7).Generate(doc, 3))
	b := sample.InsertSQL(sample.NewGenerator(7).Generate(doc, 3))
	if a != b {
		t.Error("Expected identical output for the same seed")
	}
}

func TestGenerate_CompositeKeyBridge(t *testing.T) {
	doc := schema.Document{
		Tables: []schema.Table{
			{ID: "a", Name: "a", Columns: []schema.Column{{Name: "a_id", Type: "INT", IsPK: true}}},
			{ID: "b", Name: "b", Columns: []schema.Column{{Name: "b_id", Type: "INT", IsPK: true}}},
			{ID: "a_b", Name: "a_b", Columns: []schema.Column{
				{Name: "a_id", Type: "INT", IsPK: true, IsFK: true},
				{Name: "b_id", Type: "INT", IsPK: true, IsFK: true},
			}},
		},
		Relationships: []schema.Relationship{
			{ID: "a_b-a", SourceTableID: "a_b", TargetTableID: "a", FKColumn: "a_id", Type: schema.OneToMany},
			{ID: "a_b-b", SourceTableID: "a_b", TargetTableID: "b", FKColumn: "b_id", Type: schema.OneToMany},
		},
	}

	rows := sample.NewGenerator(1).Generate(doc, 4)
	bridge := rows[len(rows)-1]
	if bridge.Table != "a_b" {
		t.Fatalf("Expected bridge table last, got %s", bridge.Table)
	}
	seen := make(map[[2]any]bool)
	for _, r := range bridge.Rows {
		key := [2]any{r[0], r[1]}
		if seen[key] {
			t.Errorf("Duplicate composite key %v", key)
		}
		seen[key] = true
	}
}

func TestInsertSQL(t *testing.T) {
	out := sample.InsertSQL([]sample.TableRows{{
		Table:   "dim_customer",
		Columns: []string{"customer_id", "name", "email", "vip"},
		Rows:    [][]any{{1, "O'Brien", nil, true}},
	}})

	want := "INSERT INTO dim_customer (customer_id, name, email, vip) VALUES (1, 'O''Brien', NULL, TRUE);"
	if !strings.Contains(out, want) {
		t.Errorf("Expected %q in:\n%s", want, out)
	}
}

func TestGenerate_ZeroCount(t *testing.T) {
	if rows := sample.NewGenerator(1).Generate(starDocument(), 0); rows != nil {
		t.Errorf("Expected no rows, got %v", rows)
	}
}
