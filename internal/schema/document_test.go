package schema_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"erd-builder/internal/schema"
)

func TestMerge_NewAndReplacedTables(t *testing.T) {
	pos := schema.Point{X: 10, Y: 20}
	dst := schema.Document{
		Tables: []schema.Table{
			{ID: "customers", Name: "customers", Position: &pos, Columns: []schema.Column{{Name: "id"}}},
		},
	}
	incoming := []schema.Table{
		{ID: "customers", Name: "customers", Columns: []schema.Column{{Name: "id"}, {Name: "email"}}},
		{ID: "orders", Name: "orders"},
	}
	rels := []schema.Relationship{rel("orders", "customers")}

	out, stats := schema.Merge(dst, incoming, rels)

	if stats.TablesAdded != 1 || stats.TablesReplaced != 1 || stats.RelationshipsAdded != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	c := out.Table("customers")
	if len(c.Columns) != 2 {
		t.Errorf("Expected the imported definition, got %+v", c.Columns)
	}
	if c.Position == nil || *c.Position != pos {
		t.Errorf("Expected the old position to survive, got %+v", c.Position)
	}
	if len(dst.Tables[0].Columns) != 1 {
		t.Error("Merge modified its input")
	}
}

func TestMerge_IDConflictGetsFreshID(t *testing.T) {
	dst := schema.Document{Tables: []schema.Table{{ID: "order_items", Name: "order_items"}}}
	incoming := []schema.Table{{ID: "order_items", Name: "Order-Items"}, {ID: "orders", Name: "orders"}}
	rels := []schema.Relationship{rel("order_items", "orders")}

	out, stats := schema.Merge(dst, incoming, rels)

	if stats.TablesRenamed != 1 {
		t.Fatalf("Expected 1 renamed table, got %+v", stats)
	}
	renamed := out.TableByName("Order-Items")
	if renamed == nil || renamed.ID == "order_items" {
		t.Fatalf("Expected a fresh id, got %+v", renamed)
	}
	if out.Relationships[0].SourceTableID != renamed.ID {
		t.Errorf("Relationship should follow the renamed table: %+v", out.Relationships[0])
	}
}

func TestMerge_DuplicateRelationships(t *testing.T) {
	dst := schema.Document{
		Tables:        chain("a", "b"),
		Relationships: []schema.Relationship{{ID: "a-b", SourceTableID: "a", TargetTableID: "b", FKColumn: "b_id"}},
	}
	rels := []schema.Relationship{
		{ID: "a-b", SourceTableID: "a", TargetTableID: "b", FKColumn: "b_id"},
		{ID: "a-b", SourceTableID: "a", TargetTableID: "b", FKColumn: "alt_b_id"},
	}

	out, stats := schema.Merge(dst, nil, rels)

	if stats.DuplicatesDropped != 1 || stats.RelationshipsAdded != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if len(out.Relationships) != 2 {
		t.Fatalf("Expected 2 relationships, got %d", len(out.Relationships))
	}
	if out.Relationships[1].ID == "a-b" || out.Relationships[1].ID == "" {
		t.Errorf("Colliding relationship id should be replaced, got %q", out.Relationships[1].ID)
	}
}

func TestDataProduct(t *testing.T) {
	doc := schema.Document{
		Tables:        chain("fact", "dim_a", "dim_b"),
		Relationships: []schema.Relationship{rel("fact", "dim_a"), rel("fact", "dim_b")},
		Groups:        []schema.Group{schema.NewGroup("Sales Mart", []string{"fact", "dim_a"})},
	}

	out, err := schema.DataProduct(doc, "sales_mart")
	if err != nil {
		t.Fatalf("DataProduct failed: %v", err)
	}
	if out.ProjectName != "Sales Mart" || len(out.Tables) != 2 || len(out.Relationships) != 1 {
		t.Errorf("Unexpected data product %+v", out)
	}

	if _, err := schema.DataProduct(doc, "missing"); err == nil {
		t.Error("Expected error for an unknown group")
	}
}

func TestDocumentCodec(t *testing.T) {
	pos := schema.Point{X: 100, Y: 50}
	doc := schema.Document{
		ProjectName: "shop",
		Tables: []schema.Table{{
			ID: "orders", Name: "orders", Kind: schema.KindFact, SCDType: schema.SCD2,
			Columns:  []schema.Column{{Name: "id", Type: "INT", IsPK: true}},
			Position: &pos,
		}},
	}

	var buf bytes.Buffer
	if err := schema.EncodeDocument(&buf, doc); err != nil {
		t.Fatalf("EncodeDocument failed: %v", err)
	}
	for _, field := range []string{`"scdType": "SCD2"`, `"type": "fact"`, `"isPK": true`, `"relationships": []`} {
		if !strings.Contains(buf.String(), field) {
			t.Errorf("Expected %s in:\n%s", field, buf.String())
		}
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := schema.SaveDocument(path, doc); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	loaded, err := schema.LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if loaded.Tables[0].SCDType != schema.SCD2 || *loaded.Tables[0].Position != pos {
		t.Errorf("Unexpected loaded table %+v", loaded.Tables[0])
	}
}

func TestDecodeDocument_Defaults(t *testing.T) {
	doc, err := schema.DecodeDocument(strings.NewReader(`{"tables":[{"id":"t","name":"t","columns":[]}],"relationships":[]}`))
	if err != nil {
		t.Fatalf("DecodeDocument failed: %v", err)
	}
	if doc.Tables[0].Kind != schema.KindDimension || doc.Tables[0].SCDType != schema.SCDNone {
		t.Errorf("Expected defaults, got %+v", doc.Tables[0])
	}

	if _, err := schema.DecodeDocument(strings.NewReader(`not json`)); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
