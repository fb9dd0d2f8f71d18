package schema

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"erd-builder/internal/dialect"
)

// ---------------------------------------------------------------------
// Live Schema Introspection
// ---------------------------------------------------------------------

// Analyze reads tables, columns and foreign keys of a live database into a
// diagram document. Tables get derived ids, a detected kind and the default
// grid position; every foreign key becomes a 1:N relationship.
func Analyze(db *sql.DB, d dialect.Dialect, schemaName string) (Document, error) {
	target := d.GetSchemaName(schemaName)

	// Normalized keys for case-insensitive matching (Oracle upper-cases everything)
	tableMap := make(map[string]*Table)
	var names []string

	// --- Step 1: Fetch Tables ---
	rows, err := db.Query(d.GetTablesQuery(target), target)
	if err != nil {
		return Document{}, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return Document{}, fmt.Errorf("failed to scan table name: %w", err)
		}
		tableMap[strings.ToUpper(name)] = &Table{
			ID:      DeriveID(name),
			Name:    name,
			SCDType: SCDNone,
		}
		names = append(names, strings.ToUpper(name))
	}
	if err := rows.Err(); err != nil {
		return Document{}, fmt.Errorf("error iterating tables: %w", err)
	}

	// --- Step 2: Fetch Columns ---
	colRows, err := db.Query(d.GetColumnsQuery(target), target)
	if err != nil {
		return Document{}, fmt.Errorf("failed to query columns: %w", err)
	}
	defer colRows.Close()

	for colRows.Next() {
		var tName, cName, dType, isNull, cKey sql.NullString
		if err := colRows.Scan(&tName, &cName, &dType, &isNull, &cKey); err != nil {
			return Document{}, fmt.Errorf("failed to scan column (table: %s): %w", tName.String, err)
		}
		if !tName.Valid || !cName.Valid {
			continue
		}

		t, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}
		nullable := strings.ToUpper(isNull.String)
		t.Columns = append(t.Columns, Column{
			Name:     cName.String,
			Type:     d.NormalizeType(dType.String),
			IsPK:     strings.Contains(cKey.String, "PRI"),
			Nullable: nullable == "YES" || nullable == "Y",
		})
	}
	if err := colRows.Err(); err != nil {
		return Document{}, fmt.Errorf("error iterating columns: %w", err)
	}

	// --- Step 3: Fetch Foreign Keys ---
	fkRows, err := db.Query(d.GetForeignKeysQuery(target), target)
	if err != nil {
		return Document{}, fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer fkRows.Close()

	var rels []Relationship
	for fkRows.Next() {
		var tName, cConst, cName, rTable, rCol sql.NullString
		if err := fkRows.Scan(&tName, &cConst, &cName, &rTable, &rCol); err != nil {
			return Document{}, fmt.Errorf("failed to scan foreign key: %w", err)
		}
		if !tName.Valid || !rTable.Valid || !cName.Valid {
			continue
		}

		src, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}
		dst, ok := tableMap[strings.ToUpper(rTable.String)]
		if !ok {
			log.Printf("[Analyze] Skipping FK %s.%s: %s is outside the schema", tName.String, cName.String, rTable.String)
			continue
		}

		for i := range src.Columns {
			if strings.EqualFold(src.Columns[i].Name, cName.String) {
				src.Columns[i].IsFK = true
			}
		}
		rels = append(rels, Relationship{
			ID:            src.ID + "-" + dst.ID,
			SourceTableID: src.ID,
			TargetTableID: dst.ID,
			Type:          OneToMany,
			FKColumn:      cName.String,
		})
	}
	if err := fkRows.Err(); err != nil {
		return Document{}, fmt.Errorf("error iterating foreign keys: %w", err)
	}

	doc := Document{Tables: make([]Table, 0, len(names)), Relationships: rels}
	for i, key := range names {
		t := tableMap[key]
		t.Kind = DetectTableKind(t.Name, t.Columns)
		pos := DefaultPosition(i)
		t.Position = &pos
		doc.Tables = append(doc.Tables, *t)
	}
	if doc.Relationships == nil {
		doc.Relationships = []Relationship{}
	}
	return doc, nil
}

// FilterTables keeps only the named tables (case-insensitive) and the
// relationships between them.
func FilterTables(doc Document, names []string) (Document, error) {
	if len(names) == 0 {
		return doc, nil
	}
	req := make(map[string]bool, len(names))
	for _, n := range names {
		req[strings.ToLower(n)] = true
	}

	out := Document{ProjectName: doc.ProjectName, Relationships: []Relationship{}}
	kept := make(map[string]bool)
	for _, t := range doc.Tables {
		if req[strings.ToLower(t.Name)] {
			out.Tables = append(out.Tables, t)
			kept[t.ID] = true
		}
	}
	if len(out.Tables) == 0 {
		return Document{}, fmt.Errorf("no matching tables found for inputs: %v", names)
	}
	for _, r := range doc.Relationships {
		if kept[r.SourceTableID] && kept[r.TargetTableID] {
			out.Relationships = append(out.Relationships, r)
		}
	}
	return out, nil
}
