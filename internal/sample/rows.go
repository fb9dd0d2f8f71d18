package sample

import (
	"fmt"
	"log"
	"strings"

	"erd-builder/internal/schema"
)

// TableRows holds the generated rows of one table, columns in table order.
type TableRows struct {
	Table   string
	Columns []string
	Rows    [][]any
}

// Generate produces count rows per table in FK dependency order, so every
// FK value points at a row generated earlier for the referenced table.
func (g *Generator) Generate(doc schema.Document, count int) []TableRows {
	if count <= 0 {
		return nil
	}

	// source table id -> fk column -> target table id
	fkTargets := make(map[string]map[string]string)
	for _, r := range doc.Relationships {
		if fkTargets[r.SourceTableID] == nil {
			fkTargets[r.SourceTableID] = make(map[string]string)
		}
		fkTargets[r.SourceTableID][r.FKColumn] = r.TargetTableID
	}

	keyPool := make(map[string][]any)
	var results []TableRows

	for _, table := range schema.DependencyOrder(doc.Tables, doc.Relationships) {
		tr := TableRows{Table: table.Name}
		for _, c := range table.Columns {
			tr.Columns = append(tr.Columns, c.Name)
		}

		pkCount := 0
		for _, c := range table.Columns {
			if c.IsPK {
				pkCount++
			}
		}
		usedCombinations := make(map[string]bool)

		attempts := 0
		for len(tr.Rows) < count && attempts < count*10 {
			attempts++
			row := g.generateRow(table, fkTargets[table.ID], keyPool, len(tr.Rows)+1, attempts)

			// Composite keys built from FK values can repeat
			if pkCount > 1 {
				var pkValues []string
				for i, c := range table.Columns {
					if c.IsPK {
						pkValues = append(pkValues, fmt.Sprintf("%v", row[i]))
					}
				}
				key := strings.Join(pkValues, "|")
				if usedCombinations[key] {
					continue
				}
				usedCombinations[key] = true
			}
			tr.Rows = append(tr.Rows, row)
		}
		if len(tr.Rows) < count {
			log.Printf("[Sample] Table %s: only %d of %d unique rows", table.Name, len(tr.Rows), count)
		}

		// Pool of the first PK column, for child tables
		for i, c := range table.Columns {
			if !c.IsPK {
				continue
			}
			for _, row := range tr.Rows {
				keyPool[table.ID] = append(keyPool[table.ID], row[i])
			}
			break
		}
		results = append(results, tr)
	}
	return results
}

func (g *Generator) generateRow(table schema.Table, fks map[string]string, pool map[string][]any, n, attempt int) []any {
	values := make([]any, 0, len(table.Columns))
	for _, col := range table.Columns {
		if target, ok := fks[col.Name]; ok {
			values = append(values, g.foreignValue(col, pool[target], attempt))
			continue
		}
		if col.IsPK {
			values = append(values, g.keyValue(col, n))
			continue
		}
		values = append(values, g.Value(col))
	}
	return values
}

func (g *Generator) foreignValue(col schema.Column, vals []any, attempt int) any {
	if len(vals) > 0 {
		// Key columns walk the pool so composite keys stay distinct
		if col.IsPK {
			return vals[(attempt-1)%len(vals)]
		}
		return vals[g.faker.Number(0, len(vals)-1)]
	}
	// Referenced table not generated yet (cycle)
	if col.Nullable {
		return nil
	}
	return 1
}

// InsertSQL renders rows as one INSERT statement per row.
func InsertSQL(tables []TableRows) string {
	var sb strings.Builder
	for _, t := range tables {
		if len(t.Rows) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("-- %s: %d rows\n", t.Table, len(t.Rows)))
		cols := strings.Join(t.Columns, ", ")
		for _, row := range t.Rows {
			lits := make([]string, len(row))
			for i, v := range row {
				lits[i] = Literal(v)
			}
			sb.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);\n", t.Table, cols, strings.Join(lits, ", ")))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Literal renders a generated value as a SQL literal.
func Literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case []byte:
		return fmt.Sprintf("X'%X'", val)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case float32, float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
