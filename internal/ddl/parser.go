package ddl

import (
	"regexp"
	"strings"

	"erd-builder/internal/schema"
)

// Parser turns DDL text into a table graph. It never fails: input it cannot
// read yields fewer (or no) tables.
type Parser interface {
	Parse(sqlText string) Result
}

// Result is the table graph found in a DDL text.
type Result struct {
	Tables        []schema.Table        `json:"tables"`
	Relationships []schema.Relationship `json:"relationships"`
}

var (
	createTableRe = regexp.MustCompile(`(?i)CREATE\s+(?:TEMPORARY\s+)?TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?([^\s(]+)\s*\(([\s\S]*?)\)\s*(?:USING\s+[^\s]+)?\s*(?:AS\s+SELECT\s+[\s\S]*)?;?`)
	columnRe      = regexp.MustCompile(`^([^\s]+)\s+([^\s]+)(?:\s+(.+))?$`)
	foreignKeyRe  = regexp.MustCompile(`(?i)FOREIGN\s+KEY\s*\(\s*([^)]+)\s*\)\s+REFERENCES\s+([^\s(]+)\s*\(\s*([^)]+)\s*\)`)

	constraintPrefixes = []string{"PRIMARY KEY", "FOREIGN KEY", "CONSTRAINT", "INDEX", "UNIQUE", "CHECK"}
)

// RegexParser is the best-effort, pattern based Parser.
//
// Known limitations, kept on purpose:
//   - the table body ends at the first ')', so a type like DECIMAL(10,2)
//     cuts the body short and is read as "DECIMAL(10"
//   - fragments are split on every comma, nested or not
//   - a NOT NULL column whose name contains "id" (even "valid") is a PK
type RegexParser struct{}

var _ Parser = RegexParser{}

// Parse runs the default RegexParser.
func Parse(sqlText string) Result {
	return RegexParser{}.Parse(sqlText)
}

func (RegexParser) Parse(sqlText string) Result {
	res := Result{
		Tables:        []schema.Table{},
		Relationships: []schema.Relationship{},
	}

	for _, m := range createTableRe.FindAllStringSubmatch(sqlText, -1) {
		name := unquote(m[1])
		columns := parseColumns(m[2])
		if len(columns) == 0 {
			continue
		}
		pos := schema.DefaultPosition(len(res.Tables))
		res.Tables = append(res.Tables, schema.Table{
			ID:       schema.DeriveID(name),
			Name:     name,
			Kind:     schema.KindDimension,
			SCDType:  schema.SCDNone,
			Columns:  columns,
			Position: &pos,
		})
	}

	for _, m := range foreignKeyRe.FindAllStringSubmatch(sqlText, -1) {
		sourceCol := unquote(strings.TrimSpace(m[1]))
		targetName := unquote(m[2])

		var source, target *schema.Table
		for i := range res.Tables {
			if source == nil && res.Tables[i].HasColumn(sourceCol) {
				source = &res.Tables[i]
			}
			if target == nil && res.Tables[i].Name == targetName {
				target = &res.Tables[i]
			}
		}
		if source == nil || target == nil {
			continue
		}
		res.Relationships = append(res.Relationships, schema.Relationship{
			ID:            source.ID + "-" + target.ID,
			SourceTableID: source.ID,
			TargetTableID: target.ID,
			Type:          schema.OneToMany,
			FKColumn:      sourceCol,
		})
	}

	return res
}

func parseColumns(body string) []schema.Column {
	var columns []schema.Column
	for _, fragment := range strings.Split(body, ",") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" || isConstraint(fragment) {
			continue
		}

		m := columnRe.FindStringSubmatch(fragment)
		if m == nil {
			continue
		}
		name := unquote(m[1])
		tail := strings.ToUpper(m[3])
		lowerName := strings.ToLower(name)
		notNull := strings.Contains(tail, "NOT NULL")

		columns = append(columns, schema.Column{
			Name:     name,
			Type:     strings.ToUpper(m[2]),
			Nullable: !notNull,
			IsPK:     strings.Contains(tail, "PRIMARY KEY") || (notNull && strings.Contains(lowerName, "id")),
			IsFK:     strings.Contains(tail, "FOREIGN KEY") || strings.Contains(lowerName, "_id"),
		})
	}
	return columns
}

// isConstraint reports whether a body fragment is a table-level constraint.
// The keyword must stand alone, so columns such as check_date or
// unique_code are still read as columns.
func isConstraint(fragment string) bool {
	upper := strings.ToUpper(fragment)
	for _, p := range constraintPrefixes {
		if !strings.HasPrefix(upper, p) {
			continue
		}
		rest := upper[len(p):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n' || rest[0] == '\r' || rest[0] == '(' {
			return true
		}
	}
	return false
}

func unquote(s string) string {
	return strings.NewReplacer("`", "", `"`, "").Replace(s)
}
