package ddl

import (
	"fmt"
	"strings"

	"erd-builder/internal/schema"
)

// ExportMermaid renders a document as a Mermaid erDiagram. Relationship
// lines come first, one per distinct (target, source, column) triple,
// followed by an entity block per table. Entity names are upper-cased.
func ExportMermaid(doc schema.Document) string {
	var sb strings.Builder
	sb.WriteString("erDiagram\n")

	seen := make(map[string]bool)
	for _, rel := range doc.Relationships {
		source := doc.Table(rel.SourceTableID)
		target := doc.Table(rel.TargetTableID)
		if source == nil || target == nil {
			continue
		}
		connector := "||--o{"
		if rel.Type == schema.ManyToMany {
			connector = "}o--o{"
		}
		line := fmt.Sprintf("    %s %s %s : %q\n", mermaidName(target.Name), connector, mermaidName(source.Name), rel.FKColumn)
		if seen[line] {
			continue
		}
		seen[line] = true
		sb.WriteString(line)
	}
	if len(seen) > 0 {
		sb.WriteString("\n")
	}

	for _, table := range doc.Tables {
		sb.WriteString(fmt.Sprintf("    %s {\n", mermaidName(table.Name)))
		for _, col := range table.Columns {
			sb.WriteString(fmt.Sprintf("        %s %s", mermaidType(col.Type), identifier(col.Name)))
			var keys []string
			if col.IsPK {
				keys = append(keys, "PK")
			}
			if col.IsFK {
				keys = append(keys, "FK")
			}
			if len(keys) > 0 {
				sb.WriteString(" " + strings.Join(keys, ","))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("    }\n\n")
	}
	return sb.String()
}

func mermaidName(name string) string {
	return identifier(strings.ToUpper(name))
}

// Mermaid identifiers allow letters, digits, '_' and '-'.
func identifier(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

func mermaidType(colType string) string {
	t := strings.ToLower(colType)
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	if t == "" {
		return "string"
	}
	return mermaidName(t)
}
