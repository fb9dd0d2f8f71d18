package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// DecodeDocument reads a diagram in the editor's JSON export format.
func DecodeDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode document: %w", err)
	}
	for i := range doc.Tables {
		if doc.Tables[i].Kind == "" {
			doc.Tables[i].Kind = KindDimension
		}
		if doc.Tables[i].SCDType == "" {
			doc.Tables[i].SCDType = SCDNone
		}
	}
	return doc, nil
}

func LoadDocument(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeDocument(f)
}

func EncodeDocument(w io.Writer, doc Document) error {
	if doc.Tables == nil {
		doc.Tables = []Table{}
	}
	if doc.Relationships == nil {
		doc.Relationships = []Relationship{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func SaveDocument(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := EncodeDocument(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// MergeStats counts what Merge did with the incoming tables and relationships.
type MergeStats struct {
	TablesAdded        int
	TablesRenamed      int // id collided with a differently named table
	TablesReplaced     int // same id and name, definition taken from the import
	RelationshipsAdded int
	DuplicatesDropped  int
}

// Merge folds an imported table graph into an existing document and returns
// the new document. Neither input is modified.
//
// A table whose id already exists under the same name replaces the old
// definition but keeps its position. A table whose id exists under another
// name gets a fresh id and its relationships follow it. Relationships that
// repeat an existing (source, fkColumn, target) triple are dropped.
func Merge(dst Document, tables []Table, rels []Relationship) (Document, MergeStats) {
	var stats MergeStats

	out := Document{
		ProjectName:   dst.ProjectName,
		Tables:        append([]Table(nil), dst.Tables...),
		Relationships: append([]Relationship(nil), dst.Relationships...),
		Groups:        append([]Group(nil), dst.Groups...),
	}

	remap := make(map[string]string)
	for _, t := range tables {
		existing := out.Table(t.ID)
		switch {
		case existing == nil:
			out.Tables = append(out.Tables, t)
			stats.TablesAdded++
		case existing.Name == t.Name:
			pos := existing.Position
			*existing = t
			if pos != nil {
				existing.Position = pos
			}
			stats.TablesReplaced++
		default:
			fresh := uuid.NewString()
			remap[t.ID] = fresh
			t.ID = fresh
			out.Tables = append(out.Tables, t)
			stats.TablesRenamed++
		}
	}

	seen := make(map[string]bool)
	usedIDs := make(map[string]bool)
	for _, r := range out.Relationships {
		seen[relationshipKey(r)] = true
		usedIDs[r.ID] = true
	}

	for _, r := range rels {
		if id, ok := remap[r.SourceTableID]; ok {
			r.SourceTableID = id
		}
		if id, ok := remap[r.TargetTableID]; ok {
			r.TargetTableID = id
		}
		key := relationshipKey(r)
		if seen[key] {
			stats.DuplicatesDropped++
			continue
		}
		if r.ID == "" || usedIDs[r.ID] {
			r.ID = uuid.NewString()
		}
		seen[key] = true
		usedIDs[r.ID] = true
		out.Relationships = append(out.Relationships, r)
		stats.RelationshipsAdded++
	}

	return out, stats
}

func relationshipKey(r Relationship) string {
	return r.SourceTableID + "\x00" + r.FKColumn + "\x00" + r.TargetTableID
}

// NewGroup creates a data product over the given tables.
func NewGroup(name string, tableIDs []string) Group {
	return Group{
		ID:       GroupID(name),
		Name:     name,
		TableIDs: append([]string(nil), tableIDs...),
	}
}

// DataProduct returns the part of doc covered by a group: its tables, and
// the relationships with both ends inside the group.
func DataProduct(doc Document, groupID string) (Document, error) {
	var group *Group
	for i := range doc.Groups {
		if doc.Groups[i].ID == groupID {
			group = &doc.Groups[i]
			break
		}
	}
	if group == nil {
		return Document{}, fmt.Errorf("group %q not found", groupID)
	}

	members := make(map[string]bool, len(group.TableIDs))
	for _, id := range group.TableIDs {
		members[id] = true
	}

	out := Document{
		ProjectName: group.Name,
		Groups:      []Group{*group},
	}
	for _, t := range doc.Tables {
		if members[t.ID] {
			out.Tables = append(out.Tables, t)
		}
	}
	for _, r := range doc.Relationships {
		if members[r.SourceTableID] && members[r.TargetTableID] {
			out.Relationships = append(out.Relationships, r)
		}
	}
	return out, nil
}
