package schema

// Kind tells fact tables apart from dimension tables.
type Kind string

const (
	KindFact      Kind = "fact"
	KindDimension Kind = "dimension"
)

// SCDType is the slowly-changing-dimension strategy annotated on a table.
type SCDType string

const (
	SCDNone SCDType = "none"
	SCD1    SCDType = "SCD1"
	SCD2    SCDType = "SCD2"
	SCD3    SCDType = "SCD3"
)

// RelationshipType is the cardinality of a relationship.
type RelationshipType string

const (
	OneToMany  RelationshipType = "1:N"
	ManyToMany RelationshipType = "N:M"
	// OneToOne only appears in inference suggestions, never on a stored Relationship.
	OneToOne RelationshipType = "1:1"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPK     bool   `json:"isPK"`
	IsFK     bool   `json:"isFK"`
	Nullable bool   `json:"nullable"`
}

type Table struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Kind     Kind     `json:"type"`
	SCDType  SCDType  `json:"scdType"`
	Columns  []Column `json:"columns"`
	Position *Point   `json:"position,omitempty"` // nil until laid out or dragged
}

// HasColumn reports whether the table owns a column with exactly this name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Relationship is a directed edge from the table holding FKColumn to the table it references.
type Relationship struct {
	ID            string           `json:"id"`
	SourceTableID string           `json:"sourceTableId"`
	TargetTableID string           `json:"targetTableId"`
	Type          RelationshipType `json:"type"`
	FKColumn      string           `json:"fkColumn"`
}

// Group is a named set of tables exported together as a data product.
type Group struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	TableIDs []string `json:"tableIds"`
}

// Document is the full diagram as exchanged with the editor.
type Document struct {
	ProjectName   string         `json:"projectName,omitempty"`
	Tables        []Table        `json:"tables"`
	Relationships []Relationship `json:"relationships"`
	Groups        []Group        `json:"groups,omitempty"`
}

// Table returns the table with the given id, or nil.
func (d *Document) Table(id string) *Table {
	for i := range d.Tables {
		if d.Tables[i].ID == id {
			return &d.Tables[i]
		}
	}
	return nil
}

// TableByName returns the first table with the given name, or nil.
func (d *Document) TableByName(name string) *Table {
	for i := range d.Tables {
		if d.Tables[i].Name == name {
			return &d.Tables[i]
		}
	}
	return nil
}
