// Package layout computes diagram positions for a table graph. Every function
// works on its own scratch state and never modifies its inputs.
package layout

import (
	"errors"
	"fmt"

	"erd-builder/internal/schema"
)

// Positions maps table ids to diagram coordinates.
type Positions map[string]schema.Point

// Mode names a layout strategy accepted by Layout.
type Mode string

const (
	ModeGrid  Mode = "grid"
	ModeTree  Mode = "tree"
	ModeStar  Mode = "star"
	ModeForce Mode = "force"
	ModeAuto  Mode = "auto"
)

// Modes lists every Mode in display order.
var Modes = []Mode{ModeGrid, ModeTree, ModeStar, ModeForce, ModeAuto}

var (
	ErrNothingToOrganize = errors.New("nothing to organize")
	ErrNoFactCenter      = errors.New("star layout needs a fact table as center")
	ErrNoFactTables      = errors.New("no fact tables found in the diagram")
)

// Options carries the mode specific inputs of Layout.
type Options struct {
	Center   string // center table id for ModeStar
	Progress func() // called once per force-directed step
}

// Layout dispatches to the strategy named by mode.
func Layout(mode Mode, tables []schema.Table, rels []schema.Relationship, opts Options) (Positions, error) {
	if len(tables) == 0 {
		return Positions{}, ErrNothingToOrganize
	}

	switch mode {
	case ModeGrid:
		return Grid(tables), nil
	case ModeTree:
		return Tree(tables, rels), nil
	case ModeStar:
		return StarAlign(opts.Center, tables, rels)
	case ModeForce:
		return ForceDirected(tables, rels, opts.Progress), nil
	case ModeAuto:
		return AutoOrganize(tables, rels)
	default:
		return nil, fmt.Errorf("unknown layout mode %q (want one of %v)", mode, Modes)
	}
}

// Apply returns a copy of tables with the given positions set. Tables
// missing from pos keep their current position.
func Apply(tables []schema.Table, pos Positions) []schema.Table {
	out := make([]schema.Table, len(tables))
	for i, t := range tables {
		if p, ok := pos[t.ID]; ok {
			t.Position = &p
		}
		out[i] = t
	}
	return out
}

// knownEdges keeps the relationships whose endpoints are both in tables.
func knownEdges(tables []schema.Table, rels []schema.Relationship) []schema.Relationship {
	known := make(map[string]bool, len(tables))
	for _, t := range tables {
		known[t.ID] = true
	}
	var out []schema.Relationship
	for _, r := range rels {
		if known[r.SourceTableID] && known[r.TargetTableID] {
			out = append(out, r)
		}
	}
	return out
}
