package layout

import "erd-builder/internal/schema"

const (
	organizeStartX  = 400
	organizeSpacing = 600
	organizeY       = 300
)

// AutoOrganize lays every fact table out on a row, the i-th fact at
// (400+600i, 300), each ringed by its connected tables. Facts without
// connections stay where they are. A table connected to several facts ends
// up around the last one.
func AutoOrganize(tables []schema.Table, rels []schema.Relationship) (Positions, error) {
	if len(tables) == 0 {
		return Positions{}, ErrNothingToOrganize
	}

	edges := knownEdges(tables, rels)
	pos := make(Positions)
	factIndex := 0
	for _, t := range tables {
		if t.Kind != schema.KindFact {
			continue
		}
		i := factIndex
		factIndex++

		ids := neighbours(t.ID, edges)
		if len(ids) == 0 {
			continue
		}
		c := schema.Point{X: float64(organizeStartX + i*organizeSpacing), Y: organizeY}
		pos[t.ID] = c
		ring(pos, c, ids)
	}

	if factIndex == 0 {
		return Positions{}, ErrNoFactTables
	}
	return pos, nil
}
