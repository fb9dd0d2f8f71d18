package layout

import (
	"math"

	"erd-builder/internal/schema"
)

const (
	gridCellWidth  = 300
	gridCellHeight = 200
	gridOrigin     = 100
)

// Grid places tables row-major on a ceil(sqrt(n)) column lattice of 300x200
// cells starting at (100,100). Relationships play no part.
func Grid(tables []schema.Table) Positions {
	pos := make(Positions, len(tables))
	if len(tables) == 0 {
		return pos
	}
	cols := int(math.Ceil(math.Sqrt(float64(len(tables)))))
	for i, t := range tables {
		pos[t.ID] = schema.Point{
			X: float64(gridOrigin + (i%cols)*gridCellWidth),
			Y: float64(gridOrigin + (i/cols)*gridCellHeight),
		}
	}
	return pos
}
