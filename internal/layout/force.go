package layout

import (
	"math"

	"erd-builder/internal/schema"
)

const (
	forceIterations  = 100
	forceRepulsion   = 1000.0
	forceAttraction  = 0.1
	forceDamping     = 0.9
	forceTimeStep    = 0.1
	forceMinDistance = 0.1

	forceInitRadius = 300

	forceMinX, forceMaxX = 50, 750
	forceMinY, forceMaxY = 50, 550
)

// ForceDirected runs exactly 100 steps of a spring simulation: every pair of
// tables repels with 1000/d², every relationship pulls its ends together
// with 0.1·d. Tables start at their current position, or evenly on a
// radius 300 circle around (400,300) when they have none. Positions are
// clamped into [50,750]x[50,550] after every step. onStep, when set, is
// called after each step.
func ForceDirected(tables []schema.Table, rels []schema.Relationship, onStep func()) Positions {
	n := len(tables)
	if n == 0 {
		return Positions{}
	}

	index := make(map[string]int, n)
	px := make([]float64, n)
	py := make([]float64, n)
	vx := make([]float64, n)
	vy := make([]float64, n)
	for i, t := range tables {
		index[t.ID] = i
		if t.Position != nil {
			px[i], py[i] = t.Position.X, t.Position.Y
			continue
		}
		angle := float64(i) / float64(n) * 2 * math.Pi
		px[i] = defaultCenter.X + forceInitRadius*math.Cos(angle)
		py[i] = defaultCenter.Y + forceInitRadius*math.Sin(angle)
	}

	type edge struct{ a, b int }
	var edges []edge
	for _, r := range knownEdges(tables, rels) {
		edges = append(edges, edge{index[r.SourceTableID], index[r.TargetTableID]})
	}

	fx := make([]float64, n)
	fy := make([]float64, n)
	for step := 0; step < forceIterations; step++ {
		for i := range fx {
			fx[i], fy[i] = 0, 0
		}

		// Repulsion between every pair
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := px[i] - px[j]
				dy := py[i] - py[j]
				// Offset rather than floor: coincident tables still get d = 0.1
				d := math.Sqrt(dx*dx+dy*dy) + forceMinDistance
				f := forceRepulsion / (d * d)
				fx[i] += dx / d * f
				fy[i] += dy / d * f
				fx[j] -= dx / d * f
				fy[j] -= dy / d * f
			}
		}

		// Attraction along relationships
		for _, e := range edges {
			dx := px[e.b] - px[e.a]
			dy := py[e.b] - py[e.a]
			d := math.Sqrt(dx*dx+dy*dy) + forceMinDistance
			f := d * forceAttraction
			fx[e.a] += dx / d * f
			fy[e.a] += dy / d * f
			fx[e.b] -= dx / d * f
			fy[e.b] -= dy / d * f
		}

		for i := 0; i < n; i++ {
			vx[i] = (vx[i] + fx[i]*forceTimeStep) * forceDamping
			vy[i] = (vy[i] + fy[i]*forceTimeStep) * forceDamping
			px[i] = clamp(px[i]+vx[i]*forceTimeStep, forceMinX, forceMaxX)
			py[i] = clamp(py[i]+vy[i]*forceTimeStep, forceMinY, forceMaxY)
		}

		if onStep != nil {
			onStep()
		}
	}

	pos := make(Positions, n)
	for i, t := range tables {
		pos[t.ID] = schema.Point{X: px[i], Y: py[i]}
	}
	return pos
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
