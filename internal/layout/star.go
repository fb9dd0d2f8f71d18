package layout

import (
	"math"

	"erd-builder/internal/schema"
)

const starRadius = 200

var defaultCenter = schema.Point{X: 400, Y: 300}

// neighbours returns the distinct tables directly connected to id, in
// relationship order.
func neighbours(id string, rels []schema.Relationship) []string {
	seen := map[string]bool{id: true}
	var out []string
	for _, r := range rels {
		var other string
		switch id {
		case r.SourceTableID:
			other = r.TargetTableID
		case r.TargetTableID:
			other = r.SourceTableID
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			out = append(out, other)
		}
	}
	return out
}

// ring places ids evenly on a circle around c, the i-th at angle 2πi/n.
func ring(pos Positions, c schema.Point, ids []string) {
	step := 2 * math.Pi / float64(len(ids))
	for i, id := range ids {
		angle := float64(i) * step
		pos[id] = schema.Point{
			X: c.X + starRadius*math.Cos(angle),
			Y: c.Y + starRadius*math.Sin(angle),
		}
	}
}

// StarAlign keeps the fact table centerID where it is (or puts it at
// (400,300) when it has no position) and rings its directly connected
// tables around it at radius 200. Only the center and its neighbours
// appear in the result.
func StarAlign(centerID string, tables []schema.Table, rels []schema.Relationship) (Positions, error) {
	if len(tables) == 0 {
		return Positions{}, ErrNothingToOrganize
	}

	var center *schema.Table
	for i := range tables {
		if tables[i].ID == centerID {
			center = &tables[i]
			break
		}
	}
	if center == nil || center.Kind != schema.KindFact {
		return Positions{}, ErrNoFactCenter
	}

	c := defaultCenter
	if center.Position != nil {
		c = *center.Position
	}
	pos := Positions{center.ID: c}

	ids := neighbours(center.ID, knownEdges(tables, rels))
	if len(ids) > 0 {
		ring(pos, c, ids)
	}
	return pos, nil
}
