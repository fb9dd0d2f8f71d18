package layout

import "erd-builder/internal/schema"

const (
	treeSpacingX = 300
	treeSpacingY = 250
	treeCenterX  = 200
	treeTopY     = 100
)

// Levels is the BFS layering used by Tree.
type Levels struct {
	Root  string
	Level map[string]int
	Rows  [][]string // table ids per level, input order within a row
}

// TreeLevels picks the root (highest degree; among equal degrees the last
// fact table wins, otherwise the first table) and assigns every table its BFS depth over the undirected
// relationship graph. Tables the BFS never reaches are put on level 0.
func TreeLevels(tables []schema.Table, rels []schema.Relationship) Levels {
	lv := Levels{Level: make(map[string]int, len(tables))}
	if len(tables) == 0 {
		return lv
	}

	adj := make(map[string][]string, len(tables))
	for _, r := range knownEdges(tables, rels) {
		adj[r.SourceTableID] = append(adj[r.SourceTableID], r.TargetTableID)
		adj[r.TargetTableID] = append(adj[r.TargetTableID], r.SourceTableID)
	}

	root := tables[0]
	maxDegree := 0
	for _, t := range tables {
		deg := len(adj[t.ID])
		if deg > maxDegree || (deg == maxDegree && t.Kind == schema.KindFact) {
			root = t
			maxDegree = deg
		}
	}
	lv.Root = root.ID

	visited := map[string]bool{root.ID: true}
	lv.Level[root.ID] = 0
	queue := []string{root.ID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if visited[next] {
				continue
			}
			visited[next] = true
			lv.Level[next] = lv.Level[cur] + 1
			queue = append(queue, next)
		}
	}

	depth := 0
	for _, t := range tables {
		if !visited[t.ID] {
			lv.Level[t.ID] = 0
		}
		if lv.Level[t.ID] > depth {
			depth = lv.Level[t.ID]
		}
	}
	lv.Rows = make([][]string, depth+1)
	for _, t := range tables {
		l := lv.Level[t.ID]
		lv.Rows[l] = append(lv.Rows[l], t.ID)
	}
	return lv
}

// Tree lays the BFS levels out as rows 250 apart from y=100, each row
// spaced 300 apart and centered on x=200.
func Tree(tables []schema.Table, rels []schema.Relationship) Positions {
	lv := TreeLevels(tables, rels)
	pos := make(Positions, len(tables))
	for level, row := range lv.Rows {
		startX := float64(treeCenterX) - float64(len(row)*treeSpacingX-treeSpacingX)/2
		for i, id := range row {
			pos[id] = schema.Point{
				X: startX + float64(i*treeSpacingX),
				Y: float64(treeTopY + level*treeSpacingY),
			}
		}
	}
	return pos
}
