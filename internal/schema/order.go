package schema

import "log"

// ---------------------------------------------------------------------
// Dependency Ordering (Topological / Greedy)
// ---------------------------------------------------------------------

// DependencyOrder sorts tables so that every table comes after the tables its
// relationships point at. Cycles are broken with a scoring heuristic, so the
// result always contains every input table exactly once.
func DependencyOrder(tables []Table, rels []Relationship) []Table {
	known := make(map[string]bool, len(tables))
	for _, t := range tables {
		known[t.ID] = true
	}

	deps := make(map[string][]string, len(tables))
	for _, r := range rels {
		// Self references and dangling edges never block a table.
		if r.SourceTableID == r.TargetTableID || !known[r.SourceTableID] || !known[r.TargetTableID] {
			continue
		}
		deps[r.SourceTableID] = append(deps[r.SourceTableID], r.TargetTableID)
	}

	var sorted []Table
	processed := make(map[string]bool, len(tables))

	for len(sorted) < len(tables) {
		added := false

		// Pass 1: add tables whose dependencies are all placed
		for _, t := range tables {
			if processed[t.ID] {
				continue
			}

			allDepsProcessed := true
			for _, dep := range deps[t.ID] {
				if !processed[dep] {
					allDepsProcessed = false
					break
				}
			}

			if allDepsProcessed {
				sorted = append(sorted, t)
				processed[t.ID] = true
				added = true
			}
		}

		if added {
			continue
		}

		// Pass 2: nothing was placed, so there is a cycle. Pick one table to break it.
		bestIdx := -1
		bestScore := -999999
		for i, t := range tables {
			if processed[t.ID] {
				continue
			}

			score := 0
			for _, dep := range deps[t.ID] {
				if !processed[dep] {
					score -= 100
				}
			}
			if inCycleWith(t.ID, deps, processed) {
				score += 500
			}

			// Ties go to the first table in input order.
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			log.Println("[Sort] Deadlock in dependency ordering, remaining tables appended as-is")
			break
		}
		best := tables[bestIdx]
		sorted = append(sorted, best)
		processed[best.ID] = true
		log.Printf("[Sort] Breaking circular dependency: %s (Score: %d)", best.Name, bestScore)
	}

	return sorted
}

// inCycleWith reports whether one of id's pending dependencies points straight back at id.
func inCycleWith(id string, deps map[string][]string, processed map[string]bool) bool {
	for _, dep := range deps[id] {
		if processed[dep] {
			continue
		}
		for _, back := range deps[dep] {
			if back == id {
				return true
			}
		}
	}
	return false
}
