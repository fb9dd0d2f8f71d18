package schema

import "strings"

var (
	factKeywords      = []string{"fact", "transaction", "event", "measure", "metric"}
	dimensionKeywords = []string{"dim", "lookup", "reference", "master", "code"}
)

// DetectTableKind guesses whether a table is a fact or a dimension from its
// name, falling back to counting PK columns that look like ids. It always
// returns one of the two kinds.
func DetectTableKind(name string, columns []Column) Kind {
	n := strings.ToLower(name)

	if strings.HasPrefix(n, "fact") || strings.HasSuffix(n, "fact") || containsAny(n, factKeywords) {
		return KindFact
	}
	if containsAny(n, dimensionKeywords) {
		return KindDimension
	}

	// No naming hint: two or fewer id-like PK columns means fact.
	idColumns := 0
	for _, c := range columns {
		if c.IsPK && strings.Contains(strings.ToLower(c.Name), "id") {
			idColumns++
		}
	}
	if idColumns <= 2 {
		return KindFact
	}
	return KindDimension
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
