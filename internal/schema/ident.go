package schema

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRun     = regexp.MustCompile(`[^a-z0-9]+`)
	nonGroupCharRun = regexp.MustCompile(`[^a-z0-9\-_]+`)
)

// DeriveID maps a table name to its stable id: lower-cased, every run of
// non-alphanumeric characters replaced by a single underscore. Importing the
// same DDL twice therefore yields the same ids.
func DeriveID(name string) string {
	return nonAlnumRun.ReplaceAllString(strings.ToLower(name), "_")
}

// GroupID derives a data product id from its display name.
func GroupID(name string) string {
	return nonGroupCharRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

// DefaultPosition is the grid slot a freshly imported table gets before any
// layout runs: four per row, 250 apart horizontally and 200 vertically.
func DefaultPosition(index int) Point {
	return Point{
		X: float64(100 + (index%4)*250),
		Y: float64(50 + (index/4)*200),
	}
}
