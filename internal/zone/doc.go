// Package zone answers questions about the plane covered by sensor
// exclusion zones.
//
// Responsibilities: per-row span generation, the row query (how many
// positions on a row cannot hold an undiscovered beacon) and the gap search
// (the single position in a square domain no sensor covers).
// Key entry points: CountExcludedOnRow, FindGap, Searcher.
//
// Every row is a pure function of the read-only sensor list, so rows can be
// evaluated in any order and on any goroutine. Nothing here prints results;
// diagnostics go through monitoring.Logf.
package zone
