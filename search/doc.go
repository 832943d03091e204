// Package search implements the best-first search driver: a best-first
// exploration of Graphs reachable from an initial Graph by repeated
// application of a registered Xfer set, bounded by a budget on the number
// of expansions and a beta slack factor that discards popped graphs costing
// more than beta times the best cost, with deduplication by graph hash.
//
// The frontier is a container/heap priority queue ordered by total cost,
// holding whole candidate Graphs rather than path-distance-labeled
// vertices.
package search
