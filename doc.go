// Package astar provides a generic best-first (A*) shortest path search.
//
// It exposes three entry points:
//
//   - FindPath: run the search and get the path, or false when none exists.
//   - Search: run the search to completion and get a Result with statistics.
//   - Stepper: iterate the search one expansion at a time to drive tracing or debugging tools.
//
// The library is generic over the node type and the weight type. Callers
// plug in a Graph that supplies the heuristic, the edge weights and the
// neighbors of a node. All search state is owned by a single call and the
// search runs on the caller's goroutine.
package astar
