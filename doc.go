// Package maze provides a deterministic A* shortest-path search over square
// 2D grid mazes.
//
// It exposes three entry points:
//
//   - FindPath / Pathfinder.FindPath: run the search to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive renderers or debugging tools.
//   - Pathfinder.SolveBatch: solve many start/goal pairs against one shared grid in parallel.
//
// Movement is orthogonal with unit cost, and the default heuristic is the
// Manhattan distance, so returned paths have minimal length. Frontier ties are
// broken deterministically: lower cost+heuristic first, then lower heuristic,
// then the lexicographically smallest (row, col).
package maze
