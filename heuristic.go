package maze

import (
	"reflect"
	"runtime"
)

// Heuristic estimates the remaining number of steps from one cell to another.
// It must never overestimate for returned paths to stay minimal.
type Heuristic func(from, to Cell) int

// Manhattan is the default heuristic: |Δrow| + |Δcol|. It is admissible and
// consistent for unit-cost 4-directional movement.
func Manhattan(from, to Cell) int {
	return manhattan(from, to)
}

// Zero turns the search into uniform-cost search.
func Zero(_, _ Cell) int { return 0 }

// HeuristicName returns the fully qualified function name of h, such as
// "github.com/abenet15/maze.Manhattan". Closures created by the same
// function literal share a name.
func HeuristicName(h Heuristic) string {
	if h == nil {
		return ""
	}
	return runtime.FuncForPC(reflect.ValueOf(h).Pointer()).Name()
}

func manhattan(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
