package maze

import (
	"cmp"

	"github.com/abenet15/maze/internal"
)

// search is the state of one A* run. It is owned by a single call and never
// shared.
type search struct {
	grid      *Grid
	start     Cell
	goal      Cell
	heuristic Heuristic

	open        *frontier
	visited     map[Cell]bool
	costSoFar   map[Cell]int
	predecessor map[Cell]Cell

	current  Cell
	expanded int
	done     bool
	found    bool
}

func newSearch(grid *Grid, start, goal Cell, heuristic Heuristic) *search {
	s := &search{
		grid:        grid,
		start:       start,
		goal:        goal,
		heuristic:   heuristic,
		open:        newFrontier(),
		visited:     make(map[Cell]bool),
		costSoFar:   map[Cell]int{start: 0},
		predecessor: make(map[Cell]Cell),
		current:     start,
	}
	s.open.push(start, 0, heuristic(start, goal))
	return s
}

// step runs one iteration of the main loop and reports whether the search
// reached a terminal state.
func (s *search) step() bool {
	if s.done {
		return true
	}
	if s.open.Len() == 0 {
		s.done = true
		return true
	}

	currentItem := s.open.pop()
	current := currentItem.Cell
	s.current = current
	if current == s.goal {
		s.done = true
		s.found = true
		return true
	}
	s.visited[current] = true
	s.expanded++

	tentativeCost := s.costSoFar[current] + 1
	for _, d := range directions {
		neighbor := current.add(d)
		if !s.grid.Passable(neighbor) || s.visited[neighbor] {
			continue
		}
		item, inOpen := s.open.lookup(neighbor)
		switch {
		case !inOpen:
			s.predecessor[neighbor] = current
			s.costSoFar[neighbor] = tentativeCost
			s.open.push(neighbor, tentativeCost, s.heuristic(neighbor, s.goal))
		case tentativeCost < s.costSoFar[neighbor]:
			s.predecessor[neighbor] = current
			s.costSoFar[neighbor] = tentativeCost
			s.open.decrease(item, tentativeCost)
		}
	}
	return false
}

func (s *search) path() Path {
	if !s.found {
		return nil
	}
	return internal.ReconstructPath(s.predecessor, s.goal)
}

func (s *search) result() Result {
	r := Result{Found: s.found, Expanded: s.expanded}
	if s.found {
		r.Path = s.path()
		r.Cost = s.costSoFar[s.goal]
	}
	return r
}

func (s *search) frontierCells() []Cell {
	return internal.SortedKeys(s.open.byCell, compareCells)
}

func (s *search) visitedCells() []Cell {
	return internal.SortedKeys(s.visited, compareCells)
}

func compareCells(a, b Cell) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}
