package maze

import (
	"encoding/json"
	"fmt"
)

// Cell is a 0-indexed (row, column) coordinate.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func (c Cell) add(d Cell) Cell {
	return Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// MarshalJSON encodes the cell as a [row, col] pair.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON decodes a [row, col] pair. Any other shape is rejected.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: cell must be a [row, col] pair: %w", ErrInvalidInput, err)
	}
	return c.setPair(pair)
}

// MarshalYAML encodes the cell as a [row, col] sequence.
func (c Cell) MarshalYAML() (any, error) {
	return []int{c.Row, c.Col}, nil
}

// UnmarshalYAML decodes a [row, col] sequence. Any other shape is rejected.
func (c *Cell) UnmarshalYAML(unmarshal func(any) error) error {
	var pair []int
	if err := unmarshal(&pair); err != nil {
		return fmt.Errorf("%w: cell must be a [row, col] pair: %w", ErrInvalidInput, err)
	}
	return c.setPair(pair)
}

func (c *Cell) setPair(pair []int) error {
	if len(pair) != 2 {
		return fmt.Errorf("%w: cell must be a [row, col] pair, got %d values", ErrInvalidInput, len(pair))
	}
	c.Row, c.Col = pair[0], pair[1]
	return nil
}

// up, down, left, right
var directions = [4]Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grid is an immutable N×N maze. A cell valued 0 is passable, any other
// value is a wall.
type Grid struct {
	size  int
	cells []int
}

// NewGrid copies rows into a new Grid. rows must be square and non-empty.
func NewGrid(rows [][]int) (*Grid, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: grid is empty", ErrInvalidInput)
	}
	cells := make([]int, 0, n*n)
	for r, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: grid is not square: row %d has %d columns, want %d",
				ErrInvalidInput, r, len(row), n)
		}
		cells = append(cells, row...)
	}
	return &Grid{size: n, cells: cells}, nil
}

// MustGrid is like NewGrid but panics on malformed input.
func MustGrid(rows [][]int) *Grid {
	g, err := NewGrid(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns N.
func (g *Grid) Size() int { return g.size }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

// Value returns the raw value at c. c must be in bounds.
func (g *Grid) Value(c Cell) int {
	return g.cells[c.Row*g.size+c.Col]
}

// Passable reports whether c is in bounds and not a wall.
func (g *Grid) Passable(c Cell) bool {
	return g.InBounds(c) && g.Value(c) == 0
}

// Neighbors returns the passable orthogonal neighbours of c in the order
// up, down, left, right.
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, len(directions))
	for _, d := range directions {
		if next := c.add(d); g.Passable(next) {
			out = append(out, next)
		}
	}
	return out
}

// Rows returns a copy of the grid as a row-major matrix.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.size)
	for r := range rows {
		rows[r] = append([]int(nil), g.cells[r*g.size:(r+1)*g.size]...)
	}
	return rows
}

// Path is an ordered sequence of cells from start to goal inclusive.
type Path []Cell

// Len returns the number of steps (edges) in the path.
func (p Path) Len() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Validate checks that every cell is passable and that consecutive cells are
// exactly one orthogonal step apart.
func (p Path) Validate(g *Grid) error {
	for i, c := range p {
		if !g.Passable(c) {
			return fmt.Errorf("%w: cell %d %v is not passable", ErrInvalidPath, i, c)
		}
		if i == 0 {
			continue
		}
		if d := manhattan(p[i-1], c); d != 1 {
			return fmt.Errorf("%w: step %d from %v to %v spans %d cells", ErrInvalidPath, i, p[i-1], c, d)
		}
	}
	return nil
}
