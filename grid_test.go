package maze

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_Malformed(t *testing.T) {
	_, err := NewGrid(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewGrid([][]int{{0, 0}, {0}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewGrid([][]int{{0, 0, 0}, {0, 0, 0}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Panics(t, func() { MustGrid([][]int{{0, 0}}) })
}

func TestNewGrid_CopiesInput(t *testing.T) {
	rows := [][]int{{0, 0}, {0, 0}}
	grid, err := NewGrid(rows)
	require.NoError(t, err)

	rows[0][1] = 1
	assert.True(t, grid.Passable(Cell{0, 1}))

	out := grid.Rows()
	out[1][1] = 7
	assert.Equal(t, 0, grid.Value(Cell{1, 1}))
}

func TestGrid_PassableTreatsAnyNonZeroAsWall(t *testing.T) {
	grid := MustGrid([][]int{
		{0, 2},
		{-1, 0},
	})
	assert.True(t, grid.Passable(Cell{0, 0}))
	assert.False(t, grid.Passable(Cell{0, 1}))
	assert.False(t, grid.Passable(Cell{1, 0}))
	assert.False(t, grid.Passable(Cell{2, 0}))
	assert.False(t, grid.InBounds(Cell{0, -1}))
}

func TestGrid_NeighborsOrder(t *testing.T) {
	grid := openGrid(3)
	assert.Equal(t, []Cell{{0, 1}, {2, 1}, {1, 0}, {1, 2}}, grid.Neighbors(Cell{1, 1}))
	assert.Equal(t, []Cell{{1, 0}, {0, 1}}, grid.Neighbors(Cell{0, 0}))

	walled := MustGrid([][]int{
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, 0},
	})
	assert.Equal(t, []Cell{{2, 1}, {1, 0}}, walled.Neighbors(Cell{1, 1}))
}

func TestPath_Validate(t *testing.T) {
	grid := MustGrid([][]int{
		{0, 0, 0},
		{1, 1, 0},
		{0, 0, 0},
	})

	assert.NoError(t, Path{{0, 0}, {0, 1}, {0, 2}, {1, 2}}.Validate(grid))
	assert.NoError(t, Path{{2, 2}}.Validate(grid))

	assert.ErrorIs(t, Path{{0, 0}, {1, 1}}.Validate(grid), ErrInvalidPath, "diagonal step")
	assert.ErrorIs(t, Path{{0, 0}, {0, 2}}.Validate(grid), ErrInvalidPath, "jump")
	assert.ErrorIs(t, Path{{0, 0}, {1, 0}}.Validate(grid), ErrInvalidPath, "wall")
	assert.ErrorIs(t, Path{{0, 0}, {0, 0}}.Validate(grid), ErrInvalidPath, "standing still")
	assert.ErrorIs(t, Path{{0, 3}}.Validate(grid), ErrInvalidPath, "out of bounds")
}

func TestPath_Len(t *testing.T) {
	var empty Path
	assert.Zero(t, empty.Len())

	p := Path{{0, 0}, {0, 1}}
	assert.Equal(t, 1, p.Len())
}

func TestCell_JSON(t *testing.T) {
	data, err := json.Marshal(Cell{Row: 3, Col: 4})
	require.NoError(t, err)
	assert.JSONEq(t, `[3,4]`, string(data))

	var c Cell
	require.NoError(t, json.Unmarshal([]byte(`[7,2]`), &c))
	assert.Equal(t, Cell{7, 2}, c)

	for _, bad := range []string{`{"row":1}`, `[5]`, `[1,2,3]`, `[]`, `null`, `["a","b"]`} {
		var c Cell
		err := json.Unmarshal([]byte(bad), &c)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
		assert.Equal(t, Cell{}, c, bad)
	}
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 30, Manhattan(Cell{15, 0}, Cell{0, 15}))
	assert.Equal(t, 0, Manhattan(Cell{2, 2}, Cell{2, 2}))
	assert.Equal(t, 3, Manhattan(Cell{0, 2}, Cell{1, 0}))
	assert.Equal(t, 0, Zero(Cell{0, 0}, Cell{9, 9}))
}

func TestHeuristicName(t *testing.T) {
	assert.Equal(t, "github.com/abenet15/maze.Manhattan", HeuristicName(Manhattan))
	assert.NotEqual(t, HeuristicName(Manhattan), HeuristicName(Zero))
	assert.Equal(t, HeuristicName(Manhattan), New().HeuristicName())
	assert.Equal(t, HeuristicName(Zero), New(WithHeuristic(Zero)).HeuristicName())
	assert.Empty(t, HeuristicName(nil))
}
