package maze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepper_MatchesFindPath(t *testing.T) {
	grid := MustGrid(demoRows)
	start, goal := Cell{15, 0}, Cell{0, 15}

	stepper, err := NewStepper(grid, start, goal)
	require.NoError(t, err)
	steps := 0
	last := stepper.Run(func(StepSnapshot) { steps++ })
	assert.Equal(t, steps, last.StepIndex)
	assert.True(t, last.Done)
	assert.True(t, last.Found)
	assert.Equal(t, goal, last.Current)

	want, err := FindPath(context.Background(), grid, start, goal)
	require.NoError(t, err)
	assert.Equal(t, want.Path, last.Path)
	assert.Equal(t, want, stepper.Result())
	assert.Equal(t, want.Expanded+1, last.StepIndex)
}

func TestStepper_SnapshotsKeepSetsDisjoint(t *testing.T) {
	grid := randomGrid(7, 10, 0.25)
	stepper, err := NewStepper(grid, Cell{0, 0}, Cell{9, 9})
	require.NoError(t, err)

	i := 0
	stepper.Run(func(snap StepSnapshot) {
		i++
		assert.Equal(t, i, snap.StepIndex)
		visited := make(map[Cell]bool, len(snap.Visited))
		for _, c := range snap.Visited {
			assert.True(t, grid.Passable(c))
			visited[c] = true
		}
		for _, c := range snap.Frontier {
			assert.True(t, grid.Passable(c))
			assert.False(t, visited[c], "cell %v in both frontier and visited at step %d", c, snap.StepIndex)
		}
	})
	assert.Positive(t, i)
}

func TestStepper_FirstStepAndExhaustion(t *testing.T) {
	grid := MustGrid([][]int{
		{0, 1},
		{1, 0},
	})
	stepper, err := NewStepper(grid, Cell{0, 0}, Cell{1, 1})
	require.NoError(t, err)

	initial := stepper.Snapshot()
	assert.Equal(t, []Cell{{0, 0}}, initial.Frontier)
	assert.Empty(t, initial.Visited)
	assert.Zero(t, initial.StepIndex)

	first := stepper.Step()
	assert.False(t, first.Done)
	assert.Equal(t, []Cell{{0, 0}}, first.Visited)
	assert.Empty(t, first.Frontier)

	final := stepper.Step()
	assert.True(t, final.Done)
	assert.False(t, final.Found)
	assert.Nil(t, final.Path)

	again := stepper.Step()
	assert.Equal(t, final, again)
}

func TestNewStepper_InvalidInput(t *testing.T) {
	_, err := NewStepper(openGrid(2), Cell{0, 0}, Cell{5, 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStepper_RunWithoutVisitorOnLargeGrid(t *testing.T) {
	grid := openGrid(120)
	start, goal := Cell{0, 0}, Cell{119, 119}

	stepper, err := NewStepper(grid, start, goal, WithHeuristic(Zero))
	require.NoError(t, err)
	last := stepper.Run(nil)
	require.True(t, last.Done)
	require.True(t, last.Found)
	assert.Equal(t, 238, last.Path.Len())
	assert.Equal(t, stepper.Result().Expanded+1, last.StepIndex)

	want, err := FindPath(context.Background(), grid, start, goal, WithHeuristic(Zero))
	require.NoError(t, err)
	assert.Equal(t, want, stepper.Result())
}
