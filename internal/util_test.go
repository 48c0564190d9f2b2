package internal

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconstructPath(t *testing.T) {
	predecessor := map[string]string{"b": "a", "c": "b", "d": "c"}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ReconstructPath(predecessor, "d"))
	assert.Equal(t, []string{"a"}, ReconstructPath(predecessor, "a"))
}

func TestSortedKeys(t *testing.T) {
	m := map[int]bool{3: true, 1: true, 2: false}
	assert.Equal(t, []int{1, 2, 3}, SortedKeys(m, cmp.Compare[int]))
}
