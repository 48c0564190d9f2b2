package mazefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abenet15/maze"
)

func TestDemo(t *testing.T) {
	m := Demo()
	assert.Equal(t, "demo-16x16", m.Name)
	assert.Equal(t, 16, m.Grid.Size())
	assert.Equal(t, maze.Cell{Row: 15, Col: 0}, m.Start)
	assert.Equal(t, maze.Cell{Row: 0, Col: 15}, m.Goal)
	assert.True(t, m.Grid.Passable(m.Start))
	assert.True(t, m.Grid.Passable(m.Goal))
}

func TestLoad_Text(t *testing.T) {
	m, err := Load(filepath.Join("testdata", "small.txt"))
	require.NoError(t, err)

	assert.Equal(t, "small", m.Name)
	assert.Equal(t, 4, m.Grid.Size())
	assert.Equal(t, maze.Cell{Row: 0, Col: 1}, m.Start)
	assert.Equal(t, maze.Cell{Row: 2, Col: 3}, m.Goal)
	assert.Equal(t, [][]int{
		{1, 0, 0, 0},
		{1, 0, 1, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
	}, m.Grid.Rows())
}

func TestParse_TextDefaultsAndIntegers(t *testing.T) {
	m, err := Parse([]byte("0 0 2\n0 -1 0\n0, 0, 0\n"), FormatText)
	require.NoError(t, err)
	assert.Equal(t, maze.Cell{Row: 2, Col: 0}, m.Start)
	assert.Equal(t, maze.Cell{Row: 0, Col: 2}, m.Goal)
	assert.Equal(t, 2, m.Grid.Value(maze.Cell{Row: 0, Col: 2}))
	assert.Equal(t, -1, m.Grid.Value(maze.Cell{Row: 1, Col: 1}))
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("00\n0\n"), FormatText)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.ErrorIs(t, err, maze.ErrInvalidInput)

	_, err = Parse([]byte("0x\nxx\n"), FormatText)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Parse([]byte("grid: [[0, 0]]\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Parse([]byte("start: [1, 2, 3]\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParse_TextRejectsDuplicateMarkers(t *testing.T) {
	for name, text := range map[string]string{
		"two starts":       "S.S\n...\n..G\n",
		"two goals":        "S..\n.G.\n..G\n",
		"start per line":   "S..\nS..\n..G\n",
		"lowercase repeat": "s.G\n...\ns..\n",
	} {
		_, err := Parse([]byte(text), FormatText)
		assert.ErrorIs(t, err, ErrMalformed, name)
	}

	m, err := Parse([]byte("S..\n...\n..G\n"), FormatText)
	require.NoError(t, err)
	assert.Equal(t, maze.Cell{Row: 0, Col: 0}, m.Start)
	assert.Equal(t, maze.Cell{Row: 2, Col: 2}, m.Goal)
}

func TestParse_YAMLRejectsBadEndpoints(t *testing.T) {
	grid := "grid: [[0, 0], [0, 0]]\n"
	for _, endpoints := range []string{
		"start: [1]\ngoal: [0, 1]\n",
		"start: [1, 0]\ngoal: [0, 1, 1]\n",
		"start: []\ngoal: [0, 1]\n",
		"start: {row: 1}\ngoal: [0, 1]\n",
	} {
		_, err := Parse([]byte(endpoints+grid), FormatYAML)
		assert.ErrorIs(t, err, ErrMalformed, endpoints)
	}

	m, err := Parse([]byte("start: [1, 0]\ngoal: [0, 1]\n"+grid), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, maze.Cell{Row: 1, Col: 0}, m.Start)
	assert.Equal(t, maze.Cell{Row: 0, Col: 1}, m.Goal)
}

func TestMarshal_EndpointsAsPairs(t *testing.T) {
	m, err := Parse([]byte("start: [1, 0]\ngoal: [0, 1]\ngrid: [[0, 0], [0, 0]]\n"), FormatYAML)
	require.NoError(t, err)
	data, err := Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), "start: [1, 0]")
	assert.Contains(t, string(data), "goal: [0, 1]")
}

func TestMarshalRoundTrip(t *testing.T) {
	m := Demo()
	data, err := Marshal(m)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "demo.yml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m.Start, loaded.Start)
	assert.Equal(t, m.Goal, loaded.Goal)
	assert.Equal(t, m.Grid.Rows(), loaded.Grid.Rows())
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("a.YAML"))
	assert.Equal(t, FormatYAML, FormatFor("a.json"))
	assert.Equal(t, FormatText, FormatFor("a.txt"))
	assert.Equal(t, FormatText, FormatFor("maze"))
}

func TestParseCell(t *testing.T) {
	c, err := ParseCell(" 15, 0")
	require.NoError(t, err)
	assert.Equal(t, maze.Cell{Row: 15, Col: 0}, c)

	for _, bad := range []string{"", "1", "a,1", "1,b", "1,2,3"} {
		_, err := ParseCell(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadQueries(t *testing.T) {
	queries, err := LoadQueries(filepath.Join("testdata", "queries.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []maze.Query{
		{Start: maze.Cell{Row: 15, Col: 0}, Goal: maze.Cell{Row: 0, Col: 15}},
		{Start: maze.Cell{Row: 7, Col: 0}, Goal: maze.Cell{Row: 7, Col: 4}},
	}, queries)
}
