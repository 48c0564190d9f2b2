// Package mazefile reads and writes maze documents: a grid plus start and
// goal cells, stored as YAML or as a plain character map.
//
// The text format has one row per line. Rows are either whitespace-separated
// integers or runs of characters where '0' and '.' are open, '1' and '#' are
// walls, and 'S' / 'G' mark the (open) start and goal. A missing 'S' defaults
// to the bottom-left corner and a missing 'G' to the top-right corner.
package mazefile

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abenet15/maze"
)

// ErrMalformed is returned for documents that cannot be turned into a maze.
var ErrMalformed = errors.New("malformed maze document")

// Format selects a serialization.
type Format int

const (
	FormatYAML Format = iota
	FormatText
)

// FormatFor picks a format from a file name.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML
	default:
		return FormatText
	}
}

// Document is the serialized form of a maze.
type Document struct {
	Name  string    `yaml:"name,omitempty" json:"name,omitempty"`
	Start maze.Cell `yaml:"start,flow" json:"start"`
	Goal  maze.Cell `yaml:"goal,flow" json:"goal"`
	Grid  [][]int   `yaml:"grid,flow" json:"grid"`
}

// Maze is a validated grid with its endpoints. Endpoints are only checked
// for passability by the search itself.
type Maze struct {
	Name  string
	Grid  *maze.Grid
	Start maze.Cell
	Goal  maze.Cell
}

// Build validates the document's grid.
func (d Document) Build() (Maze, error) {
	grid, err := maze.NewGrid(d.Grid)
	if err != nil {
		return Maze{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return Maze{
		Name:  d.Name,
		Grid:  grid,
		Start: d.Start,
		Goal:  d.Goal,
	}, nil
}

// Document converts m back to its serialized form.
func (m Maze) Document() Document {
	return Document{
		Name:  m.Name,
		Start: m.Start,
		Goal:  m.Goal,
		Grid:  m.Grid.Rows(),
	}
}

// Load reads a maze from path, choosing the format by extension.
func Load(path string) (Maze, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Maze{}, fmt.Errorf("read maze %s: %w", path, err)
	}
	m, err := Parse(data, FormatFor(path))
	if err != nil {
		return Maze{}, fmt.Errorf("parse maze %s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (Maze, error) {
	switch format {
	case FormatYAML:
		var doc Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Maze{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return doc.Build()
	case FormatText:
		return parseText(data)
	default:
		return Maze{}, fmt.Errorf("%w: unknown format %d", ErrMalformed, format)
	}
}

// Marshal encodes m as YAML.
func Marshal(m Maze) ([]byte, error) {
	return yaml.Marshal(m.Document())
}

func parseText(data []byte) (Maze, error) {
	var (
		rows       [][]int
		start      *maze.Cell
		goal       *maze.Cell
		lineNumber int
	)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		r := len(rows)
		var tokens []string
		if strings.ContainsAny(line, " \t,") {
			tokens = strings.FieldsFunc(line, func(c rune) bool { return c == ' ' || c == '\t' || c == ',' })
		} else {
			tokens = strings.Split(line, "")
		}

		row := make([]int, 0, len(tokens))
		for c, token := range tokens {
			switch token {
			case "0", ".":
				row = append(row, 0)
			case "1", "#":
				row = append(row, 1)
			case "S", "s":
				if start != nil {
					return Maze{}, fmt.Errorf("%w: line %d: second start marker, first at %s", ErrMalformed, lineNumber, start)
				}
				start = &maze.Cell{Row: r, Col: c}
				row = append(row, 0)
			case "G", "g":
				if goal != nil {
					return Maze{}, fmt.Errorf("%w: line %d: second goal marker, first at %s", ErrMalformed, lineNumber, goal)
				}
				goal = &maze.Cell{Row: r, Col: c}
				row = append(row, 0)
			default:
				v, err := strconv.Atoi(token)
				if err != nil {
					return Maze{}, fmt.Errorf("%w: line %d: unexpected token %q", ErrMalformed, lineNumber, token)
				}
				row = append(row, v)
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return Maze{}, err
	}

	grid, err := maze.NewGrid(rows)
	if err != nil {
		return Maze{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	m := Maze{
		Grid:  grid,
		Start: maze.Cell{Row: grid.Size() - 1, Col: 0},
		Goal:  maze.Cell{Row: 0, Col: grid.Size() - 1},
	}
	if start != nil {
		m.Start = *start
	}
	if goal != nil {
		m.Goal = *goal
	}
	return m, nil
}

// ParseCell parses "row,col".
func ParseCell(s string) (maze.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return maze.Cell{}, fmt.Errorf("cell %q must be row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return maze.Cell{}, fmt.Errorf("cell %q: bad row: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return maze.Cell{}, fmt.Errorf("cell %q: bad column: %w", s, err)
	}
	return maze.Cell{Row: row, Col: col}, nil
}

// LoadQueries reads a YAML list of {start: [r, c], goal: [r, c]} entries.
func LoadQueries(path string) ([]maze.Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read queries %s: %w", path, err)
	}
	var queries []maze.Query
	if err := yaml.Unmarshal(data, &queries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return queries, nil
}

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the bundled 16×16 example maze, start (15,0), goal (0,15).
func Demo() Maze {
	m, err := Parse(demoYAML, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded demo maze: %v", err))
	}
	return m
}
