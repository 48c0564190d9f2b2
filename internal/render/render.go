// Package render plays a solved path back over its maze, one cell per step,
// in the terminal.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/abenet15/maze"
)

// Glyphs are the characters used for each kind of cell.
type Glyphs struct {
	Wall     string
	Open     string
	Path     string
	Start    string
	Goal     string
	Frontier string
	Visited  string
	Current  string
}

// DefaultGlyphs matches the default render config.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		Wall:     "█",
		Open:     "·",
		Path:     "●",
		Start:    "S",
		Goal:     "G",
		Frontier: "○",
		Visited:  "░",
		Current:  "@",
	}
}

// Styles colour each kind of cell. Plain disables styling entirely.
type Styles struct {
	Plain    bool
	Wall     lipgloss.Style
	Open     lipgloss.Style
	Path     lipgloss.Style
	Endpoint lipgloss.Style
	Frontier lipgloss.Style
	Visited  lipgloss.Style
	Status   lipgloss.Style
}

// DefaultStyles returns the colour scheme used on terminals.
func DefaultStyles() Styles {
	return Styles{
		Wall:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Open:     lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Path:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Endpoint: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Frontier: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Visited:  lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// PlainStyles renders glyphs without escape sequences.
func PlainStyles() Styles {
	return Styles{Plain: true}
}

func (s Styles) paint(style lipgloss.Style, glyph string) string {
	if s.Plain {
		return glyph
	}
	return style.Render(glyph)
}

// Renderer draws frames and drives playback.
type Renderer struct {
	glyphs      Glyphs
	styles      Styles
	delay       time.Duration
	out         io.Writer
	in          io.Reader
	interactive bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithGlyphs overrides the cell characters.
func WithGlyphs(g Glyphs) Option { return func(r *Renderer) { r.glyphs = g } }

// WithStyles overrides the colour scheme.
func WithStyles(s Styles) Option { return func(r *Renderer) { r.styles = s } }

// WithDelay sets the per-step playback delay.
func WithDelay(d time.Duration) Option { return func(r *Renderer) { r.delay = d } }

// WithOutput sets the destination and re-detects whether it is a terminal.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
		r.interactive = isTerminal(w)
	}
}

// WithInput sets the keyboard source for interactive playback.
func WithInput(in io.Reader) Option { return func(r *Renderer) { r.in = in } }

// WithInteractive forces animated (true) or static (false) output.
func WithInteractive(interactive bool) Option {
	return func(r *Renderer) { r.interactive = interactive }
}

// New creates a Renderer writing to stdout with a 500ms step delay.
func New(options ...Option) *Renderer {
	r := &Renderer{
		glyphs:      DefaultGlyphs(),
		styles:      DefaultStyles(),
		delay:       500 * time.Millisecond,
		out:         os.Stdout,
		in:          os.Stdin,
		interactive: isTerminal(os.Stdout),
	}
	for _, option := range options {
		option(r)
	}
	if !r.interactive {
		r.styles.Plain = true
	}
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Interactive reports whether Play animates.
func (r *Renderer) Interactive() bool { return r.interactive }

// Frame draws grid with the first upto cells of path marked.
func (r *Renderer) Frame(grid *maze.Grid, path maze.Path, start, goal maze.Cell, upto int) string {
	upto = min(max(upto, 0), len(path))
	onPath := make(map[maze.Cell]bool, upto)
	for _, c := range path[:upto] {
		onPath[c] = true
	}
	return r.draw(grid, func(c maze.Cell) string {
		switch {
		case c == start:
			return r.styles.paint(r.styles.Endpoint, r.glyphs.Start)
		case c == goal:
			return r.styles.paint(r.styles.Endpoint, r.glyphs.Goal)
		case onPath[c]:
			return r.styles.paint(r.styles.Path, r.glyphs.Path)
		}
		return ""
	})
}

// Frames returns every playback frame: an empty maze followed by one frame
// per path cell.
func (r *Renderer) Frames(grid *maze.Grid, path maze.Path, start, goal maze.Cell) []string {
	frames := make([]string, 0, len(path)+1)
	for i := 0; i <= len(path); i++ {
		frames = append(frames, r.Frame(grid, path, start, goal, i))
	}
	return frames
}

// SnapshotFrame draws a search snapshot: visited and frontier cells, the cell
// just selected and, once found, the path.
func (r *Renderer) SnapshotFrame(grid *maze.Grid, snap maze.StepSnapshot, start, goal maze.Cell) string {
	kind := make(map[maze.Cell]string, len(snap.Visited)+len(snap.Frontier))
	for _, c := range snap.Visited {
		kind[c] = r.styles.paint(r.styles.Visited, r.glyphs.Visited)
	}
	for _, c := range snap.Frontier {
		kind[c] = r.styles.paint(r.styles.Frontier, r.glyphs.Frontier)
	}
	for _, c := range snap.Path {
		kind[c] = r.styles.paint(r.styles.Path, r.glyphs.Path)
	}
	if snap.StepIndex > 0 {
		kind[snap.Current] = r.styles.paint(r.styles.Path, r.glyphs.Current)
	}
	return r.draw(grid, func(c maze.Cell) string {
		switch c {
		case start:
			return r.styles.paint(r.styles.Endpoint, r.glyphs.Start)
		case goal:
			return r.styles.paint(r.styles.Endpoint, r.glyphs.Goal)
		}
		return kind[c]
	})
}

func (r *Renderer) draw(grid *maze.Grid, overlay func(maze.Cell) string) string {
	var b strings.Builder
	n := grid.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c := maze.Cell{Row: row, Col: col}
			if glyph := overlay(c); glyph != "" {
				b.WriteString(glyph)
				continue
			}
			if grid.Passable(c) {
				b.WriteString(r.styles.paint(r.styles.Open, r.glyphs.Open))
			} else {
				b.WriteString(r.styles.paint(r.styles.Wall, r.glyphs.Wall))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Play animates path over grid, drawing one more cell every delay, and
// returns after the last frame. On non-terminal output only the final frame
// is written.
func (r *Renderer) Play(ctx context.Context, grid *maze.Grid, path maze.Path, start, goal maze.Cell) error {
	frames := r.Frames(grid, path, start, goal)
	if !r.interactive {
		_, err := io.WriteString(r.out, frames[len(frames)-1])
		return err
	}

	i := 0
	next := func() (string, string, bool) {
		i++
		status := fmt.Sprintf("step %d/%d", max(i-1, 0), path.Len())
		return frames[i], status, i == len(frames)-1
	}
	if len(frames) == 1 {
		next = func() (string, string, bool) { return frames[0], "no path", true }
	}
	return r.run(ctx, newAnimation(frames[0], "", r.delay, r.styles, next))
}

// Explore animates a search one selection per delay until it terminates.
func (r *Renderer) Explore(ctx context.Context, grid *maze.Grid, stepper *maze.Stepper, start, goal maze.Cell) error {
	if !r.interactive {
		last := stepper.Run(nil)
		_, err := io.WriteString(r.out, r.SnapshotFrame(grid, last, start, goal))
		return err
	}

	next := func() (string, string, bool) {
		snap := stepper.Step()
		status := fmt.Sprintf("step %d  frontier %d  visited %d", snap.StepIndex, len(snap.Frontier), len(snap.Visited))
		if snap.Done {
			if snap.Found {
				status += fmt.Sprintf("  found, %d steps", snap.Path.Len())
			} else {
				status += "  no path"
			}
		}
		return r.SnapshotFrame(grid, snap, start, goal), status, snap.Done
	}
	first := r.SnapshotFrame(grid, stepper.Snapshot(), start, goal)
	return r.run(ctx, newAnimation(first, "", r.delay, r.styles, next))
}

func (r *Renderer) run(ctx context.Context, model tea.Model) error {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(r.out),
		tea.WithInput(r.in),
	)
	_, err := program.Run()
	return err
}
