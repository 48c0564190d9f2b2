package maze

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// Result contains the outcome of a search. A search that exhausts the
// frontier without reaching the goal has Found == false and a nil Path; this
// is a normal outcome, not an error.
type Result struct {
	Path     Path `json:"path,omitempty"`
	Found    bool `json:"found"`
	Cost     int  `json:"cost"`
	Expanded int  `json:"expanded"`
}

// Options defines parameters for the search.
type Options struct {
	Heuristic       Heuristic
	Logger          *slog.Logger
	NumberOfWorkers int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithHeuristic replaces the Manhattan heuristic. h must be admissible for
// paths to stay minimal.
func WithHeuristic(h Heuristic) Option {
	return func(options *Options) { options.Heuristic = h }
}

// WithLogger sets the logger used for per-search debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithWorkers specifies how many searches SolveBatch runs at once.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		Heuristic:       Manhattan,
		Logger:          slog.Default(),
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Heuristic == nil {
		searchOptions.Heuristic = Manhattan
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.Default()
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// Pathfinder runs grid searches. It holds no per-search state and is safe
// for concurrent use.
type Pathfinder struct {
	options Options
}

// New creates a Pathfinder.
func New(options ...Option) *Pathfinder {
	return &Pathfinder{options: applyOptions(options)}
}

// HeuristicName identifies the configured heuristic, so results computed
// with different heuristics can be told apart.
func (p *Pathfinder) HeuristicName() string {
	return HeuristicName(p.options.Heuristic)
}

// FindPath is shorthand for New(options...).FindPath.
func FindPath(ctx context.Context, grid *Grid, start, goal Cell, options ...Option) (Result, error) {
	return New(options...).FindPath(ctx, grid, start, goal)
}

// FindPath returns a minimal-length orthogonal path from start to goal.
//
// It fails with ErrInvalidInput when the grid is nil or when start or goal is
// out of bounds or blocked, and with the context error if ctx is cancelled
// mid-search.
func (p *Pathfinder) FindPath(ctx context.Context, grid *Grid, start, goal Cell) (Result, error) {
	if err := validateEndpoints(grid, start, goal); err != nil {
		return Result{}, err
	}

	ctx, span := startSearchSpan(ctx, grid.Size(), start, goal)
	defer span.End()
	began := time.Now()

	s := newSearch(grid, start, goal, p.options.Heuristic)
	for !s.step() {
		if err := ctx.Err(); err != nil {
			setSearchSpanError(span, err)
			return Result{Expanded: s.expanded}, err
		}
	}

	result := s.result()
	duration := time.Since(began)
	setSearchSpanResult(span, result)
	recordSearchMetrics(ctx, duration, result)
	p.options.Logger.Debug("search finished",
		"start", start.String(),
		"goal", goal.String(),
		"found", result.Found,
		"cost", result.Cost,
		"expanded", result.Expanded,
		"duration", duration,
	)
	return result, nil
}

func validateEndpoints(grid *Grid, start, goal Cell) error {
	if grid == nil {
		return fmt.Errorf("%w: grid is nil", ErrInvalidInput)
	}
	for _, endpoint := range []struct {
		name string
		cell Cell
	}{{"start", start}, {"goal", goal}} {
		if !grid.InBounds(endpoint.cell) {
			return fmt.Errorf("%w: %s %v is outside the %dx%d grid",
				ErrInvalidInput, endpoint.name, endpoint.cell, grid.Size(), grid.Size())
		}
		if !grid.Passable(endpoint.cell) {
			return fmt.Errorf("%w: %s %v is blocked", ErrInvalidInput, endpoint.name, endpoint.cell)
		}
	}
	return nil
}
