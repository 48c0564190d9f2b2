package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abenet15/maze"
	"github.com/abenet15/maze/internal/mazefile"
)

type solveOutput struct {
	Name   string    `json:"name,omitempty"`
	Start  maze.Cell `json:"start"`
	Goal   maze.Cell `json:"goal"`
	Cached bool      `json:"cached"`
	maze.Result
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		endpoints endpointFlags
		jsonOut   bool
		cache     bool
		animate   bool
	)
	cmd := &cobra.Command{
		Use:   "solve [FILE]",
		Short: "Print the shortest path through a maze",
		Long: `Solve a maze and print its path as a sequence of (row,col) cells.

Examples:
  mazepath solve
  mazepath solve maze.txt --start 0,1 --goal 3,3
  mazepath solve maze.yaml --json --cache`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMaze(args, endpoints)
			if err != nil {
				return err
			}
			solver, closeSolver, err := a.solver(cache)
			if err != nil {
				return err
			}
			defer closeSolver()

			result, cached, err := solver.Solve(cmd.Context(), m.Grid, m.Start, m.Goal)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(solveOutput{Name: m.Name, Start: m.Start, Goal: m.Goal, Cached: cached, Result: result})
			}
			writePath(out, result)
			if animate && result.Found {
				return a.renderer(cmd, a.cfg.Render.StepDelay, false).Play(cmd.Context(), m.Grid, result.Path, m.Start, m.Goal)
			}
			return nil
		},
	}
	endpoints.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&cache, "cache", false, "reuse and store results in the solution cache")
	cmd.Flags().BoolVar(&animate, "animate", false, "play the path back after printing it")
	return cmd
}

func writePath(w io.Writer, result maze.Result) {
	if !result.Found {
		fmt.Fprintln(w, "No path found.")
		return
	}
	cells := make([]string, len(result.Path))
	for i, c := range result.Path {
		cells[i] = c.String()
	}
	fmt.Fprintln(w, strings.Join(cells, " -> "))
	fmt.Fprintf(w, "steps: %d  expanded: %d\n", result.Cost, result.Expanded)
}

func newAnimateCmd(a *app) *cobra.Command {
	var (
		endpoints endpointFlags
		delay     time.Duration
		static    bool
	)
	cmd := &cobra.Command{
		Use:   "animate [FILE]",
		Short: "Solve a maze and play the path back cell by cell",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMaze(args, endpoints)
			if err != nil {
				return err
			}
			result, err := maze.New(a.options()...).FindPath(cmd.Context(), m.Grid, m.Start, m.Goal)
			if err != nil {
				return err
			}
			if !result.Found {
				fmt.Fprintln(cmd.OutOrStdout(), "No path found.")
				return nil
			}
			if !cmd.Flags().Changed("delay") {
				delay = a.cfg.Render.StepDelay
			}
			return a.renderer(cmd, delay, static).Play(cmd.Context(), m.Grid, result.Path, m.Start, m.Goal)
		},
	}
	endpoints.register(cmd)
	cmd.Flags().DurationVar(&delay, "delay", 500*time.Millisecond, "pause between frames")
	cmd.Flags().BoolVar(&static, "no-animate", false, "print only the final frame")
	return cmd
}

func newExploreCmd(a *app) *cobra.Command {
	var (
		endpoints endpointFlags
		delay     time.Duration
		static    bool
	)
	cmd := &cobra.Command{
		Use:   "explore [FILE]",
		Short: "Watch the search expand one cell at a time",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMaze(args, endpoints)
			if err != nil {
				return err
			}
			stepper, err := maze.NewStepper(m.Grid, m.Start, m.Goal, a.options()...)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("delay") {
				delay = a.cfg.Render.StepDelay
			}
			return a.renderer(cmd, delay, static).Explore(cmd.Context(), m.Grid, stepper, m.Start, m.Goal)
		},
	}
	endpoints.register(cmd)
	cmd.Flags().DurationVar(&delay, "delay", 500*time.Millisecond, "pause between expansions")
	cmd.Flags().BoolVar(&static, "no-animate", false, "print only the final frame")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	var endpoints endpointFlags
	cmd := &cobra.Command{
		Use:   "verify [FILE]",
		Short: "Check the A* path against a breadth-first search",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMaze(args, endpoints)
			if err != nil {
				return err
			}
			return verify(cmd, a, m)
		},
	}
	endpoints.register(cmd)
	return cmd
}

func verify(cmd *cobra.Command, a *app, m mazefile.Maze) error {
	result, err := maze.New(a.options()...).FindPath(cmd.Context(), m.Grid, m.Start, m.Goal)
	if err != nil {
		return err
	}
	want, reachable := maze.ShortestDistance(m.Grid, m.Start, m.Goal)
	if reachable != result.Found {
		return fmt.Errorf("reachability mismatch: astar found=%t, bfs found=%t", result.Found, reachable)
	}
	out := cmd.OutOrStdout()
	if !result.Found {
		fmt.Fprintln(out, "ok: goal unreachable")
		return nil
	}
	if err := result.Path.Validate(m.Grid); err != nil {
		return err
	}
	if result.Path[0] != m.Start || result.Path[len(result.Path)-1] != m.Goal {
		return fmt.Errorf("path runs %s to %s, want %s to %s",
			result.Path[0], result.Path[len(result.Path)-1], m.Start, m.Goal)
	}
	if result.Cost != want {
		return fmt.Errorf("path length %d, shortest is %d", result.Cost, want)
	}
	fmt.Fprintf(out, "ok: %d steps, %d cells expanded\n", result.Cost, result.Expanded)
	return nil
}
