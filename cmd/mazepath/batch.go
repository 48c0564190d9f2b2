package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abenet15/maze"
	"github.com/abenet15/maze/internal/mazefile"
)

type batchLine struct {
	Start maze.Cell `json:"start"`
	Goal  maze.Cell `json:"goal"`
	Found bool      `json:"found"`
	Cost  int       `json:"cost"`
	Path  maze.Path `json:"path,omitempty"`
	Error string    `json:"error,omitempty"`
}

func newBatchCmd(a *app) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "batch FILE QUERIES",
		Short: "Solve many start/goal pairs against one maze in parallel",
		Long: `Solve every query in QUERIES against the maze in FILE.

QUERIES is a YAML list:
  - start: [15, 0]
    goal: [0, 15]`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mazefile.Load(args[0])
			if err != nil {
				return err
			}
			queries, err := mazefile.LoadQueries(args[1])
			if err != nil {
				return err
			}
			results, err := maze.New(a.options()...).SolveBatch(cmd.Context(), m.Grid, queries)
			if err != nil {
				return err
			}
			a.logger.Info("batch solved", "queries", len(queries))

			out := cmd.OutOrStdout()
			if jsonOut {
				lines := make([]batchLine, len(results))
				for i, r := range results {
					lines[i] = batchLine{
						Start: r.Query.Start,
						Goal:  r.Query.Goal,
						Found: r.Result.Found,
						Cost:  r.Result.Cost,
						Path:  r.Result.Path,
					}
					if r.Err != nil {
						lines[i].Error = r.Err.Error()
					}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(lines)
			}
			for _, r := range results {
				switch {
				case r.Err != nil:
					fmt.Fprintf(out, "%s -> %s: error: %v\n", r.Query.Start, r.Query.Goal, r.Err)
				case !r.Result.Found:
					fmt.Fprintf(out, "%s -> %s: no path\n", r.Query.Start, r.Query.Goal)
				default:
					fmt.Fprintf(out, "%s -> %s: %d steps\n", r.Query.Start, r.Query.Goal, r.Result.Cost)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	return cmd
}
