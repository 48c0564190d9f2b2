package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/abenet15/maze"
	"github.com/abenet15/maze/internal/config"
	"github.com/abenet15/maze/internal/logging"
	"github.com/abenet15/maze/internal/mazefile"
	"github.com/abenet15/maze/internal/render"
	"github.com/abenet15/maze/internal/store"
	"github.com/abenet15/maze/internal/telemetry"
)

// app carries the state shared by every subcommand once the persistent
// pre-run has loaded configuration.
type app struct {
	configPath string
	logLevel   string

	cfg       config.Config
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mazepath",
		Short: "Find shortest paths through grid mazes",
		Long: `Find the shortest 4-connected path through a square grid maze with A*.

Maze files are YAML documents (name, start, goal, grid) or text grids where
'#'/'1' is a wall, '.'/'0' is open, and S/G mark the endpoints. Without a
file the bundled 16x16 demo maze is used.

Examples:
  mazepath solve
  mazepath solve maze.txt --json
  mazepath animate maze.yaml --delay 100ms
  mazepath batch maze.yaml queries.yaml
  mazepath serve`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file (default $MAZE_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newSolveCmd(a),
		newAnimateCmd(a),
		newExploreCmd(a),
		newVerifyCmd(a),
		newBatchCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.Logging, cmd.ErrOrStderr())
	slog.SetDefault(a.logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a.telemetry, err = telemetry.Init(ctx, cfg.Telemetry, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.telemetry == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return a.telemetry.Shutdown(ctx)
}

func (a *app) options() []maze.Option {
	options := []maze.Option{maze.WithLogger(a.logger)}
	if a.cfg.Search.Workers > 0 {
		options = append(options, maze.WithWorkers(a.cfg.Search.Workers))
	}
	return options
}

// solver returns a Solver, backed by the badger cache when caching is on.
// The returned close function must always be called.
func (a *app) solver(cache bool) (*store.Solver, func(), error) {
	pathfinder := maze.New(a.options()...)
	if !cache && !a.cfg.Cache.Enabled {
		return store.NewSolver(pathfinder, nil, a.logger), func() {}, nil
	}
	st, err := store.Open(store.Config{
		Dir:      a.cfg.Cache.Dir,
		InMemory: a.cfg.Cache.InMemory || a.cfg.Cache.Dir == "",
		Logger:   a.logger,
	})
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := st.Close(); err != nil {
			a.logger.Warn("closing cache failed", "error", err)
		}
	}
	return store.NewSolver(pathfinder, st, a.logger), closeFn, nil
}

// renderer builds a Renderer on the command's streams. static forces a
// single final frame even on a terminal.
func (a *app) renderer(cmd *cobra.Command, delay time.Duration, static bool) *render.Renderer {
	glyphs := render.DefaultGlyphs()
	glyphs.Wall = a.cfg.Render.WallGlyph
	glyphs.Path = a.cfg.Render.PathGlyph
	glyphs.Open = a.cfg.Render.OpenGlyph
	options := []render.Option{
		render.WithGlyphs(glyphs),
		render.WithDelay(delay),
		render.WithOutput(cmd.OutOrStdout()),
		render.WithInput(cmd.InOrStdin()),
	}
	if static {
		options = append(options, render.WithInteractive(false))
	}
	return render.New(options...)
}

// endpointFlags are the --start/--goal overrides shared by maze commands.
type endpointFlags struct {
	start string
	goal  string
}

func (f *endpointFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "override the start cell as row,col")
	cmd.Flags().StringVar(&f.goal, "goal", "", "override the goal cell as row,col")
}

// loadMaze reads the maze named by args, or the demo maze, and applies any
// endpoint overrides.
func loadMaze(args []string, f endpointFlags) (mazefile.Maze, error) {
	m := mazefile.Demo()
	if len(args) > 0 {
		var err error
		if m, err = mazefile.Load(args[0]); err != nil {
			return mazefile.Maze{}, err
		}
	}
	if f.start != "" {
		c, err := mazefile.ParseCell(f.start)
		if err != nil {
			return mazefile.Maze{}, err
		}
		m.Start = c
	}
	if f.goal != "" {
		c, err := mazefile.ParseCell(f.goal)
		if err != nil {
			return mazefile.Maze{}, err
		}
		m.Goal = c
	}
	return m, nil
}
