package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abenet15/maze/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve solves, search sessions and path playback over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			httpCfg := a.cfg.HTTP
			if addr != "" {
				httpCfg.Addr = addr
			}

			solver, closeSolver, err := a.solver(false)
			if err != nil {
				return err
			}
			defer closeSolver()

			deps := server.Dependencies{
				Solver:    solver,
				Options:   a.options(),
				Logger:    a.logger,
				StepDelay: a.cfg.Render.StepDelay,
			}
			if httpCfg.MetricsEnabled {
				deps.MetricsHandler = a.telemetry.MetricsHandler()
				if deps.MetricsHandler == nil {
					a.logger.Warn("metrics enabled but the prometheus exporter is off")
				}
			}
			srv := server.New(httpCfg, deps)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return <-errCh
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.addr)")
	return cmd
}
