package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/payrecon/internal/api"
	"github.com/cleared-dev/payrecon/internal/service"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(g *globalFlags) *cobra.Command {
	var src sourceFlags
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reconciliation results over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}

			engine, err := e.engine()
			if err != nil {
				return err
			}
			svc := service.New(src.source(cmd, e), engine, e.logger)

			cfg := api.Config{Port: e.cfg.Server.Port, AllowedOrigins: e.cfg.Server.AllowedOrigins}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, api.NewServer(cfg, svc, e.logger))
		},
	}

	src.register(cmd)
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config)")

	return cmd
}

// runServe blocks until the server fails or ctx is cancelled.
func runServe(ctx context.Context, server *api.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
