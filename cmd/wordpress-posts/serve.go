// cmd/wordpress-posts/serve.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wordpress-posts/internal/mcp"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the post tools over MCP on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newApplication(ctx, cfg)
			if err != nil {
				return err
			}
			defer app.close(context.Background())

			server := mcp.NewServer(mcp.ServerInfo{Name: cfg.App.Name, Version: cfg.App.Version}, mcp.ServerOptions{
				Logger:        app.log,
				Tracer:        app.tracer,
				Observability: app.obs,
				CallTimeout:   app.callTimeout,
			})
			for _, t := range app.tools {
				server.Register(t)
			}

			app.zapLog.Info("MCP server listening on stdio", zap.Int("tools", len(app.tools)))

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				err := server.Serve(gctx, os.Stdin, os.Stdout)
				// stdin closing ends the session.
				stop()
				return err
			})
			app.startAdmin(gctx, g)

			if err := g.Wait(); err != nil {
				app.zapLog.Error("MCP server stopped with error", zap.Error(err))
				return err
			}
			app.zapLog.Info("MCP server stopped")
			return nil
		},
	}
}
