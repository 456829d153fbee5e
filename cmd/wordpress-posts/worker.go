// cmd/wordpress-posts/worker.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wordpress-posts/internal/common/camunda"
	"wordpress-posts/internal/common/config"
)

func newWorkerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the post tools as Zeebe job workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Camunda.BrokerAddress == "" {
				return fmt.Errorf("camunda.broker_address is required for the worker command")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newApplication(ctx, cfg)
			if err != nil {
				return err
			}
			defer app.close(context.Background())

			var zeebe *camunda.Client
			err = retryWithBackoff(func() error {
				var err error
				zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
					GatewayAddress:         cfg.Camunda.BrokerAddress,
					UsePlaintextConnection: true,
					ConnectionTimeout:      10 * time.Second,
					RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
				})
				return err
			}, 10, 2*time.Second, app.zapLog, "Zeebe client initialization")
			if err != nil {
				return err
			}
			defer zeebe.Close()
			app.zapLog.Info("Zeebe client connected successfully", zap.String("address", cfg.Camunda.BrokerAddress))

			adapters := make([]*camunda.JobAdapter, 0, len(app.tools))
			for _, t := range app.tools {
				name := t.Descriptor().Name
				wcfg := config.GetWorkerConfig(cfg, name)
				adapter, err := camunda.NewJobAdapter(camunda.WorkerOptions{
					TaskType:      t.GetTaskType(),
					MaxJobsActive: wcfg.MaxJobsActive,
					Timeout:       config.GetDuration(wcfg.Timeout),
					Executor:      t,
					Logger:        app.log.WithFields(map[string]interface{}{"worker": name}),
					Tracer:        app.tracer,
				})
				if err != nil {
					return err
				}
				adapter.Open(zeebe.GetClient())
				adapters = append(adapters, adapter)
			}
			app.zapLog.Info("All workers started", zap.Int("count", len(adapters)))

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				<-gctx.Done()
				app.zapLog.Info("Shutdown signal received, stopping workers...")
				for _, a := range adapters {
					a.Close()
				}
				return nil
			})
			app.startAdmin(gctx, g)

			return g.Wait()
		},
	}
}
