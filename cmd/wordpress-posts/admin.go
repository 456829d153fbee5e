// cmd/wordpress-posts/admin.go
package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// startAdmin serves /metrics and /healthz until ctx is done. It does nothing
// unless metrics are enabled.
func (a *application) startAdmin(ctx context.Context, g *errgroup.Group) {
	if !a.cfg.Metrics.Enabled {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", a.healthz)

	srv := &http.Server{
		Addr:              a.cfg.Metrics.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		a.zapLog.Info("Admin server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// healthz reports the reachability of the configured backends.
func (a *application) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := "ok"
	if a.redis != nil {
		if err := a.redis.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "redis: "+err.Error()
		}
	}
	if a.postgres != nil && status == http.StatusOK {
		if err := a.postgres.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "postgres: "+err.Error()
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
