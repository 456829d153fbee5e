// cmd/wordpress-posts/app.go
package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wordpress-posts/internal/common/aws"
	"wordpress-posts/internal/common/cache"
	"wordpress-posts/internal/common/camunda"
	"wordpress-posts/internal/common/config"
	"wordpress-posts/internal/common/database"
	commonhttp "wordpress-posts/internal/common/http"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/observability"
	"wordpress-posts/internal/common/publications"
	"wordpress-posts/internal/mcp"
	createpost "wordpress-posts/internal/workers/posts/create-post"
	getpost "wordpress-posts/internal/workers/posts/get-post"
	listposts "wordpress-posts/internal/workers/posts/list-posts"
	updatepost "wordpress-posts/internal/workers/posts/update-post"
	"wordpress-posts/internal/workers/posts/tooling"
)

// postTool is one operation, servable on both surfaces.
type postTool interface {
	mcp.Tool
	camunda.Executor
	GetTaskType() string
	IsEnabled() bool
}

// application holds everything both surfaces share.
type application struct {
	cfg    *config.Config
	zapLog *zap.Logger
	log    logger.Logger
	tracer *observability.TracerProvider
	obs    *observability.Observability

	redis    *database.RedisClient
	postgres *database.PostgresClient

	tools []postTool
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// newApplication opens the optional backends and builds the enabled tools.
// A backend that is configured but unreachable is fatal; one that is not
// configured is skipped.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	app := &application{
		cfg:    cfg,
		zapLog: zapLog,
		log:    logger.NewZapAdapter(zapLog),
	}

	tracer, err := observability.NewTracerProvider(observability.TracingConfig{
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
		SampleRatio:    cfg.Tracing.SampleRatio,
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
	})
	if err != nil {
		return nil, err
	}
	app.tracer = tracer

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("otel metrics unavailable", zap.Error(err))
		obs = observability.Nop()
	}
	app.obs = obs

	var postCache *cache.PostCache
	if cfg.Database.Redis.Enabled() {
		app.redis = database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error {
			return app.redis.Ping(ctx)
		}, 5, time.Second, zapLog, "Redis connection")
		if err != nil {
			app.close(ctx)
			return nil, err
		}
		postCache = cache.NewPostCache(app.redis.Client, time.Duration(cfg.Database.Redis.PostTTL)*time.Second, app.log)
		zapLog.Info("Redis post cache enabled", zap.String("address", cfg.Database.Redis.Address))
	}

	var pubs tooling.Publications
	if cfg.Database.Postgres.Enabled() {
		err = retryWithBackoff(func() error {
			var err error
			app.postgres, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return app.postgres.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			app.close(ctx)
			return nil, err
		}
		ledger := publications.NewLedger(app.postgres.DB)
		if err := ledger.EnsureSchema(ctx); err != nil {
			app.close(ctx)
			return nil, err
		}
		pubs.Ledger = ledger
		zapLog.Info("Publication ledger enabled", zap.String("host", cfg.Database.Postgres.Host))
	}

	if cfg.Notifications.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.SNS.Region)
		if err != nil {
			app.close(ctx)
			return nil, fmt.Errorf("failed to create sns client: %w", err)
		}
		pubs.Notifier = aws.NewPublishNotifier(snsClient, cfg.Notifications.SNS.TopicARN)
		zapLog.Info("SNS publish notifications enabled", zap.String("topic", cfg.Notifications.SNS.TopicARN))
	}

	if !cfg.WordPress.HasCredentials() {
		zapLog.Warn("No default WordPress credentials configured; every call must pass siteUrl, username and password")
	}

	clients := tooling.NewClientFactory(commonhttp.NewClient(config.GetDuration(cfg.WordPress.Timeout)))
	tools, err := buildTools(cfg, app.log, clients, tracer, obs, postCache, pubs)
	if err != nil {
		app.close(ctx)
		return nil, err
	}
	app.tools = tools
	return app, nil
}

func buildTools(
	cfg *config.Config,
	log logger.Logger,
	clients tooling.ClientFactory,
	tracer *observability.TracerProvider,
	obs *observability.Observability,
	postCache *cache.PostCache,
	pubs tooling.Publications,
) ([]postTool, error) {
	list, err := listposts.NewHandler(listposts.HandlerOptions{
		AppConfig: cfg,
		Logger:    log,
		Clients:   clients,
	})
	if err != nil {
		return nil, err
	}
	get, err := getpost.NewHandler(getpost.HandlerOptions{
		AppConfig: cfg,
		Logger:    log,
		Clients:   clients,
		Cache:     postCache,
	})
	if err != nil {
		return nil, err
	}
	create, err := createpost.NewHandler(createpost.HandlerOptions{
		AppConfig:    cfg,
		Logger:       log,
		Clients:      clients,
		Tracer:       tracer,
		Metrics:      obs,
		Publications: pubs,
	})
	if err != nil {
		return nil, err
	}
	update, err := updatepost.NewHandler(updatepost.HandlerOptions{
		AppConfig:    cfg,
		Logger:       log,
		Clients:      clients,
		Cache:        postCache,
		Publications: pubs,
	})
	if err != nil {
		return nil, err
	}

	all := []postTool{list, get, create, update}
	enabled := make([]postTool, 0, len(all))
	for _, t := range all {
		if !t.IsEnabled() {
			log.Info("Tool disabled", map[string]interface{}{"tool": t.Descriptor().Name})
			continue
		}
		enabled = append(enabled, t)
	}
	return enabled, nil
}

// callTimeout maps a tool name to its configured deadline.
func (a *application) callTimeout(tool string) time.Duration {
	return config.GetDuration(config.GetWorkerConfig(a.cfg, tool).Timeout)
}

func (a *application) close(ctx context.Context) {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.zapLog.Warn("Failed to close redis", zap.Error(err))
		}
	}
	if a.postgres != nil {
		if err := a.postgres.Close(); err != nil {
			a.zapLog.Warn("Failed to close postgres", zap.Error(err))
		}
	}
	if a.obs != nil {
		_ = a.obs.Shutdown(ctx)
	}
	if err := a.tracer.Shutdown(ctx); err != nil {
		a.zapLog.Warn("Failed to flush traces", zap.Error(err))
	}
	_ = a.zapLog.Sync()
}
