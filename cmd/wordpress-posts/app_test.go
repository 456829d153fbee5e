package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"wordpress-posts/internal/common/config"
	"wordpress-posts/internal/common/database"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/observability"
	"wordpress-posts/internal/workers/posts/tooling"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "wordpress-posts", Version: "1.0.0"},
		Workers: map[string]config.WorkerConfig{
			"list-posts":  {Enabled: true, MaxJobsActive: 5, Timeout: 1000},
			"get-post":    {Enabled: true, MaxJobsActive: 5, Timeout: 2000},
			"create-post": {Enabled: true, MaxJobsActive: 5, Timeout: 3000},
			"update-post": {Enabled: false, MaxJobsActive: 5, Timeout: 4000},
		},
	}
}

func TestBuildTools_SkipsDisabled(t *testing.T) {
	tools, err := buildTools(testConfig(), logger.NewTestLogger(t), tooling.NewClientFactory(http.DefaultClient),
		observability.NoopTracer(), observability.Nop(), nil, tooling.Publications{})
	require.NoError(t, err)

	var names, taskTypes []string
	for _, tool := range tools {
		names = append(names, tool.Descriptor().Name)
		taskTypes = append(taskTypes, tool.GetTaskType())
	}
	assert.Equal(t, []string{"list-posts", "get-post", "create-post"}, names)
	assert.Equal(t, []string{"wordpress.posts.list", "wordpress.posts.get", "wordpress.posts.create"}, taskTypes)
}

func TestCallTimeout(t *testing.T) {
	app := &application{cfg: testConfig()}
	assert.Equal(t, 2*time.Second, app.callTimeout("get-post"))
	assert.Equal(t, 60*time.Second, app.callTimeout("unknown"))
}

func TestRetryWithBackoff(t *testing.T) {
	attempts := 0
	err := retryWithBackoff(func() error {
		attempts++
		if attempts < 2 {
			return fmt.Errorf("not yet")
		}
		return nil
	}, 3, time.Millisecond, zaptest.NewLogger(t), "test")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	err = retryWithBackoff(func() error { return fmt.Errorf("down") }, 2, time.Millisecond, zaptest.NewLogger(t), "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test failed after 2 attempts: down")
}

func TestHealthz(t *testing.T) {
	mr := miniredis.RunT(t)
	app := &application{
		cfg:    testConfig(),
		zapLog: zaptest.NewLogger(t),
		redis:  database.NewRedis(config.RedisConfig{Address: mr.Addr()}),
	}
	t.Cleanup(func() { _ = app.redis.Close() })

	rec := httptest.NewRecorder()
	app.healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil).WithContext(context.Background()))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	mr.Close()
	rec = httptest.NewRecorder()
	app.healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis:")
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "worker"}, names)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}
