package listposts

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordpress-posts/internal/common/config"
	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/wordpress/wptest"
	"wordpress-posts/internal/models"
)

func newTestHandler(t *testing.T, srv *wptest.Server) *Handler {
	t.Helper()
	appConfig := &config.Config{}
	if srv != nil {
		creds := srv.Credentials()
		appConfig.WordPress = config.WordPressConfig{SiteURL: creds.SiteURL, Username: creds.Username, Password: creds.Password}
	}
	h, err := NewHandler(HandlerOptions{AppConfig: appConfig, Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)
	return h
}

func seed(srv *wptest.Server) {
	srv.AddPost(models.Post{Title: models.Rendered{Rendered: "Hello"}, Status: models.StatusPublish, Date: "2024-01-01T00:00:00",
		Excerpt: models.Rendered{Rendered: "<p>First post</p>"}})
	srv.AddPost(models.Post{Title: models.Rendered{Rendered: "Draft one"}, Status: models.StatusDraft, Date: "2024-01-02T00:00:00"})
	srv.AddPost(models.Post{Status: models.StatusPublish, Date: "2024-01-03T00:00:00",
		Excerpt: models.Rendered{Rendered: strings.Repeat("x", 250)}})
}

func TestHandler_NewHandler(t *testing.T) {
	tests := []struct {
		name    string
		opts    HandlerOptions
		wantErr string
	}{
		{name: "defaults", opts: HandlerOptions{}},
		{
			name: "from app config",
			opts: HandlerOptions{AppConfig: &config.Config{Workers: map[string]config.WorkerConfig{
				ToolName: {Enabled: false, MaxJobsActive: 2, Timeout: 1500},
			}}},
		},
		{
			name:    "invalid custom config",
			opts:    HandlerOptions{CustomConfig: &Config{Enabled: true, MaxJobsActive: 1}},
			wantErr: "timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Logger = logger.NewNoOpLogger()
			h, err := NewHandler(tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TaskType, h.GetTaskType())
		})
	}

	h, err := NewHandler(HandlerOptions{AppConfig: &config.Config{Workers: map[string]config.WorkerConfig{
		ToolName: {Enabled: false, MaxJobsActive: 2, Timeout: 1500},
	}}})
	require.NoError(t, err)
	assert.False(t, h.IsEnabled())
	assert.Equal(t, 1500*time.Millisecond, h.GetConfig().Timeout)
}

func TestHandler_Call_DefaultQuery(t *testing.T) {
	srv := wptest.NewServer()
	defer srv.Close()
	seed(srv)

	h := newTestHandler(t, srv)
	result := h.Call(context.Background(), map[string]interface{}{})
	require.False(t, result.IsError, result.Text())

	req, ok := srv.LastRequest("GET", "/wp-json/wp/v2/posts")
	require.True(t, ok)
	q, err := url.ParseQuery(req.Query)
	require.NoError(t, err)
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "10", q.Get("per_page"))
	assert.Equal(t, "publish", q.Get("status"))
	assert.Equal(t, "desc", q.Get("order"))
	assert.Equal(t, "date", q.Get("orderby"))
	assert.False(t, q.Has("search"))

	text := result.Text()
	assert.True(t, strings.HasPrefix(text, "Found 2 posts:\n\n"), text)
	assert.Contains(t, text, "ID: 101\nTitle: Hello\nStatus: publish\nDate: 2024-01-01T00:00:00\nExcerpt: <p>First post</p>...")
	assert.Contains(t, text, "Title: No title")
	assert.Contains(t, text, "Excerpt: "+strings.Repeat("x", 200)+"...")
	assert.NotContains(t, text, strings.Repeat("x", 201))
	assert.Equal(t, float64(2), result.StructuredContent["count"])
}

func TestHandler_Call_ExplicitQuery(t *testing.T) {
	srv := wptest.NewServer()
	defer srv.Close()
	seed(srv)

	h := newTestHandler(t, srv)
	result := h.Call(context.Background(), map[string]interface{}{
		"page":    float64(2),
		"perPage": float64(5),
		"search":  "hello",
		"status":  []interface{}{"publish", "draft"},
		"order":   "asc",
		"orderby": "title",
	})
	require.False(t, result.IsError, result.Text())

	req, _ := srv.LastRequest("GET", "/wp-json/wp/v2/posts")
	q, err := url.ParseQuery(req.Query)
	require.NoError(t, err)
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "5", q.Get("per_page"))
	assert.Equal(t, "hello", q.Get("search"))
	assert.Equal(t, "publish,draft", q.Get("status"))
	assert.Equal(t, "asc", q.Get("order"))
	assert.Equal(t, "title", q.Get("orderby"))
}

func TestHandler_Call_EmptyListing(t *testing.T) {
	srv := wptest.NewServer()
	defer srv.Close()

	result := newTestHandler(t, srv).Call(context.Background(), nil)
	require.False(t, result.IsError)
	assert.Equal(t, "Found 0 posts:\n\n", result.Text())
}

func TestHandler_Call_Errors(t *testing.T) {
	srv := wptest.NewServer()
	defer srv.Close()

	tests := []struct {
		name     string
		handler  func() *Handler
		args     map[string]interface{}
		wantText string
		requests int
	}{
		{
			name:     "credentials missing",
			handler:  func() *Handler { return newTestHandler(t, nil) },
			args:     map[string]interface{}{},
			wantText: "Error: WordPress credentials not found. Please set WORDPRESS_SITE_URL, WORDPRESS_USERNAME, and WORDPRESS_PASSWORD environment variables or provide them as parameters.",
		},
		{
			name:     "perPage out of range",
			handler:  func() *Handler { return newTestHandler(t, srv) },
			args:     map[string]interface{}{"perPage": float64(101)},
			wantText: "Error retrieving posts: Input validation failed: perPage",
		},
		{
			name:     "unknown status",
			handler:  func() *Handler { return newTestHandler(t, srv) },
			args:     map[string]interface{}{"status": []interface{}{"trash"}},
			wantText: "Error retrieving posts: Input validation failed: status.0",
		},
		{
			name:     "remote rejects credentials",
			handler:  func() *Handler { return newTestHandler(t, srv) },
			args:     map[string]interface{}{"password": "wrong"},
			wantText: "Error retrieving posts: You are not currently logged in.",
			requests: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(srv.Requests())
			result := tt.handler().Call(context.Background(), tt.args)
			assert.True(t, result.IsError)
			assert.True(t, strings.HasPrefix(result.Text(), tt.wantText), result.Text())
			assert.Equal(t, tt.requests, len(srv.Requests())-before)
		})
	}
}

func TestHandler_Execute(t *testing.T) {
	srv := wptest.NewServer()
	defer srv.Close()
	seed(srv)

	h := newTestHandler(t, srv)
	vars, err := h.Execute(context.Background(), map[string]interface{}{"status": []interface{}{"draft"}})
	require.NoError(t, err)
	assert.Equal(t, float64(1), vars["count"])
	posts := vars["posts"].([]interface{})
	assert.Equal(t, "Draft one", posts[0].(map[string]interface{})["title"])

	_, err = newTestHandler(t, nil).Execute(context.Background(), map[string]interface{}{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeCredentialsMissing))
}

func TestHandler_Descriptor(t *testing.T) {
	d := newTestHandler(t, nil).Descriptor()
	assert.Equal(t, ToolName, d.Name)
	assert.Equal(t, TaskType, d.TaskType)
	assert.Equal(t, "Get a list of WordPress posts", d.Description)

	props := d.InputSchema["properties"].(map[string]interface{})
	for _, name := range []string{"siteUrl", "username", "password", "page", "perPage", "search", "status", "order", "orderby"} {
		assert.Contains(t, props, name)
	}
	_, hasDefault := props["password"].(map[string]interface{})["default"]
	assert.False(t, hasDefault)
}
