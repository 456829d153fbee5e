package getpost

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordpress-posts/internal/common/cache"
	"wordpress-posts/internal/common/config"
	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/wordpress/wptest"
	"wordpress-posts/internal/models"
)

func newTestHandler(t *testing.T, srv *wptest.Server, postCache *cache.PostCache) *Handler {
	t.Helper()
	creds := srv.Credentials()
	h, err := NewHandler(HandlerOptions{
		AppConfig: &config.Config{WordPress: config.WordPressConfig{
			SiteURL: creds.SiteURL, Username: creds.Username, Password: creds.Password,
		}},
		Logger: logger.NewTestLogger(t),
		Cache:  postCache,
	})
	require.NoError(t, err)
	return h
}

func samplePost() models.Post {
	return models.Post{
		Title:   models.Rendered{Rendered: "Hello world"},
		Status:  models.StatusPublish,
		Date:    "2024-03-01T09:30:00",
		Author:  7,
		Content: models.Rendered{Rendered: "<p>Body text</p>"},
		Excerpt: models.Rendered{Rendered: "<p>Short <strong>summary</strong></p>\n"},
	}
}

func TestHandler_Call(t *testing.T) {
	srv := wptest.NewServer()
	defer srv.Close()
	id := srv.AddPost(samplePost())

	result := newTestHandler(t, srv, nil).Call(context.Background(), map[string]interface{}{"postId": float64(id)})
	require.False(t, result.IsError, result.Text())

	want := "Post Details:\nID: 101\nTitle: Hello world\nDate: 2024-03-01T09:30:00\nStatus: publish\nAuthor: 7\n" +
		"Content: \n<p>Body text</p>\nExcerpt: Short summary\n"
	assert.Equal(t, want, result.Text())
	assert.Equal(t, false, result.StructuredContent["cached"])
}

func TestHandler_Call_Fallbacks(t *testing.T) {
	srv := wptest.NewServer()
	defer srv.Close()
	id := srv.AddPost(models.Post{Status: models.StatusDraft, Date: "2024-03-01T09:30:00"})

	text := newTestHandler(t, srv, nil).Call(context.Background(), map[string]interface{}{"postId": float64(id)}).Text()
	assert.Contains(t, text, "Title: No title\n")
	assert.Contains(t, text, "Content: \nNo content\n")
}

func TestHandler_Call_Errors(t *testing.T) {
	srv := wptest.NewServer()
	defer srv.Close()
	h := newTestHandler(t, srv, nil)

	tests := []struct {
		name     string
		args     map[string]interface{}
		wantText string
	}{
		{name: "missing post", args: map[string]interface{}{"postId": float64(999)}, wantText: "Error retrieving post: Invalid post ID."},
		{name: "missing postId", args: map[string]interface{}{}, wantText: "Error retrieving post: Input validation failed: postId: postId is required"},
		{name: "fractional postId", args: map[string]interface{}{"postId": 1.5}, wantText: "Error retrieving post: Input validation failed: postId: Invalid type. Expected: integer, given: number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := h.Call(context.Background(), tt.args)
			assert.True(t, result.IsError)
			assert.Equal(t, tt.wantText, result.Text())
		})
	}
}

func TestHandler_Call_ReadThroughCache(t *testing.T) {
	srv := wptest.NewServer()
	defer srv.Close()
	id := srv.AddPost(samplePost())

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	postCache := cache.NewPostCache(client, time.Minute, logger.NewNoOpLogger())

	h := newTestHandler(t, srv, postCache)
	args := map[string]interface{}{"postId": float64(id)}

	first := h.Call(context.Background(), args)
	require.False(t, first.IsError)
	assert.True(t, mr.Exists(cache.Key(srv.URL, id)))

	second := h.Call(context.Background(), args)
	require.False(t, second.IsError)
	assert.Equal(t, true, second.StructuredContent["cached"])
	assert.Equal(t, first.Text(), second.Text())

	gets := 0
	for _, r := range srv.Requests() {
		if r.Method == "GET" {
			gets++
		}
	}
	assert.Equal(t, 1, gets)

	mr.FastForward(2 * time.Minute)
	third := h.Call(context.Background(), args)
	assert.Equal(t, false, third.StructuredContent["cached"])
}

func TestHandler_Execute(t *testing.T) {
	srv := wptest.NewServer()
	defer srv.Close()
	id := srv.AddPost(samplePost())
	h := newTestHandler(t, srv, nil)

	vars, err := h.Execute(context.Background(), map[string]interface{}{"postId": float64(id)})
	require.NoError(t, err)
	assert.Equal(t, float64(id), vars["id"])
	assert.Equal(t, "Short summary\n", vars["excerpt"])

	_, err = h.Execute(context.Background(), map[string]interface{}{"postId": float64(12345)})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeWordPressAPI))
}
