package updatepost

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordpress-posts/internal/common/aws"
	"wordpress-posts/internal/common/cache"
	"wordpress-posts/internal/common/config"
	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/publications"
	"wordpress-posts/internal/common/wordpress/wptest"
	"wordpress-posts/internal/models"
	"wordpress-posts/internal/workers/posts/tooling"
)

type recordedWrites struct {
	records []publications.Record
	events  []aws.PublishedEvent
}

func (r *recordedWrites) Record(_ context.Context, rec publications.Record) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *recordedWrites) NotifyPublished(_ context.Context, ev aws.PublishedEvent) (string, error) {
	r.events = append(r.events, ev)
	return "msg", nil
}

type fixture struct {
	srv     *wptest.Server
	handler *Handler
	writes  *recordedWrites
	redis   *miniredis.Miniredis
	postID  int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := wptest.NewServer()
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	writes := &recordedWrites{}
	creds := srv.Credentials()
	h, err := NewHandler(HandlerOptions{
		AppConfig: &config.Config{WordPress: config.WordPressConfig{
			SiteURL: creds.SiteURL, Username: creds.Username, Password: creds.Password,
		}},
		Logger:       logger.NewTestLogger(t),
		Cache:        cache.NewPostCache(client, time.Minute, logger.NewNoOpLogger()),
		Publications: tooling.Publications{Ledger: writes, Notifier: writes},
	})
	require.NoError(t, err)

	id := srv.AddPost(models.Post{
		Title:   models.Rendered{Rendered: "Original"},
		Content: models.Rendered{Rendered: "old body"},
		Excerpt: models.Rendered{Rendered: "old excerpt"},
		Status:  models.StatusDraft,
		Tags:    []int64{1, 2},
	})

	return &fixture{srv: srv, handler: h, writes: writes, redis: mr, postID: id}
}

func (f *fixture) lastUpdateBody(t *testing.T) map[string]interface{} {
	t.Helper()
	req, ok := f.srv.LastRequest("POST", "/wp-json/wp/v2/posts/101")
	require.True(t, ok)
	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(req.Body, &body))
	return body
}

func TestHandler_Call_PartialUpdate(t *testing.T) {
	f := newFixture(t)

	result := f.handler.Call(context.Background(), map[string]interface{}{
		"postId": float64(f.postID),
		"title":  "Renamed",
	})
	require.False(t, result.IsError, result.Text())
	assert.Equal(t, "Successfully updated post:\nID: 101\nTitle: Renamed\nStatus: draft", result.Text())

	assert.Equal(t, map[string]interface{}{"title": "Renamed"}, f.lastUpdateBody(t))

	post, _ := f.srv.Post(f.postID)
	assert.Equal(t, "old body", post.Content.Rendered)
	assert.Equal(t, []int64{1, 2}, post.Tags)
	assert.Equal(t, []interface{}{"title"}, result.StructuredContent["updatedFields"])
}

func TestHandler_Call_ExplicitEmptyValuesAreSent(t *testing.T) {
	f := newFixture(t)

	result := f.handler.Call(context.Background(), map[string]interface{}{
		"postId":        float64(f.postID),
		"excerpt":       "",
		"tags":          []interface{}{},
		"featuredMedia": float64(0),
	})
	require.False(t, result.IsError, result.Text())

	body := f.lastUpdateBody(t)
	assert.Equal(t, "", body["excerpt"])
	assert.Equal(t, []interface{}{}, body["tags"])
	assert.Equal(t, float64(0), body["featured_media"])
	assert.NotContains(t, body, "title")

	post, _ := f.srv.Post(f.postID)
	assert.Empty(t, post.Excerpt.Rendered)
	assert.Empty(t, post.Tags)
}

func TestHandler_Call_NoFieldsMakesNoRequest(t *testing.T) {
	f := newFixture(t)

	result := f.handler.Call(context.Background(), map[string]interface{}{"postId": float64(f.postID)})
	assert.True(t, result.IsError)
	assert.Equal(t, "No update data provided. Please specify at least one field to update.", result.Text())
	assert.Empty(t, f.srv.Requests())
	assert.Empty(t, f.writes.records)
}

func TestHandler_Call_InvalidatesCache(t *testing.T) {
	f := newFixture(t)
	key := cache.Key(f.srv.URL, f.postID)
	require.NoError(t, f.redis.Set(key, `{"id":101}`))

	result := f.handler.Call(context.Background(), map[string]interface{}{
		"postId":  float64(f.postID),
		"content": "new body",
	})
	require.False(t, result.IsError, result.Text())
	assert.False(t, f.redis.Exists(key))
}

func TestHandler_Call_PublishRecordsAndAnnounces(t *testing.T) {
	f := newFixture(t)

	result := f.handler.Call(context.Background(), map[string]interface{}{
		"postId": float64(f.postID),
		"status": "publish",
	})
	require.False(t, result.IsError, result.Text())

	require.Len(t, f.writes.records, 1)
	assert.Equal(t, publications.OperationUpdate, f.writes.records[0].Operation)
	assert.Equal(t, models.StatusPublish, f.writes.records[0].Status)
	require.Len(t, f.writes.events, 1)
	assert.Equal(t, "Original", f.writes.events[0].Title)
}

func TestHandler_Call_Errors(t *testing.T) {
	tests := []struct {
		name string
		args func(f *fixture) map[string]interface{}
		want string
	}{
		{
			name: "unknown post",
			args: func(*fixture) map[string]interface{} {
				return map[string]interface{}{"postId": float64(999), "title": "x"}
			},
			want: "Error updating post: Invalid post ID.",
		},
		{
			name: "bad status",
			args: func(f *fixture) map[string]interface{} {
				return map[string]interface{}{"postId": float64(f.postID), "status": "gone"}
			},
			want: "Error updating post: Input validation failed: status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			result := f.handler.Call(context.Background(), tt.args(f))
			assert.True(t, result.IsError)
			assert.True(t, strings.HasPrefix(result.Text(), tt.want), result.Text())
			assert.Empty(t, f.writes.records)
		})
	}
}

func TestHandler_Execute(t *testing.T) {
	f := newFixture(t)

	vars, err := f.handler.Execute(context.Background(), map[string]interface{}{
		"postId": float64(f.postID),
		"title":  "Job title",
	})
	require.NoError(t, err)
	assert.Equal(t, "Job title", vars["title"])

	_, err = f.handler.Execute(context.Background(), map[string]interface{}{"postId": float64(f.postID)})
	assert.True(t, errors.HasCode(err, errors.ErrCodeNoUpdateFields))
}
