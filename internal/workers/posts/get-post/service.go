package getpost

import (
	"context"

	"github.com/microcosm-cc/bluemonday"

	"wordpress-posts/internal/common/cache"
	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/wordpress"
	"wordpress-posts/internal/models"
	"wordpress-posts/internal/workers/posts/tooling"
)

var stripTags = bluemonday.StrictPolicy()

type Service struct {
	config  *Config
	logger  logger.Logger
	clients tooling.ClientFactory
	cache   *cache.PostCache
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if deps.Clients == nil {
		deps.Clients = tooling.NewClientFactory(nil)
	}
	return &Service{
		config:  config,
		logger:  deps.Logger,
		clients: deps.Clients,
		cache:   deps.Cache,
	}
}

func (s *Service) Execute(ctx context.Context, creds wordpress.Credentials, input *Input) (*Output, error) {
	if post, ok := s.cache.Get(ctx, creds.SiteURL, input.PostID); ok {
		s.logger.Debug("Post served from cache", map[string]interface{}{"postId": input.PostID})
		return toOutput(post, true), nil
	}

	s.logger.Info("Fetching post", map[string]interface{}{
		"siteUrl": creds.SiteURL,
		"postId":  input.PostID,
	})

	post, err := s.clients(creds).GetPost(ctx, input.PostID)
	if err != nil {
		return nil, errors.NewWordPressAPIError("get post", err)
	}

	if err := s.cache.Set(ctx, creds.SiteURL, post); err != nil {
		s.logger.Warn("Failed to cache post", map[string]interface{}{
			"postId": post.ID,
			"error":  err.Error(),
		})
	}

	return toOutput(post, false), nil
}

func toOutput(p *models.Post, cached bool) *Output {
	return &Output{
		ID:            p.ID,
		Title:         p.Title.Rendered,
		Date:          p.Date,
		Status:        p.Status,
		Author:        p.Author,
		Content:       p.Content.Rendered,
		Excerpt:       stripTags.Sanitize(p.Excerpt.Rendered),
		Link:          p.Link,
		FeaturedMedia: p.FeaturedMedia,
		Categories:    p.Categories,
		Tags:          p.Tags,
		Cached:        cached,
	}
}
