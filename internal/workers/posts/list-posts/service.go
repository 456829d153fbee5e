package listposts

import (
	"context"

	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/wordpress"
	"wordpress-posts/internal/models"
	"wordpress-posts/internal/workers/posts/tooling"
)

type Service struct {
	config  *Config
	logger  logger.Logger
	clients tooling.ClientFactory
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if deps.Clients == nil {
		deps.Clients = tooling.NewClientFactory(nil)
	}
	return &Service{
		config:  config,
		logger:  deps.Logger,
		clients: deps.Clients,
	}
}

func (s *Service) Execute(ctx context.Context, creds wordpress.Credentials, input *Input) (*Output, error) {
	s.logger.Info("Listing posts", map[string]interface{}{
		"siteUrl": creds.SiteURL,
		"page":    input.Page,
		"perPage": input.PerPage,
		"status":  input.Status,
		"search":  input.Search,
	})

	posts, err := s.clients(creds).ListPosts(ctx, models.ListPostsParams{
		Page:    input.Page,
		PerPage: input.PerPage,
		Search:  input.Search,
		Status:  input.Status,
		Order:   input.Order,
		OrderBy: input.OrderBy,
	})
	if err != nil {
		return nil, errors.NewWordPressAPIError("list posts", err)
	}

	out := &Output{Count: len(posts), Posts: make([]PostSummary, 0, len(posts))}
	for _, p := range posts {
		out.Posts = append(out.Posts, PostSummary{
			ID:      p.ID,
			Title:   p.Title.Rendered,
			Status:  p.Status,
			Date:    p.Date,
			Excerpt: p.Excerpt.Rendered,
			Link:    p.Link,
		})
	}

	s.logger.Debug("Posts listed", map[string]interface{}{"count": out.Count})
	return out, nil
}
