package updatepost

import (
	"context"

	"wordpress-posts/internal/common/cache"
	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/publications"
	"wordpress-posts/internal/common/wordpress"
	"wordpress-posts/internal/workers/posts/tooling"
)

type Service struct {
	config  *Config
	logger  logger.Logger
	clients tooling.ClientFactory
	cache   *cache.PostCache
	pubs    tooling.Publications
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
		pubs:    deps.Publications,
	}
}

// Execute sends only the supplied fields. An update with nothing to change
// is rejected before any request is made.
func (s *Service) Execute(ctx context.Context, creds wordpress.Credentials, input *Input) (*Output, error) {
	write := input.PostWrite()
	if write.IsEmpty() {
		return nil, errors.NewNoUpdateFieldsError()
	}

	fields := write.Fields()
	s.logger.Info("Updating post", map[string]interface{}{
		"siteUrl": creds.SiteURL,
		"postId":  input.PostID,
		"fields":  fields,
	})

	post, err := s.clients(creds).UpdatePost(ctx, input.PostID, write)
	if err != nil {
		return nil, errors.NewWordPressAPIError("update post", err)
	}

	if err := s.cache.Invalidate(ctx, creds.SiteURL, input.PostID); err != nil {
		s.logger.Warn("Failed to invalidate cached post", map[string]interface{}{
			"postId": input.PostID,
			"error":  err.Error(),
		})
	}

	s.pubs.AfterWrite(ctx, s.logger, tooling.WriteSummary{
		SiteURL:   creds.SiteURL,
		Operation: publications.OperationUpdate,
		Post:      post,
	})

	return &Output{
		ID:            post.ID,
		Title:         post.Title.Rendered,
		Status:        post.Status,
		Link:          post.Link,
		UpdatedFields: fields,
	}, nil
}
