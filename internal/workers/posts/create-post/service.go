package createpost

import (
	"context"

	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/media"
	"wordpress-posts/internal/common/observability"
	"wordpress-posts/internal/common/publications"
	"wordpress-posts/internal/common/wordpress"
	"wordpress-posts/internal/models"
	"wordpress-posts/internal/workers/posts/tooling"
)

type Service struct {
	config  *Config
	logger  logger.Logger
	clients tooling.ClientFactory
	tracer  *observability.TracerProvider
	obs     *observability.Observability
	pubs    tooling.Publications
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if deps.Clients == nil {
		deps.Clients = tooling.NewClientFactory(nil)
	}
	if deps.Tracer == nil {
		deps.Tracer = observability.NoopTracer()
	}
	return &Service{
		config:  config,
		logger:  deps.Logger,
		clients: deps.Clients,
		tracer:  deps.Tracer,
		obs:     deps.Observability,
		pubs:    deps.Publications,
	}
}

// Execute runs the image pipeline over the content and creates the post with
// the rewritten body. Image failures end up inline in the content; only the
// post creation itself can fail the call.
func (s *Service) Execute(ctx context.Context, creds wordpress.Credentials, input *Input) (*Output, error) {
	client := s.clients(creds)

	s.logger.Info("Creating post", map[string]interface{}{
		"siteUrl": creds.SiteURL,
		"status":  input.Status,
		"images":  len(input.Images),
	})

	pipeline := media.NewPipeline(
		media.NewUploader(client, s.tracer),
		media.NewResolver(client, s.tracer),
		media.MultiSink{media.NewLoggerSink(s.logger), media.MetricsSink{}},
	)
	result := pipeline.Run(ctx, input.Content, input.Images, input.FeaturedMedia)

	s.obs.RecordImages(ctx, "uploaded", result.Succeeded())
	s.obs.RecordImages(ctx, "failed", result.Failed())

	write := &models.PostWrite{
		Title:   models.String(input.Title),
		Content: models.String(result.FinalContent),
		Status:  models.String(input.Status),
	}
	if input.Excerpt != "" {
		write.Excerpt = models.String(input.Excerpt)
	}
	if input.Categories != nil {
		write.Categories = models.Int64s(input.Categories)
	}
	if input.Tags != nil {
		write.Tags = models.Int64s(input.Tags)
	}
	if result.FeaturedAssetID != 0 {
		write.FeaturedMedia = models.Int64(result.FeaturedAssetID)
	}

	post, err := client.CreatePost(ctx, write)
	if err != nil {
		return nil, errors.NewWordPressAPIError("create post", err)
	}

	s.logger.Info("Post created", map[string]interface{}{
		"postId":         post.ID,
		"status":         post.Status,
		"featuredMedia":  post.FeaturedMedia,
		"imagesUploaded": result.Succeeded(),
		"imagesFailed":   result.Failed(),
	})

	s.pubs.AfterWrite(ctx, s.logger, tooling.WriteSummary{
		SiteURL:      creds.SiteURL,
		Operation:    publications.OperationCreate,
		Post:         post,
		ImagesTotal:  len(result.Outcomes),
		ImagesFailed: result.Failed(),
	})

	return toOutput(post, result), nil
}

func toOutput(post *models.Post, result *media.PipelineResult) *Output {
	out := &Output{
		ID:             post.ID,
		Title:          post.Title.Rendered,
		Status:         post.Status,
		Link:           post.Link,
		FeaturedMedia:  result.FeaturedAssetID,
		ImagesUploaded: result.Succeeded(),
		ImagesFailed:   result.Failed(),
	}
	for _, o := range result.Outcomes {
		img := ImageResult{
			Placeholder: o.Placeholder,
			Filename:    o.Filename,
			AssetID:     o.AssetID,
			SourceURL:   o.SourceURL,
			Replaced:    o.Replaced,
		}
		if o.Err != nil {
			img.Error = errors.Summarize(o.Err)
		}
		out.Images = append(out.Images, img)
	}
	return out
}
