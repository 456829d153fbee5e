package createpost

import (
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/media"
	"wordpress-posts/internal/common/observability"
	"wordpress-posts/internal/workers/posts/tooling"
)

type Input struct {
	tooling.CredentialArgs
	Title         string               `json:"title"`
	Content       string               `json:"content"`
	Status        string               `json:"status"`
	Excerpt       string               `json:"excerpt,omitempty"`
	Categories    []int64              `json:"categories,omitempty"`
	Tags          []int64              `json:"tags,omitempty"`
	FeaturedMedia int64                `json:"featuredMedia,omitempty"`
	Images        []media.ImageRequest `json:"images,omitempty"`
}

// ImageResult reports one image of the request.
type ImageResult struct {
	Placeholder string `json:"placeholder"`
	Filename    string `json:"filename"`
	AssetID     int64  `json:"assetId,omitempty"`
	SourceURL   string `json:"sourceUrl,omitempty"`
	Replaced    bool   `json:"replaced"`
	Error       string `json:"error,omitempty"`
}

type Output struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Status         string        `json:"status"`
	Link           string        `json:"link,omitempty"`
	FeaturedMedia  int64         `json:"featuredMedia,omitempty"`
	ImagesUploaded int           `json:"imagesUploaded"`
	ImagesFailed   int           `json:"imagesFailed"`
	Images         []ImageResult `json:"images,omitempty"`
}

type ServiceDependencies struct {
	Logger        logger.Logger
	Clients       tooling.ClientFactory
	Tracer        *observability.TracerProvider
	Observability *observability.Observability
	Publications  tooling.Publications
}
