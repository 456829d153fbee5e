package getpost

import (
	"wordpress-posts/internal/common/cache"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/workers/posts/tooling"
)

type Input struct {
	tooling.CredentialArgs
	PostID int64 `json:"postId"`
}

type Output struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	Author        int64   `json:"author"`
	Content       string  `json:"content"`
	Excerpt       string  `json:"excerpt"`
	Link          string  `json:"link,omitempty"`
	FeaturedMedia int64   `json:"featuredMedia,omitempty"`
	Categories    []int64 `json:"categories,omitempty"`
	Tags          []int64 `json:"tags,omitempty"`
	Cached        bool    `json:"cached"`
}

type ServiceDependencies struct {
	Logger  logger.Logger
	Clients tooling.ClientFactory
	Cache   *cache.PostCache
}
