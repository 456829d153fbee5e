package updatepost

import (
	"wordpress-posts/internal/common/cache"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/models"
	"wordpress-posts/internal/workers/posts/tooling"
)

// Input uses pointers so that an explicitly supplied empty value is still
// sent, while an absent one is left untouched on the remote post.
type Input struct {
	tooling.CredentialArgs
	PostID        int64    `json:"postId"`
	Title         *string  `json:"title,omitempty"`
	Content       *string  `json:"content,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Excerpt       *string  `json:"excerpt,omitempty"`
	Categories    *[]int64 `json:"categories,omitempty"`
	Tags          *[]int64 `json:"tags,omitempty"`
	FeaturedMedia *int64   `json:"featuredMedia,omitempty"`
}

func (in *Input) PostWrite() *models.PostWrite {
	return &models.PostWrite{
		Title:         in.Title,
		Content:       in.Content,
		Status:        in.Status,
		Excerpt:       in.Excerpt,
		Categories:    in.Categories,
		Tags:          in.Tags,
		FeaturedMedia: in.FeaturedMedia,
	}
}

type Output struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Status        string   `json:"status"`
	Link          string   `json:"link,omitempty"`
	UpdatedFields []string `json:"updatedFields"`
}

type ServiceDependencies struct {
	Logger       logger.Logger
	Clients      tooling.ClientFactory
	Cache        *cache.PostCache
	Publications tooling.Publications
}
