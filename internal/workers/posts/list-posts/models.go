package listposts

import (
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/workers/posts/tooling"
)

type Input struct {
	tooling.CredentialArgs
	Page    int      `json:"page"`
	PerPage int      `json:"perPage"`
	Search  string   `json:"search,omitempty"`
	Status  []string `json:"status"`
	Order   string   `json:"order"`
	OrderBy string   `json:"orderby"`
}

type PostSummary struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Status  string `json:"status"`
	Date    string `json:"date"`
	Excerpt string `json:"excerpt"`
	Link    string `json:"link,omitempty"`
}

type Output struct {
	Count int           `json:"count"`
	Posts []PostSummary `json:"posts"`
}

type ServiceDependencies struct {
	Logger  logger.Logger
	Clients tooling.ClientFactory
}
