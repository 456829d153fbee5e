package models

import (
	"net/url"
	"strconv"
	"strings"
)

// Post statuses accepted by the posts endpoint.
const (
	StatusPublish = "publish"
	StatusFuture  = "future"
	StatusDraft   = "draft"
	StatusPending = "pending"
	StatusPrivate = "private"
)

var PostStatuses = []string{StatusPublish, StatusFuture, StatusDraft, StatusPending, StatusPrivate}

// Rendered is the {rendered, protected} wrapper WordPress uses for title,
// content and excerpt.
type Rendered struct {
	Rendered  string `json:"rendered"`
	Protected bool   `json:"protected,omitempty"`
}

// Post is the subset of the wp/v2 post object this service reads.
type Post struct {
	ID            int64    `json:"id"`
	Date          string   `json:"date,omitempty"`
	DateGMT       string   `json:"date_gmt,omitempty"`
	Modified      string   `json:"modified,omitempty"`
	ModifiedGMT   string   `json:"modified_gmt,omitempty"`
	Slug          string   `json:"slug,omitempty"`
	Status        string   `json:"status,omitempty"`
	Type          string   `json:"type,omitempty"`
	Link          string   `json:"link,omitempty"`
	Title         Rendered `json:"title"`
	Content       Rendered `json:"content"`
	Excerpt       Rendered `json:"excerpt"`
	Author        int64    `json:"author,omitempty"`
	FeaturedMedia int64    `json:"featured_media,omitempty"`
	CommentStatus string   `json:"comment_status,omitempty"`
	PingStatus    string   `json:"ping_status,omitempty"`
	Sticky        bool     `json:"sticky,omitempty"`
	Template      string   `json:"template,omitempty"`
	Format        string   `json:"format,omitempty"`
	Categories    []int64  `json:"categories,omitempty"`
	Tags          []int64  `json:"tags,omitempty"`
}

// PostWrite is the body of a create or partial update. Nil fields are left
// out of the request entirely.
type PostWrite struct {
	Title         *string  `json:"title,omitempty"`
	Content       *string  `json:"content,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Excerpt       *string  `json:"excerpt,omitempty"`
	Categories    *[]int64 `json:"categories,omitempty"`
	Tags          *[]int64 `json:"tags,omitempty"`
	FeaturedMedia *int64   `json:"featured_media,omitempty"`
}

// Fields lists the JSON names of the fields that will be sent.
func (w *PostWrite) Fields() []string {
	var fields []string
	if w.Title != nil {
		fields = append(fields, "title")
	}
	if w.Content != nil {
		fields = append(fields, "content")
	}
	if w.Status != nil {
		fields = append(fields, "status")
	}
	if w.Excerpt != nil {
		fields = append(fields, "excerpt")
	}
	if w.Categories != nil {
		fields = append(fields, "categories")
	}
	if w.Tags != nil {
		fields = append(fields, "tags")
	}
	if w.FeaturedMedia != nil {
		fields = append(fields, "featured_media")
	}
	return fields
}

func (w *PostWrite) IsEmpty() bool {
	return len(w.Fields()) == 0
}

// ListPostsParams are the query parameters of GET /posts.
type ListPostsParams struct {
	Page    int
	PerPage int
	Search  string
	Status  []string
	Order   string
	OrderBy string
}

// Values encodes the params the way the posts collection expects them;
// statuses are sent comma-joined.
func (p ListPostsParams) Values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if len(p.Status) > 0 {
		q.Set("status", strings.Join(p.Status, ","))
	}
	if p.Order != "" {
		q.Set("order", p.Order)
	}
	if p.OrderBy != "" {
		q.Set("orderby", p.OrderBy)
	}
	return q
}

// String and Int64 return pointers for building a PostWrite.
func String(v string) *string { return &v }
func Int64(v int64) *int64    { return &v }
func Int64s(v []int64) *[]int64 {
	return &v
}
