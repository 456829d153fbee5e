package listposts

import (
	"fmt"
	"strings"

	"wordpress-posts/internal/workers/posts/tooling"
)

const excerptLimit = 200

// FormatOutput renders the listing as one block per post.
func FormatOutput(out *Output) string {
	blocks := make([]string, 0, len(out.Posts))
	for _, p := range out.Posts {
		title := p.Title
		if title == "" {
			title = "No title"
		}
		excerpt := tooling.Truncate(p.Excerpt, excerptLimit)
		if excerpt == "" {
			excerpt = "No excerpt"
		}
		blocks = append(blocks, fmt.Sprintf("ID: %d\nTitle: %s\nStatus: %s\nDate: %s\nExcerpt: %s...",
			p.ID, title, p.Status, p.Date, excerpt))
	}
	return fmt.Sprintf("Found %d posts:\n\n%s", out.Count, strings.Join(blocks, "\n\n"))
}
