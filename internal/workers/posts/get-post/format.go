package getpost

import "fmt"

func FormatOutput(out *Output) string {
	title := out.Title
	if title == "" {
		title = "No title"
	}
	content := out.Content
	if content == "" {
		content = "No content"
	}
	return fmt.Sprintf("Post Details:\nID: %d\nTitle: %s\nDate: %s\nStatus: %s\nAuthor: %d\nContent: \n%s\nExcerpt: %s",
		out.ID, title, out.Date, out.Status, out.Author, content, out.Excerpt)
}
