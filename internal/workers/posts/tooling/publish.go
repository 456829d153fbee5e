package tooling

import (
	"context"

	"wordpress-posts/internal/common/aws"
	"wordpress-posts/internal/common/logger"
	"wordpress-posts/internal/common/publications"
	"wordpress-posts/internal/models"
)

// Notifier is satisfied by *aws.PublishNotifier.
type Notifier interface {
	NotifyPublished(ctx context.Context, ev aws.PublishedEvent) (string, error)
}

// Publications holds the optional side effects of a successful post write.
// Both fields may be nil.
type Publications struct {
	Ledger   publications.Recorder
	Notifier Notifier
}

// WriteSummary describes one successful create or update.
type WriteSummary struct {
	SiteURL      string
	Operation    string
	Post         *models.Post
	ImagesTotal  int
	ImagesFailed int
}

// AfterWrite records the write in the ledger and announces posts that ended
// up published. Failures are logged and never returned.
func (p Publications) AfterWrite(ctx context.Context, log logger.Logger, w WriteSummary) {
	if w.Post == nil {
		return
	}
	fields := map[string]interface{}{
		"postId":    w.Post.ID,
		"operation": w.Operation,
	}

	if p.Ledger != nil {
		err := p.Ledger.Record(ctx, publications.Record{
			PostID:        w.Post.ID,
			SiteURL:       w.SiteURL,
			Operation:     w.Operation,
			Title:         w.Post.Title.Rendered,
			Status:        w.Post.Status,
			FeaturedMedia: w.Post.FeaturedMedia,
			ImagesTotal:   w.ImagesTotal,
			ImagesFailed:  w.ImagesFailed,
		})
		if err != nil {
			log.Warn("Failed to record publication", withError(fields, err))
		}
	}

	if p.Notifier != nil && w.Post.Status == models.StatusPublish {
		msgID, err := p.Notifier.NotifyPublished(ctx, aws.PublishedEvent{
			PostID:    w.Post.ID,
			SiteURL:   w.SiteURL,
			Title:     w.Post.Title.Rendered,
			Link:      w.Post.Link,
			Operation: w.Operation,
		})
		if err != nil {
			log.Warn("Failed to send publish notification", withError(fields, err))
			return
		}
		if msgID != "" {
			log.Info("Publish notification sent", map[string]interface{}{
				"postId":    w.Post.ID,
				"messageId": msgID,
			})
		}
	}
}

func withError(fields map[string]interface{}, err error) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["error"] = err.Error()
	return out
}
