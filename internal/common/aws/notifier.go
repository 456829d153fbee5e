package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"
)

const EventPostPublished = "post.published"

// PublishedEvent is the SNS message body sent when a post goes live.
type PublishedEvent struct {
	Event     string    `json:"event"`
	EventID   string    `json:"eventId"`
	PostID    int64     `json:"postId"`
	SiteURL   string    `json:"siteUrl"`
	Title     string    `json:"title"`
	Link      string    `json:"link,omitempty"`
	Operation string    `json:"operation"`
	Timestamp time.Time `json:"timestamp"`
}

// PublishNotifier announces published posts on an SNS topic.
type PublishNotifier struct {
	publisher SNSPublisher
	topicARN  string
}

func NewPublishNotifier(publisher SNSPublisher, topicARN string) *PublishNotifier {
	return &PublishNotifier{publisher: publisher, topicARN: topicARN}
}

// NotifyPublished fills Event, EventID and Timestamp when unset and publishes
// the event. It returns the SNS message id.
func (n *PublishNotifier) NotifyPublished(ctx context.Context, ev PublishedEvent) (string, error) {
	if n == nil || n.publisher == nil {
		return "", nil
	}
	if ev.Event == "" {
		ev.Event = EventPostPublished
	}
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification: %w", err)
	}

	out, err := n.publisher.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(n.topicARN),
		Message:  awssdk.String(string(body)),
		Subject:  awssdk.String("Post published"),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event": {
				DataType:    awssdk.String("String"),
				StringValue: awssdk.String(ev.Event),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish notification for post %d: %w", ev.PostID, err)
	}
	return awssdk.ToString(out.MessageId), nil
}
