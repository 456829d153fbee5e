package updatepost

import (
	"wordpress-posts/internal/common/validation"
	"wordpress-posts/internal/models"
	"wordpress-posts/internal/workers/posts/tooling"
)

func GetInputSchema() validation.JSONSchema {
	return tooling.WithCredentials(validation.JSONSchema{
		Type:     "object",
		Required: []string{"postId"},
		Properties: map[string]validation.Property{
			"postId": {
				Type:        "integer",
				Description: "ID of the post to update",
				Minimum:     validation.Float(1),
			},
			"title": {
				Type:        "string",
				Description: "New title for the post",
			},
			"content": {
				Type:        "string",
				Description: "New content for the post",
			},
			"status": {
				Type:        "string",
				Description: "New status for the post",
				Enum:        models.PostStatuses,
			},
			"excerpt": {
				Type:        "string",
				Description: "New excerpt for the post",
			},
			"categories": {
				Type:        "array",
				Description: "New categories for the post",
				Items:       &validation.Property{Type: "integer"},
			},
			"tags": {
				Type:        "array",
				Description: "New tags for the post",
				Items:       &validation.Property{Type: "integer"},
			},
			"featuredMedia": {
				Type:        "integer",
				Description: "New featured media ID for the post",
				Minimum:     validation.Float(0),
			},
		},
		AdditionalProperties: true,
	})
}
