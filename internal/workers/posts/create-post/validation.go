package createpost

import (
	"wordpress-posts/internal/common/validation"
	"wordpress-posts/internal/models"
	"wordpress-posts/internal/workers/posts/tooling"
)

func GetInputSchema() validation.JSONSchema {
	return tooling.WithCredentials(validation.JSONSchema{
		Type:     "object",
		Required: []string{"title", "content"},
		Properties: map[string]validation.Property{
			"title": {
				Type:        "string",
				Description: "The title for the post",
			},
			"content": {
				Type:        "string",
				Description: "The content for the post",
			},
			"status": {
				Type:        "string",
				Description: "A named status for the post",
				Enum:        models.PostStatuses,
				Default:     models.StatusDraft,
			},
			"excerpt": {
				Type:        "string",
				Description: "The excerpt for the post",
			},
			"categories": {
				Type:        "array",
				Description: "The terms assigned to the post in the category taxonomy",
				Items:       &validation.Property{Type: "integer"},
			},
			"tags": {
				Type:        "array",
				Description: "The terms assigned to the post in the post_tag taxonomy",
				Items:       &validation.Property{Type: "integer"},
			},
			"featuredMedia": {
				Type:        "integer",
				Description: "The ID of the featured media for the post",
				Minimum:     validation.Float(0),
			},
			"images": {
				Type:        "array",
				Description: "Array of images to upload and insert into content",
				Items: &validation.Property{
					Type:     "object",
					Required: []string{"filePath", "placeholder"},
					Properties: map[string]validation.Property{
						"filePath": {
							Type:        "string",
							Description: "Absolute file path to the image",
							MinLength:   validation.Int(1),
						},
						"filename": {
							Type:        "string",
							Description: "Optional custom filename (defaults to original filename)",
						},
						"placeholder": {
							Type:        "string",
							Description: "Placeholder in content to replace (e.g., {IMAGE1})",
						},
					},
				},
			},
		},
		AdditionalProperties: true,
	})
}
