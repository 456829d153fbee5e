package getpost

import (
	"wordpress-posts/internal/common/validation"
	"wordpress-posts/internal/workers/posts/tooling"
)

func GetInputSchema() validation.JSONSchema {
	return tooling.WithCredentials(validation.JSONSchema{
		Type:     "object",
		Required: []string{"postId"},
		Properties: map[string]validation.Property{
			"postId": {
				Type:        "integer",
				Description: "ID of the post to retrieve",
				Minimum:     validation.Float(1),
			},
		},
		AdditionalProperties: true,
	})
}
