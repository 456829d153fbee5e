package listposts

import (
	"wordpress-posts/internal/common/validation"
	"wordpress-posts/internal/models"
	"wordpress-posts/internal/workers/posts/tooling"
)

func GetInputSchema() validation.JSONSchema {
	return tooling.WithCredentials(validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"page": {
				Type:        "integer",
				Description: "Current page of the collection",
				Minimum:     validation.Float(1),
				Default:     1,
			},
			"perPage": {
				Type:        "integer",
				Description: "Maximum number of items to be returned",
				Minimum:     validation.Float(1),
				Maximum:     validation.Float(100),
				Default:     10,
			},
			"search": {
				Type:        "string",
				Description: "Limit results to those matching a string",
			},
			"status": {
				Type:        "array",
				Description: "Limit result set to posts assigned one or more statuses",
				Items:       &validation.Property{Type: "string", Enum: models.PostStatuses},
				Default:     []string{models.StatusPublish},
			},
			"order": {
				Type:        "string",
				Description: "Order sort attribute ascending or descending",
				Enum:        []string{"asc", "desc"},
				Default:     "desc",
			},
			"orderby": {
				Type:        "string",
				Description: "Sort collection by post attribute",
				Enum:        []string{"author", "date", "id", "modified", "title"},
				Default:     "date",
			},
		},
		AdditionalProperties: true,
	})
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"count": {
				Type:        "integer",
				Description: "Number of posts returned",
			},
			"posts": {
				Type:        "array",
				Description: "id, title, status, date and excerpt of each post",
				Items:       &validation.Property{Type: "object"},
			},
		},
	}
}
