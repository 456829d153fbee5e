package models

import "encoding/json"

// Media is the subset of the wp/v2 attachment object this service reads.
type Media struct {
	ID        int64    `json:"id"`
	Date      string   `json:"date,omitempty"`
	Slug      string   `json:"slug,omitempty"`
	Status    string   `json:"status,omitempty"`
	Link      string   `json:"link,omitempty"`
	Title     Rendered `json:"title"`
	AltText   string   `json:"alt_text,omitempty"`
	MediaType string   `json:"media_type,omitempty"`
	MimeType  string   `json:"mime_type,omitempty"`
	SourceURL string   `json:"source_url"`
	// WordPress sends media_details as an object, or as [] when it has none.
	MediaDetails json.RawMessage `json:"media_details,omitempty"`
}

// Details decodes media_details into a generic map. An empty or array-shaped
// value yields an empty map.
func (m *Media) Details() map[string]interface{} {
	details := map[string]interface{}{}
	if len(m.MediaDetails) == 0 {
		return details
	}
	_ = json.Unmarshal(m.MediaDetails, &details)
	return details
}
