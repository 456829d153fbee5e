// pkg/registry/schema.go
package registry

// ToolCatalog lists every tool the service exposes, on both the MCP and the
// job-worker surface.
type ToolCatalog struct {
	Name        string           `json:"name"`
	Version     string           `json:"version"`
	LastUpdated string           `json:"lastUpdated"`
	Tools       []ToolDescriptor `json:"tools"`
}

type ToolDescriptor struct {
	Name        string                 `json:"name"`
	DisplayName string                 `json:"displayName"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Version     string                 `json:"version"`
	TaskType    string                 `json:"taskType"`
	InputSchema map[string]interface{} `json:"inputSchema"`
	ErrorCodes  []string               `json:"errorCodes"`
	Timeout     string                 `json:"timeout"`
	Retries     int                    `json:"retries"`
	Tags        []string               `json:"tags,omitempty"`
}
