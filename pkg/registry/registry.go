// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"wordpress-posts/internal/common/validation"
)

func LoadCatalog(path string) (*ToolCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cat ToolCatalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return &cat, nil
}

// SaveCatalog writes the catalog as indented JSON, stamping LastUpdated.
func SaveCatalog(path string, cat *ToolCatalog) error {
	cat.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// SchemaMap converts a typed schema into the generic form stored in the catalog.
func SchemaMap(schema interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ToolCatalog) Find(name string) (ToolDescriptor, bool) {
	for _, t := range c.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return ToolDescriptor{}, false
}

func (c *ToolCatalog) FindByTaskType(taskType string) (ToolDescriptor, bool) {
	for _, t := range c.Tools {
		if t.TaskType == taskType {
			return t, true
		}
	}
	return ToolDescriptor{}, false
}

// SortTools orders tools by name so exports are stable.
func (c *ToolCatalog) SortTools() {
	sort.Slice(c.Tools, func(i, j int) bool { return c.Tools[i].Name < c.Tools[j].Name })
}

// Validate returns every problem found; an empty slice means the catalog is usable.
func (c *ToolCatalog) Validate() []string {
	var problems []string
	if c.Version == "" {
		problems = append(problems, "catalog version is required")
	}

	names := map[string]bool{}
	taskTypes := map[string]bool{}
	for i, t := range c.Tools {
		label := t.Name
		if label == "" {
			label = fmt.Sprintf("tools[%d]", i)
			problems = append(problems, fmt.Sprintf("%s: name is required", label))
		}
		if names[t.Name] {
			problems = append(problems, fmt.Sprintf("%s: duplicate tool name", label))
		}
		names[t.Name] = true

		if err := validation.ValidateTaskType(t.TaskType); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", label, err))
		}
		if taskTypes[t.TaskType] {
			problems = append(problems, fmt.Sprintf("%s: duplicate task type %s", label, t.TaskType))
		}
		taskTypes[t.TaskType] = true

		if t.Description == "" {
			problems = append(problems, fmt.Sprintf("%s: description is required", label))
		}
		if typ, _ := t.InputSchema["type"].(string); typ != "object" {
			problems = append(problems, fmt.Sprintf("%s: inputSchema must be an object schema", label))
		}
		if t.Timeout != "" {
			if _, err := time.ParseDuration(t.Timeout); err != nil {
				problems = append(problems, fmt.Sprintf("%s: invalid timeout %q", label, t.Timeout))
			}
		}
	}
	return problems
}
