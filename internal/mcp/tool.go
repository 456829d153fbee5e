package mcp

import (
	"context"

	"wordpress-posts/pkg/registry"
)

// Tool is one callable operation. Call never fails at the protocol level:
// operation errors are reported inside the result with IsError set.
type Tool interface {
	Descriptor() registry.ToolDescriptor
	Call(ctx context.Context, args map[string]interface{}) *ToolCallResult
}

// ToolSchema is an entry of the tools/list result.
type ToolSchema struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolCallParams are the parameters for calling a tool
type ToolCallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
}

// ToolCallResult is the result of tools/call.
type ToolCallResult struct {
	Content           []ContentBlock         `json:"content"`
	StructuredContent map[string]interface{} `json:"structuredContent,omitempty"`
	IsError           bool                   `json:"isError,omitempty"`
}

// ContentBlock represents a piece of content in the result
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// TextResult builds a successful single-text result.
func TextResult(text string, structured map[string]interface{}) *ToolCallResult {
	return &ToolCallResult{
		Content:           []ContentBlock{{Type: "text", Text: text}},
		StructuredContent: structured,
	}
}

// ErrorResult builds a failed single-text result.
func ErrorResult(text string) *ToolCallResult {
	return &ToolCallResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
		IsError: true,
	}
}

// Text concatenates the text blocks of a result.
func (r *ToolCallResult) Text() string {
	var out string
	for i, c := range r.Content {
		if i > 0 {
			out += "\n"
		}
		out += c.Text
	}
	return out
}
