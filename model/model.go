package model

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ToolDefinition declaratively exposes a callable capability to the model.
// Parameters is a JSON Schema object (draft agnostic, minimal subset expected).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
}

// ToolCall represents a function selection surfaced by a model provider.
// Unified across vendors so downstream logic does not need per-provider branching.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"` // JSON string of arguments
}

// Request captures the normalized model input for one submission.
// Routing and extraction calls run at low temperature for determinism.
type Request struct {
	Instructions string           `json:"instructions"` // System instructions
	UserContent  string           `json:"user_content"` // User-visible content
	Tools        []ToolDefinition `json:"tools,omitempty"`
	Temperature  float64          `json:"temperature,omitempty"`
	MaxTokens    int64            `json:"max_tokens,omitempty"`
}

// Usage captures token usage statistics for a response.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the completed output of one model submission. At most one of
// ToolCall and Refusal is populated; Content may accompany either. An explicit
// refusal is distinguished from empty content so callers can branch on it.
type Response struct {
	Content  string    `json:"content,omitempty"`
	ToolCall *ToolCall `json:"tool_call,omitempty"`
	Refusal  string    `json:"refusal,omitempty"`
	Usage    *Usage    `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "mock", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required to drive routing and extraction.
// Implementations must honor ctx cancellation; timeouts are the caller's
// responsibility.
type Model interface {
	Submit(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Canned responses are keyed by an exact or substring match on UserContent.
type MockModel struct {
	info      Info
	responses map[string]*Response
	err       error

	// LastRequest records the most recent submission for assertions.
	LastRequest *Request
}

// NewMockModel constructs a MockModel with tool support enabled.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock", SupportsTools: true},
		responses: make(map[string]*Response),
	}
}

// AddResponse registers a deterministic canned text completion for an input.
func (m *MockModel) AddResponse(input, content string) {
	m.responses[input] = &Response{Content: content}
}

// AddToolCall registers a deterministic canned tool call for an input.
func (m *MockModel) AddToolCall(input, name, arguments string) {
	m.responses[input] = &Response{ToolCall: &ToolCall{ID: "fc_" + name, Name: name, Arguments: json.RawMessage(arguments)}}
}

// AddRefusal registers an explicit refusal for an input.
func (m *MockModel) AddRefusal(input, refusal string) {
	m.responses[input] = &Response{Refusal: refusal}
}

// Fail makes every subsequent submission return err.
func (m *MockModel) Fail(err error) { m.err = err }

// Submit implements Model; returns the canned response whose key matches the
// user content exactly, or the first registered key contained in the content.
func (m *MockModel) Submit(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.LastRequest = &req
	if m.err != nil {
		return nil, m.err
	}
	if resp, ok := m.responses[req.UserContent]; ok {
		return resp, nil
	}
	for key, resp := range m.responses {
		if key != "" && strings.Contains(req.UserContent, key) {
			return resp, nil
		}
	}
	return &Response{Content: fmt.Sprintf("Mock response to: %s", req.UserContent)}, nil
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
