package router

import (
	"context"
	"fmt"

	"github.com/leverageai/dealdesk/model"
	"gopkg.in/yaml.v3"
)

// Registry holds the static capability set known at process start. It is
// immutable after construction; the core never mutates it at runtime.
type Registry struct {
	order        []string
	capabilities map[string]Capability
}

// NewRegistry builds a registry from the given capabilities. Duplicate names
// are rejected because dispatch is keyed by name.
func NewRegistry(capabilities ...Capability) (*Registry, error) {
	r := &Registry{capabilities: make(map[string]Capability, len(capabilities))}
	for _, c := range capabilities {
		if c.Name() == "" {
			return nil, fmt.Errorf("capability with empty name")
		}
		if _, exists := r.capabilities[c.Name()]; exists {
			return nil, fmt.Errorf("duplicate capability name %q", c.Name())
		}
		r.capabilities[c.Name()] = c
		r.order = append(r.order, c.Name())
	}
	return r, nil
}

// Get returns the capability registered under name.
func (r *Registry) Get(name string) (Capability, bool) {
	c, ok := r.capabilities[name]
	return c, ok
}

// Names returns the registered capability names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// ToolDefinitions exposes the registry as model tool schemas for the
// function-selection request.
func (r *Registry) ToolDefinitions() []model.ToolDefinition {
	defs := make([]model.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		c := r.capabilities[name]
		defs = append(defs, model.ToolDefinition{
			Name:        c.Name(),
			Description: c.Description(),
			Parameters:  c.Parameters(),
		})
	}
	return defs
}

// Declaration is a static capability descriptor, typically loaded from a YAML
// registry file at process start.
type Declaration struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Parameters  map[string]any `yaml:"parameters"`
}

// declarationFile is the on-disk shape of a registry declaration document.
type declarationFile struct {
	Capabilities []Declaration `yaml:"capabilities"`
}

// LoadDeclarations parses capability descriptors from YAML.
func LoadDeclarations(data []byte) ([]Declaration, error) {
	var file declarationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse capability declarations: %w", err)
	}
	for i, d := range file.Capabilities {
		if d.Name == "" {
			return nil, fmt.Errorf("capability declaration %d has no name", i)
		}
	}
	return file.Capabilities, nil
}

// Handler is the behavior bound to a declared capability.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// NewRegistryFromDeclarations binds declarations to handlers by name. Every
// declaration must have a handler; unbound declarations are configuration
// errors surfaced at startup, not at request time.
func NewRegistryFromDeclarations(decls []Declaration, handlers map[string]Handler) (*Registry, error) {
	capabilities := make([]Capability, 0, len(decls))
	for _, d := range decls {
		fn, ok := handlers[d.Name]
		if !ok {
			return nil, fmt.Errorf("no handler bound for declared capability %q", d.Name)
		}
		params := d.Parameters
		if params == nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		capabilities = append(capabilities, NewFuncCapability(d.Name, d.Description, params, fn))
	}
	return NewRegistry(capabilities...)
}
