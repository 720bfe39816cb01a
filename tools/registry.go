package tools

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// ToolPlugin defines the interface for plugins that provide tools
type ToolPlugin interface {
	RegisterTools(registry *Registry) error
}

// Invoker executes a capability with free-form arguments and returns the
// text handed back to the model.
type Invoker func(ctx context.Context, args map[string]any) (string, error)

// Param describes one argument of a capability.
type Param struct {
	Name        string
	Type        string // "string", "integer", "number" or "boolean"
	Description string
	Required    bool
	Default     any
}

// Capability is a named, invocable operation with a typed argument schema.
type Capability struct {
	Name        string
	Description string
	Params      []Param
	Invoke      Invoker
}

// Registry manages the registration of capabilities, keyed by name.
// Registration order is preserved for listing.
type Registry struct {
	mu           sync.RWMutex
	order        []string
	capabilities map[string]Capability
}

// NewRegistry creates a new capability registry
func NewRegistry() *Registry {
	return &Registry{
		capabilities: make(map[string]Capability),
	}
}

// Register adds a capability. Names must be non-empty and unique.
func (r *Registry) Register(c Capability) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("capability name is required")
	}
	if c.Invoke == nil {
		return fmt.Errorf("capability %s has no invoker", name)
	}
	c.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.capabilities[name]; exists {
		return fmt.Errorf("capability already registered: %s", name)
	}
	r.capabilities[name] = c
	r.order = append(r.order, name)
	return nil
}

// Get returns the capability registered under name
func (r *Registry) Get(name string) (Capability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.capabilities[name]
	return c, ok
}

// List returns all registered capabilities in registration order
func (r *Registry) List() []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Capability, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.capabilities[name])
	}
	return out
}

// Len returns the number of registered capabilities
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Execute runs a registered capability by name
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (string, error) {
	c, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("tool not found: %s", name)
	}
	return c.Invoke(ctx, args)
}
