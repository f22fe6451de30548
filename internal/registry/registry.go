// Package registry holds the single table mapping operation identifiers to
// domain operations. Both protocol adapters resolve through it, so an
// operation is registered exactly once for both surfaces.
package registry

import (
	"context"
	"fmt"
	"sort"
)

// Operation binds a stable identifier to one domain operation entry point
// and its argument-extraction rule. NewArgs returns a pointer to a fresh
// argument struct for the adapter to decode into; Required names the
// argument elements that must be present in an envelope body, so that a
// body silently omitting them is rejected before the operation runs.
// Invoke runs the domain operation and returns its protocol-neutral
// outcome.
type Operation struct {
	Name     string
	Service  string
	Action   string
	NewArgs  func() any
	Required []string
	Invoke   func(ctx context.Context, args any) (any, error)
}

// Registry indexes operations by name and by envelope action.
type Registry struct {
	byName   map[string]*Operation
	byAction map[string]*Operation
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		byName:   make(map[string]*Operation),
		byAction: make(map[string]*Operation),
	}
}

// Register adds an operation. Registering the same name or action twice is
// an error so no identifier can resolve ambiguously.
func (r *Registry) Register(op *Operation) error {
	if op.Name == "" {
		return fmt.Errorf("operation name is required")
	}
	if _, exists := r.byName[op.Name]; exists {
		return fmt.Errorf("operation %s is already registered", op.Name)
	}
	if _, exists := r.byAction[op.Action]; op.Action != "" && exists {
		return fmt.Errorf("action %s is already registered", op.Action)
	}

	r.byName[op.Name] = op
	if op.Action != "" {
		r.byAction[op.Action] = op
	}
	return nil
}

// Lookup resolves an operation by its identifier.
func (r *Registry) Lookup(name string) (*Operation, bool) {
	op, ok := r.byName[name]
	return op, ok
}

// LookupAction resolves an operation by its envelope action selector.
func (r *Registry) LookupAction(action string) (*Operation, bool) {
	op, ok := r.byAction[action]
	return op, ok
}

// Call resolves and invokes an operation in one step.
func (r *Registry) Call(ctx context.Context, name string, args any) (any, error) {
	op, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown operation: %s", name)
	}
	return op.Invoke(ctx, args)
}

// Operations returns all registered operations ordered by service then name,
// for route metadata introspection.
func (r *Registry) Operations() []*Operation {
	ops := make([]*Operation, 0, len(r.byName))
	for _, op := range r.byName {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Service != ops[j].Service {
			return ops[i].Service < ops[j].Service
		}
		return ops[i].Name < ops[j].Name
	})
	return ops
}
