package types

import (
	"fmt"
	"sync"
)

// Registry manages all type descriptors known to the catalog
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]*Descriptor
	identity    *Descriptor
}

// NewRegistry creates a registry pre-loaded with the built-in primitive
// types and the identity pseudo-type.
func NewRegistry() *Registry {
	r := &Registry{
		descriptors: make(map[string]*Descriptor),
		identity:    newIdentityType(),
	}
	for _, d := range []*Descriptor{StringType, BoolType, IntType, BigIntType, FloatType, DateType} {
		r.descriptors[d.Name] = d
	}
	r.descriptors[r.identity.Name] = r.identity
	return r
}

// Register registers a new type descriptor
func (r *Registry) Register(d *Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("%w: descriptor has no name", ErrInvalidDescriptor)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[d.Name]; exists {
		return fmt.Errorf("type %s is already registered", d.Name)
	}
	r.descriptors[d.Name] = d
	return nil
}

// Get retrieves a type descriptor by name
func (r *Registry) Get(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[name]
	return d, ok
}

// MustGet retrieves a descriptor by name and panics if it is not
// registered. Reserved for lookups of types whose absence indicates a
// registry inconsistency rather than bad input.
func (r *Registry) MustGet(name string) *Descriptor {
	d, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("type %s is not registered", name))
	}
	return d
}

// IdentityType returns the identity pseudo-type descriptor
func (r *Registry) IdentityType() *Descriptor {
	return r.identity
}

// IsIdentityType reports whether the descriptor is the identity pseudo-type
func (r *Registry) IsIdentityType(d *Descriptor) bool {
	return d.Name == IdentityTypeName
}

// List returns the names of all registered types
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	return names
}
