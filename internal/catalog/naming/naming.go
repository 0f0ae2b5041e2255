// Package naming resolves the property and edge names used to encode the
// catalog in graph storage. Lookups are pure and deterministic; a failure
// of the underlying policy means the persistence layer is unusable, so it
// is re-raised as a panic rather than returned.
package naming

import (
	"fmt"

	"github.com/metagraph-io/metagraph/internal/catalog/types"
)

// Reserved node property names. These encode type membership, identity,
// lifecycle state, and version on every entity node.
const (
	TypeAttribute       = "__typeName"
	SuperTypeAttribute  = "__superTypeNames"
	IDAttribute         = "__guid"
	StateAttribute      = "__state"
	VersionAttribute    = "__version"
	TraitNamesAttribute = "__traitNames"
)

// Policy supplies the storage encoding for type-and-attribute scoped
// names. Implementations may fail when handed names that violate the
// schema; the Resolver converts such failures into panics.
type Policy interface {
	EdgeLabel(typeName, attrName string) (string, error)
	TraitLabel(typeName, traitName string) (string, error)
	FieldName(typeName, attrName string) (string, error)
}

// Resolver maps types and attributes to their persisted names
type Resolver struct {
	policy Policy
}

// NewResolver creates a resolver backed by the default naming policy
func NewResolver() *Resolver {
	return &Resolver{policy: defaultPolicy{}}
}

// NewResolverWithPolicy creates a resolver backed by a custom policy
func NewResolverWithPolicy(p Policy) *Resolver {
	return &Resolver{policy: p}
}

// TypeAttributeName returns the property marking a node's type
func (r *Resolver) TypeAttributeName() string {
	return TypeAttribute
}

// SuperTypeAttributeName returns the property listing a node's super types
func (r *Resolver) SuperTypeAttributeName() string {
	return SuperTypeAttribute
}

// IDAttributeName returns the property holding a node's guid
func (r *Resolver) IDAttributeName() string {
	return IDAttribute
}

// StateAttributeName returns the property holding a node's lifecycle state
func (r *Resolver) StateAttributeName() string {
	return StateAttribute
}

// VersionAttributeName returns the property holding a node's version
func (r *Resolver) VersionAttributeName() string {
	return VersionAttribute
}

// TraitNamesAttributeName returns the property listing a node's attached traits
func (r *Resolver) TraitNamesAttributeName() string {
	return TraitNamesAttribute
}

// EdgeLabel returns the label of the edge persisting the given attribute
func (r *Resolver) EdgeLabel(d *types.Descriptor, a types.Attribute) string {
	label, err := r.policy.EdgeLabel(d.Name, a.Name)
	if err != nil {
		panic(fmt.Errorf("naming policy failed for edge label %s.%s: %w", d.Name, a.Name, err))
	}
	return label
}

// TraitLabel returns the label of the edge attaching the given trait
func (r *Resolver) TraitLabel(d *types.Descriptor, traitName string) string {
	label, err := r.policy.TraitLabel(d.Name, traitName)
	if err != nil {
		panic(fmt.Errorf("naming policy failed for trait label %s.%s: %w", d.Name, traitName, err))
	}
	return label
}

// FieldName returns the in-node property name persisting the given attribute
func (r *Resolver) FieldName(d *types.Descriptor, a types.Attribute) string {
	name, err := r.policy.FieldName(d.Name, a.Name)
	if err != nil {
		panic(fmt.Errorf("naming policy failed for field %s.%s: %w", d.Name, a.Name, err))
	}
	return name
}

// defaultPolicy qualifies attribute names with their declaring type. Edge
// and trait labels carry a double-underscore prefix so they can never
// collide with user-declared property names.
type defaultPolicy struct{}

func (defaultPolicy) EdgeLabel(typeName, attrName string) (string, error) {
	if typeName == "" || attrName == "" {
		return "", fmt.Errorf("edge label requires type and attribute names, got %q.%q", typeName, attrName)
	}
	return fmt.Sprintf("__%s.%s", typeName, attrName), nil
}

func (defaultPolicy) TraitLabel(typeName, traitName string) (string, error) {
	if typeName == "" || traitName == "" {
		return "", fmt.Errorf("trait label requires type and trait names, got %q.%q", typeName, traitName)
	}
	return fmt.Sprintf("__%s.%s", typeName, traitName), nil
}

func (defaultPolicy) FieldName(typeName, attrName string) (string, error) {
	if typeName == "" || attrName == "" {
		return "", fmt.Errorf("field name requires type and attribute names, got %q.%q", typeName, attrName)
	}
	return fmt.Sprintf("%s.%s", typeName, attrName), nil
}
