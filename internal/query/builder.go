// Package query builds traversal expressions against the persisted
// catalog graph. It knows nothing about the storage encoding: every
// property name, edge label, and capability question goes through the
// strategy facade.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/metagraph-io/metagraph/internal/catalog/strategy"
	"github.com/metagraph-io/metagraph/internal/catalog/types"
	"github.com/metagraph-io/metagraph/internal/graph"
)

// Builder provides a fluent API for building traversal expressions for
// one catalog type.
type Builder struct {
	strategy *strategy.Facade
	registry *types.Registry

	root     string
	typeDesc *types.Descriptor
	steps    []string
	err      error
}

// NewBuilder creates a traversal builder for the named type
func NewBuilder(f *strategy.Facade, registry *types.Registry, typeName string) (*Builder, error) {
	desc, ok := registry.Get(typeName)
	if !ok {
		return nil, fmt.Errorf("unknown type: %s", typeName)
	}
	if desc.Category != types.CategoryClass && desc.Category != types.CategoryTrait {
		return nil, fmt.Errorf("type %s is not traversable: category %s", typeName, desc.Category)
	}
	return &Builder{
		strategy: f,
		registry: registry,
		root:     desc.Name,
		typeDesc: desc,
	}, nil
}

// HasAttribute filters on a declared attribute's persisted value
func (b *Builder) HasAttribute(attrName string, value interface{}) *Builder {
	if b.err != nil {
		return b
	}
	attr, ok := b.typeDesc.Attribute(attrName)
	if !ok {
		b.err = fmt.Errorf("type %s has no attribute %s", b.typeDesc.Name, attrName)
		return b
	}
	field := b.strategy.FieldName(b.typeDesc, attr)
	b.steps = append(b.steps, fmt.Sprintf("has(%s, %s)", renderString(field), b.renderValue(attr.Type, value)))
	return b
}

// OutAttribute steps across the edge persisting a struct- or class-valued
// attribute to the referenced node.
func (b *Builder) OutAttribute(attrName string) *Builder {
	if b.err != nil {
		return b
	}
	attr, ok := b.typeDesc.Attribute(attrName)
	if !ok {
		b.err = fmt.Errorf("type %s has no attribute %s", b.typeDesc.Name, attrName)
		return b
	}
	if attr.Type.Category != types.CategoryStruct && attr.Type.Category != types.CategoryClass {
		b.err = fmt.Errorf("attribute %s.%s is not edge-persisted", b.typeDesc.Name, attrName)
		return b
	}
	b.steps = append(b.steps, fmt.Sprintf("out(%s)", renderString(b.strategy.EdgeLabel(b.typeDesc, attr))))
	b.typeDesc = attr.Type
	return b
}

// WithTrait steps from an instance to an attached trait, always in the
// instance-to-trait direction the facade fixes.
func (b *Builder) WithTrait(traitName string) *Builder {
	if b.err != nil {
		return b
	}
	label := b.strategy.TraitLabel(b.typeDesc, traitName)
	b.steps = append(b.steps, directionStep(b.strategy.InstanceToTraitEdgeDirection(), label))
	if traitDesc, ok := b.registry.Get(traitName); ok {
		b.typeDesc = traitDesc
	}
	return b
}

// OwningInstance steps from a trait back to its owning instance, always in
// the trait-to-instance direction the facade fixes.
func (b *Builder) OwningInstance(ownerType string) *Builder {
	if b.err != nil {
		return b
	}
	owner, ok := b.registry.Get(ownerType)
	if !ok {
		b.err = fmt.Errorf("unknown type: %s", ownerType)
		return b
	}
	label := b.strategy.TraitLabel(owner, b.typeDesc.Name)
	b.steps = append(b.steps, directionStep(b.strategy.TraitToInstanceEdgeDirection(), label))
	b.typeDesc = owner
	return b
}

// Compile renders the traversal expression
func (b *Builder) Compile() (string, error) {
	if b.err != nil {
		return "", b.err
	}

	var sb strings.Builder
	switch b.strategy.SupportedTraversalVersion() {
	case strategy.TraversalV2:
		sb.WriteString("g.V")
	default:
		sb.WriteString("g.V()")
	}

	sb.WriteString("." + b.strategy.InitialQueryCondition(b.typeCondition()))

	if b.strategy.CollectTypeInstancesIntoVar() {
		sb.WriteString(".as('inst')")
	}
	for _, step := range b.steps {
		sb.WriteString("." + step)
	}
	return sb.String(), nil
}

// typeCondition renders the opening type-membership filter. With subtype
// filtering enabled the super-type marker is matched as well, so nodes of
// declared subtypes satisfy the condition.
func (b *Builder) typeCondition() string {
	// Steps mutate typeDesc as the traversal walks; the opening condition
	// always applies to the root type the builder was created for.
	typeAttr := renderString(b.strategy.TypeAttributeName())
	name := renderString(b.root)
	if b.strategy.FilterBySubTypes() {
		superAttr := renderString(b.strategy.SuperTypeAttributeName())
		return fmt.Sprintf("or(has(%s, %s), has(%s, %s))", typeAttr, name, superAttr, name)
	}
	return fmt.Sprintf("has(%s, %s)", typeAttr, name)
}

// renderValue renders a comparison value, applying persisted-to-logical
// conversion where the strategy requires it.
func (b *Builder) renderValue(d *types.Descriptor, value interface{}) string {
	rendered := renderLiteral(value)
	if b.strategy.PropertyValueConversionNeeded(d) {
		return fmt.Sprintf("date(%s)", rendered)
	}
	return rendered
}

func directionStep(dir graph.Direction, label string) string {
	return fmt.Sprintf("%s(%s)", dir, renderString(label))
}

func renderLiteral(value interface{}) string {
	switch v := value.(type) {
	case string:
		return renderString(v)
	case bool:
		return fmt.Sprintf("%t", v)
	case time.Time:
		return renderString(v.Format(time.RFC3339))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func renderString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
