// Package mapper implements the graph-to-instance field mapper: it walks a
// node's declared attributes and populates typed instances, recursing into
// the materializer for nested values. Full class materialization inserts
// into the operation's identity cache before descending into fields, which
// is what bounds cyclic reference graphs.
package mapper

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/metagraph-io/metagraph/internal/catalog/instance"
	"github.com/metagraph-io/metagraph/internal/catalog/materialize"
	"github.com/metagraph-io/metagraph/internal/catalog/naming"
	"github.com/metagraph-io/metagraph/internal/catalog/types"
	"github.com/metagraph-io/metagraph/internal/graph"
)

// ErrUnregisteredType is returned when a node's type marker names a type
// the registry does not know.
var ErrUnregisteredType = errors.New("node references unregistered type")

// Mapper walks declared attributes of struct, trait, and class types and
// populates instances from node properties and edges.
type Mapper struct {
	mat      *materialize.Materializer
	registry *types.Registry
	naming   *naming.Resolver
	log      *zap.Logger
}

// New creates a mapper and wires it into the materializer. Mapper and
// materializer recurse mutually, so the materializer is created first and
// the mapper attaches itself here.
func New(mat *materialize.Materializer, log *zap.Logger) *Mapper {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Mapper{
		mat:      mat,
		registry: mat.Registry(),
		naming:   mat.Naming(),
		log:      log,
	}
	mat.SetFieldMapper(m)
	return m
}

// PopulateStructFields implements materialize.FieldMapper
func (m *Mapper) PopulateStructFields(ctx context.Context, op *materialize.Operation, node graph.Node, inst *instance.Struct, fields []types.Attribute) error {
	owner := inst.Descriptor()
	for _, attr := range fields {
		switch attr.Type.Category {
		case types.CategoryPrimitive, types.CategoryEnum, types.CategoryArray:
			raw, ok := node.Property(m.naming.FieldName(owner, attr))
			if !ok {
				continue
			}
			value, err := m.mat.Construct(ctx, op, attr.Type, raw)
			if err != nil {
				return fmt.Errorf("field %s.%s: %w", owner.Name, attr.Name, err)
			}
			if value != nil {
				inst.Set(attr.Name, value)
			}

		case types.CategoryMap:
			// Map-valued attributes are not materialized.
			continue

		case types.CategoryStruct, types.CategoryClass:
			target, err := op.Graph().Related(ctx, node.GUID(), m.naming.EdgeLabel(owner, attr), graph.DirectionOut)
			if err != nil {
				if errors.Is(err, graph.ErrNoSuchRelation) {
					continue
				}
				return fmt.Errorf("field %s.%s: %w", owner.Name, attr.Name, err)
			}
			value, err := m.mat.Construct(ctx, op, attr.Type, target)
			if err != nil {
				return fmt.Errorf("field %s.%s: %w", owner.Name, attr.Name, err)
			}
			if value != nil {
				inst.Set(attr.Name, value)
			}

		case types.CategoryTrait:
			// Traits attach to instances; they are not attribute types.
			continue
		}
	}
	return nil
}

// MaterializeClass implements materialize.FieldMapper
func (m *Mapper) MaterializeClass(ctx context.Context, op *materialize.Operation, guid string, node graph.Node) (*instance.Referenceable, error) {
	typeName, ok := graph.StringProperty(node, m.naming.TypeAttributeName())
	if !ok {
		return nil, fmt.Errorf("node %s carries no type marker", guid)
	}
	desc, ok := m.registry.Get(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredType, typeName)
	}

	inst := instance.NewReferenceable(desc, m.mat.IDFromNode(desc, node))

	// Cache before populating fields: a cyclic reference back to this guid
	// must resolve to this very instance instead of recursing.
	op.CacheInstance(inst)

	if err := m.PopulateStructFields(ctx, op, node, &inst.Struct, m.allAttributes(desc)); err != nil {
		return nil, err
	}
	if err := m.attachTraits(ctx, op, node, desc, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// ResolveReferredEntity implements materialize.FieldMapper
func (m *Mapper) ResolveReferredEntity(ctx context.Context, op *materialize.Operation, edgeID string, elemType *types.Descriptor) (interface{}, error) {
	if elemType.Category != types.CategoryStruct && elemType.Category != types.CategoryClass {
		return nil, fmt.Errorf("cannot resolve referred entity of category %s", elemType.Category)
	}
	node, err := op.Graph().EdgeTarget(ctx, edgeID)
	if err != nil {
		return nil, fmt.Errorf("edge %s: %w", edgeID, err)
	}
	return m.mat.Construct(ctx, op, elemType, node)
}

// attachTraits materializes the traits named on the node and attaches them
// to the instance. Each trait lives on its own node, reached by the trait
// attachment edge in the outbound direction.
func (m *Mapper) attachTraits(ctx context.Context, op *materialize.Operation, node graph.Node, desc *types.Descriptor, inst *instance.Referenceable) error {
	traitNames, ok := graph.StringsProperty(node, m.naming.TraitNamesAttributeName())
	if !ok {
		return nil
	}
	for _, traitName := range traitNames {
		traitDesc, ok := m.registry.Get(traitName)
		if !ok || traitDesc.Category != types.CategoryTrait {
			m.log.Warn("skipping unregistered trait",
				zap.String("trait", traitName),
				zap.String("guid", node.GUID()))
			continue
		}
		traitNode, err := op.Graph().Related(ctx, node.GUID(), m.naming.TraitLabel(desc, traitName), graph.DirectionOut)
		if err != nil {
			if errors.Is(err, graph.ErrNoSuchRelation) {
				continue
			}
			return fmt.Errorf("trait %s on %s: %w", traitName, node.GUID(), err)
		}
		value, err := m.mat.Construct(ctx, op, traitDesc, traitNode)
		if err != nil {
			return fmt.Errorf("trait %s on %s: %w", traitName, node.GUID(), err)
		}
		if trait, ok := value.(*instance.Struct); ok {
			inst.AttachTrait(traitName, trait)
		}
	}
	return nil
}

// allAttributes flattens a type's declared attributes with those inherited
// from its super types, nearest declaration winning.
func (m *Mapper) allAttributes(desc *types.Descriptor) []types.Attribute {
	seen := make(map[string]bool)
	var out []types.Attribute
	var walk func(d *types.Descriptor)
	walk = func(d *types.Descriptor) {
		for _, a := range d.Attributes {
			if !seen[a.Name] {
				seen[a.Name] = true
				out = append(out, a)
			}
		}
		for _, super := range d.SuperTypes {
			if sd, ok := m.registry.Get(super); ok {
				walk(sd)
			}
		}
	}
	walk(desc)
	return out
}
