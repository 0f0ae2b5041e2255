// Package materialize converts persisted graph nodes into strongly-typed
// in-memory instances. Dispatch is strictly by type category; identity of
// class instances is preserved across cyclic references by the
// operation-scoped identity cache.
package materialize

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/metagraph-io/metagraph/internal/catalog/instance"
	"github.com/metagraph-io/metagraph/internal/catalog/naming"
	"github.com/metagraph-io/metagraph/internal/catalog/types"
	"github.com/metagraph-io/metagraph/internal/graph"
)

// Materializer turns raw persisted values into typed instances. Struct and
// class field population is delegated to the FieldMapper, which recurses
// back into the materializer for nested values.
type Materializer struct {
	registry *types.Registry
	naming   *naming.Resolver
	mapper   FieldMapper
	log      *zap.Logger
}

// New creates a materializer. The field mapper is wired afterwards via
// SetFieldMapper because mapper and materializer reference each other.
func New(registry *types.Registry, resolver *naming.Resolver, log *zap.Logger) *Materializer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Materializer{
		registry: registry,
		naming:   resolver,
		log:      log,
	}
}

// SetFieldMapper wires the field mapper used for struct, trait, and class
// materialization.
func (m *Materializer) SetFieldMapper(fm FieldMapper) {
	m.mapper = fm
}

// Registry returns the type registry the materializer reads from
func (m *Materializer) Registry() *types.Registry {
	return m.registry
}

// Naming returns the naming resolver the materializer reads node properties through
func (m *Materializer) Naming() *naming.Resolver {
	return m.naming
}

// ConstructInstance materializes a typed instance from a raw persisted
// value. A nil result means either a legitimately absent value or a
// materialization failure: failures are logged and swallowed, and callers
// cannot tell the two apart. Use Construct to observe the error.
//
// An unknown type category is a type registry inconsistency and panics.
func (m *Materializer) ConstructInstance(ctx context.Context, op *Operation, d *types.Descriptor, value interface{}) interface{} {
	result, err := m.Construct(ctx, op, d, value)
	if err != nil {
		m.log.Error("error while constructing an instance",
			zap.String("type", d.Name),
			zap.Error(err))
		return nil
	}
	return result
}

// Construct is the error-aware form of ConstructInstance: it distinguishes
// an absent value (nil, nil) from a materialization failure (nil, err).
func (m *Materializer) Construct(ctx context.Context, op *Operation, d *types.Descriptor, value interface{}) (interface{}, error) {
	switch d.Category {
	case types.CategoryPrimitive, types.CategoryEnum:
		return types.Convert(d, value, types.Optional)

	case types.CategoryArray:
		return m.constructArray(ctx, op, d, value)

	case types.CategoryMap:
		// Map-valued attributes are not materialized. Deliberate gap.
		return nil, nil

	case types.CategoryStruct:
		return m.constructStruct(ctx, op, d, value)

	case types.CategoryTrait:
		return m.constructTrait(ctx, op, d, value)

	case types.CategoryClass:
		return m.constructClass(ctx, op, d, value)

	default:
		panic(fmt.Sprintf("materialization for type category %d (%s) is not supported", d.Category, d.Name))
	}
}

func (m *Materializer) constructArray(ctx context.Context, op *Operation, d *types.Descriptor, value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	raw, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %T for %s", ErrNotASequence, value, d.Name)
	}
	result := make([]interface{}, 0, len(raw))
	for _, entry := range raw {
		element, err := m.ConstructCollectionEntry(ctx, op, d.Element, entry)
		if err != nil {
			return nil, err
		}
		// Entries resolving to no value are dropped; survivors keep their
		// original relative order.
		if element != nil {
			result = append(result, element)
		}
	}
	return result, nil
}

func (m *Materializer) constructStruct(ctx context.Context, op *Operation, d *types.Descriptor, value interface{}) (interface{}, error) {
	node, ok := value.(graph.Node)
	if !ok {
		return nil, fmt.Errorf("%w: %T for %s", ErrNotANode, value, d.Name)
	}
	inst := instance.NewStruct(d)

	if m.registry.IsIdentityType(d) {
		// The identity pseudo-type is read directly from the reserved node
		// properties, with no field mapper involvement.
		if typeName, ok := graph.StringProperty(node, m.naming.TypeAttributeName()); ok {
			inst.Set(types.IdentityTypeNameAttr, typeName)
		}
		if id, ok := graph.StringProperty(node, m.naming.IDAttributeName()); ok {
			inst.Set(types.IdentityIDAttr, id)
		}
		if state, ok := graph.StringProperty(node, m.naming.StateAttributeName()); ok {
			inst.Set(types.IdentityStateAttr, state)
		}
		if version, ok := graph.Int64Property(node, m.naming.VersionAttributeName()); ok {
			inst.Set(types.IdentityVersionAttr, version)
		}
	} else {
		if m.mapper == nil {
			return nil, ErrNoFieldMapper
		}
		if err := m.mapper.PopulateStructFields(ctx, op, node, inst, d.Attributes); err != nil {
			return nil, err
		}
	}
	return types.Convert(d, inst, types.Optional)
}

func (m *Materializer) constructTrait(ctx context.Context, op *Operation, d *types.Descriptor, value interface{}) (interface{}, error) {
	node, ok := value.(graph.Node)
	if !ok {
		return nil, fmt.Errorf("%w: %T for %s", ErrNotANode, value, d.Name)
	}
	if m.mapper == nil {
		return nil, ErrNoFieldMapper
	}
	inst := instance.NewStruct(d)
	// Only the trait's own fields are populated. The class instance the
	// trait is attached to is not materialized here.
	if err := m.mapper.PopulateStructFields(ctx, op, node, inst, d.Attributes); err != nil {
		return nil, err
	}
	return inst, nil
}

func (m *Materializer) constructClass(ctx context.Context, op *Operation, d *types.Descriptor, value interface{}) (interface{}, error) {
	node, ok := value.(graph.Node)
	if !ok {
		return nil, fmt.Errorf("%w: %T for %s", ErrNotANode, value, d.Name)
	}
	guid := node.GUID()

	// Check if the instance we need was previously materialized in this
	// operation.
	inst, ok := op.CachedInstance(guid)
	if !ok {
		if m.mapper == nil {
			return nil, ErrNoFieldMapper
		}
		// Full materialization populates the identity cache as a side
		// effect before descending into fields.
		var err error
		inst, err = m.mapper.MaterializeClass(ctx, op, guid, node)
		if err != nil {
			return nil, err
		}
	}
	return types.Convert(d, inst, types.Optional)
}

// IDFromNode derives an entity identity from a node's reserved properties.
// The type name falls back to the given descriptor when the node carries
// no type marker.
func (m *Materializer) IDFromNode(d *types.Descriptor, node graph.Node) instance.ID {
	id := instance.ID{
		TypeName: d.Name,
		ID:       node.GUID(),
	}
	if typeName, ok := graph.StringProperty(node, m.naming.TypeAttributeName()); ok {
		id.TypeName = typeName
	}
	if state, ok := graph.StringProperty(node, m.naming.StateAttributeName()); ok {
		id.State = state
	}
	if version, ok := graph.Int64Property(node, m.naming.VersionAttributeName()); ok {
		id.Version = version
	}
	return id
}
