package materialize

import (
	"context"
	"fmt"

	"github.com/metagraph-io/metagraph/internal/catalog/types"
)

// ConstructCollectionEntry converts one raw entry of an ordered collection
// into a typed element. Primitive and enum entries are inline values;
// struct and class entries are edge identifier strings linking the owning
// node to the referenced node. A nil result with nil error means the entry
// carries no value and is dropped from the collection.
//
// Collections nested inside collections are not modeled: array, map, and
// trait element types always resolve to no value. An unknown category
// panics, since the category set is closed.
func (m *Materializer) ConstructCollectionEntry(ctx context.Context, op *Operation, elemType *types.Descriptor, rawEntry interface{}) (interface{}, error) {
	switch elemType.Category {
	case types.CategoryPrimitive, types.CategoryEnum:
		// A failing scalar entry is logged and dropped rather than failing
		// the whole collection.
		return m.ConstructInstance(ctx, op, elemType, rawEntry), nil

	case types.CategoryStruct, types.CategoryClass:
		edgeID, ok := rawEntry.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %T for element type %s", ErrNotAnEdgeID, rawEntry, elemType.Name)
		}
		if m.mapper == nil {
			return nil, ErrNoFieldMapper
		}
		return m.mapper.ResolveReferredEntity(ctx, op, edgeID, elemType)

	case types.CategoryArray, types.CategoryMap, types.CategoryTrait:
		return nil, nil

	default:
		panic(fmt.Sprintf("collection entry for type category %d (%s) is not supported", elemType.Category, elemType.Name))
	}
}
