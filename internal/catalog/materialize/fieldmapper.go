package materialize

import (
	"context"

	"github.com/metagraph-io/metagraph/internal/catalog/instance"
	"github.com/metagraph-io/metagraph/internal/catalog/types"
	"github.com/metagraph-io/metagraph/internal/graph"
)

// FieldMapper is the external collaborator that walks a node's declared
// attributes. The materializer delegates struct and class field population
// to it; the mapper in turn calls back into the materializer for nested
// values, so the two recurse mutually. The recursion is bounded by the
// operation's identity cache, which MaterializeClass is responsible for
// populating before it descends into fields.
type FieldMapper interface {
	// PopulateStructFields populates the fields of an empty struct or
	// trait instance in place from the node's properties and edges.
	PopulateStructFields(ctx context.Context, op *Operation, node graph.Node, inst *instance.Struct, fields []types.Attribute) error

	// MaterializeClass fully materializes the class instance persisted at
	// the node. It must insert the instance into the operation's identity
	// cache before populating fields.
	MaterializeClass(ctx context.Context, op *Operation, guid string, node graph.Node) (*instance.Referenceable, error)

	// ResolveReferredEntity resolves one collection entry: an edge
	// identifier linking the owning node to a referenced struct or class
	// node.
	ResolveReferredEntity(ctx context.Context, op *Operation, edgeID string, elemType *types.Descriptor) (interface{}, error)
}
