package materialize

import (
	"context"

	"go.uber.org/zap"

	"github.com/metagraph-io/metagraph/internal/catalog/instance"
	"github.com/metagraph-io/metagraph/internal/catalog/types"
	"github.com/metagraph-io/metagraph/internal/graph"
)

// ConstructClassInstanceID builds a fields-empty reference instance
// carrying only the class's identity, derived from the node's guid. Used
// by callers that need a handle on an entity without paying for full
// materialization. Conversion failures are logged and yield nil.
func (m *Materializer) ConstructClassInstanceID(ctx context.Context, op *Operation, classType *types.Descriptor, node graph.Node) *instance.Referenceable {
	inst := instance.NewReferenceable(classType, m.IDFromNode(classType, node))
	converted, err := types.Convert(classType, inst, types.Optional)
	if err != nil {
		m.log.Error("error while constructing an instance",
			zap.String("type", classType.Name),
			zap.String("guid", node.GUID()),
			zap.Error(err))
		return nil
	}
	return converted.(*instance.Referenceable)
}
