package materialize

import (
	"github.com/metagraph-io/metagraph/internal/catalog/instance"
	"github.com/metagraph-io/metagraph/internal/graph"
)

// Operation is the context of one logical materialization request. It owns
// the identity cache: within one operation at most one materialization
// happens per guid, and every further reference to that guid resolves to
// the same instance. Operations are never shared between concurrent
// requests, so the cache needs no locking.
type Operation struct {
	graph graph.Graph
	cache map[string]*instance.Referenceable
}

// NewOperation creates a fresh operation context over an acquired graph
// handle. Create one per request and discard it when the request ends.
func NewOperation(g graph.Graph) *Operation {
	return &Operation{
		graph: g,
		cache: make(map[string]*instance.Referenceable),
	}
}

// Graph returns the operation's graph handle
func (op *Operation) Graph() graph.Graph {
	return op.graph
}

// CachedInstance returns the already-materialized instance for a guid
func (op *Operation) CachedInstance(guid string) (*instance.Referenceable, bool) {
	inst, ok := op.cache[guid]
	return inst, ok
}

// CacheInstance records a materialized instance under its guid. The field
// mapper calls this before descending into an instance's fields so that
// cyclic references terminate.
func (op *Operation) CacheInstance(inst *instance.Referenceable) {
	op.cache[inst.GUID()] = inst
}

// CacheSize returns the number of cached instances
func (op *Operation) CacheSize() int {
	return len(op.cache)
}
