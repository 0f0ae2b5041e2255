package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryGraph is an in-memory property graph. It backs tests and seeding
// and defines the reference semantics the persistent stores reproduce.
type MemoryGraph struct {
	mu    sync.RWMutex
	nodes map[string]*MemoryNode
	edges map[string]*memoryEdge

	// typeMarker is the property consulted by NodesByType
	typeMarker string
}

// MemoryNode is a node held in a MemoryGraph
type MemoryNode struct {
	guid  string
	props map[string]interface{}
}

type memoryEdge struct {
	id      string
	label   string
	outGUID string
	inGUID  string
}

// NewMemoryGraph creates an empty in-memory graph. typeMarker is the
// property name NodesByType matches against.
func NewMemoryGraph(typeMarker string) *MemoryGraph {
	return &MemoryGraph{
		nodes:      make(map[string]*MemoryNode),
		edges:      make(map[string]*memoryEdge),
		typeMarker: typeMarker,
	}
}

// AddNode inserts a node with the given guid and properties
func (g *MemoryGraph) AddNode(guid string, props map[string]interface{}) *MemoryNode {
	g.mu.Lock()
	defer g.mu.Unlock()
	copied := make(map[string]interface{}, len(props))
	for k, v := range props {
		copied[k] = v
	}
	n := &MemoryNode{guid: guid, props: copied}
	g.nodes[guid] = n
	return n
}

// AddEdge inserts a directed labeled edge between two existing nodes
func (g *MemoryGraph) AddEdge(id, label, outGUID, inGUID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.nodes[outGUID]; !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, outGUID)
	}
	if _, ok := g.nodes[inGUID]; !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, inGUID)
	}
	g.edges[id] = &memoryEdge{id: id, label: label, outGUID: outGUID, inGUID: inGUID}
	return nil
}

// Node implements Graph
func (g *MemoryGraph) Node(ctx context.Context, guid string) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[guid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, guid)
	}
	return n, nil
}

// EdgeTarget implements Graph
func (g *MemoryGraph) EdgeTarget(ctx context.Context, edgeID string) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[edgeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEdgeNotFound, edgeID)
	}
	n, ok := g.nodes[e.inGUID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, e.inGUID)
	}
	return n, nil
}

// Related implements Graph
func (g *MemoryGraph) Related(ctx context.Context, guid, label string, dir Direction) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, e := range g.edges {
		if e.label != label {
			continue
		}
		if dir == DirectionOut && e.outGUID == guid {
			return g.nodes[e.inGUID], nil
		}
		if dir == DirectionIn && e.inGUID == guid {
			return g.nodes[e.outGUID], nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s from %s", ErrNoSuchRelation, dir, label, guid)
}

// NodesByType implements Graph
func (g *MemoryGraph) NodesByType(ctx context.Context, typeName string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var guids []string
	for guid, n := range g.nodes {
		if v, ok := n.props[g.typeMarker]; ok && v == typeName {
			guids = append(guids, guid)
		}
	}
	sort.Strings(guids)
	return guids, nil
}

// GUID implements Node
func (n *MemoryNode) GUID() string {
	return n.guid
}

// Property implements Node
func (n *MemoryNode) Property(name string) (interface{}, bool) {
	v, ok := n.props[name]
	return v, ok
}

// PropertyNames implements Node
func (n *MemoryNode) PropertyNames() []string {
	names := make([]string, 0, len(n.props))
	for name := range n.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
