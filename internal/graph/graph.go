// Package graph defines the read-side boundary to the property graph the
// catalog is persisted in: nodes with typed properties, directed labeled
// edges, and guid-based lookup. Implementations live in subpackages; an
// in-memory graph is provided here for tests and seeding.
package graph

import "context"

// Direction of edge traversal relative to a node
type Direction int

const (
	DirectionOut Direction = iota
	DirectionIn
)

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case DirectionOut:
		return "out"
	case DirectionIn:
		return "in"
	default:
		return "unknown"
	}
}

// Node is a persisted graph entity holding typed properties
type Node interface {
	// GUID returns the node's unique, stable identifier
	GUID() string

	// Property reads a single-valued property. The second return is false
	// when the property is not set on the node.
	Property(name string) (interface{}, bool)

	// PropertyNames returns the names of all set properties
	PropertyNames() []string
}

// Graph is an acquired read handle on the property graph for one operation
type Graph interface {
	// Node looks a node up by guid
	Node(ctx context.Context, guid string) (Node, error)

	// EdgeTarget resolves an edge identifier to the node the edge points to
	EdgeTarget(ctx context.Context, edgeID string) (Node, error)

	// Related follows a single labeled edge from the node in the given
	// direction and returns the node at the other end.
	Related(ctx context.Context, guid, label string, dir Direction) (Node, error)

	// NodesByType returns the guids of all nodes carrying the given value
	// in their type-marker property.
	NodesByType(ctx context.Context, typeName string) ([]string, error)
}

// StringProperty reads a property and asserts it to string
func StringProperty(n Node, name string) (string, bool) {
	v, ok := n.Property(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Int64Property reads a property and asserts it to int64, widening the
// integer representations a store may hand back.
func Int64Property(n Node, name string) (int64, bool) {
	v, ok := n.Property(name)
	if !ok {
		return 0, false
	}
	switch i := v.(type) {
	case int:
		return int64(i), true
	case int32:
		return int64(i), true
	case int64:
		return i, true
	case float64:
		return int64(i), true
	}
	return 0, false
}

// StringsProperty reads a multi-valued string property (trait names,
// super-type names). Stores persist these as []interface{} or []string.
func StringsProperty(n Node, name string) ([]string, bool) {
	v, ok := n.Property(name)
	if !ok {
		return nil, false
	}
	switch vs := v.(type) {
	case []string:
		return vs, true
	case []interface{}:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
