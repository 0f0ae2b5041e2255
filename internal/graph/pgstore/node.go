package pgstore

import "sort"

// storeNode is a node fully loaded from the store. JSONB decoding yields
// float64 numbers and []interface{} slices; the graph package's typed
// accessors normalize both.
type storeNode struct {
	guid  string
	props map[string]interface{}
}

// GUID implements graph.Node
func (n *storeNode) GUID() string {
	return n.guid
}

// Property implements graph.Node
func (n *storeNode) Property(name string) (interface{}, bool) {
	v, ok := n.props[name]
	return v, ok
}

// PropertyNames implements graph.Node
func (n *storeNode) PropertyNames() []string {
	names := make([]string, 0, len(n.props))
	for name := range n.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
