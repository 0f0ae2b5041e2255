// Package strategy exposes the persistence conventions and behavioral
// capabilities the traversal compiler consumes: naming lookups, graph
// handle access, and a small set of policy-driven capability flags. The
// trait edge directions are fixed conventions, not policy.
package strategy

import (
	"github.com/metagraph-io/metagraph/internal/catalog/naming"
	"github.com/metagraph-io/metagraph/internal/catalog/types"
	"github.com/metagraph-io/metagraph/internal/graph"
)

// TraversalVersion is the traversal-language generation the compiler targets
type TraversalVersion int

const (
	TraversalV2 TraversalVersion = 2
	TraversalV3 TraversalVersion = 3
)

// String returns the string representation of the traversal version
func (v TraversalVersion) String() string {
	switch v {
	case TraversalV2:
		return "v2"
	case TraversalV3:
		return "v3"
	default:
		return "unknown"
	}
}

// Policy answers the capability questions traversal compilation depends
// on. The query compiler owns the default; callers may substitute their
// own.
type Policy interface {
	// CollectTypeInstancesIntoVar reports whether compiled traversals
	// should collect matched type instances into an intermediate variable.
	CollectTypeInstancesIntoVar() bool

	// FilterBySubTypes reports whether type filters should also match
	// declared subtypes.
	FilterBySubTypes() bool

	// SupportedTraversalVersion returns the traversal-language version to
	// generate.
	SupportedTraversalVersion() TraversalVersion

	// PropertyValueConversionNeeded reports whether persisted values of
	// the type differ from their logical form and need conversion in the
	// traversal.
	PropertyValueConversionNeeded(d *types.Descriptor) bool

	// InitialQueryCondition rewrites the opening condition of a traversal
	InitialQueryCondition(expr string) string
}

// Facade is the strategy surface handed to the traversal compiler
type Facade struct {
	naming *naming.Resolver
	graph  graph.Graph
	policy Policy
}

// New creates a facade over the given naming resolver and graph handle,
// using the supplied policy for capability questions.
func New(resolver *naming.Resolver, g graph.Graph, policy Policy) *Facade {
	return &Facade{naming: resolver, graph: g, policy: policy}
}

// Graph returns the acquired graph handle for the current operation
func (f *Facade) Graph() graph.Graph {
	return f.graph
}

// TypeAttributeName forwards to the naming resolver
func (f *Facade) TypeAttributeName() string {
	return f.naming.TypeAttributeName()
}

// SuperTypeAttributeName forwards to the naming resolver
func (f *Facade) SuperTypeAttributeName() string {
	return f.naming.SuperTypeAttributeName()
}

// IDAttributeName forwards to the naming resolver
func (f *Facade) IDAttributeName() string {
	return f.naming.IDAttributeName()
}

// StateAttributeName forwards to the naming resolver
func (f *Facade) StateAttributeName() string {
	return f.naming.StateAttributeName()
}

// VersionAttributeName forwards to the naming resolver
func (f *Facade) VersionAttributeName() string {
	return f.naming.VersionAttributeName()
}

// EdgeLabel forwards to the naming resolver
func (f *Facade) EdgeLabel(d *types.Descriptor, a types.Attribute) string {
	return f.naming.EdgeLabel(d, a)
}

// TraitLabel forwards to the naming resolver
func (f *Facade) TraitLabel(d *types.Descriptor, traitName string) string {
	return f.naming.TraitLabel(d, traitName)
}

// FieldName forwards to the naming resolver
func (f *Facade) FieldName(d *types.Descriptor, a types.Attribute) string {
	return f.naming.FieldName(d, a)
}

// TraitNames reads the trait names attached to a node
func (f *Facade) TraitNames(n graph.Node) []string {
	names, _ := graph.StringsProperty(n, f.naming.TraitNamesAttributeName())
	return names
}

// InstanceToTraitEdgeDirection returns the direction of trait attachment
// edges as seen from the owning instance. Always outbound; the traversal
// compiler depends on this exact convention.
func (f *Facade) InstanceToTraitEdgeDirection() graph.Direction {
	return graph.DirectionOut
}

// TraitToInstanceEdgeDirection returns the direction back from a trait to
// its owning instance. Always inbound.
func (f *Facade) TraitToInstanceEdgeDirection() graph.Direction {
	return graph.DirectionIn
}

// CollectTypeInstancesIntoVar forwards to the policy
func (f *Facade) CollectTypeInstancesIntoVar() bool {
	return f.policy.CollectTypeInstancesIntoVar()
}

// FilterBySubTypes forwards to the policy
func (f *Facade) FilterBySubTypes() bool {
	return f.policy.FilterBySubTypes()
}

// SupportedTraversalVersion forwards to the policy
func (f *Facade) SupportedTraversalVersion() TraversalVersion {
	return f.policy.SupportedTraversalVersion()
}

// PropertyValueConversionNeeded forwards to the policy
func (f *Facade) PropertyValueConversionNeeded(d *types.Descriptor) bool {
	return f.policy.PropertyValueConversionNeeded(d)
}

// InitialQueryCondition forwards to the policy
func (f *Facade) InitialQueryCondition(expr string) string {
	return f.policy.InitialQueryCondition(expr)
}
