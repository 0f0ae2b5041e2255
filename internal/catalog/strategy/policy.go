package strategy

import "github.com/metagraph-io/metagraph/internal/catalog/types"

// DefaultPolicy is the capability policy the query compiler maintains as
// its default. Persisted dates differ from their logical representation,
// so they are the one primitive that needs value conversion in traversals.
type DefaultPolicy struct{}

// CollectTypeInstancesIntoVar implements Policy
func (DefaultPolicy) CollectTypeInstancesIntoVar() bool {
	return false
}

// FilterBySubTypes implements Policy
func (DefaultPolicy) FilterBySubTypes() bool {
	return true
}

// SupportedTraversalVersion implements Policy
func (DefaultPolicy) SupportedTraversalVersion() TraversalVersion {
	return TraversalV3
}

// PropertyValueConversionNeeded implements Policy
func (DefaultPolicy) PropertyValueConversionNeeded(d *types.Descriptor) bool {
	return d.Category == types.CategoryPrimitive && d.Kind == types.KindDate
}

// InitialQueryCondition implements Policy
func (DefaultPolicy) InitialQueryCondition(expr string) string {
	return expr
}
