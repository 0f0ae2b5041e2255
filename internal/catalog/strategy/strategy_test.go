package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metagraph-io/metagraph/internal/catalog/naming"
	"github.com/metagraph-io/metagraph/internal/catalog/types"
	"github.com/metagraph-io/metagraph/internal/graph"
)

func newFacade() *Facade {
	g := graph.NewMemoryGraph(naming.TypeAttribute)
	return New(naming.NewResolver(), g, DefaultPolicy{})
}

func TestFacadeNamingForwarders(t *testing.T) {
	f := newFacade()

	assert.Equal(t, "__typeName", f.TypeAttributeName())
	assert.Equal(t, "__superTypeNames", f.SuperTypeAttributeName())
	assert.Equal(t, "__guid", f.IDAttributeName())
	assert.Equal(t, "__state", f.StateAttributeName())
	assert.Equal(t, "__version", f.VersionAttributeName())

	table := &types.Descriptor{Name: "Table", Category: types.CategoryClass}
	attr := types.Attribute{Name: "db", Type: table}
	assert.Equal(t, "__Table.db", f.EdgeLabel(table, attr))
	assert.Equal(t, "__Table.PII", f.TraitLabel(table, "PII"))
	assert.Equal(t, "Table.db", f.FieldName(table, attr))
}

func TestTraitEdgeDirectionsAreFixed(t *testing.T) {
	f := newFacade()

	assert.Equal(t, graph.DirectionOut, f.InstanceToTraitEdgeDirection())
	assert.Equal(t, graph.DirectionIn, f.TraitToInstanceEdgeDirection())
}

func TestFacadeTraitNames(t *testing.T) {
	g := graph.NewMemoryGraph(naming.TypeAttribute)
	f := New(naming.NewResolver(), g, DefaultPolicy{})

	tagged := g.AddNode("t-1", map[string]interface{}{
		naming.TraitNamesAttribute: []string{"PII", "Deprecated"},
	})
	bare := g.AddNode("t-2", map[string]interface{}{})

	assert.Equal(t, []string{"PII", "Deprecated"}, f.TraitNames(tagged))
	assert.Nil(t, f.TraitNames(bare))
}

func TestDefaultPolicy(t *testing.T) {
	var p DefaultPolicy

	assert.False(t, p.CollectTypeInstancesIntoVar())
	assert.True(t, p.FilterBySubTypes())
	assert.Equal(t, TraversalV3, p.SupportedTraversalVersion())
	assert.Equal(t, "has('x', 'y')", p.InitialQueryCondition("has('x', 'y')"))

	t.Run("only dates need value conversion", func(t *testing.T) {
		assert.True(t, p.PropertyValueConversionNeeded(types.DateType))
		assert.False(t, p.PropertyValueConversionNeeded(types.StringType))
		assert.False(t, p.PropertyValueConversionNeeded(types.IntType))
		assert.False(t, p.PropertyValueConversionNeeded(&types.Descriptor{
			Name:     "Status",
			Category: types.CategoryEnum,
		}))
	})
}

func TestTraversalVersionString(t *testing.T) {
	require.Equal(t, "v2", TraversalV2.String())
	require.Equal(t, "v3", TraversalV3.String())
	require.Equal(t, "unknown", TraversalVersion(9).String())
}
