package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGraphNodes(t *testing.T) {
	g := NewMemoryGraph("__typeName")
	ctx := context.Background()

	g.AddNode("g-1", map[string]interface{}{"__typeName": "Table", "Table.name": "users"})

	t.Run("lookup", func(t *testing.T) {
		n, err := g.Node(ctx, "g-1")
		require.NoError(t, err)
		assert.Equal(t, "g-1", n.GUID())

		name, ok := StringProperty(n, "Table.name")
		require.True(t, ok)
		assert.Equal(t, "users", name)
	})

	t.Run("missing node", func(t *testing.T) {
		_, err := g.Node(ctx, "nope")
		assert.ErrorIs(t, err, ErrNodeNotFound)
	})

	t.Run("nodes by type", func(t *testing.T) {
		g.AddNode("g-2", map[string]interface{}{"__typeName": "Table"})
		g.AddNode("g-3", map[string]interface{}{"__typeName": "DB"})

		guids, err := g.NodesByType(ctx, "Table")
		require.NoError(t, err)
		assert.Equal(t, []string{"g-1", "g-2"}, guids)
	})
}

func TestMemoryGraphEdges(t *testing.T) {
	g := NewMemoryGraph("__typeName")
	ctx := context.Background()

	g.AddNode("a", map[string]interface{}{"__typeName": "DB"})
	g.AddNode("b", map[string]interface{}{"__typeName": "Table"})
	require.NoError(t, g.AddEdge("e-1", "__DB.tables", "a", "b"))

	t.Run("edge target", func(t *testing.T) {
		n, err := g.EdgeTarget(ctx, "e-1")
		require.NoError(t, err)
		assert.Equal(t, "b", n.GUID())
	})

	t.Run("missing edge", func(t *testing.T) {
		_, err := g.EdgeTarget(ctx, "e-404")
		assert.ErrorIs(t, err, ErrEdgeNotFound)
	})

	t.Run("related outbound", func(t *testing.T) {
		n, err := g.Related(ctx, "a", "__DB.tables", DirectionOut)
		require.NoError(t, err)
		assert.Equal(t, "b", n.GUID())
	})

	t.Run("related inbound", func(t *testing.T) {
		n, err := g.Related(ctx, "b", "__DB.tables", DirectionIn)
		require.NoError(t, err)
		assert.Equal(t, "a", n.GUID())
	})

	t.Run("no such relation", func(t *testing.T) {
		_, err := g.Related(ctx, "a", "__DB.tables", DirectionIn)
		assert.ErrorIs(t, err, ErrNoSuchRelation)
	})

	t.Run("edge to unknown node rejected", func(t *testing.T) {
		err := g.AddEdge("e-2", "x", "a", "ghost")
		assert.ErrorIs(t, err, ErrNodeNotFound)
	})
}

func TestPropertyHelpers(t *testing.T) {
	g := NewMemoryGraph("__typeName")
	g.AddNode("n", map[string]interface{}{
		"s":       "text",
		"i":       7,
		"i64":     int64(9),
		"f":       float64(12),
		"strs":    []string{"a", "b"},
		"mixed":   []interface{}{"a", "b"},
		"badMix":  []interface{}{"a", 1},
		"notInts": "x",
	})
	n, err := g.Node(context.Background(), "n")
	require.NoError(t, err)

	t.Run("string property", func(t *testing.T) {
		v, ok := StringProperty(n, "s")
		assert.True(t, ok)
		assert.Equal(t, "text", v)

		_, ok = StringProperty(n, "i")
		assert.False(t, ok)
		_, ok = StringProperty(n, "absent")
		assert.False(t, ok)
	})

	t.Run("int64 property widens", func(t *testing.T) {
		for _, name := range []string{"i", "i64", "f"} {
			v, ok := Int64Property(n, name)
			assert.True(t, ok, name)
			assert.NotZero(t, v)
		}
		_, ok := Int64Property(n, "notInts")
		assert.False(t, ok)
	})

	t.Run("strings property", func(t *testing.T) {
		v, ok := StringsProperty(n, "strs")
		assert.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, v)

		v, ok = StringsProperty(n, "mixed")
		assert.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, v)

		_, ok = StringsProperty(n, "badMix")
		assert.False(t, ok)
	})
}
