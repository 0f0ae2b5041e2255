package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryString(t *testing.T) {
	tests := []struct {
		category Category
		expected string
	}{
		{CategoryPrimitive, "primitive"},
		{CategoryEnum, "enum"},
		{CategoryArray, "array"},
		{CategoryMap, "map"},
		{CategoryStruct, "struct"},
		{CategoryTrait, "trait"},
		{CategoryClass, "class"},
		{Category(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.category.String())
	}
}

func TestParsePrimitiveKind(t *testing.T) {
	t.Run("known kinds", func(t *testing.T) {
		for _, s := range []string{"string", "bool", "int", "bigint", "float", "date"} {
			kind, err := ParsePrimitiveKind(s)
			require.NoError(t, err)
			assert.Equal(t, s, kind.String())
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := ParsePrimitiveKind("decimal")
		assert.Error(t, err)
	})
}

func TestCompositors(t *testing.T) {
	t.Run("array descriptor", func(t *testing.T) {
		d := ArrayOf(StringType)
		assert.Equal(t, CategoryArray, d.Category)
		assert.Equal(t, "array<string>", d.Name)
		assert.Same(t, StringType, d.Element)
	})

	t.Run("map descriptor", func(t *testing.T) {
		d := MapOf(StringType, IntType)
		assert.Equal(t, CategoryMap, d.Category)
		assert.Equal(t, "map<string,int>", d.Name)
	})
}

func TestDescriptorAttribute(t *testing.T) {
	d := &Descriptor{
		Name:     "Table",
		Category: CategoryClass,
		Attributes: []Attribute{
			{Name: "name", Type: StringType, Multiplicity: Required},
			{Name: "owner", Type: StringType, Multiplicity: Optional},
		},
	}

	attr, ok := d.Attribute("owner")
	require.True(t, ok)
	assert.Equal(t, "owner", attr.Name)

	_, ok = d.Attribute("missing")
	assert.False(t, ok)
}
