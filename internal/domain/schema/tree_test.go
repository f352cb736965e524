package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	t.Run("Flat paths become leaves", func(t *testing.T) {
		tree := NewBuilder().Build(map[string]any{
			"customer": "string",
			"total":    0,
		})
		require.NotNil(t, tree.Root)
		assert.Equal(t, KindLeaf, tree.Root.Children["customer"].Kind)
		assert.Equal(t, "string", tree.Root.Children["customer"].Placeholder)
		assert.Equal(t, KindLeaf, tree.Root.Children["total"].Kind)
	})

	t.Run("Dot paths become nested objects", func(t *testing.T) {
		tree := NewBuilder().Build(map[string]any{
			"address.city":    "string",
			"address.country": "string",
		})
		addr := tree.Root.Children["address"]
		require.NotNil(t, addr)
		assert.Equal(t, KindObject, addr.Kind)
		assert.Len(t, addr.Children, 2)
		assert.Equal(t, KindLeaf, addr.Children["city"].Kind)
	})

	t.Run("Known array segments become templates", func(t *testing.T) {
		tree := NewBuilder().Build(map[string]any{
			"line_items.sku": "string",
			"line_items.qty": 0,
		})
		items := tree.Root.Children["line_items"]
		require.NotNil(t, items)
		assert.Equal(t, KindArrayTemplate, items.Kind)
		require.NotNil(t, items.Elem)
		assert.Equal(t, KindObject, items.Elem.Kind)
		assert.Len(t, items.Elem.Children, 2)
	})

	t.Run("Objects win over leaves regardless of insertion order", func(t *testing.T) {
		// Both orders must produce the same tree: building is idempotent
		// per path and a deeper path implies a parent object.
		flat1 := map[string]any{"customer": "string", "customer.name": "string"}
		flat2 := map[string]any{"customer.name": "string", "customer": "string"}

		for _, flat := range []map[string]any{flat1, flat2} {
			tree := NewBuilder().Build(flat)
			customer := tree.Root.Children["customer"]
			require.NotNil(t, customer)
			assert.Equal(t, KindObject, customer.Kind)
			assert.True(t, customer.Explicit)
			assert.Equal(t, KindLeaf, customer.Children["name"].Kind)
		}
	})

	t.Run("Custom array keys replace the default set", func(t *testing.T) {
		tree := NewBuilder("cartons").Build(map[string]any{
			"cartons.weight":  0,
			"line_items.name": "string",
		})
		assert.Equal(t, KindArrayTemplate, tree.Root.Children["cartons"].Kind)
		// line_items is no longer special when a custom set is given.
		assert.Equal(t, KindObject, tree.Root.Children["line_items"].Kind)
	})

	t.Run("Terminal array segment keeps a leaf template", func(t *testing.T) {
		tree := NewBuilder().Build(map[string]any{"boxes": "string"})
		boxes := tree.Root.Children["boxes"]
		require.NotNil(t, boxes)
		assert.Equal(t, KindArrayTemplate, boxes.Kind)
		assert.Equal(t, KindLeaf, boxes.Elem.Kind)
	})
}
