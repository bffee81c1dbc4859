package symtree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Run("children keep insertion order", func(t *testing.T) {
		b := NewBuilder("")
		outer := b.Add(NoNode, KindClass, "Outer")
		val := b.Add(outer, KindProperty, "Val")
		foo := b.Add(outer, KindFunction, "Foo")
		tree := b.Build()

		require.Equal(t, []NodeID{outer}, tree.Roots())
		require.Equal(t, []NodeID{val, foo}, tree.Children(outer))
		require.Equal(t, outer, tree.Parent(foo))
		require.True(t, tree.IsTopLevel(outer))
		require.False(t, tree.IsTopLevel(val))
		require.Equal(t, 3, tree.Len())
	})

	t.Run("returned slices do not alias the tree", func(t *testing.T) {
		b := NewBuilder("")
		outer := b.Add(NoNode, KindClass, "Outer")
		b.Add(outer, KindProperty, "a")
		tree := b.Build()

		kids := tree.Children(outer)
		kids[0] = 42
		require.Equal(t, NodeID(1), tree.Children(outer)[0])
	})

	t.Run("unknown parent panics", func(t *testing.T) {
		b := NewBuilder("")
		require.Panics(t, func() { b.Add(7, KindClass, "X") })
	})
}

func TestDecode(t *testing.T) {
	t.Run("nested snapshot", func(t *testing.T) {
		src := `
package: test.pack
declarations:
  - kind: class
    name: Outer
    members:
      - kind: property
        name: Val
      - kind: function
        name: Foo
        members:
          - kind: local
`
		tree, err := Decode(strings.NewReader(src))
		require.NoError(t, err)
		require.Equal(t, "test.pack", tree.Package())
		require.Equal(t, 4, tree.Len())
		foo := tree.Children(tree.Roots()[0])[1]
		require.Equal(t, KindFunction, tree.Node(foo).Kind)
		local := tree.Node(tree.Children(foo)[0])
		require.Equal(t, KindLocal, local.Kind)
		require.False(t, local.Named())
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := Decode(strings.NewReader("declarations:\n  - kind: struct\n    name: X\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), `unknown declaration kind "struct"`)
	})
}
