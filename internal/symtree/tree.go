// Package symtree holds an immutable snapshot of a declaration tree.
//
// Nodes live in a single arena and refer to each other by index, so a Tree
// can be shared freely once Build has returned.
package symtree

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind classifies a declaration node.
type Kind uint8

const (
	KindClass Kind = iota
	KindFunction
	KindProperty
	KindLocal // local or anonymous declaration
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindProperty:
		return "property"
	case KindLocal:
		return "local"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "class":
		return KindClass, nil
	case "function":
		return KindFunction, nil
	case "property":
		return KindProperty, nil
	case "local":
		return KindLocal, nil
	}
	return 0, errors.Newf("unknown declaration kind %q", s)
}

// NodeID indexes a node inside its Tree.
type NodeID int

// NoNode is the parent of top-level declarations.
const NoNode NodeID = -1

// Node is one declaration. An empty Name means the declaration is anonymous.
type Node struct {
	ID       NodeID
	Kind     Kind
	Name     string
	Parent   NodeID
	Children []NodeID
}

// Named reports whether the node carries a simple name.
func (n Node) Named() bool { return n.Name != "" }

// Tree is a frozen declaration arena.
type Tree struct {
	pkg   string
	nodes []Node
	roots []NodeID
}

// Package returns the dotted package the declarations belong to, if any.
func (t *Tree) Package() string { return t.pkg }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Roots returns the top-level declarations in source order.
func (t *Tree) Roots() []NodeID { return append([]NodeID(nil), t.roots...) }

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) Node {
	n := t.nodes[id]
	n.Children = append([]NodeID(nil), n.Children...)
	return n
}

// Children returns the direct members of id in insertion order.
func (t *Tree) Children(id NodeID) []NodeID {
	return append([]NodeID(nil), t.nodes[id].Children...)
}

// Parent returns the enclosing declaration of id, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].Parent }

// IsTopLevel reports whether id is declared directly in the root scope.
func (t *Tree) IsTopLevel(id NodeID) bool { return t.nodes[id].Parent == NoNode }

// Builder assembles a Tree. A Builder must not be used after Build.
type Builder struct {
	pkg   string
	nodes []Node
	roots []NodeID
}

// NewBuilder starts a tree for the given dotted package ("" for none).
func NewBuilder(pkg string) *Builder {
	return &Builder{pkg: pkg}
}

// Add appends a declaration under parent (NoNode for top level) and returns
// its id. It panics when parent does not exist.
func (b *Builder) Add(parent NodeID, kind Kind, name string) NodeID {
	id := NodeID(len(b.nodes))
	if parent != NoNode && (parent < 0 || int(parent) >= len(b.nodes)) {
		panic(fmt.Sprintf("symtree: parent %d out of range", parent))
	}
	b.nodes = append(b.nodes, Node{ID: id, Kind: kind, Name: name, Parent: parent})
	if parent == NoNode {
		b.roots = append(b.roots, id)
	} else {
		b.nodes[parent].Children = append(b.nodes[parent].Children, id)
	}
	return id
}

// Build freezes the builder into a Tree.
func (b *Builder) Build() *Tree {
	nodes := make([]Node, len(b.nodes))
	for i, n := range b.nodes {
		n.Children = append([]NodeID(nil), n.Children...)
		nodes[i] = n
	}
	t := &Tree{pkg: b.pkg, nodes: nodes, roots: append([]NodeID(nil), b.roots...)}
	b.nodes, b.roots = nil, nil
	return t
}
