// Package pathid derives hierarchical path identifiers for declarations.
//
// Top-level declarations are named by their simple name, prefixed with the
// slash-separated package when the tree has one. Members are qualified with
// "." relative to their enclosing declaration. Declarations local to a
// function body are reported as Sentinel and their subtrees are skipped,
// unless the walk runs in Full mode.
package pathid

import (
	"strings"

	"github.com/calumari/declgen/internal/symtree"
)

// Sentinel stands in for the identifier of a declaration without a name.
const Sentinel = "<no name>"

// Mode selects how far the walk descends.
type Mode uint8

const (
	// Structural visits members only; function-body locals collapse to Sentinel.
	Structural Mode = iota
	// Full descends into function-body locals and qualifies them like members.
	Full
)

// Visitor receives every visited declaration together with its identifier.
// Returning false skips the declaration's members.
type Visitor interface {
	Visit(node symtree.Node, path string) bool
}

// VisitorFunc adapts a function to Visitor.
type VisitorFunc func(node symtree.Node, path string) bool

func (f VisitorFunc) Visit(node symtree.Node, path string) bool { return f(node, path) }

// Option configures a walk.
type Option func(*walker)

// WithMode sets the descent mode. The default is Structural.
func WithMode(m Mode) Option {
	return func(w *walker) { w.mode = m }
}

type walker struct {
	tree   *symtree.Tree
	v      Visitor
	mode   Mode
	prefix string
	stack  []string // identifiers of the enclosing declarations, outermost first
}

// Walk visits tree in pre-order, members in declaration order.
func Walk(tree *symtree.Tree, v Visitor, opts ...Option) {
	w := &walker{tree: tree, v: v}
	for _, opt := range opts {
		opt(w)
	}
	if pkg := tree.Package(); pkg != "" {
		w.prefix = strings.ReplaceAll(pkg, ".", "/") + "/"
	}
	for _, id := range tree.Roots() {
		w.visit(id)
	}
}

// Traverse returns the identifier of every visited declaration in walk order.
func Traverse(tree *symtree.Tree, opts ...Option) []string {
	var out []string
	Walk(tree, VisitorFunc(func(_ symtree.Node, path string) bool {
		out = append(out, path)
		return true
	}), opts...)
	return out
}

func (w *walker) visit(id symtree.NodeID) {
	n := w.tree.Node(id)
	if w.mode == Structural && w.isLocal(n) {
		w.v.Visit(n, Sentinel)
		return
	}
	path := w.qualify(n)
	if !w.v.Visit(n, path) {
		return
	}
	w.stack = append(w.stack, path)
	for _, child := range n.Children {
		w.visit(child)
	}
	w.stack = w.stack[:len(w.stack)-1]
}

func (w *walker) isLocal(n symtree.Node) bool {
	if n.Kind == symtree.KindLocal {
		return true
	}
	return n.Parent != symtree.NoNode && w.tree.Node(n.Parent).Kind == symtree.KindFunction
}

func (w *walker) qualify(n symtree.Node) string {
	segment := n.Name
	if !n.Named() {
		segment = Sentinel
	}
	if len(w.stack) == 0 {
		if !n.Named() {
			return Sentinel
		}
		return w.prefix + segment
	}
	return w.stack[len(w.stack)-1] + "." + segment
}
