// Package node provides semantic, name-based access to whitequark-style
// Ruby AST nodes: a tagged node structure with heterogeneous positional
// children, a tag schema mapping positions to slot names, derived helpers
// for slots whose meaning varies per tag family, and dynamic hash-key
// accessors.
package node

import (
	"strings"
)

// Type identifies a grammar production tag (e.g. "send", "def", "hash").
type Type string

// Symbol is a Ruby symbol literal carried as a node child (e.g. the method
// name of a send node). It is distinct from string so hash-key lookups can
// distinguish symbol keys from string keys.
type Symbol string

// Positions holds line/column and byte-offset spans for a node.
// Lines and columns are 1-based; offsets are byte offsets into the source.
type Positions struct {
	StartLine   uint `json:"start_line,omitempty"`
	StartCol    uint `json:"start_col,omitempty"`
	StartOffset uint `json:"start_offset,omitempty"`
	EndLine     uint `json:"end_line,omitempty"`
	EndCol      uint `json:"end_col,omitempty"`
	EndOffset   uint `json:"end_offset,omitempty"`
}

// Node is a tagged AST node. Children are ordered and positionally
// significant; each child is either a *Node or a literal value (int64,
// float64, string, Symbol, or nil as the absence marker).
//
// Children are never mutated after construction. The parent back-reference
// is the only mutable state: it is set once when the owning parent is
// constructed, or explicitly via SetParent.
type Node struct {
	Type     Type
	Children []any
	Pos      *Positions

	source []byte
	parent *Node
}

// New constructs a node and back-links every child that is itself a node to
// the freshly built parent. A nil or empty children list is valid (leaf
// tags such as "self" or "nil" carry no children).
func New(t Type, children ...any) *Node {
	built := &Node{Type: t, Children: children}

	for _, child := range children {
		if childNode, ok := child.(*Node); ok && childNode != nil {
			childNode.parent = built
		}
	}

	return built
}

// WithPos attaches position information and returns the same node.
func (n *Node) WithPos(pos *Positions) *Node {
	n.Pos = pos

	return n
}

// WithSource attaches the original source text the node's Pos offsets index
// into, enabling ToSource. Returns the same node.
func (n *Node) WithSource(source []byte) *Node {
	n.source = source

	return n
}

// Parent returns the owning node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// SetParent re-parents the node. Escape hatch for composing fragments; no
// schema validation is performed.
func (n *Node) SetParent(parent *Node) {
	n.parent = parent
}

// Siblings returns the parent's children strictly after this node, in
// original order. The node is located within the parent by identity, not
// value equality. Returns ErrNoParent for a rootless node and an empty
// slice when the node is the last child.
func (n *Node) Siblings() ([]any, error) {
	if n.parent == nil {
		return nil, ErrNoParent
	}

	for idx, child := range n.parent.Children {
		if childNode, ok := child.(*Node); ok && childNode == n {
			return n.parent.Children[idx+1:], nil
		}
	}

	return nil, ErrNoParent
}

// Find returns every node in the subtree (including n) with the given tag,
// in pre-order.
func (n *Node) Find(t Type) []*Node {
	if n == nil {
		return nil
	}

	var result []*Node

	stack := []*Node{n}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if curr.Type == t {
			result = append(result, curr)
		}

		for idx := len(curr.Children) - 1; idx >= 0; idx-- {
			if childNode, ok := curr.Children[idx].(*Node); ok && childNode != nil {
				stack = append(stack, childNode)
			}
		}
	}

	return result
}

// ChildNodes returns only the children that are nodes, skipping literals.
func (n *Node) ChildNodes() []*Node {
	nodes := make([]*Node, 0, len(n.Children))

	for _, child := range n.Children {
		if childNode, ok := child.(*Node); ok && childNode != nil {
			nodes = append(nodes, childNode)
		}
	}

	return nodes
}

// String renders the node in s-expression notation, the native notation of
// the grammar: s(:send, nil, :foo, s(:int, 1)).
func (n *Node) String() string {
	var buf strings.Builder

	writeSexp(&buf, n)

	return buf.String()
}
