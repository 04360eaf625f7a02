package node

import (
	"errors"
	"fmt"
)

// ErrNoParent is returned by sibling and ancestor queries on rootless nodes.
var ErrNoParent = errors.New("node has no parent")

// UnsupportedAccessorError reports an accessor invoked against a node whose
// tag does not declare or support that semantic. It carries the attempted
// accessor name, the offending tag, and the node itself for diagnostics.
type UnsupportedAccessorError struct {
	Accessor string
	Type     Type
	Node     *Node
}

// Error implements the error interface.
func (e *UnsupportedAccessorError) Error() string {
	return fmt.Sprintf("accessor %q is not supported for node type %q", e.Accessor, e.Type)
}

// unsupported builds an UnsupportedAccessorError for the given node.
func unsupported(n *Node, accessor string) error {
	return &UnsupportedAccessorError{Accessor: accessor, Type: n.Type, Node: n}
}
