package node

import "errors"

// accessorFunc resolves one named accessor against a node.
type accessorFunc func(n *Node) (any, error)

// derivedAccessors maps slot names whose semantics are not a single static
// index to their tag-aware resolution logic. Every other name in the schema
// union resolves through the positional lookup in slotChild.
//
// Built at init time from the derived-helper methods so the dispatch table
// and the typed API can never drift apart.
//
//nolint:gochecknoglobals // Static dispatch table, never mutated after init.
var derivedAccessors = map[string]accessorFunc{
	"arguments":       func(n *Node) (any, error) { return n.Arguments() },
	"body":            func(n *Node) (any, error) { return n.Body() },
	"elements":        func(n *Node) (any, error) { return n.Elements() },
	"else_statement":  func(n *Node) (any, error) { return n.ElseStatement() },
	"ensure_body":     func(n *Node) (any, error) { return n.EnsureBody() },
	"exceptions":      func(n *Node) (any, error) { return n.Exceptions() },
	"in_statements":   func(n *Node) (any, error) { return n.InStatements() },
	"options":         func(n *Node) (any, error) { return n.Options() },
	"pairs":           func(n *Node) (any, error) { return asAny(n.Pairs()) },
	"rescue_bodies":   func(n *Node) (any, error) { return n.RescueBodies() },
	"when_statements": func(n *Node) (any, error) { return n.WhenStatements() },
}

// auxiliaryAccessors are accessor names outside the schema union that still
// resolve by name: helpers derived from pairs plus the value/source
// extractors.
//
//nolint:gochecknoglobals // Static dispatch table, never mutated after init.
var auxiliaryAccessors = map[string]accessorFunc{
	"keys":      func(n *Node) (any, error) { return n.Keys() },
	"kwsplats":  func(n *Node) (any, error) { return asAny(n.Kwsplats()) },
	"values":    func(n *Node) (any, error) { return n.Values() },
	"to_value":  func(n *Node) (any, error) { return n.ToValue(), nil },
	"to_source": func(n *Node) (any, error) { return n.ToSource(), nil },
}

func asAny(nodes []*Node, err error) (any, error) {
	if err != nil {
		return nil, err
	}

	return nodes, nil
}

// ChildByName resolves a named accessor against the node's tag: derived
// helpers first, then the positional slot lookup from the tag schema, then
// the dynamic hash-key families. Returns UnsupportedAccessorError when the
// tag declares no such slot and no dynamic family matches.
//
// Resolution is a pure function of (tag, children, name): deterministic,
// no side effects on failure.
func (n *Node) ChildByName(name string) (any, error) {
	if fn, ok := derivedAccessors[name]; ok {
		value, err := fn(n)

		// Tags outside a derived helper's family may still declare the
		// name as a plain positional slot (rescue's single-child body,
		// for example). The helper stays authoritative for its family.
		var unsup *UnsupportedAccessorError
		if errors.As(err, &unsup) {
			if idx, ok := slotIndex(n.Type, name); ok {
				return n.slotChild(idx), nil
			}
		}

		return value, err
	}

	if fn, ok := auxiliaryAccessors[name]; ok {
		return fn(n)
	}

	if idx, ok := slotIndex(n.Type, name); ok {
		return n.slotChild(idx), nil
	}

	// The dynamic families answer missing keys with their fallback values,
	// so the name shape alone decides whether they apply.
	return n.ResolveDynamic(name)
}

// slotChild returns the child at the given slot index, or nil when a
// well-formed optional trailing slot is simply absent.
func (n *Node) slotChild(idx int) any {
	if idx >= len(n.Children) {
		return nil
	}

	return n.Children[idx]
}
