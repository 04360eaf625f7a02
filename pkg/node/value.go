package node

// ToValue collapses a literal-tagged node into its host-level value:
//
//   - int, float, str, sym: the stored literal child.
//   - true, false: the corresponding bool.
//   - nil: untyped nil (the absence marker).
//   - array: ToValue mapped over the elements, in order.
//   - begin (grouping): ToValue of the first child.
//
// Every other tag returns the node itself unchanged. The identity fallback
// is deliberate, not an error: callers can apply ToValue speculatively and
// check what came back.
func (n *Node) ToValue() any {
	switch n.Type {
	case TypeInt, TypeFloat, TypeStr, TypeSym:
		return n.slotChild(0)
	case TypeTrue:
		return true
	case TypeFalse:
		return false
	case TypeNil:
		return nil
	case TypeArray:
		values := make([]any, 0, len(n.Children))

		for _, child := range n.Children {
			if childNode, ok := child.(*Node); ok {
				values = append(values, childNode.ToValue())
			} else {
				values = append(values, child)
			}
		}

		return values
	case TypeBegin:
		if len(n.Children) == 0 {
			return n
		}

		if first, ok := n.Children[0].(*Node); ok {
			return first.ToValue()
		}

		return n.Children[0]
	default:
		return n
	}
}

// ToSource returns the exact original source substring spanned by the node,
// or the empty string when the node is synthetic (no span or no source
// recorded).
func (n *Node) ToSource() string {
	if n.Pos == nil || n.source == nil {
		return ""
	}

	start, end := n.Pos.StartOffset, n.Pos.EndOffset
	if end > uint(len(n.source)) || start > end {
		return ""
	}

	return string(n.source[start:end])
}
