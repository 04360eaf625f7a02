package node

// Derived helpers: slots whose meaning is not a single static index but
// depends on the node's tag family. Helpers restricted to specific tags
// return UnsupportedAccessorError for any other tag; HashPair, HashValue,
// and HasKey deliberately return an absent result for a missing key instead
// (see their doc comments).

// argumentSlotIndex is the position of the parameter-list child per
// definition-like tag.
//
//nolint:gochecknoglobals // Static index table.
var argumentSlotIndex = map[Type]int{
	TypeDef:      1,
	TypeDefs:     2,
	TypeBlock:    1,
	TypeNumblock: 1,
}

// callPrefixLen is the number of fixed leading children (receiver, message)
// preceding the argument list of call-like tags.
const callPrefixLen = 2

// bodySlotIndex is the position where the body starts per tag family.
//
//nolint:gochecknoglobals // Static index table.
var bodySlotIndex = map[Type]int{
	TypeBegin:     0,
	TypeKwbegin:   0,
	TypeModule:    1,
	TypeSclass:    1,
	TypeWhen:      1,
	TypeWhile:     1,
	TypeWhilePost: 1,
	TypeUntil:     1,
	TypeUntilPost: 1,
	TypeBlock:     2,
	TypeClass:     2,
	TypeDef:       2,
	TypeFor:       2,
	TypeInPattern: 2,
	TypeNumblock:  2,
	TypeDefs:      3,
}

// elementTags are the tags whose children are all elements. regexp is
// handled separately: its last child is the options node.
//
//nolint:gochecknoglobals // Static tag set.
var elementTags = map[Type]struct{}{
	TypeArray:        {},
	TypeArrayPattern: {},
	TypeDstr:         {},
	TypeDsym:         {},
	TypeFindPattern:  {},
	TypeMlhs:         {},
	TypeXstr:         {},
}

// hashTags are the hash-shaped tags supporting pair-based helpers.
//
//nolint:gochecknoglobals // Static tag set.
var hashTags = map[Type]struct{}{
	TypeHash:        {},
	TypeHashPattern: {},
}

// Arguments returns the node's argument list:
//
//   - definition-like tags (def, defs, block, numblock): the children of the
//     designated parameter-list child, flattened one level; a non-composite
//     child (numblock's numeric arity) is wrapped in a one-element slice.
//   - call-like tags (send, csend): every child after the receiver+message
//     prefix.
//   - variadic tags (defined?, yield, super, undef): all children verbatim.
//
// Any other tag is an UnsupportedAccessorError.
func (n *Node) Arguments() ([]any, error) {
	if idx, ok := argumentSlotIndex[n.Type]; ok {
		child := n.slotChild(idx)
		if child == nil {
			return []any{}, nil
		}

		if childNode, ok := child.(*Node); ok && childNode.Type == TypeArgs {
			return childNode.Children, nil
		}

		return []any{child}, nil
	}

	switch n.Type {
	case TypeSend, TypeCsend:
		if len(n.Children) <= callPrefixLen {
			return []any{}, nil
		}

		return n.Children[callPrefixLen:], nil
	case TypeDefined, TypeYield, TypeSuper, TypeUndef:
		return n.Children, nil
	default:
		return nil, unsupported(n, "arguments")
	}
}

// Body returns the node's statement list. The starting position depends on
// the tag family (bodySlotIndex); a begin node sitting at that position is
// transparently unwrapped so its statements come back flattened. An absent
// starting child yields an empty slice.
func (n *Node) Body() ([]any, error) {
	start, ok := bodySlotIndex[n.Type]
	if !ok {
		return nil, unsupported(n, "body")
	}

	if start >= len(n.Children) || n.Children[start] == nil {
		return []any{}, nil
	}

	if grouped, ok := n.Children[start].(*Node); ok && grouped.Type == TypeBegin {
		return grouped.Children, nil
	}

	return n.Children[start:], nil
}

// WhenStatements returns the when branches of a case node: every child
// between the discriminant expression and the trailing else branch.
func (n *Node) WhenStatements() ([]any, error) {
	if n.Type != TypeCase {
		return nil, unsupported(n, "when_statements")
	}

	return n.innerChildren(), nil
}

// InStatements returns the in branches of a case_match node: every child
// between the discriminant expression and the trailing else branch.
func (n *Node) InStatements() ([]any, error) {
	if n.Type != TypeCaseMatch {
		return nil, unsupported(n, "in_statements")
	}

	return n.innerChildren(), nil
}

// RescueBodies returns the resbody branches of a rescue node: every child
// between the protected body and the trailing else branch.
func (n *Node) RescueBodies() ([]any, error) {
	if n.Type != TypeRescue {
		return nil, unsupported(n, "rescue_bodies")
	}

	return n.innerChildren(), nil
}

// innerChildren slices off the first and last child (the bracketing
// expression and the else branch).
func (n *Node) innerChildren() []any {
	if len(n.Children) <= 2 {
		return []any{}
	}

	return n.Children[1 : len(n.Children)-1]
}

// EnsureBody returns the ensure statements of an ensure node: every child
// after the protected body.
func (n *Node) EnsureBody() ([]any, error) {
	if n.Type != TypeEnsure {
		return nil, unsupported(n, "ensure_body")
	}

	if len(n.Children) <= 1 {
		return []any{}, nil
	}

	return n.Children[1:], nil
}

// ElseStatement returns the last child. Universal: no tag check, since the
// else branch is by convention the trailing child of every branching tag
// (if, case, case_match, rescue). Meaningful only for those tags; the
// caller is expected to know.
func (n *Node) ElseStatement() (any, error) {
	if len(n.Children) == 0 {
		return nil, nil
	}

	return n.Children[len(n.Children)-1], nil
}

// Elements returns the element children of a collection-shaped node. For
// regexp nodes the trailing options node is excluded.
func (n *Node) Elements() ([]any, error) {
	if _, ok := elementTags[n.Type]; ok {
		return n.Children, nil
	}

	if n.Type == TypeRegexp {
		if len(n.Children) == 0 {
			return []any{}, nil
		}

		return n.Children[:len(n.Children)-1], nil
	}

	return nil, unsupported(n, "elements")
}

// Options returns the regopt child of a regexp node (the last child).
func (n *Node) Options() (any, error) {
	if n.Type != TypeRegexp {
		return nil, unsupported(n, "options")
	}

	if len(n.Children) == 0 {
		return nil, nil
	}

	return n.Children[len(n.Children)-1], nil
}

// Exceptions returns the exception-class list of a resbody node (the first
// child).
func (n *Node) Exceptions() (any, error) {
	if n.Type != TypeResbody {
		return nil, unsupported(n, "exceptions")
	}

	return n.slotChild(0), nil
}

// Pairs returns the pair children of a hash-shaped node.
func (n *Node) Pairs() ([]*Node, error) {
	return n.childrenOfType("pairs", TypePair)
}

// Kwsplats returns the kwsplat children of a hash-shaped node.
func (n *Node) Kwsplats() ([]*Node, error) {
	return n.childrenOfType("kwsplats", TypeKwsplat)
}

func (n *Node) childrenOfType(accessor string, want Type) ([]*Node, error) {
	if _, ok := hashTags[n.Type]; !ok {
		return nil, unsupported(n, accessor)
	}

	matched := make([]*Node, 0, len(n.Children))

	for _, child := range n.Children {
		if childNode, ok := child.(*Node); ok && childNode.Type == want {
			matched = append(matched, childNode)
		}
	}

	return matched, nil
}

// Keys returns the key child of every pair of a hash-shaped node.
func (n *Node) Keys() ([]any, error) {
	return n.mapPairs(0)
}

// Values returns the value child of every pair of a hash-shaped node.
func (n *Node) Values() ([]any, error) {
	return n.mapPairs(1)
}

func (n *Node) mapPairs(slot int) ([]any, error) {
	pairs, err := n.Pairs()
	if err != nil {
		return nil, err
	}

	mapped := make([]any, 0, len(pairs))

	for _, pair := range pairs {
		mapped = append(mapped, pair.slotChild(slot))
	}

	return mapped, nil
}

// HasKey reports whether any pair's key, after value extraction, equals
// key. A missing key is false, not an error; a non-hash tag is still an
// UnsupportedAccessorError.
func (n *Node) HasKey(key any) (bool, error) {
	pair, err := n.HashPair(key)
	if err != nil {
		return false, err
	}

	return pair != nil, nil
}

// HashPair returns the first pair whose extracted key equals key, or nil
// when no pair matches. The nil result is deliberate find-first semantics,
// not an error.
func (n *Node) HashPair(key any) (*Node, error) {
	pairs, err := n.Pairs()
	if err != nil {
		return nil, err
	}

	for _, pair := range pairs {
		if keyEqual(pair.slotChild(0), key) {
			return pair, nil
		}
	}

	return nil, nil
}

// HashValue returns the value child of the first pair whose extracted key
// equals key, or nil when no pair matches.
func (n *Node) HashValue(key any) (any, error) {
	pair, err := n.HashPair(key)
	if err != nil || pair == nil {
		return nil, err
	}

	return pair.slotChild(1), nil
}

// keyEqual compares a pair's key child against the requested key through
// value extraction, so s(:sym, :foo) matches Symbol("foo") and s(:str,
// "foo") matches "foo".
func keyEqual(keyChild, key any) bool {
	extracted := keyChild
	if keyNode, ok := keyChild.(*Node); ok {
		extracted = keyNode.ToValue()
	}

	return extracted == key
}
