package node

import "strings"

// Dynamic key lookup: accessor names not known in advance, synthesized from
// the keys of hash-shaped nodes. Three families are recognized by suffix:
//
//	<key>_pair    -> the pair node for <key>, nil when absent
//	<key>_value   -> the value child of that pair, nil when absent
//	<key>_source  -> the source text of the value, "" when absent
//
// The _source family returns an empty string for a missing key while the
// other two return nil. The asymmetry is intentional and load-bearing:
// callers concatenate _source results without nil checks.
//
// The key text is tried as a symbol key first, then as a string key.

const (
	pairSuffix   = "_pair"
	valueSuffix  = "_value"
	sourceSuffix = "_source"
)

// sequenceOps are the operations a parameter-list (args) node forwards to
// its underlying child sequence.
//
//nolint:gochecknoglobals // Static dispatch table.
var sequenceOps = map[string]func(n *Node) any{
	"first": func(n *Node) any { return n.slotChild(0) },
	"last": func(n *Node) any {
		if len(n.Children) == 0 {
			return nil
		}

		return n.Children[len(n.Children)-1]
	},
	"size":  func(n *Node) any { return len(n.Children) },
	"empty": func(n *Node) any { return len(n.Children) == 0 },
}

// ResolveDynamic resolves a dynamically shaped accessor name against the
// node. Hash-shaped nodes answer the three suffix families; args nodes
// forward recognized sequence operations to their children. Anything else
// is an UnsupportedAccessorError.
func (n *Node) ResolveDynamic(name string) (any, error) {
	if _, isHash := hashTags[n.Type]; isHash {
		if key, ok := strings.CutSuffix(name, pairSuffix); ok {
			pair, _, err := n.lookupKey(key)
			if err != nil || pair == nil {
				// An untyped nil, so absent keys compare == nil
				// through the any return.
				return nil, err
			}

			return pair, nil
		}

		if key, ok := strings.CutSuffix(name, valueSuffix); ok {
			pair, _, err := n.lookupKey(key)
			if err != nil || pair == nil {
				return nil, err
			}

			return pair.slotChild(1), nil
		}

		if key, ok := strings.CutSuffix(name, sourceSuffix); ok {
			pair, _, err := n.lookupKey(key)
			if err != nil || pair == nil {
				return "", err
			}

			if valueNode, ok := pair.slotChild(1).(*Node); ok {
				return valueNode.ToSource(), nil
			}

			return "", nil
		}
	}

	if n.Type == TypeArgs {
		if op, ok := sequenceOps[name]; ok {
			return op(n), nil
		}
	}

	return nil, unsupported(n, name)
}

// CanResolveDynamic mirrors ResolveDynamic without side effects: it reports
// whether the dynamically shaped name would resolve on this node. Suffix
// families additionally require the key to be present.
func (n *Node) CanResolveDynamic(name string) bool {
	if _, isHash := hashTags[n.Type]; isHash {
		for _, suffix := range []string{pairSuffix, valueSuffix, sourceSuffix} {
			if key, ok := strings.CutSuffix(name, suffix); ok {
				_, found, err := n.lookupKey(key)

				return err == nil && found
			}
		}
	}

	if n.Type == TypeArgs {
		_, ok := sequenceOps[name]

		return ok
	}

	return false
}

// lookupKey finds the pair for the given key text, trying the symbol form
// first and the string form second.
func (n *Node) lookupKey(key string) (*Node, bool, error) {
	pair, err := n.HashPair(Symbol(key))
	if err != nil {
		return nil, false, err
	}

	if pair == nil {
		pair, err = n.HashPair(key)
		if err != nil {
			return nil, false, err
		}
	}

	return pair, pair != nil, nil
}
