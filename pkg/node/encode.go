package node

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Serialization of trees. Two encodings are supported:
//
//   - JSON: structural round-trip. Literal children carry an explicit
//     value_type discriminator so int64 vs float64 vs symbol vs string
//     survive the trip; node children are nested objects with a "type" key.
//     Positions round-trip, the backing source bytes do not: a reloaded
//     tree answers ToSource with "".
//   - s-expressions: the grammar's native display notation, write-only.

// jsonNode is the wire shape of a node.
type jsonNode struct {
	Type     Type              `json:"type"`
	Children []json.RawMessage `json:"children,omitempty"`
	Pos      *Positions        `json:"pos,omitempty"`
}

// jsonLiteral is the wire shape of a literal child.
type jsonLiteral struct {
	ValueType string `json:"value_type"`
	Value     any    `json:"value"`
}

// Literal discriminators used in the JSON encoding.
const (
	literalInt    = "int"
	literalFloat  = "float"
	literalString = "string"
	literalSymbol = "symbol"
	literalBool   = "bool"
)

// MarshalJSON encodes the node tree with typed literal children.
func (n *Node) MarshalJSON() ([]byte, error) {
	wire := jsonNode{Type: n.Type, Pos: n.Pos}

	for _, child := range n.Children {
		raw, err := marshalChild(child)
		if err != nil {
			return nil, err
		}

		wire.Children = append(wire.Children, raw)
	}

	return json.Marshal(wire)
}

func marshalChild(child any) (json.RawMessage, error) {
	switch typed := child.(type) {
	case nil:
		return json.RawMessage("null"), nil
	case *Node:
		return json.Marshal(typed)
	case int:
		return json.Marshal(jsonLiteral{ValueType: literalInt, Value: typed})
	case int64:
		return json.Marshal(jsonLiteral{ValueType: literalInt, Value: typed})
	case float64:
		return json.Marshal(jsonLiteral{ValueType: literalFloat, Value: typed})
	case string:
		return json.Marshal(jsonLiteral{ValueType: literalString, Value: typed})
	case Symbol:
		return json.Marshal(jsonLiteral{ValueType: literalSymbol, Value: string(typed)})
	case bool:
		return json.Marshal(jsonLiteral{ValueType: literalBool, Value: typed})
	default:
		return nil, fmt.Errorf("marshal child: unsupported literal %T", child)
	}
}

// UnmarshalJSON decodes a tree produced by MarshalJSON and re-links parent
// back-references on every decoded node.
func (n *Node) UnmarshalJSON(data []byte) error {
	var wire jsonNode

	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("unmarshal node: %w", err)
	}

	n.Type = wire.Type
	n.Pos = wire.Pos
	n.Children = nil

	for _, raw := range wire.Children {
		child, err := unmarshalChild(raw)
		if err != nil {
			return err
		}

		if childNode, ok := child.(*Node); ok && childNode != nil {
			childNode.parent = n
		}

		n.Children = append(n.Children, child)
	}

	return nil
}

func unmarshalChild(raw json.RawMessage) (any, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return nil, nil
	}

	var probe map[string]json.RawMessage

	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("unmarshal child: %w", err)
	}

	if _, isNode := probe["type"]; isNode {
		child := &Node{}
		if err := json.Unmarshal(raw, child); err != nil {
			return nil, err
		}

		return child, nil
	}

	return unmarshalLiteral(raw)
}

func unmarshalLiteral(raw json.RawMessage) (any, error) {
	var wire jsonLiteral

	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()

	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("unmarshal literal: %w", err)
	}

	switch wire.ValueType {
	case literalInt:
		num, ok := wire.Value.(json.Number)
		if !ok {
			return nil, fmt.Errorf("unmarshal literal: int value is %T", wire.Value)
		}

		parsed, err := num.Int64()
		if err != nil {
			return nil, fmt.Errorf("unmarshal literal: %w", err)
		}

		return parsed, nil
	case literalFloat:
		num, ok := wire.Value.(json.Number)
		if !ok {
			return nil, fmt.Errorf("unmarshal literal: float value is %T", wire.Value)
		}

		parsed, err := num.Float64()
		if err != nil {
			return nil, fmt.Errorf("unmarshal literal: %w", err)
		}

		return parsed, nil
	case literalString:
		str, ok := wire.Value.(string)
		if !ok {
			return nil, fmt.Errorf("unmarshal literal: string value is %T", wire.Value)
		}

		return str, nil
	case literalSymbol:
		str, ok := wire.Value.(string)
		if !ok {
			return nil, fmt.Errorf("unmarshal literal: symbol value is %T", wire.Value)
		}

		return Symbol(str), nil
	case literalBool:
		boolean, ok := wire.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("unmarshal literal: bool value is %T", wire.Value)
		}

		return boolean, nil
	default:
		return nil, fmt.Errorf("unmarshal literal: unknown value_type %q", wire.ValueType)
	}
}

// ToMap converts the node to a plain map representation suitable for YAML
// or human-oriented output. Symbols render in their :name notation; nil
// children stay nil.
func (n *Node) ToMap() map[string]any {
	if n == nil {
		return nil
	}

	result := map[string]any{"type": string(n.Type)}

	if n.Pos != nil {
		result["pos"] = map[string]any{
			"start_line":   n.Pos.StartLine,
			"start_col":    n.Pos.StartCol,
			"start_offset": n.Pos.StartOffset,
			"end_line":     n.Pos.EndLine,
			"end_col":      n.Pos.EndCol,
			"end_offset":   n.Pos.EndOffset,
		}
	}

	if len(n.Children) > 0 {
		children := make([]any, 0, len(n.Children))

		for _, child := range n.Children {
			children = append(children, childToMapValue(child))
		}

		result["children"] = children
	}

	return result
}

func childToMapValue(child any) any {
	switch typed := child.(type) {
	case *Node:
		return typed.ToMap()
	case Symbol:
		return ":" + string(typed)
	default:
		return typed
	}
}

// writeSexp renders one node in s-expression notation into buf.
func writeSexp(buf *strings.Builder, n *Node) {
	if n == nil {
		buf.WriteString("nil")

		return
	}

	buf.WriteString("s(:")
	buf.WriteString(string(n.Type))

	for _, child := range n.Children {
		buf.WriteString(", ")
		writeSexpChild(buf, child)
	}

	buf.WriteString(")")
}

func writeSexpChild(buf *strings.Builder, child any) {
	switch typed := child.(type) {
	case nil:
		buf.WriteString("nil")
	case *Node:
		writeSexp(buf, typed)
	case Symbol:
		buf.WriteString(":")
		buf.WriteString(string(typed))
	case string:
		buf.WriteString(strconv.Quote(typed))
	case int64:
		buf.WriteString(strconv.FormatInt(typed, 10))
	case int:
		buf.WriteString(strconv.Itoa(typed))
	case float64:
		buf.WriteString(strconv.FormatFloat(typed, 'g', -1, 64))
	case bool:
		buf.WriteString(strconv.FormatBool(typed))
	default:
		fmt.Fprintf(buf, "%v", typed)
	}
}
