package node //nolint:testpackage // Tests need access to the schema table.

import (
	"encoding/json"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	original := New(TypeDef,
		Symbol("greet"),
		New(TypeArgs, New(TypeArg, Symbol("name"))),
		New(TypeBegin,
			New(TypeSend, nil, Symbol("puts"), New(TypeStr, "hi")),
			New(TypeInt, int64(3)),
		),
	).WithPos(&Positions{StartLine: 1, StartCol: 1, EndLine: 4, EndCol: 4, EndOffset: 40})

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	decoded := &Node{}
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if decoded.String() != original.String() {
		t.Errorf("round trip changed the tree:\n got  %s\n want %s", decoded, original)
	}

	if decoded.Pos == nil || decoded.Pos.EndOffset != 40 {
		t.Errorf("round trip lost position info: %+v", decoded.Pos)
	}
}

func TestJSONRoundTripDropsSource(t *testing.T) {
	t.Parallel()

	// The wire format carries structure and positions, not the backing
	// source bytes, so a reloaded tree answers ToSource with "".
	source := []byte("user.save")
	original := New(TypeSend, New(TypeLvar, Symbol("user")), Symbol("save")).
		WithPos(&Positions{StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 10, EndOffset: 9}).
		WithSource(source)

	if original.ToSource() != "user.save" {
		t.Fatalf("ToSource() = %q before the trip", original.ToSource())
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	decoded := &Node{}
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if got := decoded.ToSource(); got != "" {
		t.Errorf("ToSource() after reload = %q, want empty", got)
	}
}

func TestJSONRoundTripRelinkParents(t *testing.T) {
	t.Parallel()

	original := New(TypeSend, New(TypeLvar, Symbol("user")), Symbol("save"))

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	decoded := &Node{}
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	receiver, ok := decoded.Children[0].(*Node)
	if !ok {
		t.Fatalf("decoded receiver is %T, want *Node", decoded.Children[0])
	}

	if receiver.Parent() != decoded {
		t.Errorf("decoded child not re-linked to its parent")
	}
}

func TestJSONRoundTripLiteralTypes(t *testing.T) {
	t.Parallel()

	original := New(TypeArray,
		New(TypeInt, int64(1)),
		New(TypeFloat, 2.5),
		New(TypeStr, "three"),
		New(TypeSym, Symbol("four")),
	)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	decoded := &Node{}
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	// Literal types must survive: the sym child must come back as Symbol,
	// not string, or hash-key lookups would silently change behavior.
	symNode, ok := decoded.Children[3].(*Node)
	if !ok {
		t.Fatalf("decoded sym child is %T", decoded.Children[3])
	}

	if _, ok := symNode.Children[0].(Symbol); !ok {
		t.Errorf("sym literal came back as %T, want Symbol", symNode.Children[0])
	}

	intNode, ok := decoded.Children[0].(*Node)
	if !ok {
		t.Fatalf("decoded int child is %T", decoded.Children[0])
	}

	if _, ok := intNode.Children[0].(int64); !ok {
		t.Errorf("int literal came back as %T, want int64", intNode.Children[0])
	}
}

func TestToMap(t *testing.T) {
	t.Parallel()

	call := New(TypeSend, nil, Symbol("foo"), New(TypeInt, int64(1)))
	got := call.ToMap()

	if got["type"] != "send" {
		t.Errorf(`ToMap()["type"] = %v, want "send"`, got["type"])
	}

	children, ok := got["children"].([]any)
	if !ok || len(children) != 3 {
		t.Fatalf(`ToMap()["children"] = %v, want 3 entries`, got["children"])
	}

	if children[0] != nil {
		t.Errorf("nil child should stay nil, got %v", children[0])
	}

	if children[1] != ":foo" {
		t.Errorf("symbol child = %v, want :foo notation", children[1])
	}
}
