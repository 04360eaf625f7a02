package node //nolint:testpackage // Tests need access to the schema table.

import (
	"errors"
	"testing"
)

func TestNewBackLinksNodeChildren(t *testing.T) {
	t.Parallel()

	receiver := New(TypeLvar, Symbol("user"))
	arg := New(TypeInt, int64(1))
	call := New(TypeSend, receiver, Symbol("save"), arg)

	if receiver.Parent() != call {
		t.Errorf("receiver parent = %v, want the call node", receiver.Parent())
	}

	if arg.Parent() != call {
		t.Errorf("arg parent = %v, want the call node", arg.Parent())
	}

	if call.Parent() != nil {
		t.Errorf("root parent = %v, want nil", call.Parent())
	}
}

func TestNewToleratesLiteralAndNilChildren(t *testing.T) {
	t.Parallel()

	call := New(TypeSend, nil, Symbol("puts"), New(TypeStr, "hi"))
	if len(call.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(call.Children))
	}

	leaf := New(TypeSelf)
	if len(leaf.Children) != 0 {
		t.Errorf("leaf children = %d, want 0", len(leaf.Children))
	}
}

func TestSetParent(t *testing.T) {
	t.Parallel()

	fragment := New(TypeInt, int64(42))
	host := New(TypeArray)

	fragment.SetParent(host)

	if fragment.Parent() != host {
		t.Errorf("parent = %v, want host", fragment.Parent())
	}
}

func TestSiblings(t *testing.T) {
	t.Parallel()

	first := New(TypeInt, int64(1))
	second := New(TypeInt, int64(2))
	third := New(TypeInt, int64(3))
	New(TypeArray, first, second, third)

	siblings, err := first.Siblings()
	if err != nil {
		t.Fatalf("Siblings() error = %v", err)
	}

	if len(siblings) != 2 {
		t.Fatalf("siblings = %d, want 2", len(siblings))
	}

	if siblings[0] != second || siblings[1] != third {
		t.Errorf("siblings out of order: %v", siblings)
	}

	last, err := third.Siblings()
	if err != nil {
		t.Fatalf("Siblings() on last child error = %v", err)
	}

	if len(last) != 0 {
		t.Errorf("last child siblings = %d, want 0", len(last))
	}
}

func TestSiblingsNoParent(t *testing.T) {
	t.Parallel()

	root := New(TypeSelf)

	_, err := root.Siblings()
	if !errors.Is(err, ErrNoParent) {
		t.Errorf("Siblings() error = %v, want ErrNoParent", err)
	}
}

func TestSiblingsUsesIdentityNotEquality(t *testing.T) {
	t.Parallel()

	// Two value-identical int nodes: the lookup must find the second
	// instance, not the first.
	twinA := New(TypeInt, int64(7))
	twinB := New(TypeInt, int64(7))
	tail := New(TypeInt, int64(8))
	New(TypeArray, twinA, twinB, tail)

	siblings, err := twinB.Siblings()
	if err != nil {
		t.Fatalf("Siblings() error = %v", err)
	}

	if len(siblings) != 1 || siblings[0] != tail {
		t.Errorf("siblings = %v, want just the tail node", siblings)
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	inner := New(TypeSend, nil, Symbol("bar"))
	body := New(TypeBegin, inner, New(TypeInt, int64(1)))
	def := New(TypeDef, Symbol("foo"), New(TypeArgs), body)

	sends := def.Find(TypeSend)
	if len(sends) != 1 || sends[0] != inner {
		t.Errorf("Find(send) = %v, want the inner call", sends)
	}

	ints := def.Find(TypeInt)
	if len(ints) != 1 {
		t.Errorf("Find(int) = %d nodes, want 1", len(ints))
	}
}

func TestStringRendersSexp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			"call with literal arg",
			New(TypeSend, nil, Symbol("foo"), New(TypeInt, int64(1))),
			"s(:send, nil, :foo, s(:int, 1))",
		},
		{
			"string literal",
			New(TypeStr, "hello"),
			`s(:str, "hello")`,
		},
		{
			"leaf",
			New(TypeSelf),
			"s(:self)",
		},
		{
			"float literal",
			New(TypeFloat, 1.5),
			"s(:float, 1.5)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
