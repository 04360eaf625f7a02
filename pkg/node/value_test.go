package node //nolint:testpackage // Tests need access to the schema table.

import (
	"reflect"
	"testing"
)

func TestToValueLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *Node
		want any
	}{
		{"int", New(TypeInt, int64(42)), int64(42)},
		{"float", New(TypeFloat, 1.5), 1.5},
		{"str", New(TypeStr, "hello"), "hello"},
		{"sym", New(TypeSym, Symbol("foo")), Symbol("foo")},
		{"true", New(TypeTrue), true},
		{"false", New(TypeFalse), false},
		{"nil", New(TypeNil), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.node.ToValue(); got != tt.want {
				t.Errorf("ToValue() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestToValueArrayRecursion(t *testing.T) {
	t.Parallel()

	array := New(TypeArray,
		New(TypeInt, int64(1)),
		New(TypeStr, "two"),
		New(TypeSym, Symbol("three")),
	)

	got := array.ToValue()
	want := []any{int64(1), "two", Symbol("three")}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToValue() = %v, want %v", got, want)
	}
}

func TestToValueGroupingRecursion(t *testing.T) {
	t.Parallel()

	wrapped := New(TypeBegin, New(TypeInt, int64(7)))

	if got := wrapped.ToValue(); got != int64(7) {
		t.Errorf("ToValue() = %v, want 7 through the grouping node", got)
	}
}

func TestToValueIdentityFallback(t *testing.T) {
	t.Parallel()

	call := New(TypeSend, nil, Symbol("foo"))

	if got := call.ToValue(); got != call {
		t.Errorf("ToValue() = %v, want the node itself", got)
	}
}

func TestToSource(t *testing.T) {
	t.Parallel()

	source := []byte("foo(1, 2)")
	call := New(TypeSend, nil, Symbol("foo"), New(TypeInt, int64(1)), New(TypeInt, int64(2))).
		WithPos(&Positions{StartOffset: 0, EndOffset: 9}).
		WithSource(source)

	if got := call.ToSource(); got != "foo(1, 2)" {
		t.Errorf("ToSource() = %q, want the full call text", got)
	}

	synthetic := New(TypeInt, int64(1))
	if got := synthetic.ToSource(); got != "" {
		t.Errorf("ToSource() on a synthetic node = %q, want empty", got)
	}
}
