package node //nolint:testpackage // Tests need access to the schema table.

import (
	"errors"
	"testing"
)

// makeSpannedHash builds { foo: bar } with source spans so the _source
// family has text to return.
func makeSpannedHash() (*Node, *Node, *Node) {
	source := []byte("{ foo: bar }")
	key := New(TypeSym, Symbol("foo")).
		WithPos(&Positions{StartOffset: 2, EndOffset: 6}).
		WithSource(source)
	value := New(TypeSend, nil, Symbol("bar")).
		WithPos(&Positions{StartOffset: 7, EndOffset: 10}).
		WithSource(source)
	pair := New(TypePair, key, value)
	hash := New(TypeHash, pair).
		WithPos(&Positions{StartOffset: 0, EndOffset: 12}).
		WithSource(source)

	return hash, pair, value
}

func TestResolveDynamicPresentKey(t *testing.T) {
	t.Parallel()

	hash, pair, value := makeSpannedHash()

	got, err := hash.ResolveDynamic("foo_pair")
	if err != nil || got != pair {
		t.Errorf("foo_pair = (%v, %v), want the pair node", got, err)
	}

	got, err = hash.ResolveDynamic("foo_value")
	if err != nil || got != value {
		t.Errorf("foo_value = (%v, %v), want the value node", got, err)
	}

	got, err = hash.ResolveDynamic("foo_source")
	if err != nil || got != "bar" {
		t.Errorf("foo_source = (%v, %v), want the exact value text", got, err)
	}
}

// TestResolveDynamicMissingKey pins the asymmetric fallbacks: nil for the
// pair and value families, empty string (not nil) for the source family.
func TestResolveDynamicMissingKey(t *testing.T) {
	t.Parallel()

	hash, _, _ := makeSpannedHash()

	got, err := hash.ResolveDynamic("missing_pair")
	if err != nil || got != nil {
		t.Errorf("missing_pair = (%v, %v), want (nil, nil)", got, err)
	}

	got, err = hash.ResolveDynamic("missing_value")
	if err != nil || got != nil {
		t.Errorf("missing_value = (%v, %v), want (nil, nil)", got, err)
	}

	got, err = hash.ResolveDynamic("missing_source")
	if err != nil || got != "" {
		t.Errorf("missing_source = (%v, %v), want empty string, not nil", got, err)
	}

	// The absent pair must compare == nil through the any return, not a
	// typed *Node nil boxed in a non-nil interface.
	got, err = hash.ChildByName("missing_pair")
	if err != nil || got != nil {
		t.Errorf(`ChildByName("missing_pair") = (%v, %v), want (nil, nil)`, got, err)
	}
}

func TestResolveDynamicStringKey(t *testing.T) {
	t.Parallel()

	// Key stored as a string literal: the symbol form fails, the string
	// form matches.
	pair := New(TypePair, New(TypeStr, "host"), New(TypeStr, "localhost"))
	hash := New(TypeHash, pair)

	got, err := hash.ResolveDynamic("host_pair")
	if err != nil || got != pair {
		t.Errorf("host_pair = (%v, %v), want the pair via the string key", got, err)
	}
}

func TestResolveDynamicUnrecognized(t *testing.T) {
	t.Parallel()

	hash, _, _ := makeSpannedHash()

	_, err := hash.ResolveDynamic("no_such_thing")

	var unsupportedErr *UnsupportedAccessorError
	if !errors.As(err, &unsupportedErr) {
		t.Errorf("error = %v, want UnsupportedAccessorError", err)
	}

	_, err = New(TypeInt, int64(1)).ResolveDynamic("foo_value")
	if !errors.As(err, &unsupportedErr) {
		t.Errorf("non-hash node error = %v, want UnsupportedAccessorError", err)
	}
}

func TestResolveDynamicArgsDelegation(t *testing.T) {
	t.Parallel()

	argA := New(TypeArg, Symbol("a"))
	argB := New(TypeArg, Symbol("b"))
	args := New(TypeArgs, argA, argB)

	first, err := args.ResolveDynamic("first")
	if err != nil || first != argA {
		t.Errorf("first = (%v, %v), want the first parameter", first, err)
	}

	last, err := args.ResolveDynamic("last")
	if err != nil || last != argB {
		t.Errorf("last = (%v, %v), want the last parameter", last, err)
	}

	size, err := args.ResolveDynamic("size")
	if err != nil || size != 2 {
		t.Errorf("size = (%v, %v), want 2", size, err)
	}
}

func TestCanResolveDynamic(t *testing.T) {
	t.Parallel()

	hash, _, _ := makeSpannedHash()
	args := New(TypeArgs)

	tests := []struct {
		name     string
		node     *Node
		accessor string
		want     bool
	}{
		{"present pair", hash, "foo_pair", true},
		{"present value", hash, "foo_value", true},
		{"present source", hash, "foo_source", true},
		{"missing key", hash, "missing_value", false},
		{"unrecognized suffix", hash, "foo_thing", false},
		{"non-hash node", New(TypeInt, int64(1)), "foo_value", false},
		{"args sequence op", args, "size", true},
		{"args unknown op", args, "shuffle", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.node.CanResolveDynamic(tt.accessor); got != tt.want {
				t.Errorf("CanResolveDynamic(%q) = %v, want %v", tt.accessor, got, tt.want)
			}
		})
	}
}

func TestChildByNameFallsThroughToDynamic(t *testing.T) {
	t.Parallel()

	hash, pair, _ := makeSpannedHash()

	got, err := hash.ChildByName("foo_pair")
	if err != nil || got != pair {
		t.Errorf("ChildByName(foo_pair) = (%v, %v), want the pair node", got, err)
	}
}
