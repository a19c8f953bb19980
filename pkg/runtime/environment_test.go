package runtime

import (
	"errors"
	"testing"
)

func TestEnvironmentDefineOverwrites(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", IntegerValue{Val: 1})
	env.Define("x", BoolValue{Val: true})
	v, err := env.Get("x")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got, ok := v.(BoolValue); !ok || !got.Val {
		t.Fatalf("expected redefined bool, got %#v", v)
	}
	if env.Len() != 1 {
		t.Fatalf("expected single binding, got %d", env.Len())
	}
}

func TestEnvironmentAssignRequiresBinding(t *testing.T) {
	env := NewEnvironment()
	err := env.Assign("missing", IntegerValue{Val: 5})
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected ErrUndefinedVariable, got %v", err)
	}
	if _, ok := env.Lookup("missing"); ok {
		t.Fatalf("failed assignment must not create a binding")
	}
	env.Define("present", IntegerValue{Val: 1})
	if err := env.Assign("present", IntegerValue{Val: 2}); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if v, _ := env.Lookup("present"); v.(IntegerValue).Val != 2 {
		t.Fatalf("expected updated value, got %#v", v)
	}
}

func TestEnvironmentGetUndefined(t *testing.T) {
	_, err := NewEnvironment().Get("nope")
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected ErrUndefinedVariable, got %v", err)
	}
	if err.Error() != "undefined variable 'nope'" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestEnvironmentKeysAndSnapshot(t *testing.T) {
	env := NewEnvironment()
	env.Define("b", IntegerValue{Val: 2})
	env.Define("a", IntegerValue{Val: 1})
	keys := env.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys %v", keys)
	}
	snap := env.Snapshot()
	snap["c"] = BoolValue{Val: false}
	if env.Len() != 2 {
		t.Fatalf("snapshot mutation leaked into environment")
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{IntegerValue{Val: 42}, "42"},
		{IntegerValue{Val: -7}, "-7"},
		{BoolValue{Val: true}, "true"},
		{BoolValue{Val: false}, "false"},
	}
	for _, tc := range cases {
		if got := Format(tc.value); got != tc.want {
			t.Fatalf("Format(%#v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(IntegerValue{Val: 3}, IntegerValue{Val: 3}) {
		t.Fatalf("equal integers reported unequal")
	}
	if Equal(IntegerValue{Val: 1}, BoolValue{Val: true}) {
		t.Fatalf("values of different kinds must not be equal")
	}
}

func TestEnvironmentClone(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", IntegerValue{Val: 1})
	clone := env.Clone()
	clone.Define("b", IntegerValue{Val: 2})
	if err := clone.Assign("a", IntegerValue{Val: 10}); err != nil {
		t.Fatalf("Assign on clone: %v", err)
	}
	if env.Len() != 1 {
		t.Fatalf("clone bindings leaked into original: %v", env.Keys())
	}
	if v, _ := env.Lookup("a"); v.(IntegerValue).Val != 1 {
		t.Fatalf("original binding changed: %#v", v)
	}
}

func TestEnvironmentZeroValue(t *testing.T) {
	var env Environment
	if _, ok := env.Lookup("x"); ok {
		t.Fatalf("expected empty environment")
	}
	if err := env.Assign("x", IntegerValue{Val: 1}); !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected ErrUndefinedVariable, got %v", err)
	}
	env.Define("x", IntegerValue{Val: 1})
	if err := env.Assign("x", IntegerValue{Val: 2}); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if v, err := env.Get("x"); err != nil || !Equal(v, IntegerValue{Val: 2}) {
		t.Fatalf("expected x = 2, got %v (%v)", v, err)
	}
	if clone := env.Clone(); clone.Len() != 1 {
		t.Fatalf("expected clone with one binding, got %d", clone.Len())
	}
}
