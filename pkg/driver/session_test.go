package driver

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"frag/interpreter-go/pkg/interpreter"
	"frag/interpreter-go/pkg/runtime"
)

func TestSessionThreadsBindings(t *testing.T) {
	var out bytes.Buffer
	session, err := NewSession(SessionOptions{Stdout: &out})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := session.Eval("let a = 2;"); err != nil {
		t.Fatalf("Eval let: %v", err)
	}
	result, err := session.Eval("print(a * 21); a + 1;")
	if err != nil {
		t.Fatalf("Eval print: %v", err)
	}
	if out.String() != "42\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if !result.HasValue || runtime.Format(result.Value) != "3" {
		t.Fatalf("unexpected final value %#v", result)
	}
}

func TestSessionEvalIsAtomic(t *testing.T) {
	session, err := NewSession(SessionOptions{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := session.Eval("let a = 1;"); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	_, err = session.Eval("a = 5; let b = 2; missing;")
	if !errors.Is(err, interpreter.ErrUndefinedVariable) {
		t.Fatalf("expected undefined variable, got %v", err)
	}
	if v, _ := session.Env().Lookup("a"); v.(runtime.IntegerValue).Val != 1 {
		t.Fatalf("failed input modified a: %#v", v)
	}
	if _, ok := session.Env().Lookup("b"); ok {
		t.Fatalf("failed input defined b")
	}
}

func TestSessionStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.db")
	store, err := OpenSessionStore(path)
	if err != nil {
		t.Fatalf("OpenSessionStore: %v", err)
	}
	session, err := NewSession(SessionOptions{Store: store})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := session.Eval("let count = -7; let ready = true;"); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store, err = OpenSessionStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	restored, err := NewSession(SessionOptions{Store: store})
	if err != nil {
		t.Fatalf("NewSession (restored): %v", err)
	}
	keys := restored.Env().Keys()
	if len(keys) != 2 || keys[0] != "count" || keys[1] != "ready" {
		t.Fatalf("unexpected restored keys %v", keys)
	}
	if v, _ := restored.Env().Lookup("count"); v.(runtime.IntegerValue).Val != -7 {
		t.Fatalf("count not restored: %#v", v)
	}
	if v, _ := restored.Env().Lookup("ready"); !v.(runtime.BoolValue).Val {
		t.Fatalf("ready not restored: %#v", v)
	}

	if err := restored.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	env := runtime.NewEnvironment()
	if err := store.Load(env); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if env.Len() != 0 || restored.Env().Len() != 0 {
		t.Fatalf("Reset left bindings behind: %v", env.Keys())
	}
}

func TestDecodeValueRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"nope", "int:x", "bool:maybe", "str:hi"} {
		if _, err := decodeValue([]byte(raw)); err == nil {
			t.Fatalf("decodeValue(%q) should fail", raw)
		}
	}
}
