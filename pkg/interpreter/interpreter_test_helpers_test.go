package interpreter

import (
	"testing"

	"frag/interpreter-go/pkg/ast"
	"frag/interpreter-go/pkg/parser"
	"frag/interpreter-go/pkg/runtime"
)

func runSource(t *testing.T, src string) *Result {
	t.Helper()
	program, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	result, err := New().Execute(program, nil)
	if err != nil {
		t.Fatalf("execute %q: %v", src, err)
	}
	return result
}

func runSourceError(t *testing.T, src string) *RuntimeError {
	t.Helper()
	program, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	result, err := New().Execute(program, nil)
	if err == nil {
		t.Fatalf("execute %q: expected error, got %#v", src, result)
	}
	if result != nil {
		t.Fatalf("execute %q: expected nil result on error", src)
	}
	rtErr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("execute %q: expected *RuntimeError, got %T (%v)", src, err, err)
	}
	return rtErr
}

func expectInteger(t *testing.T, result *Result, want int64) {
	t.Helper()
	if !result.HasValue {
		t.Fatalf("expected final value %d, got none", want)
	}
	iv, ok := result.Value.(runtime.IntegerValue)
	if !ok || iv.Val != want {
		t.Fatalf("expected integer %d, got %#v", want, result.Value)
	}
}

func expectBool(t *testing.T, result *Result, want bool) {
	t.Helper()
	if !result.HasValue {
		t.Fatalf("expected final value %t, got none", want)
	}
	bv, ok := result.Value.(runtime.BoolValue)
	if !ok || bv.Val != want {
		t.Fatalf("expected bool %t, got %#v", want, result.Value)
	}
}

func expectOutput(t *testing.T, result *Result, want ...string) {
	t.Helper()
	if len(result.Output) != len(want) {
		t.Fatalf("expected output %q, got %q", want, result.Output)
	}
	for i := range want {
		if result.Output[i] != want[i] {
			t.Fatalf("expected output %q, got %q", want, result.Output)
		}
	}
}

func evalExpr(t *testing.T, expr ast.Expression, env *runtime.Environment) runtime.Value {
	t.Helper()
	if env == nil {
		env = runtime.NewEnvironment()
	}
	val, err := New().evaluateExpression(expr, env)
	if err != nil {
		t.Fatalf("evaluate %T: %v", expr, err)
	}
	return val
}
