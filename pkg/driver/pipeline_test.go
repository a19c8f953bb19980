package driver

import (
	"errors"
	"strings"
	"testing"

	"frag/interpreter-go/pkg/parser"
	"frag/interpreter-go/pkg/runtime"
)

func TestRunSourceRejectsDeepNesting(t *testing.T) {
	for _, src := range []string{
		strings.Repeat("-", 200000) + "1;",
		strings.Repeat("(", 200000) + "1" + strings.Repeat(")", 200000) + ";",
		"1" + strings.Repeat(" + 1", 200000) + ";",
	} {
		result, err := RunSource("deep.frag", src, RunOptions{})
		if result != nil {
			t.Fatalf("expected no result, got %#v", result)
		}
		var parseErr *parser.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *parser.ParseError, got %T (%v)", err, err)
		}
		if Stage(err) != "parse" || !strings.Contains(parseErr.Reason(), "shallower expression") {
			t.Fatalf("unexpected error %v", err)
		}
	}
}

func TestRunSourceEvaluatesLongChains(t *testing.T) {
	src := "1" + strings.Repeat(" + 1", 9000) + ";\n" + strings.Repeat("-", 9001) + "7;"
	result, err := RunSource("long.frag", src, RunOptions{})
	if err != nil {
		t.Fatalf("RunSource returned error: %v", err)
	}
	if !result.HasValue || !runtime.Equal(result.Value, runtime.IntegerValue{Val: -7}) {
		t.Fatalf("unexpected final value %#v", result.Value)
	}
}

func TestRunSourceAcceptsZeroEnvironment(t *testing.T) {
	var env runtime.Environment
	if _, err := RunSource("zero.frag", "let a = 1;\na = a + 1;", RunOptions{Env: &env}); err != nil {
		t.Fatalf("RunSource returned error: %v", err)
	}
	val, ok := env.Lookup("a")
	if !ok || !runtime.Equal(val, runtime.IntegerValue{Val: 2}) {
		t.Fatalf("expected a = 2, got %v (bound=%v)", val, ok)
	}
}
