package driver

import (
	"io"

	"frag/interpreter-go/pkg/ast"
	"frag/interpreter-go/pkg/interpreter"
	"frag/interpreter-go/pkg/lexer"
	"frag/interpreter-go/pkg/parser"
	"frag/interpreter-go/pkg/runtime"
)

// RunOptions configures RunSource.
type RunOptions struct {
	// Stdout streams printed lines while the program runs.
	Stdout io.Writer
	// Env is updated in place when set; otherwise a fresh one is used.
	Env    *runtime.Environment
	Tracer *Tracer
}

// RunSource lexes, parses and executes src. name identifies the program in
// the trace log.
func RunSource(name, src string, opts RunOptions) (*interpreter.Result, error) {
	program, err := parse(name, src, opts.Tracer)
	if err != nil {
		return nil, err
	}
	interp := interpreter.NewWithOptions(interpreter.Options{Stdout: opts.Stdout})
	result, err := interp.Execute(program, opts.Env)
	if err != nil {
		opts.Tracer.Tracef("%s: runtime error: %v", name, err)
		return nil, err
	}
	opts.Tracer.Tracef("%s: executed %d statements, %d lines printed", name, len(program.Body), len(result.Output))
	return result, nil
}

// Check lexes and parses src without executing it.
func Check(name, src string, tracer *Tracer) (*ast.Program, error) {
	return parse(name, src, tracer)
}

func parse(name, src string, tracer *Tracer) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		tracer.Tracef("%s: lex error: %v", name, err)
		return nil, err
	}
	tracer.Tracef("%s: lexed %d tokens", name, len(tokens))
	program, err := parser.Parse(tokens)
	if err != nil {
		tracer.Tracef("%s: parse error: %v", name, err)
		return nil, err
	}
	tracer.Tracef("%s: parsed %d statements", name, len(program.Body))
	return program, nil
}
