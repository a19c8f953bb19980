package interpreter

import (
	"fmt"
	"io"

	"frag/interpreter-go/pkg/ast"
	"frag/interpreter-go/pkg/runtime"
)

// Options configures an Interpreter.
type Options struct {
	// Stdout receives each printed line as soon as it is produced.
	Stdout io.Writer
}

// Interpreter drives evaluation of frag AST nodes.
type Interpreter struct {
	stdout io.Writer
}

// Result is the outcome of a successful run.
type Result struct {
	// Output holds every printed line, in order, without trailing newlines.
	Output []string
	// Value is the value of the last expression statement executed; valid
	// only when HasValue is set.
	Value    runtime.Value
	HasValue bool
}

// New returns an interpreter that only collects output.
func New() *Interpreter {
	return &Interpreter{}
}

// NewWithOptions returns an interpreter configured by opts.
func NewWithOptions(opts Options) *Interpreter {
	return &Interpreter{stdout: opts.Stdout}
}

// Execute runs program against env. A nil env gets a fresh environment; a
// non-nil one is updated in place so callers can thread it between runs.
func (i *Interpreter) Execute(program *ast.Program, env *runtime.Environment) (*Result, error) {
	if program == nil {
		return nil, fmt.Errorf("interpreter: nil program")
	}
	if env == nil {
		env = runtime.NewEnvironment()
	}
	result := &Result{}
	for _, stmt := range program.Body {
		if err := i.evaluateStatement(stmt, env, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (i *Interpreter) emit(result *Result, line string) error {
	result.Output = append(result.Output, line)
	if i.stdout == nil {
		return nil
	}
	if _, err := fmt.Fprintln(i.stdout, line); err != nil {
		return fmt.Errorf("interpreter: write output: %w", err)
	}
	return nil
}
