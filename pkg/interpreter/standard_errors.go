package interpreter

import (
	"errors"
	"fmt"

	"frag/interpreter-go/pkg/ast"
	"frag/interpreter-go/pkg/runtime"
)

// ErrorKind names the category of a RuntimeError.
type ErrorKind string

const (
	UndefinedVariable ErrorKind = "UndefinedVariable"
	TypeMismatch      ErrorKind = "TypeMismatch"
	DivisionByZero    ErrorKind = "DivisionByZero"
	Overflow          ErrorKind = "Overflow"
)

// Sentinels matched by RuntimeError through errors.Is.
var (
	ErrUndefinedVariable = runtime.ErrUndefinedVariable
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrOverflow          = errors.New("integer overflow")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case UndefinedVariable:
		return ErrUndefinedVariable
	case TypeMismatch:
		return ErrTypeMismatch
	case DivisionByZero:
		return ErrDivisionByZero
	case Overflow:
		return ErrOverflow
	}
	return nil
}

// RuntimeError reports a failure while evaluating a program. Name is set for
// UndefinedVariable; Operator for TypeMismatch, DivisionByZero and Overflow.
// Left and Right carry the operand kinds of a TypeMismatch; unary mismatches
// (and logical operators failing on the left operand) set only Left.
type RuntimeError struct {
	Kind     ErrorKind
	Pos      ast.Position
	Name     string
	Operator string
	Left     runtime.Kind
	Right    runtime.Kind
	Unary    bool
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Reason())
}

// Reason is the error message without the position prefix.
func (e *RuntimeError) Reason() string {
	switch e.Kind {
	case UndefinedVariable:
		return fmt.Sprintf("undefined variable '%s'", e.Name)
	case TypeMismatch:
		if e.Unary {
			return fmt.Sprintf("type mismatch: cannot apply '%s' to %s", e.Operator, e.Left)
		}
		return fmt.Sprintf("type mismatch: cannot apply '%s' to %s and %s", e.Operator, e.Left, e.Right)
	case DivisionByZero:
		return "division by zero"
	case Overflow:
		return fmt.Sprintf("integer overflow in '%s'", e.Operator)
	}
	return string(e.Kind)
}

func (e *RuntimeError) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

func startOf(node ast.Node) ast.Position {
	if node == nil {
		return ast.Position{}
	}
	return node.Span().Start
}

func undefinedVariable(id *ast.Identifier) error {
	return &RuntimeError{Kind: UndefinedVariable, Pos: startOf(id), Name: id.Name}
}

func binaryMismatch(node ast.Node, op string, left, right runtime.Value) error {
	return &RuntimeError{Kind: TypeMismatch, Pos: startOf(node), Operator: op, Left: left.Kind(), Right: right.Kind()}
}

func unaryMismatch(node ast.Node, op string, operand runtime.Value) error {
	return &RuntimeError{Kind: TypeMismatch, Pos: startOf(node), Operator: op, Left: operand.Kind(), Unary: true}
}

func newDivisionByZeroError(node ast.Node, op string) error {
	return &RuntimeError{Kind: DivisionByZero, Pos: startOf(node), Operator: op}
}

func newOverflowError(node ast.Node, op string) error {
	return &RuntimeError{Kind: Overflow, Pos: startOf(node), Operator: op}
}
