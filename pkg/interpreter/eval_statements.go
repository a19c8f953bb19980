package interpreter

import (
	"errors"
	"fmt"

	"frag/interpreter-go/pkg/ast"
	"frag/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment, result *Result) error {
	switch n := node.(type) {
	case *ast.LetDeclaration:
		val, err := i.evaluateExpression(n.Initializer, env)
		if err != nil {
			return err
		}
		env.Define(n.Name.Name, val)
		return nil
	case *ast.AssignmentStatement:
		return i.evaluateAssignment(n, env)
	case *ast.PrintStatement:
		val, err := i.evaluateExpression(n.Argument, env)
		if err != nil {
			return err
		}
		return i.emit(result, runtime.Format(val))
	case *ast.ExpressionStatement:
		val, err := i.evaluateExpression(n.Expression, env)
		if err != nil {
			return err
		}
		result.Value = val
		result.HasValue = true
		return nil
	default:
		return fmt.Errorf("interpreter: unsupported statement %T", node)
	}
}

func (i *Interpreter) evaluateAssignment(stmt *ast.AssignmentStatement, env *runtime.Environment) error {
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return err
	}
	if err := env.Assign(stmt.Name.Name, val); err != nil {
		if errors.Is(err, runtime.ErrUndefinedVariable) {
			return undefinedVariable(stmt.Name)
		}
		return err
	}
	return nil
}
