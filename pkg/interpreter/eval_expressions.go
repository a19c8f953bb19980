package interpreter

import (
	"fmt"
	"math"

	"frag/interpreter-go/pkg/ast"
	"frag/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.Identifier:
		val, ok := env.Lookup(n.Name)
		if !ok {
			return nil, undefinedVariable(n)
		}
		return val, nil
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	default:
		return nil, fmt.Errorf("interpreter: unsupported expression %T", node)
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case ast.UnaryOperatorNegate:
		iv, ok := operand.(runtime.IntegerValue)
		if !ok {
			return nil, unaryMismatch(expr, string(expr.Operator), operand)
		}
		if iv.Val == math.MinInt64 {
			return nil, newOverflowError(expr, string(expr.Operator))
		}
		return runtime.IntegerValue{Val: -iv.Val}, nil
	case ast.UnaryOperatorNot:
		bv, ok := operand.(runtime.BoolValue)
		if !ok {
			return nil, unaryMismatch(expr, string(expr.Operator), operand)
		}
		return runtime.BoolValue{Val: !bv.Val}, nil
	default:
		return nil, fmt.Errorf("interpreter: unsupported unary operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	leftVal, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "&&", "||":
		lb, ok := leftVal.(runtime.BoolValue)
		if !ok {
			return nil, unaryMismatch(expr, expr.Operator, leftVal)
		}
		if expr.Operator == "&&" && !lb.Val {
			return runtime.BoolValue{Val: false}, nil
		}
		if expr.Operator == "||" && lb.Val {
			return runtime.BoolValue{Val: true}, nil
		}
		rightVal, err := i.evaluateExpression(expr.Right, env)
		if err != nil {
			return nil, err
		}
		rb, ok := rightVal.(runtime.BoolValue)
		if !ok {
			return nil, binaryMismatch(expr, expr.Operator, leftVal, rightVal)
		}
		return runtime.BoolValue{Val: rb.Val}, nil
	}

	rightVal, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "+", "-", "*", "/", "%":
		return evaluateArithmetic(expr, leftVal, rightVal)
	case "<", "<=", ">", ">=":
		return evaluateOrdering(expr, leftVal, rightVal)
	case "==", "!=":
		return evaluateEquality(expr, leftVal, rightVal)
	default:
		return nil, fmt.Errorf("interpreter: unsupported binary operator %s", expr.Operator)
	}
}

func evaluateArithmetic(expr *ast.BinaryExpression, leftVal, rightVal runtime.Value) (runtime.Value, error) {
	li, lok := leftVal.(runtime.IntegerValue)
	ri, rok := rightVal.(runtime.IntegerValue)
	if !lok || !rok {
		return nil, binaryMismatch(expr, expr.Operator, leftVal, rightVal)
	}
	a, b := li.Val, ri.Val
	var (
		out int64
		ok  = true
	)
	switch expr.Operator {
	case "+":
		out, ok = addInt64(a, b)
	case "-":
		out, ok = subInt64(a, b)
	case "*":
		out, ok = mulInt64(a, b)
	case "/":
		if b == 0 {
			return nil, newDivisionByZeroError(expr, expr.Operator)
		}
		if a == math.MinInt64 && b == -1 {
			ok = false
		} else {
			out = a / b
		}
	case "%":
		if b == 0 {
			return nil, newDivisionByZeroError(expr, expr.Operator)
		}
		if b == -1 {
			out = 0
		} else {
			out = a % b
		}
	}
	if !ok {
		return nil, newOverflowError(expr, expr.Operator)
	}
	return runtime.IntegerValue{Val: out}, nil
}

func evaluateOrdering(expr *ast.BinaryExpression, leftVal, rightVal runtime.Value) (runtime.Value, error) {
	li, lok := leftVal.(runtime.IntegerValue)
	ri, rok := rightVal.(runtime.IntegerValue)
	if !lok || !rok {
		return nil, binaryMismatch(expr, expr.Operator, leftVal, rightVal)
	}
	var result bool
	switch expr.Operator {
	case "<":
		result = li.Val < ri.Val
	case "<=":
		result = li.Val <= ri.Val
	case ">":
		result = li.Val > ri.Val
	case ">=":
		result = li.Val >= ri.Val
	}
	return runtime.BoolValue{Val: result}, nil
}

func evaluateEquality(expr *ast.BinaryExpression, leftVal, rightVal runtime.Value) (runtime.Value, error) {
	if leftVal.Kind() != rightVal.Kind() {
		return nil, binaryMismatch(expr, expr.Operator, leftVal, rightVal)
	}
	equal := runtime.Equal(leftVal, rightVal)
	if expr.Operator == "!=" {
		equal = !equal
	}
	return runtime.BoolValue{Val: equal}, nil
}

// Checked int64 arithmetic; ok is false when the result does not fit.

func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	return sum, (sum >= a) == (b >= 0)
}

func subInt64(a, b int64) (int64, bool) {
	diff := a - b
	return diff, (diff <= a) == (b >= 0)
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	product := a * b
	return product, product/b == a
}
