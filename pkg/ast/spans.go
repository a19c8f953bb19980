package ast

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// Walk visits node and its children depth-first, parents before children.
// Returning false from visit skips the node's children.
func Walk(node Node, visit func(Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Body {
			Walk(stmt, visit)
		}
	case *LetDeclaration:
		Walk(n.Name, visit)
		Walk(n.Initializer, visit)
	case *AssignmentStatement:
		Walk(n.Name, visit)
		Walk(n.Value, visit)
	case *PrintStatement:
		Walk(n.Argument, visit)
	case *ExpressionStatement:
		Walk(n.Expression, visit)
	case *UnaryExpression:
		Walk(n.Operand, visit)
	case *BinaryExpression:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	}
}
