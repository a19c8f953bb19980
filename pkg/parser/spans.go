package parser

import (
	"unicode/utf8"

	"frag/interpreter-go/pkg/ast"
	"frag/interpreter-go/pkg/lexer"
)

func toPosition(pos lexer.Position) ast.Position {
	return ast.Position{Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

// endOf returns the position just past tok. Tokens never span lines.
func endOf(tok lexer.Token) lexer.Position {
	return lexer.Position{
		Offset: tok.Pos.Offset + len(tok.Text),
		Line:   tok.Pos.Line,
		Column: tok.Pos.Column + utf8.RuneCountInString(tok.Text),
	}
}

func annotateSpan(node ast.Node, start lexer.Position, end ast.Position) {
	if node == nil {
		return
	}
	ast.SetSpan(node, ast.Span{Start: toPosition(start), End: end})
}

func annotateStatement(stmt ast.Statement, start lexer.Position, end ast.Position) ast.Statement {
	annotateSpan(stmt, start, end)
	return stmt
}

func annotateExpression(expr ast.Expression, start lexer.Position, end ast.Position) ast.Expression {
	annotateSpan(expr, start, end)
	return expr
}
