package parser

import (
	"frag/interpreter-go/pkg/ast"
	"frag/interpreter-go/pkg/lexer"
)

// Binding powers, loosest first. All binary operators are left-associative.
const (
	bpNone = iota
	bpOr
	bpAnd
	bpEquality
	bpComparison
	bpAdditive
	bpMultiplicative
	bpUnary
)

var infixBindingPower = map[string]int{
	"||": bpOr,
	"&&": bpAnd,
	"==": bpEquality,
	"!=": bpEquality,
	"<":  bpComparison,
	"<=": bpComparison,
	">":  bpComparison,
	">=": bpComparison,
	"+":  bpAdditive,
	"-":  bpAdditive,
	"*":  bpMultiplicative,
	"/":  bpMultiplicative,
	"%":  bpMultiplicative,
}

// maxExpressionDepth bounds the height of an expression tree. Parsing and
// evaluation both recurse once per level.
const maxExpressionDepth = 10000

// parseExpression parses operators binding tighter than minPower.
func (p *Parser) parseExpression(minPower int) (ast.Expression, error) {
	expr, _, err := p.parseOperators(minPower)
	return expr, err
}

// parseOperators is parseExpression that also reports the height of the
// returned tree.
func (p *Parser) parseOperators(minPower int) (ast.Expression, int, error) {
	if p.nesting >= maxExpressionDepth {
		return nil, 0, tooDeep(p.current())
	}
	p.nesting++
	defer func() { p.nesting-- }()

	start := p.current().Pos
	left, depth, err := p.parsePrefix()
	if err != nil {
		return nil, 0, err
	}
	for {
		tok := p.current()
		if tok.Kind != lexer.Operator {
			return left, depth, nil
		}
		power, ok := infixBindingPower[tok.Text]
		if !ok || power <= minPower {
			return left, depth, nil
		}
		p.advance()
		right, rightDepth, err := p.parseOperators(power)
		if err != nil {
			return nil, 0, err
		}
		depth = 1 + max(depth, rightDepth)
		if depth > maxExpressionDepth {
			return nil, 0, tooDeep(tok)
		}
		left = annotateExpression(ast.NewBinaryExpression(tok.Text, left, right), start, p.lastEnd)
	}
}

func (p *Parser) parsePrefix() (ast.Expression, int, error) {
	tok := p.current()
	switch tok.Kind {
	case lexer.Integer:
		p.advance()
		return annotateExpression(ast.NewIntegerLiteral(tok.Int), tok.Pos, p.lastEnd), 1, nil
	case lexer.Boolean:
		p.advance()
		return annotateExpression(ast.NewBooleanLiteral(tok.Bool), tok.Pos, p.lastEnd), 1, nil
	case lexer.Identifier:
		p.advance()
		return annotateExpression(ast.NewIdentifier(tok.Text), tok.Pos, p.lastEnd), 1, nil
	case lexer.Operator:
		if tok.Text == "-" || tok.Text == "!" {
			p.advance()
			operand, depth, err := p.parseOperators(bpUnary)
			if err != nil {
				return nil, 0, err
			}
			if depth+1 > maxExpressionDepth {
				return nil, 0, tooDeep(tok)
			}
			return annotateExpression(ast.NewUnaryExpression(ast.UnaryOperator(tok.Text), operand), tok.Pos, p.lastEnd), depth + 1, nil
		}
	case lexer.Punctuation:
		if tok.Text == "(" {
			p.advance()
			inner, depth, err := p.parseOperators(bpNone)
			if err != nil {
				return nil, 0, err
			}
			if _, err := p.expect(lexer.Punctuation, ")", "')'"); err != nil {
				return nil, 0, err
			}
			return inner, depth, nil
		}
	}
	return nil, 0, unexpected(tok, "expression")
}
