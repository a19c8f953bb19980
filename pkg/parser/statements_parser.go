package parser

import (
	"frag/interpreter-go/pkg/ast"
	"frag/interpreter-go/pkg/lexer"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.current()
	switch {
	case tok.Is(lexer.Keyword, lexer.KeywordLet):
		return p.parseLet()
	case tok.Is(lexer.Keyword, lexer.KeywordPrint):
		return p.parsePrint()
	case tok.Kind == lexer.Identifier && p.peek().Is(lexer.Operator, "="):
		return p.parseAssignment()
	}

	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewExpressionStatement(expr), tok.Pos, p.lastEnd), nil
}

// let <ident> = <expr> ;
func (p *Parser) parseLet() (ast.Statement, error) {
	start := p.advance().Pos
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Operator, "=", "'='"); err != nil {
		return nil, err
	}
	init, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewLetDeclaration(name, init), start, p.lastEnd), nil
}

// <ident> = <expr> ;
func (p *Parser) parseAssignment() (ast.Statement, error) {
	start := p.current().Pos
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	p.advance() // '='
	value, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewAssignmentStatement(name, value), start, p.lastEnd), nil
}

// print ( <expr> ) ;
func (p *Parser) parsePrint() (ast.Statement, error) {
	start := p.advance().Pos
	if _, err := p.expect(lexer.Punctuation, "(", "'('"); err != nil {
		return nil, err
	}
	arg, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Punctuation, ")", "')'"); err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewPrintStatement(arg), start, p.lastEnd), nil
}

func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	tok, err := p.expect(lexer.Identifier, "", "identifier")
	if err != nil {
		return nil, err
	}
	id := ast.NewIdentifier(tok.Text)
	annotateSpan(id, tok.Pos, p.lastEnd)
	return id, nil
}

func (p *Parser) expectSemicolon() error {
	_, err := p.expect(lexer.Punctuation, ";", "';'")
	return err
}
