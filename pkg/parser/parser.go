package parser

import (
	"frag/interpreter-go/pkg/ast"
	"frag/interpreter-go/pkg/lexer"
)

// Parser consumes a token stream produced by the lexer and builds a Program.
// It stops at the first error.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	lastEnd ast.Position
	nesting int // active parseOperators calls
}

// New returns a parser over tokens. The stream is expected to end with an
// EOF token; a missing one is treated as if it were present.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse builds the program for tokens. No partial program is returned on
// error.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// ParseSource lexes and parses src in one step.
func ParseSource(src string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseProgram parses statements until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	start := p.current().Pos
	var body []ast.Statement
	for p.current().Kind != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	program := ast.NewProgram(body)
	ast.SetSpan(program, ast.Span{Start: toPosition(start), End: toPosition(p.current().Pos)})
	return program, nil
}

func (p *Parser) current() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	eof := lexer.Token{Kind: lexer.EOF}
	if n := len(p.tokens); n > 0 {
		eof.Pos = endOf(p.tokens[n-1])
	}
	return eof
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return lexer.Token{Kind: lexer.EOF}
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if tok.Kind != lexer.EOF {
		p.pos++
		p.lastEnd = toPosition(endOf(tok))
	}
	return tok
}

// expect consumes the current token when it matches kind and text; an empty
// text matches any token of that kind.
func (p *Parser) expect(kind lexer.Kind, text, expected string) (lexer.Token, error) {
	tok := p.current()
	if tok.Kind != kind || (text != "" && tok.Text != text) {
		return lexer.Token{}, unexpected(tok, expected)
	}
	return p.advance(), nil
}
