package parser

import (
	"fmt"

	"frag/interpreter-go/pkg/lexer"
)

// ParseError reports the first token that did not fit the grammar.
type ParseError struct {
	Pos      lexer.Position
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Reason())
}

// Reason is the error message without the position prefix.
func (e *ParseError) Reason() string {
	return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
}

func unexpected(tok lexer.Token, expected string) *ParseError {
	return &ParseError{Pos: tok.Pos, Expected: expected, Found: tok.Describe()}
}

func tooDeep(tok lexer.Token) *ParseError {
	return unexpected(tok, "shallower expression")
}
