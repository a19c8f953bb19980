package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// LexError reports a character that starts no token, or a literal that
// cannot be represented.
type LexError struct {
	Pos     Position
	Char    rune
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Reason())
}

// Reason is the error message without the position prefix.
func (e *LexError) Reason() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected character %q", e.Char)
}

// Lexer holds the scanning state for a single pass over src.
type Lexer struct {
	src    string
	pos    int // byte offset of the next rune
	line   int
	column int
}

// New returns a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, column: 1}
}

// Tokenize scans the whole source. The returned slice always ends with a
// single EOF token; on error no tokens are returned.
func Tokenize(src string) ([]Token, error) {
	l := New(src)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

// Next returns the next token. Once EOF has been returned every further call
// returns EOF again.
func (l *Lexer) Next() (Token, error) {
	l.skipTrivia()
	start := l.position()
	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Pos: start}, nil
	}

	r := l.peek()
	switch {
	case isDigit(r):
		return l.scanInteger(start)
	case isIdentStart(r):
		return l.scanWord(start), nil
	}

	l.advance()
	switch r {
	case ';', '(', ')':
		return Token{Kind: Punctuation, Text: string(r), Pos: start}, nil
	case '+', '-', '*', '/', '%':
		return Token{Kind: Operator, Text: string(r), Pos: start}, nil
	case '=', '!', '<', '>':
		text := string(r)
		if l.peek() == '=' {
			l.advance()
			text += "="
		}
		return Token{Kind: Operator, Text: text, Pos: start}, nil
	case '&', '|':
		if l.peek() != r {
			return Token{}, &LexError{Pos: start, Char: r}
		}
		l.advance()
		return Token{Kind: Operator, Text: string(r) + string(r), Pos: start}, nil
	}
	return Token{}, &LexError{Pos: start, Char: r}
}

func (l *Lexer) scanInteger(start Position) (Token, error) {
	begin := l.pos
	for l.pos < len(l.src) && isDigit(l.peek()) {
		l.advance()
	}
	text := l.src[begin:l.pos]
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, &LexError{
			Pos:     start,
			Char:    rune(text[0]),
			Message: fmt.Sprintf("integer literal %s out of range", text),
		}
	}
	return Token{Kind: Integer, Text: text, Int: n, Pos: start}, nil
}

func (l *Lexer) scanWord(start Position) Token {
	begin := l.pos
	for l.pos < len(l.src) && isIdentPart(l.peek()) {
		l.advance()
	}
	text := l.src[begin:l.pos]
	switch text {
	case "true":
		return Token{Kind: Boolean, Text: text, Bool: true, Pos: start}
	case "false":
		return Token{Kind: Boolean, Text: text, Bool: false, Pos: start}
	}
	if _, ok := keywords[text]; ok {
		return Token{Kind: Keyword, Text: text, Pos: start}
	}
	return Token{Kind: Identifier, Text: text, Pos: start}
}

// skipTrivia discards whitespace and line comments ("//" or "#").
func (l *Lexer) skipTrivia() {
	for l.pos < len(l.src) {
		r := l.peek()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '#', r == '/' && l.peek2() == '/':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.column}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *Lexer) peek2() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	_, n := utf8.DecodeRuneInString(l.src[l.pos:])
	if l.pos+n >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos+n:])
	return r
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, n := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += n
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
