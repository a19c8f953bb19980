package lexer

import "fmt"

// Kind classifies a token.
type Kind int

const (
	EOF Kind = iota
	Integer
	Boolean
	Identifier
	Keyword
	Operator
	Punctuation
)

var kindNames = [...]string{
	EOF:         "end of input",
	Integer:     "integer",
	Boolean:     "boolean",
	Identifier:  "identifier",
	Keyword:     "keyword",
	Operator:    "operator",
	Punctuation: "punctuation",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords recognised by the lexer. Boolean literals are classified
// separately even though they look like keywords.
const (
	KeywordLet   = "let"
	KeywordPrint = "print"
)

var keywords = map[string]struct{}{
	KeywordLet:   {},
	KeywordPrint: {},
}

// Position locates a token in the source. Offset is a byte offset; Line and
// Column are 1-based, Column counted in runes.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit. Int and Bool carry the literal payload for
// Integer and Boolean tokens.
type Token struct {
	Kind Kind
	Text string
	Int  int64
	Bool bool
	Pos  Position
}

// Is reports whether the token has the given kind and lexeme.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// Describe renders the token for diagnostics ("'+'", "identifier 'x'", ...).
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Operator, Punctuation:
		return fmt.Sprintf("'%s'", t.Text)
	default:
		return fmt.Sprintf("%s '%s'", t.Kind, t.Text)
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%-11s %-8q %s", t.Kind, t.Text, t.Pos)
}
