package lexer

import (
	"errors"
	"strings"
	"testing"
)

func kindsAndTexts(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind.String()+":"+tok.Text)
	}
	return out
}

func TestTokenizeStatements(t *testing.T) {
	tokens, err := Tokenize("let a = 10;\nprint(a + b_2);")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	want := []string{
		"keyword:let", "identifier:a", "operator:=", "integer:10", "punctuation:;",
		"keyword:print", "punctuation:(", "identifier:a", "operator:+", "identifier:b_2", "punctuation:)", "punctuation:;",
		"end of input:",
	}
	got := kindsAndTexts(tokens)
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("tokens mismatch:\n got: %v\nwant: %v", got, want)
	}
	if tokens[3].Int != 10 {
		t.Fatalf("expected integer payload 10, got %d", tokens[3].Int)
	}
}

func TestTokenizeOperatorsGreedy(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{"==", []string{"=="}},
		{"= =", []string{"=", "="}},
		{"!=!", []string{"!=", "!"}},
		{"<=<>=>", []string{"<=", "<", ">=", ">"}},
		{"&&||", []string{"&&", "||"}},
		{"+-*/%", []string{"+", "-", "*", "/", "%"}},
	}
	for _, tc := range cases {
		tokens, err := Tokenize(tc.src)
		if err != nil {
			t.Fatalf("Tokenize(%q) returned error: %v", tc.src, err)
		}
		if len(tokens) != len(tc.want)+1 {
			t.Fatalf("Tokenize(%q) = %v", tc.src, kindsAndTexts(tokens))
		}
		for i, text := range tc.want {
			if !tokens[i].Is(Operator, text) {
				t.Fatalf("Tokenize(%q)[%d] = %s, want operator %q", tc.src, i, tokens[i].Describe(), text)
			}
		}
	}
}

func TestTokenizeBooleansAndIdentifiers(t *testing.T) {
	tokens, err := Tokenize("true false truest _x letter")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	if tokens[0].Kind != Boolean || !tokens[0].Bool {
		t.Fatalf("expected boolean true, got %#v", tokens[0])
	}
	if tokens[1].Kind != Boolean || tokens[1].Bool {
		t.Fatalf("expected boolean false, got %#v", tokens[1])
	}
	for _, tok := range tokens[2:5] {
		if tok.Kind != Identifier {
			t.Fatalf("expected identifier, got %s", tok.Describe())
		}
	}
}

func TestTokenizeSkipsComments(t *testing.T) {
	src := "# heading\nlet x = 1; // trailing\n// whole line\nx / 2;"
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	got := strings.Join(kindsAndTexts(tokens), " ")
	want := "keyword:let identifier:x operator:= integer:1 punctuation:; identifier:x operator:/ integer:2 punctuation:; end of input:"
	if got != want {
		t.Fatalf("tokens mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("let a = 1;\n  a;")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	a := tokens[5]
	if a.Text != "a" || a.Pos.Line != 2 || a.Pos.Column != 3 || a.Pos.Offset != 13 {
		t.Fatalf("unexpected position for second 'a': %#v", a)
	}
	eof := tokens[len(tokens)-1]
	if eof.Kind != EOF || eof.Pos.Offset != 15 {
		t.Fatalf("unexpected EOF token: %#v", eof)
	}
}

func TestTokenizeEndsWithSingleEOF(t *testing.T) {
	for _, src := range []string{"", "   ", "# only a comment", "1"} {
		tokens, err := Tokenize(src)
		if err != nil {
			t.Fatalf("Tokenize(%q) returned error: %v", src, err)
		}
		eofs := 0
		for _, tok := range tokens {
			if tok.Kind == EOF {
				eofs++
			}
		}
		if eofs != 1 || tokens[len(tokens)-1].Kind != EOF {
			t.Fatalf("Tokenize(%q) should end with exactly one EOF, got %v", src, kindsAndTexts(tokens))
		}
	}
}

func TestNextRepeatsEOF(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil || tok.Kind != EOF {
			t.Fatalf("call %d: expected EOF, got %#v (%v)", i, tok, err)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		src    string
		offset int
		substr string
	}{
		{"a & b", 2, "unexpected character '&'"},
		{"a | b", 2, "unexpected character '|'"},
		{"let x = 1 @ 2;", 10, "unexpected character '@'"},
		{"99999999999999999999;", 0, "out of range"},
		{"x = \"s\";", 4, "unexpected character '\"'"},
	}
	for _, tc := range cases {
		tokens, err := Tokenize(tc.src)
		if err == nil {
			t.Fatalf("Tokenize(%q) expected error, got %v", tc.src, kindsAndTexts(tokens))
		}
		if tokens != nil {
			t.Fatalf("Tokenize(%q) returned partial tokens on error", tc.src)
		}
		var lexErr *LexError
		if !errors.As(err, &lexErr) {
			t.Fatalf("Tokenize(%q) error %T is not *LexError", tc.src, err)
		}
		if lexErr.Pos.Offset != tc.offset {
			t.Fatalf("Tokenize(%q) error offset = %d, want %d", tc.src, lexErr.Pos.Offset, tc.offset)
		}
		if !strings.Contains(err.Error(), tc.substr) {
			t.Fatalf("Tokenize(%q) error = %q, want substring %q", tc.src, err.Error(), tc.substr)
		}
	}
}

func TestTokenizeMaxInt(t *testing.T) {
	tokens, err := Tokenize("9223372036854775807")
	if err != nil {
		t.Fatalf("Tokenize returned error: %v", err)
	}
	if tokens[0].Int != 9223372036854775807 {
		t.Fatalf("unexpected payload %d", tokens[0].Int)
	}
}
