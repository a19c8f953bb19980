package driver

import (
	"errors"
	"fmt"
	"strings"

	"frag/interpreter-go/pkg/interpreter"
	"frag/interpreter-go/pkg/lexer"
	"frag/interpreter-go/pkg/parser"
)

// DiagnosticLocation is a 1-based source location.
type DiagnosticLocation struct {
	Line   int
	Column int
}

// Stage names the pipeline stage that produced err: "lex", "parse",
// "runtime", or "" for anything else.
func Stage(err error) string {
	var lexErr *lexer.LexError
	var parseErr *parser.ParseError
	var runtimeErr *interpreter.RuntimeError
	switch {
	case errors.As(err, &lexErr):
		return "lex"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &runtimeErr):
		return "runtime"
	}
	return ""
}

func locate(err error) (DiagnosticLocation, string, bool) {
	var lexErr *lexer.LexError
	var parseErr *parser.ParseError
	var runtimeErr *interpreter.RuntimeError
	switch {
	case errors.As(err, &lexErr):
		return DiagnosticLocation{Line: lexErr.Pos.Line, Column: lexErr.Pos.Column}, lexErr.Reason(), true
	case errors.As(err, &parseErr):
		return DiagnosticLocation{Line: parseErr.Pos.Line, Column: parseErr.Pos.Column}, parseErr.Reason(), true
	case errors.As(err, &runtimeErr):
		return DiagnosticLocation{Line: runtimeErr.Pos.Line, Column: runtimeErr.Pos.Column}, runtimeErr.Reason(), true
	}
	return DiagnosticLocation{}, "", false
}

// Describe renders err as "file:line:col: <stage> error: message" followed by
// the offending source line and a caret under the column. Errors that do not
// come from the pipeline are returned as their plain message.
func Describe(err error, filename, source string) string {
	if err == nil {
		return ""
	}
	loc, reason, ok := locate(err)
	if !ok {
		return err.Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: %s error: %s", filename, loc.Line, loc.Column, Stage(err), reason)
	line, found := sourceLine(source, loc.Line)
	if !found {
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(caretPadding(line, loc.Column))
	b.WriteString("^")
	return b.String()
}

func sourceLine(source string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return "", false
	}
	text := strings.TrimRight(lines[line-1], "\r")
	if line == len(lines) && text == "" && line > 1 {
		return "", false
	}
	return text, true
}

// caretPadding keeps tabs so the caret lines up with the column.
func caretPadding(line string, column int) string {
	var b strings.Builder
	col := 1
	for _, r := range line {
		if col >= column {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteByte(' ')
		}
		col++
	}
	for ; col < column; col++ {
		b.WriteByte(' ')
	}
	return b.String()
}
