package main

import (
	"encoding/json"
	"fmt"
	"os"

	"frag/interpreter-go/pkg/driver"
	"frag/interpreter-go/pkg/lexer"
)

func runCheck(args []string, tracer *driver.Tracer) int {
	src, ok := singleProgramArg("check", args)
	if !ok {
		return 1
	}
	program, err := driver.Check(src.Name, src.Text, tracer)
	if err != nil {
		fmt.Fprintln(os.Stderr, driver.Describe(err, src.Name, src.Text))
		return 1
	}
	fmt.Fprintf(os.Stdout, "ok: %d statements\n", len(program.Body))
	return 0
}

func runTokens(args []string) int {
	src, ok := singleProgramArg("tokens", args)
	if !ok {
		return 1
	}
	lex := lexer.New(src.Text)
	for {
		tok, err := lex.Next()
		if err != nil {
			fmt.Fprintln(os.Stderr, driver.Describe(err, src.Name, src.Text))
			return 1
		}
		fmt.Fprintln(os.Stdout, tok.String())
		if tok.Kind == lexer.EOF {
			return 0
		}
	}
}

func runAST(args []string, tracer *driver.Tracer) int {
	src, ok := singleProgramArg("ast", args)
	if !ok {
		return 1
	}
	program, err := driver.Check(src.Name, src.Text, tracer)
	if err != nil {
		fmt.Fprintln(os.Stderr, driver.Describe(err, src.Name, src.Text))
		return 1
	}
	data, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode AST: %v\n", err)
		return 1
	}
	fmt.Fprintln(os.Stdout, string(data))
	return 0
}
