package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  frag [--trace] run [--print-result] [<file.frag> | source:<name>/<path>]")
	fmt.Fprintln(os.Stderr, "  frag [--trace] <file.frag>")
	fmt.Fprintln(os.Stderr, "  frag [--trace] check <file.frag>")
	fmt.Fprintln(os.Stderr, "  frag tokens <file.frag>")
	fmt.Fprintln(os.Stderr, "  frag [--trace] ast <file.frag>")
	fmt.Fprintln(os.Stderr, "  frag [--trace] repl [--session <path>]")
	fmt.Fprintln(os.Stderr, "  frag sources fetch")
	fmt.Fprintln(os.Stderr, "  frag sources update")
	fmt.Fprintln(os.Stderr, "  frag --version")
}
