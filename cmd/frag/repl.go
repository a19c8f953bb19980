package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"frag/interpreter-go/pkg/driver"
	"frag/interpreter-go/pkg/lexer"
	"frag/interpreter-go/pkg/runtime"
)

const replPrompt = "frag> "

func runRepl(args []string, tracer *driver.Tracer) int {
	sessionPath := ""
	for i := 0; i < len(args); i++ {
		value, consumed, matched, err := splitValueFlag(args, i, "--session")
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		if !matched {
			fmt.Fprintf(os.Stderr, "unexpected argument for frag repl: %s\n", args[i])
			return 1
		}
		sessionPath = value
		i += consumed
	}
	if sessionPath == "" {
		manifest, err := manifestFor("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		}
		sessionPath = manifest.SessionPath()
	}

	var store *driver.SessionStore
	if sessionPath != "" {
		var err error
		store, err = driver.OpenSessionStore(sessionPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		defer store.Close()
	}
	session, err := driver.NewSession(driver.SessionOptions{Stdout: os.Stdout, Store: store, Tracer: tracer})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	interactive := isTerminal(os.Stdin)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Fprint(os.Stdout, replPrompt)
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if done := replCommand(session, line); done {
				return 0
			}
			continue
		}
		line = terminateLine(line)
		if line == "" {
			continue
		}
		result, err := session.Eval(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, driver.Describe(err, "<repl>", line))
			continue
		}
		if result.HasValue {
			fmt.Fprintln(os.Stdout, runtime.Format(result.Value))
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input: %v\n", err)
		return 1
	}
	return 0
}

// replCommand handles a ':' command and reports whether the REPL should exit.
func replCommand(session *driver.Session, line string) bool {
	switch line {
	case ":quit", ":q", ":exit":
		return true
	case ":vars":
		env := session.Env()
		for _, name := range env.Keys() {
			val, _ := env.Lookup(name)
			fmt.Fprintf(os.Stdout, "%s = %s\n", name, runtime.Format(val))
		}
	case ":reset":
		if err := session.Reset(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	case ":help":
		fmt.Fprintln(os.Stdout, ":vars   list bindings")
		fmt.Fprintln(os.Stdout, ":reset  drop all bindings")
		fmt.Fprintln(os.Stdout, ":quit   leave the repl")
	default:
		fmt.Fprintf(os.Stderr, "unknown command %s (try :help)\n", line)
	}
	return false
}

// terminateLine adds the closing ';' a REPL line may omit. The ';' goes on a
// new line so a trailing comment cannot swallow it. Lines holding only
// comments come back empty; lines that fail to lex are returned unchanged so
// evaluation reports the error.
func terminateLine(line string) string {
	tokens, err := lexer.Tokenize(line)
	if err != nil {
		return line
	}
	if len(tokens) < 2 {
		return ""
	}
	if last := tokens[len(tokens)-2]; last.Is(lexer.Punctuation, ";") {
		return line
	}
	return line + "\n;"
}
