package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"frag/interpreter-go/pkg/driver"
	"frag/interpreter-go/pkg/runtime"
)

const cliToolVersion = "frag 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, args, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	}

	tracer := openTracer(opts)
	defer tracer.Close()

	switch args[0] {
	case "run":
		return runEntry(args[1:], tracer)
	case "check":
		return runCheck(args[1:], tracer)
	case "tokens":
		return runTokens(args[1:])
	case "ast":
		return runAST(args[1:], tracer)
	case "repl":
		return runRepl(args[1:], tracer)
	case "sources":
		return runSources(args[1:], tracer)
	default:
		if strings.HasPrefix(args[0], "-") {
			fmt.Fprintf(os.Stderr, "unknown flag %s\n", args[0])
			printUsage()
			return 1
		}
		return runEntry(args, tracer)
	}
}

func runEntry(args []string, tracer *driver.Tracer) int {
	printResult := false
	var rest []string
	for _, arg := range args {
		switch {
		case arg == "--print-result":
			printResult = true
		case strings.HasPrefix(arg, "--"):
			fmt.Fprintf(os.Stderr, "unknown flag %s for frag run\n", arg)
			return 1
		default:
			rest = append(rest, arg)
		}
	}
	if len(rest) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(rest[1:], " "))
		return 1
	}

	ref := ""
	if len(rest) == 1 {
		ref = rest[0]
	}
	manifest, err := manifestFor(ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}
	if ref == "" {
		if manifest == nil || manifest.Entry == "" {
			fmt.Fprintln(os.Stderr, "frag run requires a source file (no frag.yml with an entry found)")
			return 1
		}
		ref = manifest.EntryPath()
	}
	if manifest != nil && manifest.Run.PrintResult {
		printResult = true
	}

	src, err := loadProgram(ref, manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}
	result, err := driver.RunSource(src.Name, src.Text, driver.RunOptions{Stdout: os.Stdout, Tracer: tracer})
	if err != nil {
		fmt.Fprintln(os.Stderr, driver.Describe(err, src.Name, src.Text))
		return 1
	}
	if printResult && result.HasValue {
		fmt.Fprintln(os.Stdout, runtime.Format(result.Value))
	}
	return 0
}

// manifestFor finds the frag.yml governing ref: the one above the file, or
// the one above the working directory for source references and manifest
// entry runs. A missing manifest is not an error.
func manifestFor(ref string) (*driver.Manifest, error) {
	start := "."
	if ref != "" && !driver.IsSourceRef(ref) {
		start = filepath.Dir(ref)
	}
	path, err := driver.FindManifest(start)
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return driver.LoadManifest(path)
}

func loadProgram(ref string, manifest *driver.Manifest) (*driver.SourceFile, error) {
	opts := driver.LoadOptions{Manifest: manifest}
	if driver.IsSourceRef(ref) {
		home, err := driver.FragHome()
		if err != nil {
			return nil, err
		}
		opts.CacheDir = driver.CacheDir(home)
	}
	return driver.LoadSource(ref, opts)
}

// singleProgramArg loads the one program argument taken by check, tokens and
// ast.
func singleProgramArg(command string, args []string) (*driver.SourceFile, bool) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "frag %s requires exactly one source file\n", command)
		return nil, false
	}
	manifest, err := manifestFor(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return nil, false
	}
	src, err := loadProgram(args[0], manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return nil, false
	}
	return src, true
}
