package main

import (
	"fmt"
	"os"
	"strings"

	"frag/interpreter-go/pkg/driver"
)

type globalOptions struct {
	trace bool
}

// parseGlobalFlags strips flags that apply to every command. They must
// precede the command name.
func parseGlobalFlags(args []string) (globalOptions, []string, error) {
	opts := globalOptions{trace: envEnabled(os.Getenv("FRAG_TRACE"))}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return opts, args[i+1:], nil
		case arg == "--trace":
			opts.trace = true
		case strings.HasPrefix(arg, "--trace="):
			value := strings.TrimPrefix(arg, "--trace=")
			enabled, err := parseBoolFlag(value)
			if err != nil {
				return opts, nil, fmt.Errorf("invalid --trace value '%s' (expected true or false)", value)
			}
			opts.trace = enabled
		default:
			return opts, args[i:], nil
		}
	}
	return opts, nil, nil
}

func parseBoolFlag(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", value)
	}
}

func envEnabled(value string) bool {
	enabled, err := parseBoolFlag(value)
	return err == nil && enabled
}

func openTracer(opts globalOptions) *driver.Tracer {
	if !opts.trace {
		return nil
	}
	home, err := driver.FragHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: tracing disabled: %v\n", err)
		return nil
	}
	tracer, err := driver.OpenTracer(driver.TracePath(home))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: tracing disabled: %v\n", err)
		return nil
	}
	return tracer
}

// splitValueFlag matches "--name value" and "--name=value" at args[i],
// returning the value and how many extra arguments were consumed.
func splitValueFlag(args []string, i int, name string) (string, int, bool, error) {
	arg := args[i]
	switch {
	case arg == name:
		if i+1 >= len(args) {
			return "", 0, true, fmt.Errorf("%s expects a value", name)
		}
		return args[i+1], 1, true, nil
	case strings.HasPrefix(arg, name+"="):
		value := strings.TrimPrefix(arg, name+"=")
		if value == "" {
			return "", 0, true, fmt.Errorf("%s expects a value", name)
		}
		return value, 0, true, nil
	}
	return "", 0, false, nil
}
