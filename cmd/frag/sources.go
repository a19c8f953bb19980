package main

import (
	"fmt"
	"os"
	"strings"

	"frag/interpreter-go/pkg/driver"
)

func runSources(args []string, tracer *driver.Tracer) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "frag sources requires a subcommand (fetch, update)")
		return 1
	}
	var update bool
	switch args[0] {
	case "fetch":
	case "update":
		update = true
	default:
		fmt.Fprintf(os.Stderr, "unknown sources subcommand %q\n", args[0])
		return 1
	}
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "frag sources %s does not take arguments (received %s)\n", args[0], strings.Join(args[1:], " "))
		return 1
	}

	manifestPath, err := driver.FindManifest(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to locate %s: %v\n", driver.ManifestName, err)
		return 1
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read manifest: %v\n", err)
		return 1
	}
	home, err := driver.FragHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	cacheDir := driver.CacheDir(home)

	fmt.Fprintf(os.Stdout, "Manifest: %s\n", manifest.Path)
	fmt.Fprintf(os.Stdout, "Sources: %d\n", len(manifest.SourceOrder))
	fmt.Fprintf(os.Stdout, "Cache directory: %s\n", cacheDir)

	report, err := driver.SyncSources(manifest, driver.NewGitFetcher(cacheDir), driver.SyncOptions{
		Update: update,
		Tool:   cliToolVersion,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sync sources: %v\n", err)
		return 1
	}
	for _, entry := range report.Fetched {
		fmt.Fprintf(os.Stdout, "  %s %s\n", entry.Name, entry.Version)
		tracer.Tracef("sources: %s pinned at %s", entry.Name, entry.Version)
	}
	if report.Changed {
		fmt.Fprintf(os.Stdout, "Wrote %s\n", manifest.LockfilePath())
	} else {
		fmt.Fprintf(os.Stdout, "%s is up to date\n", driver.LockfileName)
	}
	return 0
}
