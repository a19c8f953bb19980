package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceExtension is the file extension of frag programs.
const SourceExtension = ".frag"

// SourceRefPrefix marks a program reference into a manifest source, as in
// "source:shared/lib/main.frag".
const SourceRefPrefix = "source:"

// SourceFile is a program loaded from disk.
type SourceFile struct {
	// Name is the display name used in diagnostics.
	Name string
	Path string
	Text string
}

// LoadOptions configures LoadSource.
type LoadOptions struct {
	Manifest *Manifest
	CacheDir string
}

// FragHome returns $FRAG_HOME, defaulting to ~/.frag.
func FragHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv("FRAG_HOME")); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve FRAG_HOME: %w", err)
	}
	return filepath.Join(userHome, ".frag"), nil
}

// CacheDir is where git sources are checked out.
func CacheDir(home string) string {
	return filepath.Join(home, "src")
}

// IsSourceRef reports whether ref uses the source:<name>/<path> form.
func IsSourceRef(ref string) bool {
	return strings.HasPrefix(ref, SourceRefPrefix)
}

// LoadSource reads a program given a file path or a source:<name>/<path>
// reference resolved through the manifest.
func LoadSource(ref string, opts LoadOptions) (*SourceFile, error) {
	if ref == "" {
		return nil, fmt.Errorf("loader: empty program path")
	}
	path := ref
	if IsSourceRef(ref) {
		resolved, err := resolveSourceRef(strings.TrimPrefix(ref, SourceRefPrefix), opts)
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return &SourceFile{Name: ref, Path: path, Text: string(data)}, nil
}

func resolveSourceRef(ref string, opts LoadOptions) (string, error) {
	name, rel, ok := strings.Cut(ref, "/")
	if !ok || name == "" || rel == "" {
		return "", fmt.Errorf("loader: source reference %q must look like source:<name>/<path>", SourceRefPrefix+ref)
	}
	if opts.Manifest == nil {
		return "", fmt.Errorf("loader: source reference %q requires a %s", SourceRefPrefix+ref, ManifestName)
	}
	dir, err := SourceDir(opts.Manifest, opts.CacheDir, name)
	if err != nil {
		return "", err
	}
	rel = filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("loader: source path %q escapes source %q", rel, name)
	}
	if filepath.Ext(rel) == "" {
		rel += SourceExtension
	}
	return filepath.Join(dir, rel), nil
}
