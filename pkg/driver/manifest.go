package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the project manifest file looked up by FindManifest.
const ManifestName = "frag.yml"

// ErrManifestNotFound is returned when no frag.yml exists in a directory or
// any of its parents.
var ErrManifestNotFound = errors.New("manifest: frag.yml not found")

// Manifest represents the parsed contents of frag.yml.
type Manifest struct {
	Path        string
	Dir         string
	Name        string
	Entry       string
	Run         RunSettings
	Repl        ReplSettings
	Sources     map[string]*SourceSpec
	SourceOrder []string
}

// RunSettings holds defaults for `frag run`.
type RunSettings struct {
	PrintResult bool
}

// ReplSettings holds defaults for `frag repl`.
type ReplSettings struct {
	Session string
}

// SourceSpec describes a program source in the manifest: either a git
// repository pinned by rev, tag or branch, or a local directory.
type SourceSpec struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
	Path   string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// FindManifest walks up from start looking for frag.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

// LoadManifest parses frag.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// EntryPath resolves the manifest entry relative to the manifest directory.
func (m *Manifest) EntryPath() string {
	if m == nil || m.Entry == "" {
		return ""
	}
	if filepath.IsAbs(m.Entry) {
		return m.Entry
	}
	return filepath.Join(m.Dir, m.Entry)
}

// SessionPath resolves repl.session relative to the manifest directory.
func (m *Manifest) SessionPath() string {
	if m == nil || m.Repl.Session == "" {
		return ""
	}
	if filepath.IsAbs(m.Repl.Session) {
		return m.Repl.Session
	}
	return filepath.Join(m.Dir, m.Repl.Session)
}

// LockfilePath is the frag.lock next to the manifest.
func (m *Manifest) LockfilePath() string {
	return filepath.Join(m.Dir, LockfileName)
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Entry != "" && !strings.HasSuffix(m.Entry, SourceExtension) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("entry %q must be a %s file", m.Entry, SourceExtension))
	}
	for _, name := range m.SourceOrder {
		spec := m.Sources[name]
		if spec == nil {
			continue
		}
		for _, issue := range spec.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("sources.%s: %s", name, issue))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (s *SourceSpec) validate() []string {
	var errs []string
	if s.Git == "" && s.Path == "" {
		errs = append(errs, "must specify git or path")
	}
	if s.Git != "" && s.Path != "" {
		errs = append(errs, "path sources cannot also specify git")
	}
	pins := 0
	for _, pin := range []string{s.Rev, s.Tag, s.Branch} {
		if pin != "" {
			pins++
		}
	}
	if s.Git != "" && pins == 0 {
		errs = append(errs, "git sources require rev, tag, or branch")
	}
	if pins > 1 {
		errs = append(errs, "only one of rev, tag, or branch may be set")
	}
	if s.Path != "" && pins > 0 {
		errs = append(errs, "path sources cannot pin a revision")
	}
	return errs
}

// IsGit reports whether the source is fetched from a git repository.
func (s *SourceSpec) IsGit() bool {
	return s != nil && s.Git != ""
}

type manifestFile struct {
	Name    string    `yaml:"name"`
	Entry   string    `yaml:"entry"`
	Run     runYAML   `yaml:"run"`
	Repl    replYAML  `yaml:"repl"`
	Sources sourceMap `yaml:"sources"`
}

type runYAML struct {
	PrintResult bool `yaml:"print_result"`
}

type replYAML struct {
	Session string `yaml:"session"`
}

type sourceMap struct {
	items []sourceMapEntry
}

type sourceMapEntry struct {
	name string
	spec *SourceSpec
}

func (sm *sourceMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		sm.items = nil
		return nil
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		sm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: sources must be a mapping")
	}
	items := make([]sourceMapEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: source names must be non-empty")
		}
		var spec SourceSpec
		if err := spec.unmarshalYAML(valueNode); err != nil {
			return fmt.Errorf("manifest: source %q: %w", key, err)
		}
		items = append(items, sourceMapEntry{name: key, spec: &spec})
	}
	sm.items = items
	return nil
}

func (s *SourceSpec) unmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		// A bare string is shorthand for a local path.
		*s = SourceSpec{Path: strings.TrimSpace(value.Value)}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Git    string `yaml:"git"`
			Rev    string `yaml:"rev"`
			Tag    string `yaml:"tag"`
			Branch string `yaml:"branch"`
			Path   string `yaml:"path"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*s = SourceSpec{
			Git:    strings.TrimSpace(raw.Git),
			Rev:    strings.TrimSpace(raw.Rev),
			Tag:    strings.TrimSpace(raw.Tag),
			Branch: strings.TrimSpace(raw.Branch),
			Path:   strings.TrimSpace(raw.Path),
		}
		return nil
	case yaml.AliasNode:
		return s.unmarshalYAML(value.Alias)
	default:
		return fmt.Errorf("expected string or mapping, found %s", value.ShortTag())
	}
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:        path,
		Dir:         filepath.Dir(path),
		Name:        sanitizeSegment(mf.Name),
		Entry:       strings.TrimSpace(mf.Entry),
		Run:         RunSettings{PrintResult: mf.Run.PrintResult},
		Repl:        ReplSettings{Session: strings.TrimSpace(mf.Repl.Session)},
		Sources:     make(map[string]*SourceSpec, len(mf.Sources.items)),
		SourceOrder: make([]string, 0, len(mf.Sources.items)),
	}
	for _, item := range mf.Sources.items {
		name := sanitizeSegment(item.name)
		if _, exists := result.Sources[name]; exists {
			continue
		}
		result.Sources[name] = item.spec
		result.SourceOrder = append(result.SourceOrder, name)
	}
	return result
}

func sanitizeSegment(seg string) string {
	seg = strings.TrimSpace(seg)
	seg = strings.ReplaceAll(seg, "-", "_")
	return seg
}
