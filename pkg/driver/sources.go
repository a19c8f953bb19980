package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SyncOptions controls SyncSources.
type SyncOptions struct {
	// Update ignores existing pins and re-resolves every git source.
	Update bool
	Tool   string
}

// SyncReport lists what SyncSources did, in manifest order.
type SyncReport struct {
	Fetched []*LockedSource
	Changed bool
}

// SyncSources materialises every manifest source and rewrites frag.lock.
// Existing pins are honoured unless opts.Update is set.
func SyncSources(manifest *Manifest, fetcher Fetcher, opts SyncOptions) (*SyncReport, error) {
	if manifest == nil {
		return nil, fmt.Errorf("sources: nil manifest")
	}
	lockPath := manifest.LockfilePath()
	lock, err := LoadLockfile(lockPath)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		lock = NewLockfile(manifest.Name, opts.Tool)
	default:
		return nil, err
	}

	report := &SyncReport{}
	next := NewLockfile(manifest.Name, opts.Tool)
	for _, name := range manifest.SourceOrder {
		spec := manifest.Sources[name]
		if spec == nil {
			continue
		}
		previous, _ := lock.Find(name)
		var entry *LockedSource
		if spec.IsGit() {
			if fetcher == nil {
				return nil, fmt.Errorf("sources: %q: no git fetcher configured", name)
			}
			pin := previous
			if opts.Update {
				pin = nil
			}
			entry, _, err = fetcher.Fetch(name, spec, pin)
		} else {
			entry, err = lockPathSource(manifest, name, spec)
		}
		if err != nil {
			return nil, err
		}
		if previous == nil || *previous != *entry {
			report.Changed = true
		}
		next.Put(entry)
		report.Fetched = append(report.Fetched, entry)
	}
	if len(next.Sources) != len(lock.Sources) {
		report.Changed = true
	}
	if !report.Changed {
		next.Generated = lock.Generated
	}
	if err := WriteLockfile(next, lockPath); err != nil {
		return nil, err
	}
	return report, nil
}

func lockPathSource(manifest *Manifest, name string, spec *SourceSpec) (*LockedSource, error) {
	dir := spec.Path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(manifest.Dir, dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("sources: %q: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sources: %q: %s is not a directory", name, dir)
	}
	checksum, err := dirChecksum(dir)
	if err != nil {
		return nil, fmt.Errorf("sources: %q: checksum: %w", name, err)
	}
	return &LockedSource{
		Name:     sanitizeSegment(name),
		Version:  "path:" + filepath.ToSlash(spec.Path),
		Checksum: checksum,
	}, nil
}

// SourceDir returns the directory holding the named source: the local path
// for path sources, or the pinned checkout under cacheDir for git sources.
func SourceDir(manifest *Manifest, cacheDir, name string) (string, error) {
	if manifest == nil {
		return "", ErrManifestNotFound
	}
	name = sanitizeSegment(name)
	spec, ok := manifest.Sources[name]
	if !ok || spec == nil {
		return "", fmt.Errorf("sources: %q is not declared in %s", name, manifest.Path)
	}
	if !spec.IsGit() {
		if filepath.IsAbs(spec.Path) {
			return spec.Path, nil
		}
		return filepath.Join(manifest.Dir, spec.Path), nil
	}
	lock, err := LoadLockfile(manifest.LockfilePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("sources: %q not fetched; run `frag sources fetch`", name)
		}
		return "", err
	}
	entry, ok := lock.Find(name)
	if !ok {
		return "", fmt.Errorf("sources: %q not fetched; run `frag sources fetch`", name)
	}
	dir := filepath.Join(cacheDir, name, sanitizePathSegment(entry.Version))
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("sources: %q checkout missing at %s; run `frag sources fetch`", name, dir)
	}
	return dir, nil
}
