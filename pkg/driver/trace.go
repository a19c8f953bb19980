package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Tracer appends timestamped pipeline events to a log file. A nil *Tracer
// discards everything.
type Tracer struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// TracePath is the trace log location under home.
func TracePath(home string) string {
	return filepath.Join(home, "log", "trace.log")
}

// OpenTracer opens (or creates) the trace log at path.
func OpenTracer(path string) (*Tracer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("trace: create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}
	return &Tracer{path: path, file: file}, nil
}

func (t *Tracer) Path() string {
	if t == nil {
		return ""
	}
	return t.path
}

// Tracef writes one line. Write failures are dropped; tracing never affects
// a run.
func (t *Tracer) Tracef(format string, args ...interface{}) {
	if t == nil || t.file == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprint(t.file, time.Now().Format("2006-01-02 15:04:05.000"), " ")
	fmt.Fprintf(t.file, format+"\n", args...)
}

func (t *Tracer) Close() error {
	if t == nil || t.file == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.file.Close()
	t.file = nil
	return err
}
