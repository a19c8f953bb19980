package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"frag/interpreter-go/pkg/interpreter"
	"frag/interpreter-go/pkg/runtime"
)

var sessionBucket = []byte("bindings")

// SessionStore persists REPL bindings in a bbolt database.
type SessionStore struct {
	db   *bolt.DB
	path string
}

// OpenSessionStore opens or creates the session database at path.
func OpenSessionStore(path string) (*SessionStore, error) {
	if path == "" {
		return nil, fmt.Errorf("session: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("session: create %s: %w", filepath.Dir(path), err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("session: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session: init %s: %w", path, err)
	}
	return &SessionStore{db: db, path: path}, nil
}

func (s *SessionStore) Path() string {
	return s.path
}

// Load defines every stored binding in env.
func (s *SessionStore) Load(env *runtime.Environment) error {
	return s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(sessionBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			val, err := decodeValue(v)
			if err != nil {
				return fmt.Errorf("session: binding %q: %w", k, err)
			}
			env.Define(string(k), val)
			return nil
		})
	})
}

// Save replaces the stored bindings with the contents of env.
func (s *SessionStore) Save(env *runtime.Environment) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(sessionBucket); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		bucket, err := tx.CreateBucket(sessionBucket)
		if err != nil {
			return err
		}
		for name, val := range env.Snapshot() {
			data, err := encodeValue(val)
			if err != nil {
				return fmt.Errorf("binding %q: %w", name, err)
			}
			if err := bucket.Put([]byte(name), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

// Clear removes all stored bindings.
func (s *SessionStore) Clear() error {
	return s.Save(runtime.NewEnvironment())
}

func (s *SessionStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func encodeValue(v runtime.Value) ([]byte, error) {
	switch val := v.(type) {
	case runtime.IntegerValue:
		return []byte("int:" + strconv.FormatInt(val.Val, 10)), nil
	case runtime.BoolValue:
		return []byte("bool:" + strconv.FormatBool(val.Val)), nil
	default:
		return nil, fmt.Errorf("cannot store %T", v)
	}
}

func decodeValue(data []byte) (runtime.Value, error) {
	kind, payload, ok := strings.Cut(string(data), ":")
	if !ok {
		return nil, fmt.Errorf("malformed value %q", data)
	}
	switch kind {
	case "int":
		n, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return nil, err
		}
		return runtime.IntegerValue{Val: n}, nil
	case "bool":
		b, err := strconv.ParseBool(payload)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: b}, nil
	}
	return nil, fmt.Errorf("unknown value kind %q", kind)
}

// SessionOptions configures NewSession.
type SessionOptions struct {
	Stdout io.Writer
	// Store, when set, seeds the session and receives every successful
	// update.
	Store  *SessionStore
	Tracer *Tracer
}

// Session evaluates REPL input against a persistent environment. Each call
// to Eval is atomic: a failing line leaves the bindings untouched.
type Session struct {
	env    *runtime.Environment
	stdout io.Writer
	store  *SessionStore
	tracer *Tracer
}

func NewSession(opts SessionOptions) (*Session, error) {
	env := runtime.NewEnvironment()
	if opts.Store != nil {
		if err := opts.Store.Load(env); err != nil {
			return nil, err
		}
	}
	return &Session{env: env, stdout: opts.Stdout, store: opts.Store, tracer: opts.Tracer}, nil
}

// Env exposes the current bindings.
func (s *Session) Env() *runtime.Environment {
	return s.env
}

// Eval runs src against a copy of the bindings and commits the copy only
// when the whole input succeeds.
func (s *Session) Eval(src string) (*interpreter.Result, error) {
	work := s.env.Clone()
	result, err := RunSource("<repl>", src, RunOptions{Stdout: s.stdout, Env: work, Tracer: s.tracer})
	if err != nil {
		return nil, err
	}
	s.env = work
	if s.store != nil {
		if err := s.store.Save(s.env); err != nil {
			return result, err
		}
	}
	return result, nil
}

// Reset drops every binding, including persisted ones.
func (s *Session) Reset() error {
	s.env = runtime.NewEnvironment()
	if s.store != nil {
		return s.store.Clear()
	}
	return nil
}
