package kv

import (
	"errors"
	"fmt"
	"os"
)

// ErrInjectedWriteFailure is returned by a Memory store once its FailAfter
// budget is exhausted.
var ErrInjectedWriteFailure = errors.New("injected write failure")

// Memory is an in-process store used for unit tests and dry runs.
//
// It keeps replace semantics and insertion counting like the on-disk
// engines, and can simulate write failures: set FailAfter to n >= 0 and the
// (n+1)th call to Store fails with ErrInjectedWriteFailure.
type Memory struct {
	entries map[string][]byte
	writes  int
	closed  bool

	// FailAfter is the number of Store calls that succeed before writes
	// start failing. Negative (the default) disables injection.
	FailAfter int
}

// NewMemory returns an empty in-memory store with failure injection disabled.
func NewMemory() *Memory {
	return &Memory{entries: map[string][]byte{}, FailAfter: -1}
}

// OpenMemory is the OpenFunc for the "memory" engine. The store content
// lives in process memory; path is still truncated and replaced with an
// empty placeholder file so callers get the usual fresh-store artifact.
func OpenMemory(path string, opts Options) (Store, error) {
	if err := truncate(path); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, nil, opts.fileMode()); err != nil {
		return nil, fmt.Errorf("create memory store placeholder: %w", err)
	}
	return NewMemory(), nil
}

func (m *Memory) Store(key, value []byte) error {
	if m.closed {
		return errors.New("store is closed")
	}
	if m.FailAfter >= 0 && m.writes >= m.FailAfter {
		return fmt.Errorf("store key %q: %w", key, ErrInjectedWriteFailure)
	}
	m.entries[string(key)] = append([]byte(nil), value...)
	m.writes++
	return nil
}

func (m *Memory) Count() (uint64, error) {
	if m.closed {
		return 0, errors.New("store is closed")
	}
	return uint64(len(m.entries)), nil
}

func (m *Memory) Close() error {
	m.closed = true
	return nil
}

// Get returns the stored value for key and whether it exists.
// Test helper; the fixture writer itself never reads back.
func (m *Memory) Get(key string) ([]byte, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Writes returns the number of successful Store calls.
func (m *Memory) Writes() int {
	return m.writes
}
