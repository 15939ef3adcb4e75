// Package kv abstracts the key-value storage engines a fixture is written to.
//
// The fixture writer only ever needs four operations: open a fresh store,
// query its record count, store a key/value pair with replace semantics, and
// close it. Any embedded engine satisfying Store is substitutable, which
// keeps the writer testable against an in-memory backend.
package kv

import (
	"fmt"
	"os"
	"sort"
)

// Defaults for Options.
const (
	DefaultBlockSize = 512
	DefaultFileMode  = os.FileMode(0o666)
)

// Store is a write-only handle to a newly created key-value store.
type Store interface {
	// Store writes key -> value, replacing any existing entry for key.
	Store(key, value []byte) error

	// Count returns the number of entries currently in the store.
	Count() (uint64, error)

	// Close releases the store's resources. The handle is unusable afterward.
	Close() error
}

// Options configures store creation.
type Options struct {
	// BlockSize is the page/block size hint for the engine.
	// Zero means DefaultBlockSize.
	BlockSize int

	// NumericSync selects the engine's stricter durability bookkeeping.
	// It never alters the logical record set.
	NumericSync bool

	// FileMode is the permission mode for created files.
	// Zero means DefaultFileMode.
	FileMode os.FileMode
}

func (o Options) blockSize() int {
	if o.BlockSize <= 0 {
		return DefaultBlockSize
	}
	return o.BlockSize
}

func (o Options) fileMode() os.FileMode {
	if o.FileMode == 0 {
		return DefaultFileMode
	}
	return o.FileMode
}

// OpenFunc creates a fresh store at path, truncating anything already there.
type OpenFunc func(path string, opts Options) (Store, error)

// engines maps engine names to their openers.
var engines = map[string]OpenFunc{
	"sqlite":  OpenSQLite,
	"leveldb": OpenLevelDB,
	"memory":  OpenMemory,
}

// DefaultEngine is the engine used when none is named.
const DefaultEngine = "sqlite"

// Engine returns the opener for the named engine.
func Engine(name string) (OpenFunc, error) {
	fn, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown storage engine %q (available: %v)", name, EngineNames())
	}
	return fn, nil
}

// EngineNames returns the available engine names in sorted order.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// truncate removes whatever exists at path so the engine starts from an
// empty store ("new, truncate" creation semantics).
func truncate(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("truncate %s: %w", path, err)
	}
	return nil
}
