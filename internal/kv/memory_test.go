package kv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemory_StoreCountReplace(t *testing.T) {
	m := NewMemory()

	if err := m.Store([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
	if err := m.Store([]byte("a"), []byte("2")); err != nil {
		t.Fatalf("replace Store() failed: %v", err)
	}

	count, err := m.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}

	v, ok := m.Get("a")
	if !ok || string(v) != "2" {
		t.Errorf("Get(a) = %q, %v; want \"2\", true", v, ok)
	}
	if m.Writes() != 2 {
		t.Errorf("Writes() = %d, want 2", m.Writes())
	}
}

func TestMemory_FailAfter(t *testing.T) {
	m := NewMemory()
	m.FailAfter = 2

	if err := m.Store([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("write 1 failed: %v", err)
	}
	if err := m.Store([]byte("b"), []byte("2")); err != nil {
		t.Fatalf("write 2 failed: %v", err)
	}

	err := m.Store([]byte("c"), []byte("3"))
	if !errors.Is(err, ErrInjectedWriteFailure) {
		t.Fatalf("write 3 error = %v, want ErrInjectedWriteFailure", err)
	}

	count, _ := m.Count()
	if count != 2 {
		t.Errorf("Count() after injected failure = %d, want 2", count)
	}
}

func TestMemory_Closed(t *testing.T) {
	m := NewMemory()
	if err := m.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := m.Store([]byte("a"), []byte("1")); err == nil {
		t.Error("Store() after Close() should fail")
	}
	if _, err := m.Count(); err == nil {
		t.Error("Count() after Close() should fail")
	}
}

func TestOpenMemory_Placeholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s, err := OpenMemory(path, Options{})
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	defer s.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("placeholder size = %d, want 0 (stale content not truncated)", info.Size())
	}
}

func TestEngine_Lookup(t *testing.T) {
	for _, name := range EngineNames() {
		if _, err := Engine(name); err != nil {
			t.Errorf("Engine(%q) failed: %v", name, err)
		}
	}
	if _, err := Engine("nosuchengine"); err == nil {
		t.Error("Engine() with unknown name should fail")
	}
}
