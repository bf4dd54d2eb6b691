package assets

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltinModel(t *testing.T) {
	m := NewManager()

	data, err := m.Load(DefaultModel)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", DefaultModel, err)
	}
	if !bytes.Contains(data, []byte("\nf ")) {
		t.Error("built-in cube has no faces")
	}

	if _, err := m.Load(DefaultModel); err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	hits, misses := m.cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("cache stats = %d hits, %d misses; want 1, 1", hits, misses)
	}
}

func TestLoadBuiltinMissing(t *testing.T) {
	if _, err := NewManager().Load(BuiltinPrefix + "teapot.obj"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveSearchOrder(t *testing.T) {
	low, high := t.TempDir(), t.TempDir()
	for _, dir := range []string{low, high} {
		if err := os.WriteFile(filepath.Join(dir, "mesh.obj"), []byte(dir), 0644); err != nil {
			t.Fatalf("failed to write asset: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(low, "only-low.obj"), nil, 0644); err != nil {
		t.Fatalf("failed to write asset: %v", err)
	}

	m := NewManager(low)
	if err := m.AddRoot(high); err != nil {
		t.Fatalf("AddRoot failed: %v", err)
	}

	got, err := m.Resolve("mesh.obj")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != filepath.Join(high, "mesh.obj") {
		t.Errorf("Resolve = %s, want the last added root", got)
	}

	if got, err := m.Resolve("only-low.obj"); err != nil || got != filepath.Join(low, "only-low.obj") {
		t.Errorf("Resolve(only-low.obj) = %s, %v", got, err)
	}

	if _, err := m.Resolve("nowhere.obj"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := m.Resolve(DefaultModel); err == nil {
		t.Error("built-in assets should not resolve to a file path")
	}
}

func TestLoadFromRoot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.obj"), []byte("v 0 0 0\n"), 0644); err != nil {
		t.Fatalf("failed to write asset: %v", err)
	}

	data, err := NewManager(dir).Load("a.obj")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "v 0 0 0\n" {
		t.Errorf("Load = %q", data)
	}
}

func TestAddRootRejectsFiles(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	m := NewManager()
	if err := m.AddRoot(file); err == nil {
		t.Error("expected error adding a file as root")
	}
	if err := m.AddRoot(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestCache(t *testing.T) {
	c := NewCache()
	c.Set("a", []byte{1})

	if data, ok := c.Get("a"); !ok || len(data) != 1 {
		t.Errorf("Get(a) = %v, %v", data, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) should miss")
	}

	c.Clear()
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Errorf("stats after Clear = %d, %d", hits, misses)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Clear should drop entries")
	}
}
