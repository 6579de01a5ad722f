// ABOUTME: Tests for the snapshot store backends
// ABOUTME: Round-trips every backend and checks absent/malformed entries load as empty

package store

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/mauromedda/circles-go/internal/point"
)

// backends returns a fresh instance of every backend rooted in a temp dir.
func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()

	f, err := NewFile(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := OpenSQLite(filepath.Join(dir, "circles.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	return map[string]Backend{
		"memory": NewMemory(),
		"file":   f,
		"sqlite": s,
	}
}

func TestBackends_RoundTrip(t *testing.T) {
	t.Parallel()

	seqs := [][]point.Point{
		{},
		{point.New(10, 10)},
		{point.New(10, 10), point.New(20, 20), point.New(10, 10)},
		{point.New(-3.5, 7.25), point.New(0, 0)},
	}

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, want := range seqs {
				if err := b.Save("circles", want); err != nil {
					t.Fatalf("Save: %v", err)
				}
				got := b.Load("circles")
				if !slices.Equal(got, want) {
					t.Errorf("Load = %v, want %v", got, want)
				}
			}
		})
	}
}

func TestBackends_AbsentKeyIsEmpty(t *testing.T) {
	t.Parallel()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got := b.Load("undo-circles")
			if got == nil || len(got) != 0 {
				t.Errorf("Load(absent) = %#v, want empty", got)
			}
		})
	}
}

func TestBackends_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			active := []point.Point{point.New(1, 2)}
			redo := []point.Point{point.New(3, 4), point.New(5, 6)}
			if err := b.Save("circles", active); err != nil {
				t.Fatal(err)
			}
			if err := b.Save("undo-circles", redo); err != nil {
				t.Fatal(err)
			}
			if got := b.Load("circles"); !slices.Equal(got, active) {
				t.Errorf("circles = %v, want %v", got, active)
			}
			if got := b.Load("undo-circles"); !slices.Equal(got, redo) {
				t.Errorf("undo-circles = %v, want %v", got, redo)
			}
		})
	}
}

func TestMemory_MalformedIsEmpty(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.Put("circles", []byte(`{"not":"an array"}`))
	if got := m.Load("circles"); len(got) != 0 {
		t.Errorf("Load(malformed) = %v, want empty", got)
	}
	if keys := m.Keys(); !slices.Equal(keys, []string{"circles"}) {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestFile_MalformedIsEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "circles.json"), []byte("[{\"x\":1,"), 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := NewFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Load("circles"); len(got) != 0 {
		t.Errorf("Load(malformed) = %v, want empty", got)
	}
}

func TestFile_WritesPlainJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f, err := NewFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Save("circles", []point.Point{point.New(10, 20)}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "circles.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[{"x":10,"y":20}]` {
		t.Errorf("file content = %s", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only circles.json, found %d entries", len(entries))
	}
}

func TestFile_RejectsPathKeys(t *testing.T) {
	t.Parallel()

	f, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		if err := f.Save(key, nil); err == nil {
			t.Errorf("Save(%q) should fail", key)
		}
		if got := f.Load(key); len(got) != 0 {
			t.Errorf("Load(%q) = %v, want empty", key, got)
		}
	}
}

func TestSQLite_MalformedIsEmpty(t *testing.T) {
	t.Parallel()

	s, err := OpenSQLite(filepath.Join(t.TempDir(), "circles.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.db.Exec(`INSERT INTO snapshots (key, value) VALUES (?, ?)`, "circles", "garbage"); err != nil {
		t.Fatal(err)
	}
	if got := s.Load("circles"); len(got) != 0 {
		t.Errorf("Load(malformed) = %v, want empty", got)
	}
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "circles.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []point.Point{point.New(4, 2)}
	if err := s.Save("circles", want); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if got := s.Load("circles"); !slices.Equal(got, want) {
		t.Errorf("Load after reopen = %v, want %v", got, want)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		opts    Options
		wantErr bool
		prefix  string
	}{
		{Options{DataDir: filepath.Join(dir, "d1")}, false, "file"},
		{Options{Backend: BackendFile, DataDir: filepath.Join(dir, "d2")}, false, "file"},
		{Options{Backend: BackendSQLite, SQLitePath: filepath.Join(dir, "c.db")}, false, "sqlite"},
		{Options{Backend: BackendMemory}, false, "memory"},
		{Options{Backend: "redis"}, true, ""},
		{Options{Backend: BackendFile}, true, ""},
	}

	for _, tt := range tests {
		b, err := Open(tt.opts)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Open(%+v) expected error", tt.opts)
			}
			continue
		}
		if err != nil {
			t.Errorf("Open(%+v): %v", tt.opts, err)
			continue
		}
		if got := b.String(); len(got) < len(tt.prefix) || got[:len(tt.prefix)] != tt.prefix {
			t.Errorf("String() = %q, want prefix %q", got, tt.prefix)
		}
		b.Close()
	}
}
