// ABOUTME: Key-value persistence backends for point snapshots (memory, JSON files, SQLite)
// ABOUTME: Load never fails: absent or malformed entries come back as an empty sequence

package store

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/mauromedda/circles-go/internal/log"
	"github.com/mauromedda/circles-go/internal/point"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backend is a snapshot store that owns resources.
type Backend interface {
	Load(key string) []point.Point
	Save(key string, pts []point.Point) error
	Close() error
	String() string
}

// Options selects and configures a backend.
type Options struct {
	Backend    string // "file" (default), "sqlite", or "memory"
	DataDir    string // file backend directory
	SQLitePath string // sqlite database file
}

// Open creates the backend named in opts.
func Open(opts Options) (Backend, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFile(opts.DataDir)
	case BackendSQLite:
		return OpenSQLite(opts.SQLitePath)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (want file, sqlite, or memory)", opts.Backend)
	}
}

// decodeOrEmpty turns a raw snapshot into points, logging and discarding
// anything unreadable.
func decodeOrEmpty(where, key string, data []byte) []point.Point {
	pts, err := point.Decode(data)
	if err != nil {
		log.Warn("store: %s: ignoring malformed snapshot %q: %v", where, key, err)
		return []point.Point{}
	}
	return pts
}

// Memory keeps encoded snapshots in a map. Useful for tests and for running
// without persistence.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Load returns the points saved under key, or an empty sequence.
func (m *Memory) Load(key string) []point.Point {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return []point.Point{}
	}
	return decodeOrEmpty("memory", key, raw)
}

// Save stores pts under key.
func (m *Memory) Save(key string, pts []point.Point) error {
	raw, err := point.Encode(pts)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

// Put stores a raw snapshot under key without validation.
func (m *Memory) Put(key string, raw []byte) {
	m.mu.Lock()
	m.data[key] = slices.Clone(raw)
	m.mu.Unlock()
}

// Raw returns the encoded snapshot stored under key.
func (m *Memory) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	return slices.Clone(raw), ok
}

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.data))
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

func (m *Memory) String() string { return "memory" }
