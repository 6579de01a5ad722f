// ABOUTME: File backend: one JSON snapshot per key under a data directory
// ABOUTME: Writes go to a temp file first and are renamed into place

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mauromedda/circles-go/internal/log"
	"github.com/mauromedda/circles-go/internal/point"
)

// File stores each key as <dir>/<key>.json.
type File struct {
	dir string
}

// NewFile creates the data directory if needed and returns a File store.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("file store: empty data directory")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// Dir returns the data directory.
func (f *File) Dir() string { return f.dir }

// Load reads the snapshot for key. Missing or unreadable files yield an empty sequence.
func (f *File) Load(key string) []point.Point {
	path, err := f.path(key)
	if err != nil {
		log.Warn("store: file: %v", err)
		return []point.Point{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("store: file: reading %s: %v", path, err)
		}
		return []point.Point{}
	}
	return decodeOrEmpty("file", key, data)
}

// Save writes pts for key atomically.
func (f *File) Save(key string, pts []point.Point) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	data, err := point.Encode(pts)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (f *File) Close() error { return nil }

func (f *File) String() string { return "file " + f.dir }

func (f *File) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}
