// Package storage persists the store as one serialized blob per named
// slot and holds the in-memory record store itself.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrSlotNotFound is returned when a named slot has no content.
var ErrSlotNotFound = errors.New("slot not found")

// Slot is a named durable text-blob store: the file-backed analog of a
// browser storage key. Names are restricted to slot-safe characters
// (letters, digits, '-', '_'), which backup naming guarantees.
type Slot interface {
	// Read returns the blob stored under name, or ErrSlotNotFound.
	Read(name string) ([]byte, error)
	// Write stores the blob under name, replacing any prior content.
	Write(name string, data []byte) error
	// Delete removes the blob under name. Missing names are not an error.
	Delete(name string) error
	// List returns all names with the given prefix, sorted ascending.
	List(prefix string) ([]string, error)
	// Size returns the stored byte count, or ErrSlotNotFound.
	Size(name string) (int64, error)
}

// FileSlot stores each named blob as a file in one directory.
type FileSlot struct {
	dir string
}

// NewFileSlot creates a file-backed slot store rooted at dir.
func NewFileSlot(dir string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileSlot{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *FileSlot) Dir() string {
	return s.dir
}

// Path returns the file path backing a slot name.
func (s *FileSlot) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileSlot) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, name)
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", name, err)
	}
	return data, nil
}

// Write stores the blob atomically: a temp file in the same directory is
// written, synced, then renamed over the target.
func (s *FileSlot) Write(name string, data []byte) error {
	path := s.Path(name)

	tmpFile, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath) // Clean up on error

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write slot: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func (s *FileSlot) Delete(name string) error {
	err := os.Remove(s.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete slot %s: %w", name, err)
	}
	return nil
}

func (s *FileSlot) List(prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(entry.Name(), ".json")
		if !ok {
			continue
		}
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileSlot) Size(name string) (int64, error) {
	info, err := os.Stat(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrSlotNotFound, name)
		}
		return 0, fmt.Errorf("failed to stat slot %s: %w", name, err)
	}
	return info.Size(), nil
}

// MemorySlot keeps blobs in a map. Used by tests and anywhere a
// throwaway store is useful.
type MemorySlot struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemorySlot creates an empty in-memory slot store.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{blobs: make(map[string][]byte)}
}

func (s *MemorySlot) Read(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, name)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemorySlot) Write(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[name] = cp
	return nil
}

func (s *MemorySlot) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, name)
	return nil
}

func (s *MemorySlot) List(prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for name := range s.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemorySlot) Size(name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSlotNotFound, name)
	}
	return int64(len(data)), nil
}
