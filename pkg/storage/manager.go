// Package storage handles on-disk layout for downloaded assets.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Manager owns one video's download directory and writes assets into it.
// Writes go through a temp file and an atomic rename so an interrupted
// download never leaves a half-written asset behind.
type Manager struct {
	baseDir string
	saved   map[string]bool
	mu      sync.RWMutex
}

// NewManager creates a manager rooted at dir, creating it if needed.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Manager{
		baseDir: dir,
		saved:   make(map[string]bool),
	}, nil
}

// SaveAsset writes one asset under the managed directory. rel is a path
// relative to the base directory; intermediate directories are created.
func (m *Manager) SaveAsset(r io.Reader, rel string) error {
	filename := filepath.Join(m.baseDir, rel)

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}

	tempFile := filename + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	_, err = io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to save asset data: %w", err)
	}
	if closeErr != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.mu.Lock()
	m.saved[rel] = true
	m.mu.Unlock()

	return nil
}

// Exists reports whether an asset is already present on disk.
func (m *Manager) Exists(rel string) bool {
	m.mu.RLock()
	known := m.saved[rel]
	m.mu.RUnlock()
	if known {
		return true
	}

	if _, err := os.Stat(filepath.Join(m.baseDir, rel)); err == nil {
		m.mu.Lock()
		m.saved[rel] = true
		m.mu.Unlock()
		return true
	}
	return false
}

// BaseDir returns the managed directory path.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// SavedCount returns the number of assets written through this manager.
func (m *Manager) SavedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.saved)
}
