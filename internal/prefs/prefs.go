// Package prefs persists per-entity display preferences (view mode,
// density) as a small JSON file under the user's renodesk directory.
//
// Keys are composed by the listview engine as
// "{prefix}-{entityType}-{settingName}", so two entity types never collide.
// Writes are fire-and-forget from the UI's point of view: the in-memory
// view state stays authoritative and a failed write only costs persistence
// across sessions.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrStoreCorrupted indicates the preferences file exists but contains
// invalid data. The store starts empty in that case so the UI still works;
// callers decide whether to warn.
var ErrStoreCorrupted = errors.New("preferences file corrupted")

// StoreVersion is the current schema version of the preferences file.
const StoreVersion = 1

// storeData is the serialized form of the preferences file.
type storeData struct {
	Version  int               `json:"version"`
	Settings map[string]string `json:"settings"`
}

// FileStore is a key-value preference store persisted as a JSON file.
// Set writes through to disk immediately; there is exactly one logical
// owner per file at a time, so no cross-process locking is needed.
type FileStore struct {
	mu       sync.RWMutex
	filePath string
	settings map[string]string
}

// DefaultPath returns the standard preferences location,
// ~/.renodesk/preferences.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(homeDir, ".renodesk", "preferences.json"), nil
}

// NewFileStore creates a store backed by filePath, defaulting to
// DefaultPath when empty. Call Load before first use.
func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		filePath = p
	}
	return &FileStore{
		filePath: filePath,
		settings: make(map[string]string),
	}, nil
}

// Load reads the preferences file. A missing file starts the store empty;
// a corrupted or version-mismatched file also starts empty but returns
// ErrStoreCorrupted so the caller can warn.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.settings = make(map[string]string)
			return nil
		}
		return fmt.Errorf("reading preferences file: %w", err)
	}

	var stored storeData
	if unmarshalErr := json.Unmarshal(data, &stored); unmarshalErr != nil {
		s.settings = make(map[string]string)
		return fmt.Errorf("%w: %w", ErrStoreCorrupted, unmarshalErr)
	}
	if stored.Version != StoreVersion {
		s.settings = make(map[string]string)
		return fmt.Errorf("%w: unsupported version %d (expected %d)",
			ErrStoreCorrupted, stored.Version, StoreVersion)
	}
	if stored.Settings == nil {
		stored.Settings = make(map[string]string)
	}

	s.settings = stored.Settings
	return nil
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.settings[key]
	return v, ok
}

// Set stores value under key and writes the file through atomically.
func (s *FileStore) Set(key, value string) error {
	if key == "" {
		return errors.New("preference key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[key] = value
	return s.saveLocked()
}

// saveLocked writes the preferences file via a temp-file rename. Must be
// called with mu held.
func (s *FileStore) saveLocked() error {
	data, err := json.MarshalIndent(storeData{
		Version:  StoreVersion,
		Settings: s.settings,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(s.filePath), 0o750); mkdirErr != nil {
		return fmt.Errorf("creating preferences directory: %w", mkdirErr)
	}

	tmpPath := s.filePath + ".tmp"
	if writeErr := os.WriteFile(tmpPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing preferences temp file: %w", writeErr)
	}
	if renameErr := os.Rename(tmpPath, s.filePath); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming preferences temp file: %w", renameErr)
	}
	return nil
}

// FilePath returns the backing file path.
func (s *FileStore) FilePath() string {
	return s.filePath
}

// MemoryStore is a map-backed preference store for tests and ephemeral
// runs (for example `renodesk browse --no-persist`).
type MemoryStore struct {
	mu       sync.RWMutex
	settings map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{settings: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.settings[key]
	return v, ok
}

// Set stores value under key.
func (s *MemoryStore) Set(key, value string) error {
	if key == "" {
		return errors.New("preference key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[key] = value
	return nil
}
