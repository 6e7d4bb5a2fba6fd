// Package cache stores serializable results on disk for a limited time.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/multitracks/multitracks/filesystem"
)

// Store keeps one JSON document per key in a directory.
type Store struct {
	dir string
	ttl time.Duration
}

// New returns a store in dir whose entries expire after ttl.
func New(dir string, ttl time.Duration) *Store {
	return &Store{dir: dir, ttl: ttl}
}

// Key derives a deterministic identifier from parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) expired(info fs.FileInfo) bool {
	return time.Since(info.ModTime()) > s.ttl
}

// Read decodes the entry of key into target. It reports false for missing, expired or unreadable entries.
func (s *Store) Read(key string, target any) bool {
	path := s.path(key)

	info, err := filesystem.API().Stat(path)
	if err != nil || s.expired(info) {
		return false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(data, target) == nil
}

// Write stores data under key. The entry is replaced atomically.
func (s *Store) Write(key string, data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err := filesystem.API().MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	path := s.path(key)
	tmp := path + ".tmp"

	if err := filesystem.API().WriteFile(tmp, encoded, 0o644); err != nil {
		return err
	}

	return filesystem.API().Rename(tmp, path)
}

// CollectGarbage removes expired entries and returns how many were removed.
func (s *Store) CollectGarbage() (removed int, err error) {
	err = filesystem.API().Walk(s.dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if s.expired(info) && filesystem.API().Remove(path) == nil {
			removed++
		}
		return nil
	})

	return removed, err
}
