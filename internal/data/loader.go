// Package data provides file-backed document storage for external
// references. Documents are JSON or YAML files addressed by their base name,
// loaded lazily and cached until invalidated.
package data

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/storyloom/loom/internal/state"
)

var extensions = []string{".json", ".yaml", ".yml"}

// Store loads value trees from files in a directory. A document ID maps to
// <dir>/<id>.json, <dir>/<id>.yaml or <dir>/<id>.yml, tried in that order.
// Store satisfies the resolver's loader interface.
type Store struct {
	dir    string
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]state.Value
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a document store rooted at dir.
func NewStore(dir string, opts ...StoreOption) *Store {
	s := &Store{
		dir:    dir,
		logger: slog.Default(),
		cache:  make(map[string]state.Value),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the value tree for documentID. The second return is false
// when no matching file exists or the file cannot be decoded.
func (s *Store) Load(documentID string) (state.Value, bool) {
	s.mu.RLock()
	cached, ok := s.cache[documentID]
	s.mu.RUnlock()
	if ok {
		return cached, true
	}

	// Reject IDs that would escape the store directory.
	if documentID == "" || documentID != filepath.Base(documentID) {
		s.logger.Warn("rejected document id", "document_id", documentID)
		return nil, false
	}

	for _, ext := range extensions {
		path := filepath.Join(s.dir, documentID+ext)
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				s.logger.Warn("failed to read document", "path", path, "error", err)
			}
			continue
		}

		var value state.Value
		if ext == ".json" {
			value, err = state.FromJSON(raw)
		} else {
			value, err = state.FromYAML(raw)
		}
		if err != nil {
			s.logger.Warn("failed to decode document", "path", path, "error", err)
			continue
		}

		s.mu.Lock()
		s.cache[documentID] = value
		s.mu.Unlock()

		s.logger.Debug("loaded document", "document_id", documentID, "path", path)
		return value, true
	}

	return nil, false
}

// Invalidate drops a single document from the cache so the next Load rereads
// it from disk.
func (s *Store) Invalidate(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, documentID)
}

// Clear drops the entire cache.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]state.Value)
}

// Save writes a value tree to <dir>/<id>.json, creating the directory if
// needed, and updates the cache.
func (s *Store) Save(documentID string, value state.Value) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	raw, err := state.ToJSON(value)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, documentID+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[documentID] = value
	s.mu.Unlock()
	return nil
}
