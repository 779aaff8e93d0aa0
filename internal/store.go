package internal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// storeVersion is written to every store file; bump when the layout changes
const storeVersion = 1

type storeFile struct {
	Version       int            `yaml:"version"`
	Subscriptions []Subscription `yaml:"subscriptions"`
}

// Store keeps subscriptions in a YAML file keyed by ID. Every mutation is
// written through to disk.
type Store struct {
	path   string
	logger *slog.Logger

	mu   sync.RWMutex
	subs []Subscription
}

// DefaultStorePath returns ~/.subscription-tracker/subscriptions.yaml
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".subscription-tracker", "subscriptions.yaml")
}

// OpenStore loads the store at path. A missing file is an empty store.
func OpenStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Store{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("store file not found, starting empty", "path", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store file: %w", err)
	}

	var file storeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing store file %s: %w", path, err)
	}
	if file.Version > storeVersion {
		return nil, fmt.Errorf("store file %s has version %d, newest supported is %d", path, file.Version, storeVersion)
	}

	for _, sub := range file.Subscriptions {
		if !sub.Frequency.Valid() {
			logger.Warn("stored subscription has unsupported frequency, it will never charge",
				"id", sub.ID, "name", sub.Name, "frequency", sub.Frequency)
		}
	}
	s.subs = file.Subscriptions
	logger.Debug("store loaded", "path", path, "count", len(s.subs))
	return s, nil
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

// List returns a copy of all subscriptions sorted by name (case-insensitive)
func (s *Store) List() []Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Subscription, len(s.subs))
	copy(out, s.subs)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Get returns the subscription with the given ID
func (s *Store) Get(id string) (Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.subs[i], nil
	}
	return Subscription{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Upsert replaces the subscription with the same ID, or appends it if new
func (s *Store) Upsert(sub Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub.ID == "" {
		sub.ID = NewSubscriptionID()
	}
	if i := s.indexOf(sub.ID); i >= 0 {
		s.subs[i] = sub
	} else {
		s.subs = append(s.subs, sub)
	}
	return s.saveLocked()
}

// Append adds subscriptions, replacing any with a matching ID
func (s *Store) Append(subs ...Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range subs {
		if sub.ID == "" {
			sub.ID = NewSubscriptionID()
		}
		if i := s.indexOf(sub.ID); i >= 0 {
			s.subs[i] = sub
			continue
		}
		s.subs = append(s.subs, sub)
	}
	return s.saveLocked()
}

// Delete removes the subscription with the given ID
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.subs = append(s.subs[:i], s.subs[i+1:]...)
	return s.saveLocked()
}

func (s *Store) indexOf(id string) int {
	for i := range s.subs {
		if s.subs[i].ID == id {
			return i
		}
	}
	return -1
}

// saveLocked writes the store atomically. Caller must hold s.mu.
func (s *Store) saveLocked() error {
	data, err := yaml.Marshal(storeFile{Version: storeVersion, Subscriptions: s.subs})
	if err != nil {
		return fmt.Errorf("marshaling store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".subscriptions-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing store file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing store file: %w", err)
	}

	s.logger.Debug("store saved", "path", s.path, "count", len(s.subs))
	return nil
}
