package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/job-autofill/internal/types"
)

// FileStore persists profiles as indented JSON files under a directory,
// one file per profile ID. It backs the CLI when no database is configured
// and doubles as the export/import format.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(profileID string) string {
	return filepath.Join(s.dir, profileID+".json")
}

// Get reads the profile file, or returns nil when absent.
func (s *FileStore) Get(_ context.Context, profileID string) (*types.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(profileID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read profile %s: %w", profileID, err)
	}

	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", profileID, err)
	}
	return &profile, nil
}

// Save writes the profile as indented JSON, stamping UpdatedAt.
func (s *FileStore) Save(_ context.Context, profile *types.Profile) error {
	profile.Touch()
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path(profile.ProfileID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", profile.ProfileID, err)
	}
	return nil
}

// Has reports whether the profile file exists.
func (s *FileStore) Has(_ context.Context, profileID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path(profileID)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat profile %s: %w", profileID, err)
	}
	return true, nil
}

// Clear removes the profile file; a missing file is not an error.
func (s *FileStore) Clear(_ context.Context, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(profileID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear profile %s: %w", profileID, err)
	}
	return nil
}
