// Package store persists user profiles. The Postgres store backs the agent
// in normal operation; the memory store backs tests and the import/export
// CLI paths that never touch a database.
package store

import (
	"context"
	"sync"

	"github.com/jonathan/job-autofill/internal/types"
)

// ProfileStore is the persistence surface for profiles. Get returns nil
// without error when no profile is saved.
type ProfileStore interface {
	Get(ctx context.Context, profileID string) (*types.Profile, error)
	Save(ctx context.Context, profile *types.Profile) error
	Has(ctx context.Context, profileID string) (bool, error)
	Clear(ctx context.Context, profileID string) error
}

// MemoryStore is an in-process ProfileStore.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]types.Profile
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: map[string]types.Profile{}}
}

// Get returns a copy of the saved profile, or nil when absent.
func (s *MemoryStore) Get(_ context.Context, profileID string) (*types.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[profileID]
	if !ok {
		return nil, nil
	}
	copied := p
	return &copied, nil
}

// Save stores a copy of the profile, stamping UpdatedAt.
func (s *MemoryStore) Save(_ context.Context, profile *types.Profile) error {
	profile.Touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ProfileID] = *profile
	return nil
}

// Has reports whether a profile is saved under profileID.
func (s *MemoryStore) Has(_ context.Context, profileID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.profiles[profileID]
	return ok, nil
}

// Clear removes the profile; clearing an absent profile is not an error.
func (s *MemoryStore) Clear(_ context.Context, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, profileID)
	return nil
}
