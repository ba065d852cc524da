package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/job-autofill/internal/types"
)

// profilesSchema creates the single table the agent needs. Profile bodies
// are stored as JSONB so schema evolution never needs a column migration.
const profilesSchema = `
CREATE TABLE IF NOT EXISTS profiles (
    profile_id TEXT PRIMARY KEY,
    content    JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresStore is a ProfileStore backed by a PostgreSQL connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool, verifies it, and ensures the
// profiles table exists.
func Connect(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, profilesSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure profiles table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Get retrieves a profile by ID, or nil when none is saved.
func (s *PostgresStore) Get(ctx context.Context, profileID string) (*types.Profile, error) {
	var content []byte
	err := s.pool.QueryRow(ctx,
		`SELECT content FROM profiles WHERE profile_id = $1`,
		profileID,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", profileID, err)
	}

	var profile types.Profile
	if err := json.Unmarshal(content, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// Save upserts the profile under its profile ID.
func (s *PostgresStore) Save(ctx context.Context, profile *types.Profile) error {
	profile.Touch()
	content, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO profiles (profile_id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (profile_id) DO UPDATE SET content = $2, updated_at = NOW()`,
		profile.ProfileID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", profile.ProfileID, err)
	}
	return nil
}

// Has reports whether a profile exists without loading its body.
func (s *PostgresStore) Has(ctx context.Context, profileID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM profiles WHERE profile_id = $1)`,
		profileID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check profile %s: %w", profileID, err)
	}
	return exists, nil
}

// Clear deletes the profile; deleting an absent profile is not an error.
func (s *PostgresStore) Clear(ctx context.Context, profileID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM profiles WHERE profile_id = $1`, profileID)
	if err != nil {
		return fmt.Errorf("failed to clear profile %s: %w", profileID, err)
	}
	return nil
}
