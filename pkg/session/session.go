// Package session stores server-side workspace sessions.
//
// A session holds the layout script of one live workspace. Every mutation
// made through the HTTP API appends an op to the script and saves it back,
// so the workspace can be rebuilt by replaying the script on any instance.
//
// Backends:
//   - [MemoryStore]: in-process map for development and tests
//   - [FileStore]: one JSON file per session for single-host deployments
//   - [RedisStore]: shared Redis for multi-instance deployments
//   - [MongoStore]: MongoDB collection with a TTL index
//
// # Usage
//
//	store := session.NewMemoryStore()
//	sess := session.New(script.New("", bounds), session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // Not found or expired
//	}
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/viewdock/pkg/errors"
	"github.com/matzehuels/viewdock/pkg/script"
)

// DefaultTTL is the default session lifetime, renewed on every update.
const DefaultTTL = 24 * time.Hour

// Session is one live workspace.
type Session struct {
	ID        string         `json:"id"`
	Script    *script.Script `json:"script"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// New creates a session for s with a random ID.
func New(s *script.Script, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		Script:    s,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch marks the session as updated and extends its lifetime by ttl.
func (s *Session) Touch(ttl time.Duration) {
	now := time.Now().UTC()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// ValidateID checks that id is a session ID issued by [New]. Stores key
// files and documents by ID, so anything else is rejected.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid session id %q", id)
	}
	return nil
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session, replacing any previous version.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (may be a no-op when the backend
	// expires entries itself).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
