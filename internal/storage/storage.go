// Package storage persists game sessions.
package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/endless-dnd/pkg/session"
)

// Storage defines the session persistence interface.
type Storage interface {
	// Ping checks connectivity
	Ping(ctx context.Context) error
	Close() error

	// SaveSession saves a session under its ID
	SaveSession(ctx context.Context, id uuid.UUID, s *session.Session) error

	// LoadSession retrieves a session by ID.
	// Returns nil if the session doesn't exist.
	LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error)

	// DeleteSession removes a session by ID
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
