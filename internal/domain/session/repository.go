package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no session exists for the given ID.
var ErrNotFound = errors.New("session not found")

// DefaultListLimit bounds device session listings when no limit is given.
const DefaultListLimit = 20

type Repository interface {
	Create(ctx context.Context, s *Session) error

	GetByID(ctx context.Context, id uint) (*Session, error)

	// ListByDevice returns up to limit sessions for the device, most recent
	// start time first.
	ListByDevice(ctx context.Context, deviceID string, limit int) ([]*Session, error)
}
