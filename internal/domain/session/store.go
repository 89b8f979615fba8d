package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no session exists for an id. An expired
// session is indistinguishable from one that never existed.
var ErrNotFound = errors.New("session not found")

// keyPrefix namespaces session keys in shared stores.
const keyPrefix = "mednexus_user:"

// Store persists sessions. Implementations enforce the TTL; Get on an
// expired session returns ErrNotFound.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, s *Session) error
	Remove(ctx context.Context, id string) error
}
