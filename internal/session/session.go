package session

import (
	"context"
	"errors"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
)

// ErrNoSession means the token is unknown, expired, or revoked.
var ErrNoSession = errors.New("no session")

// Session is what a login issues: the opaque token handed to the client
// plus the identity it resolves to on every request.
type Session struct {
	Token  string      `json:"token"`
	UserID string      `json:"user_id"`
	Role   entity.Role `json:"role"`
}

// Store keeps sessions keyed by token with a TTL.
type Store interface {
	Save(ctx context.Context, s *Session) error
	// Get resolves a token; ErrNoSession when it doesn't resolve.
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
