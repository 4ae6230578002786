package model

import (
	"context"

	"github.com/google/uuid"
)

// SessionStore owns the single currently-valid refresh token per user.
// Persist overwrites unconditionally (last writer wins), which is how the
// one-active-session policy is enforced. No other component writes the
// stored token.
type SessionStore interface {
	PersistRefreshToken(ctx context.Context, userID uuid.UUID, token string) error
	ClearRefreshToken(ctx context.Context, userID uuid.UUID) error
	CurrentRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)
}
