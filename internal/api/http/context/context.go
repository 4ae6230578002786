package context

import (
	"context"

	"github.com/Beboto/Streamify-Backend/internal/model"
)

type ctxKey int

// userKey is the context key the authenticated user profile is stored under.
const userKey ctxKey = iota

// Manager attaches the authenticated user to request contexts. Downstream
// handlers only ever see the sanitized profile, never the full user record.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext returns a context carrying the user profile.
func (m *Manager) SetUserToContext(ctx context.Context, user model.Profile) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext retrieves the user profile set by the auth middleware.
func (m *Manager) GetUserFromContext(ctx context.Context) (model.Profile, bool) {
	user, ok := ctx.Value(userKey).(model.Profile)
	return user, ok
}
