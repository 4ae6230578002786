package model

import "context"

// ContextManager attaches the authenticated user to a request context and
// reads it back in downstream handlers.
type ContextManager interface {
	SetUserToContext(ctx context.Context, user Profile) context.Context
	GetUserFromContext(ctx context.Context) (Profile, bool)
}
