package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Beboto/Streamify-Backend/internal/logger"
	"github.com/Beboto/Streamify-Backend/internal/model"
)

// AccessTokenCookie is the cookie carrying the access token.
const AccessTokenCookie = "accessToken"

// TokenService resolves user ID from bearer tokens.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens, resolves the user and injects the
// sanitized profile into the request context. Every rejection is a plain 401:
// expired token, forged token and deleted user are indistinguishable to the
// client.
type Authenticate struct {
	tokenService   TokenService
	users          model.UserStore
	contextManager model.ContextManager
	logger         *logger.Logger
	reject         func(w http.ResponseWriter, message string)
}

// NewAuthenticate creates a new Authenticate middleware instance. reject
// writes the 401 response in the API's envelope format.
func NewAuthenticate(
	tokenService TokenService,
	users model.UserStore,
	contextManager model.ContextManager,
	logger *logger.Logger,
	reject func(w http.ResponseWriter, message string),
) *Authenticate {
	return &Authenticate{
		tokenService:   tokenService,
		users:          users,
		contextManager: contextManager,
		logger:         logger,
		reject:         reject,
	}
}

// Handler wraps a protected handler. The token is taken from the accessToken
// cookie when present, falling back to the Authorization header for
// non-browser clients.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ExtractBearerToken(r)
		if tokenString == "" {
			m.reject(w, "unauthorized request")
			return
		}

		user, err := m.authenticateUser(r.Context(), tokenString)
		if err != nil {
			m.logger.Debug("Authenticate middleware: rejected request",
				"path", r.URL.Path,
				"error", err.Error())
			m.reject(w, "invalid access token")
			return
		}

		ctx := m.contextManager.SetUserToContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) authenticateUser(ctx context.Context, tokenString string) (model.Profile, error) {
	userID, err := m.tokenService.GetUserID(ctx, tokenString)
	if err != nil {
		return model.Profile{}, err
	}

	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}

	return user.Profile(), nil
}

// ExtractBearerToken pulls the access token from the request. The cookie
// takes precedence over the Authorization header.
func ExtractBearerToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
