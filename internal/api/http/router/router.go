package router

import (
	"net/http"

	"github.com/Beboto/Streamify-Backend/internal/api/http/handler"
	"github.com/Beboto/Streamify-Backend/internal/api/http/middleware"
	"github.com/Beboto/Streamify-Backend/internal/logger"
	"github.com/Beboto/Streamify-Backend/internal/model"
	"github.com/Beboto/Streamify-Backend/internal/service"
)

// Router wires handlers and middleware into the HTTP route table.
type Router struct {
	authService    *service.Auth
	tokenService   *service.TokenService
	users          model.UserStore
	contextManager model.ContextManager
	cookies        handler.CookieConfig
	corsOrigin     string
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	tokenService *service.TokenService,
	users model.UserStore,
	contextManager model.ContextManager,
	cookies handler.CookieConfig,
	corsOrigin string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		tokenService:   tokenService,
		users:          users,
		contextManager: contextManager,
		cookies:        cookies,
		corsOrigin:     corsOrigin,
		logger:         logger,
	}
}

// Register builds the route table. Login, registration and token refresh are
// public; everything else passes through the auth gate.
func (r *Router) Register() http.Handler {
	authHandler := handler.NewAuth(r.authService, r.tokenService, r.contextManager, r.cookies, r.logger)
	userHandler := handler.NewUser(r.authService, r.contextManager, r.logger)

	authenticate := middleware.NewAuthenticate(r.tokenService, r.users, r.contextManager, r.logger, handler.WriteUnauthorized)
	logging := middleware.NewLogging(r.logger)
	cors := middleware.NewCORS(r.corsOrigin)

	mux := http.NewServeMux()

	// Public routes.
	mux.HandleFunc("POST /api/v1/users/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/users/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/users/refresh-token", authHandler.RefreshToken)

	// Protected routes.
	protected := func(h http.HandlerFunc) http.Handler {
		return authenticate.Handler(h)
	}
	mux.Handle("POST /api/v1/users/logout", protected(authHandler.Logout))
	mux.Handle("GET /api/v1/users/current-user", protected(userHandler.CurrentUser))
	mux.Handle("POST /api/v1/users/change-password", protected(userHandler.ChangePassword))
	mux.Handle("PATCH /api/v1/users/update-account", protected(userHandler.UpdateAccount))
	mux.Handle("PATCH /api/v1/users/avatar", protected(userHandler.UpdateAvatar))
	mux.Handle("PATCH /api/v1/users/cover-image", protected(userHandler.UpdateCoverImage))

	return cors.Handler(logging.Handler(mux))
}
