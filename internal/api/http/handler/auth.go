package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Beboto/Streamify-Backend/internal/apierror"
	"github.com/Beboto/Streamify-Backend/internal/logger"
	"github.com/Beboto/Streamify-Backend/internal/model"
	"github.com/Beboto/Streamify-Backend/internal/service"
)

const (
	// RefreshTokenCookie is the cookie carrying the refresh token.
	RefreshTokenCookie = "refreshToken"
	// AccessTokenCookie is the cookie carrying the access token.
	AccessTokenCookie = "accessToken"

	maxMultipartMemory = 16 << 20 // 16 MiB, matching the request body budget
)

// AuthService defines registration, login and session termination operations.
type AuthService interface {
	Register(ctx context.Context, input service.RegisterInput) (model.Profile, error)
	Login(ctx context.Context, input service.LoginInput) (model.Profile, string, string, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

// TokenService defines token rotation.
type TokenService interface {
	Rotate(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, err error)
}

// CookieConfig controls how token cookies are written.
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	tokenService   TokenService
	contextManager model.ContextManager
	cookies        CookieConfig
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(
	authService AuthService,
	tokenService TokenService,
	contextManager model.ContextManager,
	cookies CookieConfig,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		authService:    authService,
		tokenService:   tokenService,
		contextManager: contextManager,
		cookies:        cookies,
		logger:         logger,
	}
}

// Register creates a new account from a multipart form carrying the profile
// fields plus an avatar file and an optional cover image.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		handleError(w, apierror.NewValidation("malformed multipart form"))
		return
	}

	fullName := strings.TrimSpace(r.FormValue("fullName"))
	email := strings.TrimSpace(r.FormValue("email"))
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if fullName == "" || email == "" || username == "" || password == "" {
		handleError(w, apierror.NewValidation("all fields are required"))
		return
	}

	avatar, avatarClose, err := formFile(r, "avatar")
	if err != nil {
		handleError(w, apierror.NewValidation("avatar file is required"))
		return
	}
	defer avatarClose()

	input := service.RegisterInput{
		FullName: fullName,
		Email:    email,
		Username: username,
		Password: password,
		Avatar:   avatar,
	}

	if cover, coverClose, err := formFile(r, "coverImage"); err == nil {
		defer coverClose()
		input.CoverImage = &cover
	}

	profile, err := h.authService.Register(r.Context(), input)
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"username", username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: registration completed", "username", username)
	WriteJSON(w, http.StatusCreated, profile, "user registered successfully")
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPairResponse struct {
	User         *model.Profile `json:"user,omitempty"`
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
}

// Login verifies credentials and hands out a token pair as cookies and in
// the response body.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, apierror.NewValidation("malformed request body"))
		return
	}

	if req.Username == "" && req.Email == "" {
		handleError(w, apierror.NewValidation("username or email is required"))
		return
	}
	if req.Password == "" {
		handleError(w, apierror.NewValidation("password is required"))
		return
	}

	profile, access, refresh, err := h.authService.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"username", req.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.setTokenCookies(w, access, refresh)

	h.logger.Info("Auth handler: login completed", "user_id", profile.ID)
	WriteJSON(w, http.StatusOK, tokenPairResponse{
		User:         &profile,
		AccessToken:  access,
		RefreshToken: refresh,
	}, "user logged in successfully")
}

// Logout terminates the session and instructs the client to discard both
// token cookies.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		handleError(w, apierror.NewUnauthorized("unauthorized request"))
		return
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"user_id", user.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.clearTokenCookies(w)
	WriteJSON(w, http.StatusOK, struct{}{}, "user logged out")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken rotates the presented refresh token for a new pair. The token
// is taken from the cookie, or from the request body for non-cookie clients.
// All failures answer 401; the codec's message is surfaced for diagnostics
// but the status never varies.
func (h *Auth) RefreshToken(w http.ResponseWriter, r *http.Request) {
	presented := h.extractRefreshToken(r)
	if presented == "" {
		handleError(w, apierror.NewUnauthorized("unauthorized request"))
		return
	}

	access, refresh, err := h.tokenService.Rotate(r.Context(), presented)
	if err != nil {
		h.logger.Error("Auth handler: token refresh failed", "error", err.Error())
		h.clearTokenCookies(w)
		WriteUnauthorized(w, refreshFailureMessage(err))
		return
	}

	h.setTokenCookies(w, access, refresh)

	h.logger.Info("Auth handler: token refresh completed")
	WriteJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	}, "access token refreshed")
}

func (h *Auth) extractRefreshToken(r *http.Request) string {
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

// refreshFailureMessage surfaces the rotation failure cause without leaking
// internal detail for storage faults.
func refreshFailureMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrTokenReused):
		return model.ErrTokenReused.Error()
	case errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenSignature),
		errors.Is(err, model.ErrTokenMalformed),
		errors.Is(err, model.ErrNotFound):
		return "invalid refresh token"
	default:
		return "unable to refresh token"
	}
}

func (h *Auth) setTokenCookies(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    access,
		Path:     "/",
		MaxAge:   int(h.cookies.AccessTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    refresh,
		Path:     "/",
		MaxAge:   int(h.cookies.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Auth) clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.cookies.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// formFile adapts one uploaded multipart file into a service.Upload.
func formFile(r *http.Request, field string) (service.Upload, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return service.Upload{}, nil, err
	}

	return service.Upload{
		Reader:      file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}, func() { _ = file.Close() }, nil
}
