package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Beboto/Streamify-Backend/internal/apierror"
	"github.com/Beboto/Streamify-Backend/internal/logger"
	"github.com/Beboto/Streamify-Backend/internal/model"
	"github.com/Beboto/Streamify-Backend/internal/service"
)

// AccountService defines the profile operations available to an
// authenticated user.
type AccountService interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	UpdateAccount(ctx context.Context, userID uuid.UUID, fullName, email string) (model.Profile, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, file service.Upload) (model.Profile, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, file service.Upload) (model.Profile, error)
}

// User handles HTTP endpoints for the authenticated user's own account.
type User struct {
	accountService AccountService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(accountService AccountService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		accountService: accountService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// CurrentUser returns the profile the auth middleware resolved.
func (h *User) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		handleError(w, apierror.NewUnauthorized("unauthorized request"))
		return
	}

	WriteJSON(w, http.StatusOK, user, "user fetched successfully")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword verifies the old password before storing a new one.
func (h *User) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		handleError(w, apierror.NewUnauthorized("unauthorized request"))
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, apierror.NewValidation("malformed request body"))
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		handleError(w, apierror.NewValidation("all fields are required"))
		return
	}

	if err := h.accountService.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			handleError(w, apierror.NewValidation("invalid old password"))
			return
		}
		h.logger.Error("User handler: password change failed",
			"user_id", user.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, struct{}{}, "password changed successfully")
}

type updateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// UpdateAccount changes the full name and email.
func (h *User) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		handleError(w, apierror.NewUnauthorized("unauthorized request"))
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, apierror.NewValidation("malformed request body"))
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	if fullName == "" || email == "" {
		handleError(w, apierror.NewValidation("all fields are required"))
		return
	}

	profile, err := h.accountService.UpdateAccount(r.Context(), user.ID, fullName, email)
	if err != nil {
		h.logger.Error("User handler: account update failed",
			"user_id", user.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, profile, "account details updated successfully")
}

// UpdateAvatar replaces the avatar image.
func (h *User) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateMedia(w, r, "avatar", h.accountService.UpdateAvatar, "avatar image updated successfully")
}

// UpdateCoverImage replaces the cover image.
func (h *User) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateMedia(w, r, "coverImage", h.accountService.UpdateCoverImage, "cover image updated successfully")
}

func (h *User) updateMedia(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	update func(ctx context.Context, userID uuid.UUID, file service.Upload) (model.Profile, error),
	message string,
) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		handleError(w, apierror.NewUnauthorized("unauthorized request"))
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		handleError(w, apierror.NewValidation("malformed multipart form"))
		return
	}

	file, closeFile, err := formFile(r, field)
	if err != nil {
		handleError(w, apierror.NewValidation(field+" file is missing"))
		return
	}
	defer closeFile()

	profile, err := update(r.Context(), user.ID, file)
	if err != nil {
		h.logger.Error("User handler: media update failed",
			"user_id", user.ID,
			"field", field,
			"error", err.Error())
		handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, profile, message)
}
