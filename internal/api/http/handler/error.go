package handler

import (
	"errors"
	"net/http"

	"github.com/Beboto/Streamify-Backend/internal/apierror"
	"github.com/Beboto/Streamify-Backend/internal/model"
	"github.com/Beboto/Streamify-Backend/internal/ratelimit"
)

// handleError is the single translation point from component errors to HTTP
// status codes. Token errors all collapse to 401; internal detail never
// reaches the client.
func handleError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		WriteError(w, apiErr.Status, apiErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrDuplicateUser):
		WriteError(w, http.StatusConflict, model.ErrDuplicateUser.Error())
	case errors.Is(err, model.ErrNotFound):
		WriteError(w, http.StatusNotFound, "user does not exist")
	case errors.Is(err, model.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, model.ErrInvalidCredentials.Error())
	case errors.Is(err, model.ErrTokenReused),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenSignature),
		errors.Is(err, model.ErrTokenMalformed),
		errors.Is(err, model.ErrNoSession):
		WriteError(w, http.StatusUnauthorized, "invalid token")
	case errors.Is(err, ratelimit.ErrRateLimited):
		WriteError(w, http.StatusTooManyRequests, ratelimit.ErrRateLimited.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
