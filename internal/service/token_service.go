package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Beboto/Streamify-Backend/internal/logger"
	"github.com/Beboto/Streamify-Backend/internal/model"
)

// TokenService provides high-level operations for issuing and rotating token
// pairs. It composes the TokenManager and SessionStore.
type TokenService struct {
	manager  model.TokenManager
	sessions model.SessionStore
	logger   *logger.Logger
}

func NewTokenService(manager model.TokenManager, sessions model.SessionStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, sessions: sessions, logger: logger}
}

// IssuePair mints a fresh access/refresh pair and persists the refresh token
// as the user's single active session. When persistence fails no pair is
// handed out: validation on next use depends on the stored copy matching.
func (s *TokenService) IssuePair(ctx context.Context, userID uuid.UUID) (accessToken string, refreshToken string, err error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh: %w", err)
	}

	if err := s.sessions.PersistRefreshToken(ctx, userID, refresh); err != nil {
		return "", "", fmt.Errorf("persist refresh: %w", err)
	}

	return access, refresh, nil
}

// Rotate exchanges a presented refresh token for a new pair. The stored
// token is authoritative: a presented token that passes signature and expiry
// checks but does not match storage was rotated away or revoked, and is
// rejected. Rotation overwrites the stored token, so each issued refresh
// token is usable at most once.
func (s *TokenService) Rotate(ctx context.Context, presentedRefresh string) (newAccess string, newRefresh string, err error) {
	userID, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return "", "", err
	}

	stored, err := s.sessions.CurrentRefreshToken(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNoSession) {
			return "", "", model.ErrTokenReused
		}
		return "", "", err
	}

	if subtle.ConstantTimeCompare([]byte(presentedRefresh), []byte(stored)) != 1 {
		s.logger.Info("Token service: superseded refresh token presented", "user_id", userID)
		return "", "", model.ErrTokenReused
	}

	return s.IssuePair(ctx, userID)
}

// GetUserID validates an access token and returns its subject.
func (s *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(token)
}
