package model

import "github.com/google/uuid"

// TokenManager generates and validates access/refresh tokens. Access and
// refresh tokens are signed with distinct keys, so a token of one class
// never validates as the other.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (uuid.UUID, error)
}
