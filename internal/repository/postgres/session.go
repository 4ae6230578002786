package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Beboto/Streamify-Backend/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

// SessionRepository is the only writer of users.refresh_token. A single-row
// UPDATE is atomic under postgres, which is all the locking the rotation
// path relies on: concurrent persists race and the last write wins.
type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) PersistRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	const query = `UPDATE users SET refresh_token = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, userID, token)
	if err != nil {
		return fmt.Errorf("failed to persist refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) ClearRefreshToken(ctx context.Context, userID uuid.UUID) error {
	const query = `UPDATE users SET refresh_token = NULL, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) CurrentRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	const query = `SELECT refresh_token FROM users WHERE id = $1`

	var token *string
	err := r.db.QueryRow(ctx, query, userID).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get refresh token: %w", err)
	}
	if token == nil {
		return "", model.ErrNoSession
	}
	return *token, nil
}
