package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Beboto/Streamify-Backend/internal/credential"
	"github.com/Beboto/Streamify-Backend/internal/logger"
	"github.com/Beboto/Streamify-Backend/internal/model"
	"github.com/Beboto/Streamify-Backend/internal/ratelimit"
)

// Upload carries one uploaded media file from the transport layer.
type Upload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	Avatar     Upload
	CoverImage *Upload
}

// LoginInput identifies a user by username or email plus password.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// Auth orchestrates registration, login and session termination.
type Auth struct {
	users        model.UserStore
	sessions     model.SessionStore
	tokenService *TokenService
	media        model.MediaStorage
	limiter      *ratelimit.LoginLimiter
	logger       *logger.Logger
}

func NewAuth(
	users model.UserStore,
	sessions model.SessionStore,
	tokenService *TokenService,
	media model.MediaStorage,
	limiter *ratelimit.LoginLimiter,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:        users,
		sessions:     sessions,
		tokenService: tokenService,
		media:        media,
		limiter:      limiter,
		logger:       logger,
	}
}

// Register creates a new account. The avatar is required; the cover image is
// optional. Username/email uniqueness is checked up front and again enforced
// by the store's constraints.
func (a *Auth) Register(ctx context.Context, input RegisterInput) (model.Profile, error) {
	a.logger.Debug("Auth service: starting registration",
		"username", input.Username)

	existing, err := a.users.GetByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to check existing user",
			"username", input.Username,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists",
			"username", input.Username)
		return model.Profile{}, model.ErrDuplicateUser
	}

	avatarURL, err := a.uploadMedia(ctx, "avatars", input.Avatar)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	var coverURL string
	if input.CoverImage != nil {
		coverURL, err = a.uploadMedia(ctx, "covers", *input.CoverImage)
		if err != nil {
			return model.Profile{}, fmt.Errorf("failed to upload cover image: %w", err)
		}
	}

	hash, err := credential.Hash(input.Password)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:            uuid.New(),
		Username:      input.Username,
		Email:         input.Email,
		FullName:      input.FullName,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
		PasswordHash:  hash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := a.users.Create(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"username", input.Username,
			"error", err.Error())
		return model.Profile{}, err
	}

	a.logger.Info("Auth service: registration completed",
		"username", created.Username,
		"user_id", created.ID)

	return created.Profile(), nil
}

// Login verifies credentials and issues a token pair. No storage is mutated
// on a failed attempt.
func (a *Auth) Login(ctx context.Context, input LoginInput) (model.Profile, string, string, error) {
	handle := input.Username
	if handle == "" {
		handle = input.Email
	}

	a.logger.Debug("Auth service: starting login", "handle", handle)

	if err := a.limiter.Enforce(ctx, handle); err != nil {
		a.logger.Info("Auth service: login throttled", "handle", handle)
		return model.Profile{}, "", "", err
	}

	user, err := a.users.GetByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Profile{}, "", "", model.ErrNotFound
		}
		return model.Profile{}, "", "", fmt.Errorf("failed to get user: %w", err)
	}

	if !credential.Verify(user.PasswordHash, input.Password) {
		a.logger.Info("Auth service: credential mismatch", "handle", handle)
		return model.Profile{}, "", "", model.ErrInvalidCredentials
	}

	access, refresh, err := a.tokenService.IssuePair(ctx, user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token pair",
			"user_id", user.ID,
			"error", err.Error())
		return model.Profile{}, "", "", fmt.Errorf("failed to issue token pair: %w", err)
	}

	if err := a.limiter.Reset(ctx, handle); err != nil {
		a.logger.Error("Auth service: failed to reset login counter",
			"handle", handle,
			"error", err.Error())
	}

	a.logger.Info("Auth service: login completed", "user_id", user.ID)

	return user.Profile(), access, refresh, nil
}

// Logout clears the user's stored refresh token. Calling it for a user with
// no active session is not an error.
func (a *Auth) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := a.sessions.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	a.logger.Info("Auth service: logout completed", "user_id", userID)
	return nil
}

// ChangePassword verifies the old password before storing a new hash.
func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !credential.Verify(user.PasswordHash, oldPassword) {
		return model.ErrInvalidCredentials
	}

	hash, err := credential.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := a.users.UpdateFields(ctx, userID, model.UserUpdate{PasswordHash: hash}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.logger.Info("Auth service: password changed", "user_id", userID)
	return nil
}

// UpdateAccount changes the mutable profile fields.
func (a *Auth) UpdateAccount(ctx context.Context, userID uuid.UUID, fullName, email string) (model.Profile, error) {
	user, err := a.users.UpdateFields(ctx, userID, model.UserUpdate{
		FullName: &fullName,
		Email:    &email,
	})
	if err != nil {
		return model.Profile{}, err
	}
	return user.Profile(), nil
}

// UpdateAvatar uploads a new avatar, stores its URL and removes the replaced
// object.
func (a *Auth) UpdateAvatar(ctx context.Context, userID uuid.UUID, file Upload) (model.Profile, error) {
	current, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get user: %w", err)
	}

	url, err := a.uploadMedia(ctx, "avatars", file)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	user, err := a.users.UpdateFields(ctx, userID, model.UserUpdate{AvatarURL: &url})
	if err != nil {
		return model.Profile{}, err
	}

	a.removeMedia(ctx, current.AvatarURL)

	return user.Profile(), nil
}

// UpdateCoverImage uploads a new cover image, stores its URL and removes the
// replaced object.
func (a *Auth) UpdateCoverImage(ctx context.Context, userID uuid.UUID, file Upload) (model.Profile, error) {
	current, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get user: %w", err)
	}

	url, err := a.uploadMedia(ctx, "covers", file)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to upload cover image: %w", err)
	}

	user, err := a.users.UpdateFields(ctx, userID, model.UserUpdate{CoverImageURL: &url})
	if err != nil {
		return model.Profile{}, err
	}

	a.removeMedia(ctx, current.CoverImageURL)

	return user.Profile(), nil
}

func (a *Auth) uploadMedia(ctx context.Context, prefix string, file Upload) (string, error) {
	key := prefix + "/" + uuid.NewString() + path.Ext(file.Filename)
	return a.media.Upload(ctx, key, file.Reader, file.Size, file.ContentType)
}

// removeMedia deletes a replaced media object. The new URL is already stored
// at this point, so a failed cleanup only leaks an orphaned object and must
// not fail the request.
func (a *Auth) removeMedia(ctx context.Context, url string) {
	key := mediaKey(url)
	if key == "" {
		return
	}
	if err := a.media.Delete(ctx, key); err != nil {
		a.logger.Error("Auth service: failed to delete replaced media",
			"key", key,
			"error", err.Error())
	}
}

// mediaKey recovers the object key from a public URL. Keys produced by
// uploadMedia are always prefix/name, the last two URL path segments.
func mediaKey(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}
