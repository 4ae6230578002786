//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Beboto/Streamify-Backend/internal/model"
	repo "github.com/Beboto/Streamify-Backend/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "streamify_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/streamify_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(username string) model.User {
	now := time.Now().UTC()
	return model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Test User",
		AvatarURL:    "http://localhost:9000/streamify-media/avatars/" + username,
		PasswordHash: []byte("$2a$10$abcdefghijklmnopqrstuv"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepository(conn)

	created, err := users.Create(ctx, newUser("alice"))
	require.NoError(t, err)
	require.Equal(t, "alice", created.Username)
	require.Nil(t, created.RefreshToken)

	// Duplicate username conflicts.
	dup := newUser("alice")
	dup.Email = "other@example.com"
	_, err = users.Create(ctx, dup)
	require.ErrorIs(t, err, model.ErrDuplicateUser)

	// Mixed-case username is normalized before storage and lookup.
	mixed := newUser("bobbytables")
	mixed.Username = "BobbyTables"
	saved, err := users.Create(ctx, mixed)
	require.NoError(t, err)
	require.Equal(t, "bobbytables", saved.Username)

	byHandle, err := users.GetByUsernameOrEmail(ctx, "BOBBYTABLES", "")
	require.NoError(t, err)
	require.Equal(t, saved.ID, byHandle.ID)

	byID, err := users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Email, byID.Email)

	_, err = users.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)

	fullName := "Alice Updated"
	updated, err := users.UpdateFields(ctx, created.ID, model.UserUpdate{FullName: &fullName})
	require.NoError(t, err)
	require.Equal(t, "Alice Updated", updated.FullName)
	require.Equal(t, created.Email, updated.Email)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepository(conn)
	sessions := repo.NewSessionRepository(conn)

	user, err := users.Create(ctx, newUser("carol"))
	require.NoError(t, err)

	// No session yet.
	_, err = sessions.CurrentRefreshToken(ctx, user.ID)
	require.ErrorIs(t, err, model.ErrNoSession)

	require.NoError(t, sessions.PersistRefreshToken(ctx, user.ID, "token-1"))
	got, err := sessions.CurrentRefreshToken(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "token-1", got)

	// Overwrite replaces the previous session.
	require.NoError(t, sessions.PersistRefreshToken(ctx, user.ID, "token-2"))
	got, err = sessions.CurrentRefreshToken(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "token-2", got)

	// Clear is idempotent.
	require.NoError(t, sessions.ClearRefreshToken(ctx, user.ID))
	require.NoError(t, sessions.ClearRefreshToken(ctx, user.ID))
	_, err = sessions.CurrentRefreshToken(ctx, user.ID)
	require.ErrorIs(t, err, model.ErrNoSession)

	// Unknown user.
	require.ErrorIs(t, sessions.PersistRefreshToken(ctx, uuid.New(), "x"), model.ErrNotFound)
	_, err = sessions.CurrentRefreshToken(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)
}
