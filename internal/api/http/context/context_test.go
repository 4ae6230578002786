package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beboto/Streamify-Backend/internal/model"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager()
	profile := model.Profile{ID: uuid.New(), Username: "arthur"}

	ctx := m.SetUserToContext(context.Background(), profile)

	got, ok := m.GetUserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, profile, got)
}

func TestManager_GetUserFromContext_Empty(t *testing.T) {
	m := NewManager()

	_, ok := m.GetUserFromContext(context.Background())
	assert.False(t, ok)
}
