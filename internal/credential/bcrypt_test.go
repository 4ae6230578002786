package credential

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "secret1", string(hash))

	require.True(t, Verify(hash, "secret1"))
	require.False(t, Verify(hash, "secret2"))
	require.False(t, Verify(hash, ""))
}

func TestVerify_GarbageHash(t *testing.T) {
	require.False(t, Verify([]byte("not-a-bcrypt-hash"), "secret1"))
}

func TestHash_NotDeterministic(t *testing.T) {
	h1, err := Hash("secret1")
	require.NoError(t, err)
	h2, err := Hash("secret1")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
