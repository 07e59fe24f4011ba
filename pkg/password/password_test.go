package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazzy-go/jazzy/pkg/password"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		hash, err := password.Hash("s3cret-pass")
		require.NoError(t, err)
		assert.NoError(t, password.Verify("s3cret-pass", hash))
	})

	t.Run("wrong password mismatches", func(t *testing.T) {
		t.Parallel()

		hash, err := password.Hash("s3cret-pass")
		require.NoError(t, err)
		assert.ErrorIs(t, password.Verify("wrong-pass", hash), password.ErrMismatch)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		t.Parallel()

		_, err := password.Hash("")
		assert.ErrorIs(t, err, password.ErrEmptyPassword)
	})

	t.Run("hashes are salted", func(t *testing.T) {
		t.Parallel()

		a, err := password.Hash("same-pass")
		require.NoError(t, err)
		b, err := password.Hash("same-pass")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)

		assert.NoError(t, password.Verify("same-pass", a))
		assert.NoError(t, password.Verify("same-pass", b))
	})

	t.Run("garbage hash is invalid", func(t *testing.T) {
		t.Parallel()

		tests := []string{
			"",
			"not-a-hash",
			"bcrypt$10$abc$def",
			"pbkdf2-sha256$zero$c2FsdA$aGFzaA",
			"pbkdf2-sha256$1000$!!$aGFzaA",
		}
		for _, encoded := range tests {
			assert.ErrorIs(t, password.Verify("x", encoded), password.ErrInvalidHash, encoded)
		}
	})

	t.Run("custom iteration count verifies", func(t *testing.T) {
		t.Parallel()

		hash, err := password.HashIterations("pass", 1000)
		require.NoError(t, err)
		assert.NoError(t, password.Verify("pass", hash))
	})
}

func TestNeedsRehash(t *testing.T) {
	t.Parallel()

	current, err := password.Hash("pass")
	require.NoError(t, err)
	assert.False(t, password.NeedsRehash(current))

	weak, err := password.HashIterations("pass", 1000)
	require.NoError(t, err)
	assert.True(t, password.NeedsRehash(weak))

	assert.True(t, password.NeedsRehash("legacy-md5-hash"))
}
