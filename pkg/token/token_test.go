package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazzy-go/jazzy/pkg/token"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("empty secret rejected", func(t *testing.T) {
		t.Parallel()

		_, err := token.New("")
		require.ErrorIs(t, err, token.ErrEmptySecret)
	})

	t.Run("valid secret", func(t *testing.T) {
		t.Parallel()

		svc, err := token.New("test-secret")
		require.NoError(t, err)
		require.NotNil(t, svc)
	})
}

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := token.New("test-secret")
	require.NoError(t, err)

	claims := token.Claims{
		"id":    int64(42),
		"email": "jazz@example.com",
		"role":  "admin",
	}

	tok, err := svc.Sign(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(tok, "."), 3)

	got, err := svc.Verify(tok)
	require.NoError(t, err)

	assert.Equal(t, int64(42), got.Int64("id"))
	assert.Equal(t, "jazz@example.com", got.String("email"))
	assert.Equal(t, "admin", got.String("role"))
	assert.NotZero(t, got.Int64("exp"), "exp claim merged in")
}

func TestSignDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	svc, err := token.New("test-secret")
	require.NoError(t, err)

	claims := token.Claims{"id": 1}
	_, err = svc.Sign(claims)
	require.NoError(t, err)

	_, hasExp := claims["exp"]
	assert.False(t, hasExp, "caller claims must stay untouched")
}

func TestVerifyFailures(t *testing.T) {
	t.Parallel()

	svc, err := token.New("test-secret")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()

		other, err := token.New("another-secret")
		require.NoError(t, err)

		tok, err := other.Sign(token.Claims{"id": 1})
		require.NoError(t, err)

		_, err = svc.Verify(tok)
		require.ErrorIs(t, err, token.ErrInvalidSignature)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()

		tok, err := svc.SignTTL(token.Claims{"id": 1}, -time.Second)
		require.NoError(t, err)

		_, err = svc.Verify(tok)
		require.ErrorIs(t, err, token.ErrExpiredToken)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		for _, tok := range []string{"", "abc", "a.b", "a.b.c.d", "!.!.!"} {
			_, err := svc.Verify(tok)
			assert.ErrorIs(t, err, token.ErrMalformedToken, "token %q", tok)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		t.Parallel()

		tok, err := svc.Sign(token.Claims{"id": 1})
		require.NoError(t, err)

		parts := strings.Split(tok, ".")
		parts[1] = parts[1][:len(parts[1])-2] + "xx"

		_, err = svc.Verify(strings.Join(parts, "."))
		require.Error(t, err)
	})
}

func TestExpiryUsesClock(t *testing.T) {
	t.Parallel()

	now := time.Now()
	svc, err := token.New("test-secret", token.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	tok, err := svc.SignTTL(token.Claims{"id": 1}, time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	require.NoError(t, err)

	// Advance past expiry.
	now = now.Add(2 * time.Minute)
	_, err = svc.Verify(tok)
	require.ErrorIs(t, err, token.ErrExpiredToken)
}
