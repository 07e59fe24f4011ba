package internal

import (
	"github.com/jazzy-go/jazzy/pkg/token"
)

// AuthState is the per-request authentication handle. It is rebuilt from
// the bearer token on every request — sessions are stateless, nothing is
// persisted server-side. It is owned by exactly one Context and needs no
// locking.
type AuthState struct {
	tokens   *token.Service
	claims   token.Claims
	bearer   string
	loggedIn bool
}

// newAuthState verifies the bearer token (if any) and derives the initial
// state. Verification failures of any kind — missing, malformed, bad
// signature, expired — yield an unauthenticated state, never an error.
func newAuthState(tokens *token.Service, bearer string) *AuthState {
	a := &AuthState{
		tokens: tokens,
		bearer: bearer,
	}
	if tokens == nil || bearer == "" {
		return a
	}
	if claims, err := tokens.Verify(bearer); err == nil {
		a.claims = claims
		a.loggedIn = true
	}
	return a
}

// Login signs a token for the given principal claims and flips the
// in-memory state to authenticated. The token is returned for the caller
// to hand to the client.
func (a *AuthState) Login(claims token.Claims) (string, error) {
	if a.tokens == nil {
		return "", token.ErrEmptySecret
	}
	tok, err := a.tokens.Sign(claims)
	if err != nil {
		return "", err
	}
	a.claims = claims
	a.bearer = tok
	a.loggedIn = true
	return tok, nil
}

// Logout clears the authentication state for the rest of the request.
func (a *AuthState) Logout() {
	a.claims = nil
	a.bearer = ""
	a.loggedIn = false
}

// User returns the authenticated principal's claims, or nil.
func (a *AuthState) User() token.Claims {
	if !a.loggedIn {
		return nil
	}
	return a.claims
}

// Check reports whether the request is authenticated.
// Check() == true implies User() != nil.
func (a *AuthState) Check() bool {
	return a.loggedIn
}

// ID returns the integer "id" claim of the principal, or 0 when absent or
// not logged in.
func (a *AuthState) ID() int64 {
	if !a.loggedIn {
		return 0
	}
	return a.claims.Int64("id")
}

// Token returns the current bearer token string, empty when logged out.
func (a *AuthState) Token() string {
	return a.bearer
}
