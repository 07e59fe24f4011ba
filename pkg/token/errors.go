package token

import "errors"

var (
	// ErrEmptySecret is returned by New when no signing secret is provided.
	ErrEmptySecret = errors.New("token: empty signing secret")

	// ErrMalformedToken is returned when a token is not structurally valid.
	ErrMalformedToken = errors.New("token: malformed token")

	// ErrInvalidSignature is returned when the signature does not match.
	ErrInvalidSignature = errors.New("token: invalid signature")

	// ErrExpiredToken is returned when the exp claim is in the past.
	ErrExpiredToken = errors.New("token: expired token")

	// ErrUnsupportedAlgorithm is returned when the token header declares an
	// algorithm other than HS256.
	ErrUnsupportedAlgorithm = errors.New("token: unsupported algorithm")
)
