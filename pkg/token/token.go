package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"maps"
	"strings"
	"time"
)

// DefaultTTL is the expiry applied by Sign when the claims carry no exp.
const DefaultTTL = time.Hour

// Claims is an open claim set. Values survive a JSON round trip, so numeric
// claims come back as float64.
type Claims map[string]any

// Int64 returns a numeric claim as int64, or 0 if absent or non-numeric.
func (c Claims) Int64(key string) int64 {
	switch v := c[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	default:
		return 0
	}
}

// String returns a string claim, or "" if absent or not a string.
func (c Claims) String(key string) string {
	s, _ := c[key].(string)
	return s
}

// Service signs and verifies tokens with a shared symmetric secret.
// The zero value is not usable; create one with New.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithTTL overrides the default token lifetime used by Sign.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a token service with the given signing secret.
func New(secret string, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	s := &Service{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// tokenHeader is the fixed JOSE header. Only HS256 is supported.
var tokenHeader = mustEncodeSegment(map[string]string{"alg": "HS256", "typ": "JWT"})

// Sign produces a signed token for the claim set using the service TTL.
// An exp claim already present in the claims is left untouched.
func (s *Service) Sign(claims Claims) (string, error) {
	return s.SignTTL(claims, s.ttl)
}

// SignTTL produces a signed token expiring after ttl. A non-positive ttl
// yields an already-expired token, which Verify rejects.
func (s *Service) SignTTL(claims Claims, ttl time.Duration) (string, error) {
	payload := make(Claims, len(claims)+1)
	maps.Copy(payload, claims)
	if _, ok := payload["exp"]; !ok {
		payload["exp"] = s.now().Add(ttl).Unix()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	signing := tokenHeader + "." + base64.RawURLEncoding.EncodeToString(body)
	return signing + "." + s.signature(signing), nil
}

// Verify decodes a token, checks its signature and, when an exp claim is
// present, its expiry. It returns a typed error on any failure; callers that
// only care about authentication state can treat any error as "no principal".
func (s *Service) Verify(tok string) (Claims, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedToken
	}

	headerRaw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrMalformedToken
	}
	var header struct {
		Alg string `json:"alg"`
	}
	if err := json.Unmarshal(headerRaw, &header); err != nil {
		return nil, ErrMalformedToken
	}
	if header.Alg != "HS256" {
		return nil, ErrUnsupportedAlgorithm
	}

	signing := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(s.signature(signing)), []byte(parts[2])) {
		return nil, ErrInvalidSignature
	}

	payloadRaw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrMalformedToken
	}
	var claims Claims
	if err := json.Unmarshal(payloadRaw, &claims); err != nil {
		return nil, ErrMalformedToken
	}

	if exp, ok := claims["exp"]; ok {
		if expAt, ok := exp.(float64); !ok || s.now().Unix() >= int64(expAt) {
			return nil, ErrExpiredToken
		}
	}

	return claims, nil
}

func (s *Service) signature(signing string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(signing))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func mustEncodeSegment(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
