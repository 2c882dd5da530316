package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every token validation failure: bad
// signature, malformed token, expired token, or missing identity claims.
// Collapsing the causes is deliberate; callers only learn "not authenticated".
var ErrInvalidToken = errors.New("invalid token")

const defaultTokenTTL = 60 * time.Minute

// Claims is the identity payload carried inside a signed access token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256-signed access tokens. It holds no
// per-request state; validity is purely a function of signature and expiry,
// so there is no revocation and a token outlives account changes until its TTL.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService returns a TokenService signing with secret. A zero or
// negative ttl falls back to the 60-minute default.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given identity. ttl overrides the configured
// default when positive.
func (s *TokenService) Issue(userID, username, role string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = s.ttl
	}
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate verifies signature and expiry and returns the embedded claims.
// Any failure, including absent user_id/username/role, yields ErrInvalidToken.
func (s *TokenService) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.Username == "" || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
