package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultAccessExp  = 3600 * time.Minute
	defaultRefreshExp = 48 * time.Hour
)

// UserClaims is the user-identifying part of the token payload.
type UserClaims struct {
	Email   string `json:"email"`
	UserUID string `json:"user_uid"`
	Role    string `json:"role,omitempty"`
}

// Claims is the full token payload. The jti lives in RegisteredClaims.ID
// and the expiry in RegisteredClaims.ExpiresAt, so the library enforces it.
// Refresh discriminates long-lived refresh tokens from access tokens.
type Claims struct {
	User    UserClaims `json:"user"`
	Refresh bool       `json:"refresh"`
	jwt.RegisteredClaims
}

// JWT issues and verifies HS256-signed tokens.
type JWT struct {
	secretKey  string
	accessExp  time.Duration
	refreshExp time.Duration
}

// Opt configures a JWT instance.
type Opt func(*JWT)

// WithSecretKey sets the symmetric signing key.
func WithSecretKey(secret string) Opt {
	return func(j *JWT) { j.secretKey = secret }
}

// WithAccessExp sets the access token lifetime.
func WithAccessExp(exp time.Duration) Opt {
	return func(j *JWT) { j.accessExp = exp }
}

// WithRefreshExp sets the refresh token lifetime.
func WithRefreshExp(exp time.Duration) Opt {
	return func(j *JWT) { j.refreshExp = exp }
}

// New creates a JWT instance with the given options.
func New(opts ...Opt) *JWT {
	j := &JWT{
		accessExp:  defaultAccessExp,
		refreshExp: defaultRefreshExp,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Generate creates a signed token for the given user. Every token gets a
// fresh jti. The refresh flag selects the lifetime and marks the token type.
func (j *JWT) Generate(ctx context.Context, user UserClaims, refresh bool) (string, error) {
	exp := j.accessExp
	if refresh {
		exp = j.refreshExp
	}

	now := time.Now()
	claims := Claims{
		User:    user,
		Refresh: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// GetClaims parses and verifies a token string. Any verification failure
// (bad signature, expiry, malformed token) returns a nil payload and an
// error; callers must treat that as an invalid credential.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GetTokenFromRequest extracts the bearer token from the Authorization header
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
