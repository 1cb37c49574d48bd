package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	jwtpkg "github.com/bookie-app/bookie-api/internal/jwt"
	"github.com/bookie-app/bookie-api/internal/logger"
)

// TokenKind selects which token type a gate accepts.
type TokenKind int

const (
	// TokenKindAccess rejects refresh tokens.
	TokenKindAccess TokenKind = iota
	// TokenKindRefresh rejects access tokens.
	TokenKindRefresh
)

// Tokener defines the token operations needed by the auth gate.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwtpkg.Claims, error)
}

// DenyChecker reports whether a token id has been revoked.
type DenyChecker interface {
	IsDenied(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware returns a middleware that runs the bearer-token verification
// pipeline: extract credential, decode, denylist check, token-kind check.
// Any failure is terminal for the request and answered with 401.
// On success the decoded claims are stored in the request context.
func AuthMiddleware(tokener Tokener, denylist DenyChecker, kind TokenKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				writeError(w, http.StatusUnauthorized, "missing or malformed token")
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			denied, err := denylist.IsDenied(ctx, claims.ID)
			if err != nil {
				logger.Log.Errorw("denylist check failed", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if denied {
				logger.Log.Errorw("authorization failed", "jti", claims.ID, "err", "token revoked")
				writeError(w, http.StatusUnauthorized, "token has been revoked")
				return
			}

			switch kind {
			case TokenKindAccess:
				if claims.Refresh {
					writeError(w, http.StatusUnauthorized, "access token required")
					return
				}
			case TokenKindRefresh:
				if !claims.Refresh {
					writeError(w, http.StatusUnauthorized, "refresh token required")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(SetClaimsToContext(ctx, claims)))
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

type claimsKeyType struct{}

var claimsKey = claimsKeyType{}

// SetClaimsToContext stores verified token claims in the context.
func SetClaimsToContext(ctx context.Context, claims *jwtpkg.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaimsFromContext retrieves the verified token claims set by
// AuthMiddleware. Returns nil if the request did not pass the gate.
func GetClaimsFromContext(ctx context.Context) *jwtpkg.Claims {
	claims, _ := ctx.Value(claimsKey).(*jwtpkg.Claims)
	return claims
}
