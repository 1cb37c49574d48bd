package middlewares

import (
	"context"
	"net/http"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/models"
)

// UserGetter resolves a token email to a persisted user.
type UserGetter interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// RoleMiddleware resolves the authenticated user from the token claims and
// permits the request only if the user's role is in the allow-list.
// Must run after AuthMiddleware.
func RoleMiddleware(users UserGetter, allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			claims := GetClaimsFromContext(ctx)
			if claims == nil {
				writeError(w, http.StatusUnauthorized, "missing or malformed token")
				return
			}

			user, err := users.GetByEmail(ctx, claims.User.Email)
			if err != nil {
				logger.Log.Errorw("failed to resolve user", "email", claims.User.Email, "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if user == nil {
				writeError(w, http.StatusNotFound, "user not found")
				return
			}

			allowed := false
			for _, role := range allowedRoles {
				if user.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				logger.Log.Errorw("authorization failed", "email", user.Email, "role", user.Role, "err", "insufficient permission")
				writeError(w, http.StatusForbidden, "insufficient permission")
				return
			}

			next.ServeHTTP(w, r.WithContext(SetUserToContext(ctx, user)))
		})
	}
}

type userKeyType struct{}

var userKey = userKeyType{}

// SetUserToContext stores the resolved user in the context.
func SetUserToContext(ctx context.Context, user *models.UserDB) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext retrieves the resolved user set by RoleMiddleware.
// Returns nil if the request did not pass the gate.
func GetUserFromContext(ctx context.Context) *models.UserDB {
	user, _ := ctx.Value(userKey).(*models.UserDB)
	return user
}
