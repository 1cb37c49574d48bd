package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bookie-app/bookie-api/internal/jwt"
	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/middlewares"
)

// TokenRevoker defines the interface that the service must implement.
type TokenRevoker interface {
	Logout(ctx context.Context, claims *jwt.Claims) error
}

// LogoutResponse represents a successful logout response
// swagger:model LogoutResponse
type LogoutResponse struct {
	// Success message
	// default: Logged out successfully
	Message string `json:"message"`
}

// LogoutErrorResponse represents an error response for logout
// swagger:model LogoutErrorResponse
type LogoutErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewLogoutHandler returns an HTTP handler that revokes the presented token.
// @Summary Log out
// @Description Revokes the presented access token; subsequent requests with it are rejected.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.LogoutResponse "Logged out"
// @Failure 401 {object} handlers.LogoutErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.LogoutErrorResponse "Internal server error"
// @Router /auth/logout [get]
// @Security BearerAuth
func NewLogoutHandler(svc TokenRevoker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims := middlewares.GetClaimsFromContext(ctx)
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(LogoutErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		if err := svc.Logout(ctx, claims); err != nil {
			logger.Log.Errorw("failed to revoke token", "jti", claims.ID, "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(LogoutErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(LogoutResponse{
			Message: "Logged out successfully",
		})
	}
}
