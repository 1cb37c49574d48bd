package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bookie-app/bookie-api/internal/jwt"
	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/middlewares"
)

// TokenRefresher defines the interface that the service must implement.
type TokenRefresher interface {
	Refresh(ctx context.Context, claims *jwt.Claims) (string, error)
}

// RefreshResponse represents a successful token refresh response
// swagger:model RefreshResponse
type RefreshResponse struct {
	// New short-lived access token
	AccessToken string `json:"access_token"`
}

// RefreshErrorResponse represents an error response for token refresh
// swagger:model RefreshErrorResponse
type RefreshErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewRefreshHandler returns an HTTP handler that issues a fresh access token.
// The route is gated by the refresh-token middleware, which leaves the
// verified claims in the request context.
// @Summary Refresh the access token
// @Description Issues a new access token from a valid refresh token.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.RefreshResponse "New access token"
// @Failure 401 {object} handlers.RefreshErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.RefreshErrorResponse "Internal server error"
// @Router /auth/refresh [get]
// @Security BearerAuth
func NewRefreshHandler(svc TokenRefresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims := middlewares.GetClaimsFromContext(ctx)
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(RefreshErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		accessToken, err := svc.Refresh(ctx, claims)
		if err != nil {
			logger.Log.Errorw("failed to refresh access token", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(RefreshErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(RefreshResponse{
			AccessToken: accessToken,
		})
	}
}
