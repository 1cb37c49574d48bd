package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bookie-app/bookie-api/internal/middlewares"
)

// MeErrorResponse represents an error response for the current-user endpoint
// swagger:model MeErrorResponse
type MeErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewMeHandler returns an HTTP handler that echoes the authenticated user.
// The role middleware has already resolved the account, so the handler only
// reads it back from the request context.
// @Summary Get the current user
// @Description Returns the account of the authenticated user.
// @Tags auth
// @Produce json
// @Success 200 {object} models.UserDB "Current user"
// @Failure 401 {object} handlers.MeErrorResponse "Unauthorized"
// @Router /auth/me [get]
// @Security BearerAuth
func NewMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(MeErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(user)
	}
}
