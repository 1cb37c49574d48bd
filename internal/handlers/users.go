package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/models"
)

// UserLister defines the interface that the service must implement.
type UserLister interface {
	ListUsers(ctx context.Context) ([]models.UserDB, error)
}

// ListUsersErrorResponse represents an error response for the user listing
// swagger:model ListUsersErrorResponse
type ListUsersErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewListUsersHandler returns an HTTP handler that lists all user accounts.
// @Summary List users
// @Description Returns every user account, newest first.
// @Tags auth
// @Produce json
// @Success 200 {array} models.UserDB "Users"
// @Failure 401 {object} handlers.ListUsersErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ListUsersErrorResponse "Internal server error"
// @Router /auth/users [get]
// @Security BearerAuth
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			logger.Log.Errorw("failed to list users", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ListUsersErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(users)
	}
}
