package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/models"
)

// UserBookLister defines the interface that the service must implement.
type UserBookLister interface {
	ListByUser(ctx context.Context, userUID uuid.UUID) ([]models.BookDB, error)
}

// UserBooksErrorResponse represents an error response for a user's book listing
// swagger:model UserBooksErrorResponse
type UserBooksErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewUserBooksHandler returns an HTTP handler that lists the books owned by
// a user. A user with no books yields an empty array, not an error.
// @Summary List a user's books
// @Description Returns the books owned by the given user, newest first.
// @Tags books
// @Produce json
// @Param uid path string true "User uid"
// @Success 200 {array} models.BookDB "Books"
// @Failure 400 {object} handlers.UserBooksErrorResponse "Invalid user uid"
// @Failure 500 {object} handlers.UserBooksErrorResponse "Internal server error"
// @Router /users/{uid}/books [get]
// @Security BearerAuth
func NewUserBooksHandler(svc UserBookLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userUID, err := uuid.Parse(chi.URLParam(r, "uid"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UserBooksErrorResponse{
				Error: "Invalid user uid",
			})
			return
		}

		books, err := svc.ListByUser(r.Context(), userUID)
		if err != nil {
			logger.Log.Errorw("failed to list user books", "user_uid", userUID, "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(UserBooksErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(books)
	}
}
