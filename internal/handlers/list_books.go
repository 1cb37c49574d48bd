package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/models"
)

// BookLister defines the interface that the service must implement.
type BookLister interface {
	List(ctx context.Context) ([]models.BookDB, error)
}

// ListBooksErrorResponse represents an error response for the book listing
// swagger:model ListBooksErrorResponse
type ListBooksErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewListBooksHandler returns an HTTP handler that lists all books.
// @Summary List books
// @Description Returns all books, newest first.
// @Tags books
// @Produce json
// @Success 200 {array} models.BookDB "Books"
// @Failure 401 {object} handlers.ListBooksErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ListBooksErrorResponse "Internal server error"
// @Router /books [get]
// @Security BearerAuth
func NewListBooksHandler(svc BookLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		books, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("failed to list books", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ListBooksErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(books)
	}
}
