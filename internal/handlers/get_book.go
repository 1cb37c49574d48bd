package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/models"
	"github.com/bookie-app/bookie-api/internal/services"
)

// BookGetter defines the interface that the service must implement.
type BookGetter interface {
	Get(ctx context.Context, uid uuid.UUID) (*models.BookDB, error)
}

// GetBookErrorResponse represents an error response for fetching a book
// swagger:model GetBookErrorResponse
type GetBookErrorResponse struct {
	// Error message
	// default: Book not found
	Error string `json:"error"`
}

// NewGetBookHandler returns an HTTP handler that fetches a book by uid.
// @Summary Get a book
// @Description Returns a single book by its uid.
// @Tags books
// @Produce json
// @Param uid path string true "Book uid"
// @Success 200 {object} models.BookDB "Book"
// @Failure 400 {object} handlers.GetBookErrorResponse "Invalid book uid"
// @Failure 404 {object} handlers.GetBookErrorResponse "Book not found"
// @Failure 500 {object} handlers.GetBookErrorResponse "Internal server error"
// @Router /books/{uid} [get]
// @Security BearerAuth
func NewGetBookHandler(svc BookGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := uuid.Parse(chi.URLParam(r, "uid"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(GetBookErrorResponse{
				Error: "Invalid book uid",
			})
			return
		}

		book, err := svc.Get(r.Context(), uid)
		if err != nil {
			switch err {
			case services.ErrBookNotFound:
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(GetBookErrorResponse{
					Error: "Book not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(GetBookErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(book)
	}
}
