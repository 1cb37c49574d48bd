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

// BookDeleter defines the interface that the service must implement.
type BookDeleter interface {
	Delete(ctx context.Context, uid uuid.UUID) (*models.BookDB, error)
}

// DeleteBookResponse represents a successful book deletion response
// swagger:model DeleteBookResponse
type DeleteBookResponse struct {
	// Success message
	// default: Book deleted
	Message string `json:"message"`

	// Deleted book
	Book *models.BookDB `json:"book"`
}

// DeleteBookErrorResponse represents an error response for book deletion
// swagger:model DeleteBookErrorResponse
type DeleteBookErrorResponse struct {
	// Error message
	// default: Book not found
	Error string `json:"error"`
}

// NewDeleteBookHandler returns an HTTP handler that deletes a book by uid.
// @Summary Delete a book
// @Description Removes a book and returns the deleted record.
// @Tags books
// @Produce json
// @Param uid path string true "Book uid"
// @Success 200 {object} handlers.DeleteBookResponse "Deleted book"
// @Failure 400 {object} handlers.DeleteBookErrorResponse "Invalid book uid"
// @Failure 404 {object} handlers.DeleteBookErrorResponse "Book not found"
// @Failure 500 {object} handlers.DeleteBookErrorResponse "Internal server error"
// @Router /books/{uid} [delete]
// @Security BearerAuth
func NewDeleteBookHandler(svc BookDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := uuid.Parse(chi.URLParam(r, "uid"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DeleteBookErrorResponse{
				Error: "Invalid book uid",
			})
			return
		}

		deleted, err := svc.Delete(r.Context(), uid)
		if err != nil {
			switch err {
			case services.ErrBookNotFound:
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(DeleteBookErrorResponse{
					Error: "Book not found",
				})
			default:
				logger.Log.Errorw("failed to delete book", "uid", uid, "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(DeleteBookErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeleteBookResponse{
			Message: "Book deleted",
			Book:    deleted,
		})
	}
}
