package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/models"
	"github.com/bookie-app/bookie-api/internal/services"
)

// BookUpdater defines the interface that the service must implement.
type BookUpdater interface {
	Update(ctx context.Context, uid uuid.UUID, upd models.BookUpdate) (*models.BookDB, error)
}

// UpdateBookRequest represents the JSON body for a partial book update
// swagger:model UpdateBookRequest
type UpdateBookRequest struct {
	// Title
	Title *string `json:"title"`

	// Author
	Author *string `json:"author"`

	// Publisher
	Publisher *string `json:"publisher"`

	// Number of pages
	PageCount *int `json:"page_count"`

	// Language
	Language *string `json:"language"`

	// Publication date in YYYY-MM-DD format
	PublishedDate *string `json:"published_date"`
}

// UpdateBookErrorResponse represents an error response for book updates
// swagger:model UpdateBookErrorResponse
type UpdateBookErrorResponse struct {
	// Error message
	// default: Book not found
	Error string `json:"error"`
}

// NewUpdateBookHandler returns an HTTP handler that applies a partial update
// to a book. Fields absent from the body are left unchanged.
// @Summary Update a book
// @Description Applies the provided fields to an existing book.
// @Tags books
// @Accept json
// @Produce json
// @Param uid path string true "Book uid"
// @Param updateBookRequest body handlers.UpdateBookRequest true "Book update request"
// @Success 200 {object} models.BookDB "Updated book"
// @Failure 400 {object} handlers.UpdateBookErrorResponse "Invalid request"
// @Failure 404 {object} handlers.UpdateBookErrorResponse "Book not found"
// @Failure 500 {object} handlers.UpdateBookErrorResponse "Internal server error"
// @Router /books/{uid} [patch]
// @Security BearerAuth
func NewUpdateBookHandler(svc BookUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := uuid.Parse(chi.URLParam(r, "uid"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateBookErrorResponse{
				Error: "Invalid book uid",
			})
			return
		}

		var req UpdateBookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateBookErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		upd := models.BookUpdate{
			Title:     req.Title,
			Author:    req.Author,
			Publisher: req.Publisher,
			PageCount: req.PageCount,
			Language:  req.Language,
		}

		if req.PublishedDate != nil {
			publishedDate, err := time.Parse(publishedDateLayout, *req.PublishedDate)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(UpdateBookErrorResponse{
					Error: "Invalid published_date, expected YYYY-MM-DD",
				})
				return
			}
			upd.PublishedDate = &publishedDate
		}

		updated, err := svc.Update(r.Context(), uid, upd)
		if err != nil {
			switch err {
			case services.ErrBookNotFound:
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(UpdateBookErrorResponse{
					Error: "Book not found",
				})
			default:
				logger.Log.Errorw("failed to update book", "uid", uid, "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(UpdateBookErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(updated)
	}
}
