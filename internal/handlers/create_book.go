package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/middlewares"
	"github.com/bookie-app/bookie-api/internal/models"
)

// publishedDateLayout is the wire format for book publication dates.
const publishedDateLayout = "2006-01-02"

// BookCreator defines the interface that the service must implement.
type BookCreator interface {
	Create(ctx context.Context, book models.BookDB, ownerUID uuid.UUID) (*models.BookDB, error)
}

// CreateBookRequest represents the JSON body for book creation
// swagger:model CreateBookRequest
type CreateBookRequest struct {
	// Title
	// required: true
	// default: The Go Programming Language
	Title *string `json:"title"`

	// Author
	// default: Alan Donovan
	Author *string `json:"author"`

	// Publisher
	// default: Addison-Wesley
	Publisher *string `json:"publisher"`

	// Number of pages
	// default: 380
	PageCount *int `json:"page_count"`

	// Language, defaults to English
	// default: English
	Language *string `json:"language"`

	// Publication date in YYYY-MM-DD format
	// default: 2015-10-26
	PublishedDate *string `json:"published_date"`
}

// CreateBookErrorResponse represents an error response for book creation
// swagger:model CreateBookErrorResponse
type CreateBookErrorResponse struct {
	// Error message
	// default: Invalid request body
	Error string `json:"error"`
}

// NewCreateBookHandler returns an HTTP handler that creates a book owned by
// the authenticated user.
// @Summary Create a book
// @Description Creates a book record. The owner is taken from the access token, never from the body.
// @Tags books
// @Accept json
// @Produce json
// @Param createBookRequest body handlers.CreateBookRequest true "Book creation request"
// @Success 201 {object} models.BookDB "Created book"
// @Failure 400 {object} handlers.CreateBookErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.CreateBookErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.CreateBookErrorResponse "Internal server error"
// @Router /books [post]
// @Security BearerAuth
func NewCreateBookHandler(svc BookCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims := middlewares.GetClaimsFromContext(ctx)
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(CreateBookErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		ownerUID, err := uuid.Parse(claims.User.UserUID)
		if err != nil {
			logger.Log.Errorw("malformed user uid in token", "user_uid", claims.User.UserUID)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(CreateBookErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		var req CreateBookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateBookErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		book := models.BookDB{
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
				json.NewEncoder(w).Encode(CreateBookErrorResponse{
					Error: "Invalid published_date, expected YYYY-MM-DD",
				})
				return
			}
			book.PublishedDate = &publishedDate
		}

		created, err := svc.Create(ctx, book, ownerUID)
		if err != nil {
			logger.Log.Errorw("failed to create book", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(CreateBookErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}
