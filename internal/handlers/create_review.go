package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/middlewares"
	"github.com/bookie-app/bookie-api/internal/models"
	"github.com/bookie-app/bookie-api/internal/services"
)

// ReviewCreator defines the interface that the service must implement.
type ReviewCreator interface {
	AddReviewToBook(ctx context.Context, userEmail string, bookUID uuid.UUID, rating int, reviewText string) (*models.ReviewDB, error)
}

// CreateReviewRequest represents the JSON body for review creation
// swagger:model CreateReviewRequest
type CreateReviewRequest struct {
	// Rating, at least 0 and less than 5
	// required: true
	// default: 4
	Rating int `json:"rating"`

	// Review body
	// required: true
	// default: A thorough and readable introduction.
	ReviewText string `json:"review_text"`
}

// CreateReviewErrorResponse represents an error response for review creation
// swagger:model CreateReviewErrorResponse
type CreateReviewErrorResponse struct {
	// Error message
	// default: Book not found
	Error string `json:"error"`
}

// NewCreateReviewHandler returns an HTTP handler that attaches a review to a
// book on behalf of the authenticated user. The route runs inside a single
// database transaction, rolled back on any non-2xx response.
// @Summary Review a book
// @Description Creates a review linked to the book and the authenticated user.
// @Tags reviews
// @Accept json
// @Produce json
// @Param uid path string true "Book uid"
// @Param createReviewRequest body handlers.CreateReviewRequest true "Review creation request"
// @Success 201 {object} models.ReviewDB "Created review"
// @Failure 400 {object} handlers.CreateReviewErrorResponse "Invalid request"
// @Failure 401 {object} handlers.CreateReviewErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.CreateReviewErrorResponse "Book or user not found"
// @Failure 500 {object} handlers.CreateReviewErrorResponse "Internal server error"
// @Router /reviews/book/{uid} [post]
// @Security BearerAuth
func NewCreateReviewHandler(svc ReviewCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims := middlewares.GetClaimsFromContext(ctx)
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(CreateReviewErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		bookUID, err := uuid.Parse(chi.URLParam(r, "uid"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateReviewErrorResponse{
				Error: "Invalid book uid",
			})
			return
		}

		var req CreateReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateReviewErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		review, err := svc.AddReviewToBook(ctx, claims.User.Email, bookUID, req.Rating, req.ReviewText)
		if err != nil {
			switch err {
			case services.ErrRatingOutOfRange:
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(CreateReviewErrorResponse{
					Error: err.Error(),
				})
			case services.ErrBookNotFound:
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(CreateReviewErrorResponse{
					Error: "Book not found",
				})
			case services.ErrUserNotFound:
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(CreateReviewErrorResponse{
					Error: "User not found",
				})
			default:
				logger.Log.Errorw("failed to create review", "book_uid", bookUID, "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(CreateReviewErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(review)
	}
}
