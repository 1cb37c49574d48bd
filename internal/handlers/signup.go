package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/models"
	"github.com/bookie-app/bookie-api/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, password, firstName, lastName string) (*models.UserDB, error)
}

// SignupRequest represents the JSON body for user signup
// swagger:model SignupRequest
type SignupRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`

	// First name
	// default: John
	FirstName string `json:"first_name"`

	// Last name
	// default: Doe
	LastName string `json:"last_name"`
}

// SignupResponse represents a successful signup response
// swagger:model SignupResponse
type SignupResponse struct {
	// Success message
	// default: Account created
	Message string `json:"message"`

	// Created user
	User *models.UserDB `json:"user"`
}

// SignupErrorResponse represents an error response for signup
// swagger:model SignupErrorResponse
type SignupErrorResponse struct {
	// Error message
	// default: User with this email already exists
	Error string `json:"error"`
}

// NewSignupHandler returns an HTTP handler for user signup.
// @Summary Create a user account
// @Description Creates a new user account with a unique email. The password is hashed before storing and the role is always "user".
// @Tags auth
// @Accept json
// @Produce json
// @Param signupRequest body handlers.SignupRequest true "User signup request"
// @Success 201 {object} handlers.SignupResponse "Account created"
// @Failure 400 {object} handlers.SignupErrorResponse "Invalid request body"
// @Failure 409 {object} handlers.SignupErrorResponse "User with this email already exists"
// @Failure 500 {object} handlers.SignupErrorResponse "Internal server error"
// @Router /auth/signup [post]
func NewSignupHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(SignupErrorResponse{
				Error: "Invalid request body",
			})
			return
		}

		user, err := svc.Register(r.Context(), req.Username, req.Email, req.Password, req.FirstName, req.LastName)
		if err != nil {
			switch err {
			case services.ErrUserAlreadyExists:
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(SignupErrorResponse{
					Error: "User with this email already exists",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(SignupErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SignupResponse{
			Message: "Account created",
			User:    user,
		})
	}
}
