package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	jwtpkg "github.com/bookie-app/bookie-api/internal/jwt"
	"github.com/bookie-app/bookie-api/internal/middlewares"
)

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	claims := &jwtpkg.Claims{
		User: jwtpkg.UserClaims{Email: "john@example.com"},
	}
	claims.ID = "jti-123"

	tests := []struct {
		name         string
		claims       *jwtpkg.Claims
		mockSetup    func(m *MockTokenRevoker)
		expectedCode int
	}{
		{
			name:   "success",
			claims: claims,
			mockSetup: func(m *MockTokenRevoker) {
				m.EXPECT().
					Logout(gomock.Any(), claims).
					Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "no claims in context",
			claims:       nil,
			mockSetup:    func(m *MockTokenRevoker) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:   "denylist failure",
			claims: claims,
			mockSetup: func(m *MockTokenRevoker) {
				m.EXPECT().
					Logout(gomock.Any(), claims).
					Return(errors.New("redis down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMockTokenRevoker(ctrl)
			tt.mockSetup(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/logout", nil)
			if tt.claims != nil {
				req = req.WithContext(middlewares.SetClaimsToContext(req.Context(), tt.claims))
			}
			w := httptest.NewRecorder()

			NewLogoutHandler(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedCode == http.StatusOK {
				var resp LogoutResponse
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, "Logged out successfully", resp.Message)
			}
		})
	}
}
