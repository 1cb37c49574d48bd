package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	jwtlib "github.com/golang-jwt/jwt/v5"

	jwtpkg "github.com/bookie-app/bookie-api/internal/jwt"
)

func accessClaims(jti string) *jwtpkg.Claims {
	return &jwtpkg.Claims{
		User:             jwtpkg.UserClaims{Email: "u1@x.com", UserUID: "uid-1"},
		Refresh:          false,
		RegisteredClaims: jwtlib.RegisteredClaims{ID: jti},
	}
}

func refreshClaims(jti string) *jwtpkg.Claims {
	c := accessClaims(jti)
	c.Refresh = true
	return c
}

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name             string
		kind             TokenKind
		mockSetup        func(tok *MockTokener, deny *MockDenyChecker)
		expectedStatus   int
		expectNextCalled bool
	}{
		{
			name: "NoToken",
			kind: TokenKindAccess,
			mockSetup: func(tok *MockTokener, deny *MockDenyChecker) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("authorization header missing"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "InvalidToken",
			kind: TokenKindAccess,
			mockSetup: func(tok *MockTokener, deny *MockDenyChecker) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "sometoken").
					Return(nil, errors.New("token is expired"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "RevokedToken",
			kind: TokenKindAccess,
			mockSetup: func(tok *MockTokener, deny *MockDenyChecker) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "sometoken").
					Return(accessClaims("jti-1"), nil)
				deny.EXPECT().IsDenied(gomock.Any(), "jti-1").Return(true, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "DenylistError",
			kind: TokenKindAccess,
			mockSetup: func(tok *MockTokener, deny *MockDenyChecker) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "sometoken").
					Return(accessClaims("jti-1"), nil)
				deny.EXPECT().IsDenied(gomock.Any(), "jti-1").Return(false, errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "RefreshTokenAtAccessGate",
			kind: TokenKindAccess,
			mockSetup: func(tok *MockTokener, deny *MockDenyChecker) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "sometoken").
					Return(refreshClaims("jti-1"), nil)
				deny.EXPECT().IsDenied(gomock.Any(), "jti-1").Return(false, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "AccessTokenAtRefreshGate",
			kind: TokenKindRefresh,
			mockSetup: func(tok *MockTokener, deny *MockDenyChecker) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "sometoken").
					Return(accessClaims("jti-1"), nil)
				deny.EXPECT().IsDenied(gomock.Any(), "jti-1").Return(false, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "ValidAccessToken",
			kind: TokenKindAccess,
			mockSetup: func(tok *MockTokener, deny *MockDenyChecker) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(accessClaims("jti-1"), nil)
				deny.EXPECT().IsDenied(gomock.Any(), "jti-1").Return(false, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
		{
			name: "ValidRefreshToken",
			kind: TokenKindRefresh,
			mockSetup: func(tok *MockTokener, deny *MockDenyChecker) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(refreshClaims("jti-2"), nil)
				deny.EXPECT().IsDenied(gomock.Any(), "jti-2").Return(false, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			mockDeny := NewMockDenyChecker(ctrl)
			tt.mockSetup(mockTokener, mockDeny)

			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				// Claims must be visible to downstream handlers
				assert.NotNil(t, GetClaimsFromContext(r.Context()))
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(mockTokener, mockDeny, tt.kind)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
		})
	}
}
