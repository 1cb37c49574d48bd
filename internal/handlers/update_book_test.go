package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookie-app/bookie-api/internal/models"
	"github.com/bookie-app/bookie-api/internal/services"
)

func TestUpdateBookHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bookUID := uuid.New()

	tests := []struct {
		name         string
		uid          string
		body         string
		mockSetup    func(m *MockBookUpdater)
		expectedCode int
	}{
		{
			name: "partial update",
			uid:  bookUID.String(),
			body: `{"title":"New Title"}`,
			mockSetup: func(m *MockBookUpdater) {
				m.EXPECT().
					Update(gomock.Any(), bookUID, gomock.Any()).
					DoAndReturn(func(_ interface{}, uid uuid.UUID, upd models.BookUpdate) (*models.BookDB, error) {
						require.NotNil(t, upd.Title)
						assert.Equal(t, "New Title", *upd.Title)
						assert.Nil(t, upd.Author)
						assert.Nil(t, upd.PageCount)
						title := *upd.Title
						return &models.BookDB{UID: uid, Title: &title}, nil
					})
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "not found",
			uid:  bookUID.String(),
			body: `{"title":"New Title"}`,
			mockSetup: func(m *MockBookUpdater) {
				m.EXPECT().
					Update(gomock.Any(), bookUID, gomock.Any()).
					Return(nil, services.ErrBookNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "invalid uid",
			uid:          "not-a-uuid",
			body:         `{"title":"New Title"}`,
			mockSetup:    func(m *MockBookUpdater) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid json",
			uid:          bookUID.String(),
			body:         `{invalid`,
			mockSetup:    func(m *MockBookUpdater) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMockBookUpdater(ctrl)
			tt.mockSetup(svc)

			router := chi.NewRouter()
			router.Patch("/books/{uid}", NewUpdateBookHandler(svc))

			req := httptest.NewRequest(http.MethodPatch, "/books/"+tt.uid, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
