package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"minibitly/services"
	"minibitly/services/mocks"
)

func TestRedirectURL(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		shortCode      string
		setupMock      func(m *mocks.MockURLService)
		expectedStatus int
		expectedURL    string
		expectedBody   string
	}{
		{
			name:      "Valid short code",
			shortCode: "abc123",
			setupMock: func(m *mocks.MockURLService) {
				m.On("ResolveURL", mock.Anything, "abc123").Return("https://example.com", nil).Once()
				m.On("RecordVisit", mock.Anything, "abc123", mock.AnythingOfType("string")).Return(nil).Once()
			},
			expectedStatus: http.StatusTemporaryRedirect,
			expectedURL:    "https://example.com",
		},
		{
			name:      "Short code not found",
			shortCode: "doesnotexist",
			setupMock: func(m *mocks.MockURLService) {
				m.On("ResolveURL", mock.Anything, "doesnotexist").Return("", services.ErrShortLinkNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Short code not found"}`,
		},
		{
			name:      "Service error",
			shortCode: "error",
			setupMock: func(m *mocks.MockURLService) {
				m.On("ResolveURL", mock.Anything, "error").Return("", errors.New("service error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Error retrieving URL"}`,
		},
		{
			name:      "Invalid original URL",
			shortCode: "invalid",
			setupMock: func(m *mocks.MockURLService) {
				m.On("ResolveURL", mock.Anything, "invalid").Return("not-a-valid-url", nil).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid redirect URL"}`,
		},
		{
			name:      "Request timeout",
			shortCode: "timeout",
			setupMock: func(m *mocks.MockURLService) {
				m.On("ResolveURL", mock.Anything, "timeout").Return("", context.DeadlineExceeded).Once()
			},
			expectedStatus: http.StatusRequestTimeout,
			expectedBody:   `{"error":"Request timed out"}`,
		},
		{
			name:      "Visit recording failure still redirects",
			shortCode: "abc123",
			setupMock: func(m *mocks.MockURLService) {
				m.On("ResolveURL", mock.Anything, "abc123").Return("https://example.com", nil).Once()
				m.On("RecordVisit", mock.Anything, "abc123", mock.AnythingOfType("string")).Return(errors.New("insert failed")).Once()
			},
			expectedStatus: http.StatusTemporaryRedirect,
			expectedURL:    "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockURLService)
			tt.setupMock(mockService)

			handler, err := NewURLHandler(context.Background(), mockService, testConfig(), zap.NewNop())
			require.NoError(t, err)

			router := gin.New()
			router.GET("/:short_code", handler.RedirectURL)

			req, err := http.NewRequest(http.MethodGet, "/"+tt.shortCode, nil)
			require.NoError(t, err)
			resp := httptest.NewRecorder()

			router.ServeHTTP(resp, req)

			assert.Equal(t, tt.expectedStatus, resp.Code)

			if tt.expectedStatus == http.StatusTemporaryRedirect {
				assert.Equal(t, tt.expectedURL, resp.Header().Get("Location"))
			} else {
				assert.JSONEq(t, tt.expectedBody, resp.Body.String())
			}
			mockService.AssertExpectations(t)
		})
	}
}

// The redirect path must hand the resolved client address to the recorder.
func TestRedirectURLRecordsVisitorAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockService := new(mocks.MockURLService)
	mockService.On("ResolveURL", mock.Anything, "abc123").Return("https://example.com", nil).Once()
	mockService.On("RecordVisit", mock.Anything, "abc123", "203.0.113.7").Return(nil).Once()

	handler, err := NewURLHandler(context.Background(), mockService, testConfig(), zap.NewNop())
	require.NoError(t, err)

	router := gin.New()
	router.GET("/:short_code", handler.RedirectURL)

	req, err := http.NewRequest(http.MethodGet, "/abc123", nil)
	require.NoError(t, err)
	req.Header.Set("CF-Connecting-IP", "203.0.113.7")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusTemporaryRedirect, resp.Code)
	mockService.AssertExpectations(t)
}
