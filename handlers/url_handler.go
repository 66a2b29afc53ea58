// Package handlers provides HTTP request handlers for the URL shortener service.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"minibitly/config"
	"minibitly/services"
	"minibitly/types"
)

const (
	invalidRequestBody  = "Invalid request body"
	invalidURLProvided  = "Invalid URL provided"
	errorCreatingURL    = "Error creating short URL"
	errorRetrievingURL  = "Error retrieving URL"
	errorTimeout        = "Request timed out"
	shortLinkNotFound   = "Short code not found"
	codeSpaceExhausted  = "Could not allocate a unique short code"
	storageCapacityFull = "Storage capacity reached"
)

// URLHandlerInterface defines the methods that a URL handler should implement.
type URLHandlerInterface interface {
	CreateShortURL(c *gin.Context)
	RedirectURL(c *gin.Context)
	GetStats(c *gin.Context)
	HealthCheck(c *gin.Context)
}

// URLHandler struct holds the dependencies for handling URL-related operations.
type URLHandler struct {
	service  services.URLService
	validate *validator.Validate
	config   *config.Config
	logger   *zap.Logger
}

// NewURLHandler creates and returns a new URLHandler instance.
func NewURLHandler(ctx context.Context, service services.URLService, cfg *config.Config, logger *zap.Logger) (URLHandlerInterface, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	handler := &URLHandler{
		service:  service,
		validate: validator.New(),
		config:   cfg,
		logger:   logger,
	}

	// Perform any initialization that might be cancelled
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return handler, nil
}

// handleError is a helper function to handle errors and send appropriate responses
func (h *URLHandler) handleError(c *gin.Context, err error, customMessages map[error]string) {
	var statusCode int
	var errorMessage string

	switch {
	case errors.Is(err, services.ErrInvalidURL):
		statusCode = http.StatusBadRequest
		errorMessage = customMessages[services.ErrInvalidURL]
	case errors.Is(err, services.ErrShortLinkNotFound):
		statusCode = http.StatusNotFound
		errorMessage = customMessages[services.ErrShortLinkNotFound]
	case errors.Is(err, services.ErrCodeSpaceExhausted):
		h.logger.Error("Short code generation attempts exhausted", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errorMessage = customMessages[services.ErrCodeSpaceExhausted]
	case errors.Is(err, services.ErrStorageCapacityReached):
		statusCode = http.StatusInsufficientStorage
		errorMessage = customMessages[services.ErrStorageCapacityReached]
	case errors.Is(err, context.DeadlineExceeded):
		statusCode = http.StatusRequestTimeout
		errorMessage = customMessages[context.DeadlineExceeded]
	default:
		h.logger.Error("Unexpected error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errorMessage = customMessages[err]
		if errorMessage == "" {
			errorMessage = "Internal server error"
		}
	}

	c.JSON(statusCode, gin.H{"error": errorMessage})
}

// CreateShortURL handles the creation of a new shortened URL.
// It validates the input, assigns a short code (reusing an existing one for
// a URL that was already shortened) and returns the mapping.
func (h *URLHandler) CreateShortURL(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	var input types.ShortenRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Error("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestBody})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		h.logger.Error("Invalid input", zap.Error(err), zap.String("long_url", input.LongURL))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidURLProvided})
		return
	}

	link, err := h.service.CreateShortURL(ctx, input.LongURL)
	if err != nil {
		h.handleError(c, err, map[error]string{
			services.ErrInvalidURL:             invalidURLProvided,
			services.ErrCodeSpaceExhausted:     codeSpaceExhausted,
			services.ErrStorageCapacityReached: storageCapacityFull,
			context.DeadlineExceeded:           errorTimeout,
			nil:                                errorCreatingURL,
		})
		return
	}

	response := types.ShortenResponse{
		ShortCode:   link.ShortCode,
		ShortURL:    h.shortURLFor(link.ShortCode),
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt,
	}
	c.JSON(http.StatusCreated, response)
}

// shortURLFor builds the public short URL for a code from the configured base URL.
func (h *URLHandler) shortURLFor(shortCode string) string {
	return strings.TrimSuffix(h.config.BaseURL, "/") + "/" + shortCode
}
