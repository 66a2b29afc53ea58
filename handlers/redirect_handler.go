// Package handlers provides HTTP request handlers for the URL shortener service.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minibitly/services"
)

const errInvalidRedirectURL = "Invalid redirect URL"

// RedirectURL handles the redirection from a short code to its original URL.
// It resolves the code, records one visit with the resolved client address
// and redirects with 307 so the original method and body are preserved.
//
// Visit recording is best-effort on this path: a failed insert is logged and
// the visitor is still redirected.
func (h *URLHandler) RedirectURL(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	shortCode := c.Param("short_code")

	originalURL, err := h.service.ResolveURL(ctx, shortCode)
	if err != nil {
		h.handleRedirectError(c, err, shortCode)
		return
	}

	// Validate the original URL to prevent open redirects
	if err := h.validate.Var(originalURL, "url"); err != nil {
		h.logger.Warn("Invalid original URL",
			zap.String("short_code", shortCode),
			zap.String("original_url", originalURL))
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidRedirectURL})
		return
	}

	visitorAddr := ClientAddress(c)
	if err := h.service.RecordVisit(ctx, shortCode, visitorAddr); err != nil {
		h.logger.Warn("Failed to record visit",
			zap.String("short_code", shortCode),
			zap.String("visitor_addr", visitorAddr),
			zap.Error(err))
	}

	h.logger.Info("Redirecting",
		zap.String("short_code", shortCode),
		zap.String("original_url", originalURL),
		zap.String("visitor_addr", visitorAddr),
		zap.String("user_agent", c.Request.UserAgent()))
	c.Redirect(http.StatusTemporaryRedirect, originalURL)
}

func (h *URLHandler) handleRedirectError(c *gin.Context, err error, shortCode string) {
	switch {
	case errors.Is(err, services.ErrShortLinkNotFound):
		h.logger.Info("Short code not found", zap.String("short_code", shortCode))
		c.JSON(http.StatusNotFound, gin.H{"error": shortLinkNotFound})
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("Request timed out", zap.String("short_code", shortCode))
		c.JSON(http.StatusRequestTimeout, gin.H{"error": errorTimeout})
	default:
		h.logger.Error("Error retrieving URL",
			zap.String("short_code", shortCode),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorRetrievingURL})
	}
}
