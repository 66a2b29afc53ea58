// Package handlers provides HTTP request handlers for the URL shortener service.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"minibitly/services"
	"minibitly/types"
)

// GetStats returns a short link together with its total visit count.
// The count is derived from the append-only visit records, so it is
// monotonically non-decreasing for a given code.
func (h *URLHandler) GetStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	shortCode := c.Param("short_code")

	stats, err := h.service.GetStats(ctx, shortCode)
	if err != nil {
		h.handleError(c, err, map[error]string{
			services.ErrShortLinkNotFound: shortLinkNotFound,
			context.DeadlineExceeded:      errorTimeout,
			nil:                           errorRetrievingURL,
		})
		return
	}

	response := types.StatsResponse{
		ShortCode:   stats.ShortCode,
		OriginalURL: stats.OriginalURL,
		TotalVisits: stats.TotalVisits,
		CreatedAt:   stats.CreatedAt,
	}
	c.JSON(http.StatusOK, response)
}
