// Package handlers provides HTTP request handlers for the URL shortener service.
package handlers

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// addressHeaders lists the candidate header sources for the visitor address
// in priority order: proxy-asserted connecting-IP headers from edge providers
// first, then generic proxy headers. The raw peer address is the final
// fallback. The first non-empty candidate wins; the claimed address is not
// validated for plausibility.
var addressHeaders = []string{
	"CF-Connecting-IP", // Cloudflare
	"True-Client-IP",   // Akamai, Cloudflare Enterprise
	"X-Real-IP",        // Nginx and other reverse proxies
}

// ClientAddress resolves the visitor's network address for visit recording.
func ClientAddress(c *gin.Context) string {
	for _, header := range addressHeaders {
		if addr := strings.TrimSpace(c.GetHeader(header)); addr != "" {
			return addr
		}
	}

	// X-Forwarded-For can contain "client, proxy1, proxy2"; the leftmost
	// entry is the original client.
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}

	remoteAddr := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
