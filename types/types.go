// Package types defines the data structures used in the URL shortener service.
package types

import "time"

// ShortLink represents a stored mapping from a short code to an original URL.
type ShortLink struct {
	ID          int64
	ShortCode   string
	OriginalURL string
	CreatedAt   time.Time
}

// VisitRecord represents a single redirect event for a short link.
// Records are append-only; visit totals are derived by counting them.
type VisitRecord struct {
	ID          int64
	ShortCode   string
	VisitorAddr string
	VisitedAt   time.Time
}

// URLStats aggregates a short link with its total visit count.
type URLStats struct {
	ShortCode   string
	OriginalURL string
	TotalVisits int64
	CreatedAt   time.Time
}

// ShortenRequest represents the request structure for creating a short URL.
type ShortenRequest struct {
	LongURL string `json:"long_url" validate:"required,url,max=2048"`
}

// ShortenResponse represents the response structure for a created short URL.
type ShortenResponse struct {
	ShortCode   string    `json:"short_code"`
	ShortURL    string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// StatsResponse represents the response structure for the stats endpoint.
type StatsResponse struct {
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	TotalVisits int64     `json:"total_visits"`
	CreatedAt   time.Time `json:"created_at"`
}
