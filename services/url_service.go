// Package services implements the business logic of the URL shortener:
// short code assignment with deduplication, resolution and visit tracking.
package services

import (
	"context"
	"errors"
	"time"

	"minibitly/storage"
	"minibitly/types"
	"minibitly/urlgen"
)

// maxOriginalURLLength bounds the accepted original URL size.
const maxOriginalURLLength = 2048

// defaultMaxGenerateAttempts bounds the retry loop on short code collisions.
const defaultMaxGenerateAttempts = 5

var (
	ErrInvalidURL             = errors.New("original URL is empty or too long")
	ErrShortLinkNotFound      = errors.New("short link not found")
	ErrStorageCapacityReached = errors.New("storage capacity reached")
	ErrCodeSpaceExhausted     = errors.New("short code generation attempts exhausted")
)

func handleStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrShortLinkNotFound):
		return ErrShortLinkNotFound
	case errors.Is(err, storage.ErrStorageCapacityReached):
		return ErrStorageCapacityReached
	default:
		return err
	}
}

// URLService defines the operations of the shortening core.
type URLService interface {
	CreateShortURL(ctx context.Context, originalURL string) (types.ShortLink, error)
	ResolveURL(ctx context.Context, shortCode string) (string, error)
	RecordVisit(ctx context.Context, shortCode, visitorAddr string) error
	GetStats(ctx context.Context, shortCode string) (types.URLStats, error)
}

type urlService struct {
	store       storage.Storage
	codeLength  int
	maxAttempts int
}

// NewURLService returns a URLService backed by the given storage.
// Non-positive codeLength or maxAttempts fall back to the defaults
// (6-character codes, 5 generation attempts).
func NewURLService(store storage.Storage, codeLength, maxAttempts int) URLService {
	if codeLength <= 0 {
		codeLength = urlgen.DefaultLength
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxGenerateAttempts
	}
	return &urlService{store: store, codeLength: codeLength, maxAttempts: maxAttempts}
}

// CreateShortURL returns the short link for originalURL, reusing an existing
// one when the exact same URL was shortened before. Otherwise it generates a
// random code and inserts it; the storage's uniqueness constraint on the
// short code is the authoritative collision guard, so on ErrShortCodeExists
// the generation is retried with a fresh draw, bounded by maxAttempts.
//
// Deduplication is best-effort: two concurrent requests for the same URL may
// both miss the lookup and create two distinct links.
func (s *urlService) CreateShortURL(ctx context.Context, originalURL string) (types.ShortLink, error) {
	if originalURL == "" || len(originalURL) > maxOriginalURLLength {
		return types.ShortLink{}, ErrInvalidURL
	}

	// Check if the original URL was already shortened
	existing, err := s.store.GetByOriginalURL(ctx, originalURL)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrShortLinkNotFound) {
		return types.ShortLink{}, handleStorageError(err)
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		shortCode, err := urlgen.Generate(s.codeLength)
		if err != nil {
			return types.ShortLink{}, err
		}

		link, err := s.store.CreateShortLink(ctx, types.ShortLink{
			ShortCode:   shortCode,
			OriginalURL: originalURL,
		})
		if errors.Is(err, storage.ErrShortCodeExists) {
			continue
		}
		if err != nil {
			return types.ShortLink{}, handleStorageError(err)
		}
		return link, nil
	}

	return types.ShortLink{}, ErrCodeSpaceExhausted
}

// ResolveURL returns the original URL for a short code.
func (s *urlService) ResolveURL(ctx context.Context, shortCode string) (string, error) {
	link, err := s.store.GetByShortCode(ctx, shortCode)
	if err != nil {
		return "", handleStorageError(err)
	}
	return link.OriginalURL, nil
}

// RecordVisit appends one visit record for a short code. Every redirect
// produces exactly one record; there is no deduplication.
func (s *urlService) RecordVisit(ctx context.Context, shortCode, visitorAddr string) error {
	err := s.store.CreateVisit(ctx, types.VisitRecord{
		ShortCode:   shortCode,
		VisitorAddr: visitorAddr,
		VisitedAt:   time.Now().UTC(),
	})
	if err != nil {
		return handleStorageError(err)
	}
	return nil
}

// GetStats returns the short link together with its total visit count,
// computed on demand from the append-only visit records.
func (s *urlService) GetStats(ctx context.Context, shortCode string) (types.URLStats, error) {
	link, err := s.store.GetByShortCode(ctx, shortCode)
	if err != nil {
		return types.URLStats{}, handleStorageError(err)
	}

	total, err := s.store.CountVisits(ctx, shortCode)
	if err != nil {
		return types.URLStats{}, handleStorageError(err)
	}

	return types.URLStats{
		ShortCode:   link.ShortCode,
		OriginalURL: link.OriginalURL,
		TotalVisits: total,
		CreatedAt:   link.CreatedAt,
	}, nil
}
