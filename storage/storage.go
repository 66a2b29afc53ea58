// Package storage provides interfaces and common errors for short link
// and visit record persistence.
package storage

import (
	"context"
	"errors"

	"minibitly/types"
)

// Common errors returned by storage operations.
var (
	ErrShortCodeExists        = errors.New("short code already exists")
	ErrShortLinkNotFound      = errors.New("short link not found")
	ErrStorageCapacityReached = errors.New("storage capacity reached")
)

// Storage interface defines the methods for short link persistence.
//
// The uniqueness constraint on the short code is the authoritative
// collision guard: CreateShortLink must return ErrShortCodeExists when
// the code is already taken, so callers can retry with a fresh draw.
type Storage interface {
	CreateShortLink(ctx context.Context, link types.ShortLink) (types.ShortLink, error)
	GetByShortCode(ctx context.Context, shortCode string) (types.ShortLink, error)
	GetByOriginalURL(ctx context.Context, originalURL string) (types.ShortLink, error)
	CreateVisit(ctx context.Context, visit types.VisitRecord) error
	CountVisits(ctx context.Context, shortCode string) (int64, error)
}
