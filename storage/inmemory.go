package storage

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"minibitly/types"
)

// InMemoryStorage implements the Storage interface using in-memory maps.
type InMemoryStorage struct {
	links       map[string]types.ShortLink    // short code -> link
	visits      map[string][]types.VisitRecord // short code -> append-only visit log
	mu          sync.RWMutex                  // Read-write mutex for thread-safe access
	capacity    int                           // Maximum number of links that can be stored
	count       int                           // Current number of stored links
	nextLinkID  int64
	nextVisitID int64
	logger      *zap.Logger
}

// The sync.RWMutex (mu) is used to ensure thread-safe access to the shared maps.
// Read-only operations (lookups, counts) proceed concurrently, while writes
// (link and visit inserts) take exclusive access. The exclusive lock on
// CreateShortLink is what makes the duplicate-code check and the insert a
// single atomic step, mirroring a database's unique index.

// NewInMemoryStorage creates and returns a new InMemoryStorage instance.
func NewInMemoryStorage(capacity int, logger *zap.Logger) *InMemoryStorage {
	if capacity <= 0 {
		capacity = 1000 // Default capacity if an invalid value is provided
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryStorage{
		links:    make(map[string]types.ShortLink, capacity),
		visits:   make(map[string][]types.VisitRecord),
		capacity: capacity,
		logger:   logger,
	}
}

// CreateShortLink adds a new short link to the storage. It returns the stored
// link with its identifier and creation timestamp assigned, or
// ErrShortCodeExists when the code is already taken.
func (s *InMemoryStorage) CreateShortLink(ctx context.Context, link types.ShortLink) (types.ShortLink, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("CreateShortLink operation cancelled", zap.String("short_code", link.ShortCode))
		return types.ShortLink{}, ctx.Err()
	default:
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.count >= s.capacity {
			s.logger.Error("Storage capacity reached. Cannot create short link", zap.String("short_code", link.ShortCode))
			return types.ShortLink{}, ErrStorageCapacityReached
		}
		if _, exists := s.links[link.ShortCode]; exists {
			s.logger.Warn("Attempt to create duplicate short code", zap.String("short_code", link.ShortCode))
			return types.ShortLink{}, ErrShortCodeExists
		}

		s.nextLinkID++
		link.ID = s.nextLinkID
		if link.CreatedAt.IsZero() {
			link.CreatedAt = time.Now().UTC()
		}
		s.links[link.ShortCode] = link
		s.count++
		s.logger.Info("Short link created",
			zap.String("short_code", link.ShortCode),
			zap.String("original_url", link.OriginalURL),
			zap.Time("created_at", link.CreatedAt))
		return link, nil
	}
}

// GetByShortCode retrieves the short link for a given short code.
func (s *InMemoryStorage) GetByShortCode(ctx context.Context, shortCode string) (types.ShortLink, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("GetByShortCode operation cancelled", zap.String("short_code", shortCode))
		return types.ShortLink{}, ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		if link, exists := s.links[shortCode]; exists {
			return link, nil
		}
		return types.ShortLink{}, ErrShortLinkNotFound
	}
}

// GetByOriginalURL retrieves the short link whose original URL matches the
// input exactly. This backs the best-effort deduplication on the shorten path.
func (s *InMemoryStorage) GetByOriginalURL(ctx context.Context, originalURL string) (types.ShortLink, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("GetByOriginalURL operation cancelled", zap.String("original_url", originalURL))
		return types.ShortLink{}, ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		for _, link := range s.links {
			if link.OriginalURL == originalURL {
				s.logger.Debug("Existing short link found for URL",
					zap.String("short_code", link.ShortCode),
					zap.String("original_url", originalURL))
				return link, nil
			}
		}
		return types.ShortLink{}, ErrShortLinkNotFound
	}
}

// CreateVisit appends one visit record for a short code.
func (s *InMemoryStorage) CreateVisit(ctx context.Context, visit types.VisitRecord) error {
	select {
	case <-ctx.Done():
		s.logger.Warn("CreateVisit operation cancelled", zap.String("short_code", visit.ShortCode))
		return ctx.Err()
	default:
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.links[visit.ShortCode]; !exists {
			s.logger.Warn("Attempt to record visit for unknown short code", zap.String("short_code", visit.ShortCode))
			return ErrShortLinkNotFound
		}

		s.nextVisitID++
		visit.ID = s.nextVisitID
		if visit.VisitedAt.IsZero() {
			visit.VisitedAt = time.Now().UTC()
		}
		s.visits[visit.ShortCode] = append(s.visits[visit.ShortCode], visit)
		s.logger.Info("Visit recorded",
			zap.String("short_code", visit.ShortCode),
			zap.String("visitor_addr", visit.VisitorAddr),
			zap.Time("visited_at", visit.VisitedAt))
		return nil
	}
}

// CountVisits returns the number of visit records for a short code.
func (s *InMemoryStorage) CountVisits(ctx context.Context, shortCode string) (int64, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("CountVisits operation cancelled", zap.String("short_code", shortCode))
		return 0, ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		if _, exists := s.links[shortCode]; !exists {
			return 0, ErrShortLinkNotFound
		}
		return int64(len(s.visits[shortCode])), nil
	}
}
