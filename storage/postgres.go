package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"minibitly/types"
)

const (
	storageMaxOpenConnections     = 20
	storageMaxIdleConnections     = 5
	storageConnectionsMaxIdleTime = 2 * time.Minute
	storageConnectionsLifetime    = 30 * time.Minute
	storagePingTimeout            = 5 * time.Second
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// PostgresStorage implements the Storage interface on top of PostgreSQL
// via the pgx stdlib driver. The unique index on short_links.short_code is
// the single source of truth for collision avoidance.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresStorage opens a connection pool for the given DSN, verifies
// connectivity and ensures the schema exists.
func NewPostgresStorage(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(storageMaxOpenConnections)
	db.SetMaxIdleConns(storageMaxIdleConnections)
	db.SetConnMaxIdleTime(storageConnectionsMaxIdleTime)
	db.SetConnMaxLifetime(storageConnectionsLifetime)

	ctxPing, cancel := context.WithTimeout(ctx, storagePingTimeout)
	defer cancel()

	if err := db.PingContext(ctxPing); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info("Connected to PostgreSQL storage")
	return &PostgresStorage{db: db, logger: logger}, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS short_links (
			id BIGSERIAL PRIMARY KEY,
			short_code VARCHAR(10) UNIQUE NOT NULL,
			original_url VARCHAR(2048) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_short_links_original_url ON short_links(original_url);

		CREATE TABLE IF NOT EXISTS visits (
			id BIGSERIAL PRIMARY KEY,
			short_code VARCHAR(10) NOT NULL REFERENCES short_links(short_code),
			visitor_addr VARCHAR(45) NOT NULL DEFAULT '',
			visited_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_visits_short_code ON visits(short_code, visited_at)`)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (p *PostgresStorage) Close() error {
	return p.db.Close()
}

// CreateShortLink inserts a new short link and returns it with the assigned
// identifier and creation timestamp. A unique violation on short_code is
// reported as ErrShortCodeExists so the caller can retry with a fresh code.
func (p *PostgresStorage) CreateShortLink(ctx context.Context, link types.ShortLink) (types.ShortLink, error) {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO short_links (short_code, original_url)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		link.ShortCode, link.OriginalURL,
	).Scan(&link.ID, &link.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			p.logger.Warn("Short code collision on insert", zap.String("short_code", link.ShortCode))
			return types.ShortLink{}, ErrShortCodeExists
		}
		return types.ShortLink{}, fmt.Errorf("failed to insert short link: %w", err)
	}

	return link, nil
}

// GetByShortCode retrieves the short link for a given short code.
func (p *PostgresStorage) GetByShortCode(ctx context.Context, shortCode string) (types.ShortLink, error) {
	var link types.ShortLink
	err := p.db.QueryRowContext(ctx, `
		SELECT id, short_code, original_url, created_at
		FROM short_links
		WHERE short_code = $1`,
		shortCode,
	).Scan(&link.ID, &link.ShortCode, &link.OriginalURL, &link.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ShortLink{}, ErrShortLinkNotFound
		}
		return types.ShortLink{}, fmt.Errorf("failed to get short link: %w", err)
	}

	return link, nil
}

// GetByOriginalURL retrieves the short link whose original URL matches the
// input exactly. With concurrent shorten requests more than one row may
// match; the oldest one wins so repeated requests stay stable.
func (p *PostgresStorage) GetByOriginalURL(ctx context.Context, originalURL string) (types.ShortLink, error) {
	var link types.ShortLink
	err := p.db.QueryRowContext(ctx, `
		SELECT id, short_code, original_url, created_at
		FROM short_links
		WHERE original_url = $1
		ORDER BY id
		LIMIT 1`,
		originalURL,
	).Scan(&link.ID, &link.ShortCode, &link.OriginalURL, &link.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ShortLink{}, ErrShortLinkNotFound
		}
		return types.ShortLink{}, fmt.Errorf("failed to get short link by URL: %w", err)
	}

	return link, nil
}

// CreateVisit appends one visit record for a short code.
func (p *PostgresStorage) CreateVisit(ctx context.Context, visit types.VisitRecord) error {
	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = time.Now().UTC()
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO visits (short_code, visitor_addr, visited_at)
		VALUES ($1, $2, $3)`,
		visit.ShortCode, visit.VisitorAddr, visit.VisitedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeForeignKeyViolation {
			return ErrShortLinkNotFound
		}
		return fmt.Errorf("failed to insert visit: %w", err)
	}
	return nil
}

// CountVisits returns the number of visit records for a short code.
func (p *PostgresStorage) CountVisits(ctx context.Context, shortCode string) (int64, error) {
	var count int64
	err := p.db.QueryRowContext(ctx, `
		SELECT count(*) FROM visits WHERE short_code = $1`,
		shortCode,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return count, nil
}
