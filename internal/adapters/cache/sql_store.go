package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mikey/inbox-analyzer/internal/core"
	"go.uber.org/zap"
)

// timestampLayouts are tried in order when reading a stored time back
var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05"}

// dialect holds the statements and time encoding of one SQL driver
type dialect struct {
	driver string
	name   string
	schema []string
	get    string
	upsert string
	remove string
	purge  string

	// nowArgs are appended to the get and purge arguments
	nowArgs func() []any
	timeArg func(time.Time) any
}

// sqlStore is a core.LabelCache backed by a database/sql connection
type sqlStore struct {
	db       *sql.DB
	dialect  dialect
	logger   *zap.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

func openSQLStore(dsn string, d dialect, logger *zap.Logger, cleanupFreq time.Duration) (*sqlStore, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d.name, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", d.name, err)
	}

	for _, stmt := range d.schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to prepare %s schema: %w", d.name, err)
		}
	}

	s := &sqlStore{
		db:      db,
		dialect: d,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}

	if cleanupFreq > 0 {
		go s.cleanupLoop(cleanupFreq)
	}

	logger.Info("Opened label cache", zap.String("backend", d.name))
	return s, nil
}

// Get retrieves an unexpired entry for a key
func (s *sqlStore) Get(ctx context.Context, key string) (*core.CacheEntry, error) {
	var labels, lastSeen, expiresAt string

	args := append([]any{key}, s.dialect.nowArgs()...)
	err := s.db.QueryRowContext(ctx, s.dialect.get, args...).Scan(&labels, &lastSeen, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	entry := &core.CacheEntry{Key: key, Labels: decodeLabels(labels)}
	if entry.LastSeen, err = parseTimestamp(lastSeen); err != nil {
		return nil, fmt.Errorf("failed to parse last_seen timestamp: %w", err)
	}
	if entry.ExpiresAt, err = parseTimestamp(expiresAt); err != nil {
		return nil, fmt.Errorf("failed to parse expires_at timestamp: %w", err)
	}
	return entry, nil
}

// Set inserts or replaces an entry
func (s *sqlStore) Set(ctx context.Context, entry *core.CacheEntry) error {
	_, err := s.db.ExecContext(ctx, s.dialect.upsert,
		entry.Key,
		encodeLabels(entry.Labels),
		s.dialect.timeArg(entry.LastSeen),
		s.dialect.timeArg(entry.ExpiresAt))
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Delete removes an entry
func (s *sqlStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.remove, key); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Cleanup removes expired entries
func (s *sqlStore) Cleanup(ctx context.Context) error {
	result, err := s.db.ExecContext(ctx, s.dialect.purge, s.dialect.nowArgs()...)
	if err != nil {
		return fmt.Errorf("failed to clean up expired entries: %w", err)
	}

	if n, err := result.RowsAffected(); err != nil {
		s.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else {
		s.logger.Debug("Cleaned up expired cache entries",
			zap.String("backend", s.dialect.name),
			zap.Int64("expired_count", n))
	}
	return nil
}

// Stop ends the cleanup loop and closes the database
func (s *sqlStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close label cache database",
				zap.String("backend", s.dialect.name),
				zap.Error(err))
		}
	})
}

func (s *sqlStore) cleanupLoop(freq time.Duration) {
	ticker := time.NewTicker(freq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Cleanup(context.Background()); err != nil {
				s.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-s.stopCh:
			return
		}
	}
}

func parseTimestamp(s string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}
