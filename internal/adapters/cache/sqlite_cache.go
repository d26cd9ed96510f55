package cache

import (
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Timestamps are stored as RFC 3339 UTC text so that they compare lexically
var sqliteDialect = dialect{
	driver: "sqlite3",
	name:   "sqlite",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS label_cache (
			cache_key TEXT PRIMARY KEY,
			labels TEXT NOT NULL,
			last_seen TEXT,
			expires_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_label_cache_expires_at ON label_cache(expires_at)`,
	},
	get: `SELECT labels, last_seen, expires_at FROM label_cache
		WHERE cache_key = ? AND expires_at > ?`,
	upsert: `INSERT OR REPLACE INTO label_cache (cache_key, labels, last_seen, expires_at)
		VALUES (?, ?, ?, ?)`,
	remove: `DELETE FROM label_cache WHERE cache_key = ?`,
	purge:  `DELETE FROM label_cache WHERE expires_at <= ?`,
	nowArgs: func() []any {
		return []any{time.Now().UTC().Format(time.RFC3339)}
	},
	timeArg: func(t time.Time) any {
		return t.UTC().Format(time.RFC3339)
	},
}

// SQLiteCache is a label cache stored in a local SQLite file
type SQLiteCache struct {
	*sqlStore
}

// NewSQLiteCache opens or creates the SQLite label cache at dbPath
func NewSQLiteCache(dbPath string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLiteCache, error) {
	store, err := openSQLStore(dbPath, sqliteDialect, logger, cleanupFreq)
	if err != nil {
		return nil, err
	}
	return &SQLiteCache{sqlStore: store}, nil
}
