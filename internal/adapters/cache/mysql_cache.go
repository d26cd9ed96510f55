package cache

import (
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// Expiry is compared against UTC_TIMESTAMP() on the server
var mysqlDialect = dialect{
	driver: "mysql",
	name:   "mysql",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS label_cache (
			cache_key CHAR(64) PRIMARY KEY,
			labels VARCHAR(255) NOT NULL,
			last_seen DATETIME,
			expires_at DATETIME,
			INDEX idx_label_cache_expires_at (expires_at)
		)`,
	},
	get: `SELECT labels, last_seen, expires_at FROM label_cache
		WHERE cache_key = ? AND expires_at > UTC_TIMESTAMP()`,
	upsert: `INSERT INTO label_cache (cache_key, labels, last_seen, expires_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			labels = VALUES(labels),
			last_seen = VALUES(last_seen),
			expires_at = VALUES(expires_at)`,
	remove:  `DELETE FROM label_cache WHERE cache_key = ?`,
	purge:   `DELETE FROM label_cache WHERE expires_at <= UTC_TIMESTAMP()`,
	nowArgs: func() []any { return nil },
	timeArg: func(t time.Time) any {
		return t.UTC().Format("2006-01-02 15:04:05")
	},
}

// MySQLCache is a label cache shared through a MySQL server
type MySQLCache struct {
	*sqlStore
}

// NewMySQLCache connects to the MySQL label cache described by dsn
func NewMySQLCache(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*MySQLCache, error) {
	store, err := openSQLStore(dsn, mysqlDialect, logger, cleanupFreq)
	if err != nil {
		return nil, err
	}
	return &MySQLCache{sqlStore: store}, nil
}
