// Package database opens the relational export target.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "modernc.org/sqlite"             // SQLite driver, registered as "sqlite"

	"github.com/dbsmedya/commentetl/internal/config"
	"github.com/dbsmedya/commentetl/internal/sqlutil"
)

// Target is an open export database and the dialect used to talk to it.
type Target struct {
	DB      *sql.DB
	Dialect sqlutil.Dialect
	Table   string
}

// Close closes the underlying connection pool.
func (t *Target) Close() error {
	if t == nil || t.DB == nil {
		return nil
	}
	return t.DB.Close()
}

type openFunc func(driver, dsn string) (*sql.DB, error)

// Open connects to the configured export target. SQLite files are created on demand;
// MySQL connections are retried with exponential backoff.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*Target, error) {
	return open(ctx, cfg, sql.Open, time.Second)
}

func open(ctx context.Context, cfg *config.DatabaseConfig, opener openFunc, backoff time.Duration) (*Target, error) {
	dialect, err := sqlutil.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	var dsn string
	switch dialect {
	case sqlutil.SQLite:
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = cfg.Path
	case sqlutil.MySQL:
		dsn = BuildDSN(cfg)
	}

	db, err := connectWithRetry(ctx, opener, string(dialect), dsn, backoff)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", dialect, err)
	}

	if dialect == sqlutil.SQLite {
		// one writer; the export runs in a single transaction
		db.SetMaxOpenConns(1)
	} else {
		db.SetConnMaxLifetime(10 * time.Minute)
	}

	return &Target{DB: db, Dialect: dialect, Table: cfg.Table}, nil
}

// connectWithRetry attempts to connect with exponential backoff.
func connectWithRetry(ctx context.Context, opener openFunc, driver, dsn string, backoff time.Duration) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 3

	for i := 0; i < maxRetries; i++ {
		db, err = opener(driver, dsn)
		if err == nil {
			if pingErr := db.PingContext(ctx); pingErr == nil {
				return db, nil
			} else {
				db.Close()
				err = pingErr
			}
		}

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", maxRetries, err)
}

// BuildDSN constructs a MySQL DSN from configuration.
func BuildDSN(cfg *config.DatabaseConfig) string {
	// Format: user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
	)

	if cfg.Database != "" {
		dsn += cfg.Database
	}

	params := "?parseTime=true&charset=utf8mb4"
	switch cfg.TLS {
	case "disable":
		params += "&tls=false"
	case "required":
		params += "&tls=true"
	case "preferred", "":
		params += "&tls=preferred"
	}

	return dsn + params
}
