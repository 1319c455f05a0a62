package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// DB is the task store: it owns the task table and every transaction on it
type DB struct {
	*sqlx.DB
	driver string

	mu       sync.RWMutex
	onChange func(Change)
}

// DefaultDBPath returns the default database path (~/.mandarina/tasks.db)
func DefaultDBPath() (string, error) {
	if dir := os.Getenv("MANDARINA_HOME"); dir != "" {
		return filepath.Join(dir, "tasks.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".mandarina", "tasks.db"), nil
}

// sqliteDSN turns a file path into a modernc DSN with a busy timeout and foreign keys on
func sqliteDSN(path string) (string, error) {
	if path == "" {
		var err error
		if path, err = DefaultDBPath(); err != nil {
			return "", err
		}
	}

	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", nil
}

// Open opens or creates the task store and brings its schema up to date.
// driver is "sqlite" (dsn is a file path, empty for the default) or "postgres".
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case "", DriverSQLite:
		driver = DriverSQLite
		var err error
		if dsn, err = sqliteDSN(dsn); err != nil {
			return nil, err
		}
	case DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("postgres driver needs a dsn")
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	sqlDB, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == DriverSQLite {
		// one writer; the busy timeout covers other processes
		sqlDB.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrateUp(driver, dsn); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{DB: sqlDB, driver: driver}, nil
}

// OpenDefault opens the sqlite database at the default path
func OpenDefault() (*DB, error) {
	return Open(DriverSQLite, "")
}

// Backend returns the name of the driver in use
func (db *DB) Backend() string {
	return db.driver
}
