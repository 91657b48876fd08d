package repository

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// Config represents database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repositories contains all repository instances
type Repositories struct {
	Item       *ItemRepository
	User       *UserRepository
	Bookmark   *BookmarkRepository
	Engagement *EngagementRepository
	DB         *sqlx.DB
}

// schemaVersion is stored in sqlite user_version, bump it with every schema.sql change
const schemaVersion = 1

// NewRepositories opens the database, applies connection settings and schema,
// and creates all repositories on top of the shared connection pool
func NewRepositories(ctx context.Context, cfg Config) (*Repositories, error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// initialize schema
	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Repositories{
		Item:       NewItemRepository(db),
		User:       NewUserRepository(db),
		Bookmark:   NewBookmarkRepository(db),
		Engagement: NewEngagementRepository(db),
		DB:         db,
	}, nil
}

// openDB opens sqlite and configures the pool and pragmas.
// An in-memory database lives in a single connection, so its pool is pinned to one connection.
func openDB(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:pryzm.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	inMemory := strings.Contains(cfg.DSN, ":memory:") || strings.Contains(cfg.DSN, "mode=memory")

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// configure connection pool
	switch {
	case inMemory:
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}
	if cfg.ConnMaxLifetime > 0 && !inMemory {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// optimize sqlite settings, WAL is meaningless for in-memory databases
	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -64000", // 64MB cache
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000", // 5 second timeout for locks
	}
	if !inMemory {
		pragmas = append([]string{"PRAGMA journal_mode = WAL"}, pragmas...)
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return db, nil
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// Ping verifies the database connection
func (r *Repositories) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

// initSchema creates tables if they don't exist and records the schema version.
// A database written by a newer schema is rejected.
func initSchema(ctx context.Context, db *sqlx.DB) error {
	var current int
	if err := db.GetContext(ctx, &current, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if current > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", current, schemaVersion)
	}

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	if current == schemaVersion {
		return nil
	}
	// pragma values can't be bound as parameters
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}
