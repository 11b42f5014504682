package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lethalgem/arcteryx-outlet-tracker/internal/models"
	_ "github.com/mattn/go-sqlite3" // sqlite driver registration
)

// SnapshotRepository is the snapshot store contract: one logical snapshot,
// read at run start and wholly replaced at run end.
type SnapshotRepository interface {
	// GetSnapshot returns the persisted snapshot, or
	// repository.ErrSnapshotNotFound when none has been written yet.
	GetSnapshot(ctx context.Context) (*models.InventoryState, error)
	// UpdateSnapshot atomically replaces the persisted snapshot.
	UpdateSnapshot(ctx context.Context, state *models.InventoryState) error
}

// SubscriptionRepository tracks the Telegram chats that receive inventory
// notifications.
type SubscriptionRepository interface {
	SubscribeChat(ctx context.Context, chatID int64) error
	UnsubscribeChat(ctx context.Context, chatID int64) error
	GetSubscribedChats(ctx context.Context) ([]int64, error)
}

// Repository is the SQLite-backed store for the inventory snapshot and the
// notification subscriptions.
type Repository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewRepository opens (or creates) the database file, verifies the
// connection and runs the schema migration.
func NewRepository(ctx context.Context, log *slog.Logger, storagePath string) (*Repository, error) {
	dtb, err := sql.Open("sqlite3", fmt.Sprintf("%s?_pragma=foreign_keys(1)", storagePath))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err = dtb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("unable to establish connection to database: %w", err)
	}

	if err = initSchema(ctx, dtb); err != nil {
		return nil, fmt.Errorf("DB schema initialization error: %w", err)
	}

	return &Repository{db: dtb, log: log}, nil
}

// NewRepositoryWithDB wraps an already opened database handle. Used by
// tests that substitute a mocked driver; no migration runs.
func NewRepositoryWithDB(log *slog.Logger, dtb *sql.DB) *Repository {
	return &Repository{db: dtb, log: log}
}

// initSchema creates the necessary tables if they don't already exist.
func initSchema(ctx context.Context, dtb *sql.DB) error {
	const migrationQuery = `
	CREATE TABLE IF NOT EXISTS inventory_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		last_updated TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS products (
		position INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		url TEXT,
		image_url TEXT,
		price REAL NOT NULL,
		original_price REAL NOT NULL,
		discount INTEGER NOT NULL,
		sizes TEXT,
		all_sizes TEXT,
		colors TEXT,
		category TEXT,
		first_seen TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS subscriptions (
		chat_id INTEGER PRIMARY KEY
	);
	`
	_, err := dtb.ExecContext(ctx, migrationQuery)
	if err != nil {
		return fmt.Errorf("failed to execute migration query: %w", err)
	}

	return nil
}

// Close closes the connection to the database.
func (r *Repository) Close() error {
	if err := r.db.Close(); err != nil {
		r.log.Error("failed to close the database", "op", "repository.sqlite.Close", "error", err)
		return fmt.Errorf("failed to close the database: %w", err)
	}

	return nil
}

// DB is a getter for database handler.
func (r *Repository) DB() *sql.DB {
	return r.db
}
