// Package store implements the persistent wallet repository on SQLite.
//
// A single Store serves both roles: the secret store (encrypted
// credential CRUD) and the category index (grouping with nullify-on-delete
// consistency). Every operation is scoped to an owning identity and routes
// its ownership decision through the injected guard; sealing and opening of
// payloads happens at this persistence boundary through the injected cipher
// box, so plaintext never rests in a row.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // driver "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // driver "sqlite" (pure Go)

	"keyguardian/wallet/pkg/wallet"
	"keyguardian/wallet/pkg/wallet/cipherbox"
	"keyguardian/wallet/pkg/wallet/guard"
)

// Supported database/sql driver names.
const (
	// DriverMattn is the cgo SQLite driver.
	DriverMattn = "sqlite3"

	// DriverModernc is the pure-Go SQLite driver.
	DriverModernc = "sqlite"
)

// Config contains configuration for the SQLite-backed store.
type Config struct {
	// Driver selects the SQLite driver: "sqlite3" (cgo) or "sqlite"
	// (pure Go). Default: "sqlite3"
	Driver string

	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables write-ahead logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is how long to wait on a locked database.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() *Config {
	return &Config{
		Driver:       DriverMattn,
		Path:         "data/wallet.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// OpRecorder receives the outcome of each store operation, typically for
// metrics. Implementations must not block.
type OpRecorder interface {
	RecordOperation(op, status string)
}

// Store is the SQLite-backed wallet repository.
type Store struct {
	db       *sql.DB
	config   *Config
	guard    *guard.Guard
	box      *cipherbox.Box
	recorder OpRecorder
	logger   *slog.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithOpRecorder attaches an operation outcome recorder.
func WithOpRecorder(r OpRecorder) Option {
	return func(s *Store) { s.recorder = r }
}

// New opens the database, applies the schema, and returns a ready Store.
// The guard and cipher box are required collaborators.
func New(config *Config, g *guard.Guard, box *cipherbox.Box, opts ...Option) (*Store, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverMattn
	}
	if g == nil || box == nil {
		return nil, fmt.Errorf("store requires a guard and a cipher box")
	}

	logger := slog.Default().With("component", "wallet.store")

	dsn, err := buildDSN(config)
	if err != nil {
		return nil, wallet.NewStorageError("open", err)
	}

	db, err := sql.Open(config.Driver, dsn)
	if err != nil {
		return nil, wallet.NewStorageError("open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &Store{
		db:     db,
		config: config,
		guard:  g,
		box:    box,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("wallet store initialized",
		"driver", config.Driver,
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// buildDSN assembles a driver-specific connection string. Pragmas ride on
// the DSN so every pooled connection gets them, not just the one an Exec
// happens to land on.
func buildDSN(config *Config) (string, error) {
	busyMs := config.BusyTimeout.Milliseconds()
	if busyMs <= 0 {
		busyMs = 5000
	}

	switch config.Driver {
	case DriverMattn:
		params := url.Values{}
		params.Set("_foreign_keys", "on")
		params.Set("_busy_timeout", fmt.Sprintf("%d", busyMs))
		params.Set("_txlock", "immediate")
		if config.WALMode {
			params.Set("_journal_mode", "WAL")
		}
		return fmt.Sprintf("file:%s?%s", config.Path, params.Encode()), nil

	case DriverModernc:
		pragmas := []string{
			"_pragma=foreign_keys(1)",
			fmt.Sprintf("_pragma=busy_timeout(%d)", busyMs),
		}
		if config.WALMode {
			pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
		}
		return fmt.Sprintf("file:%s?_txlock=immediate&%s", config.Path, strings.Join(pragmas, "&")), nil

	default:
		return "", fmt.Errorf("unsupported driver %q", config.Driver)
	}
}

// initialize applies the schema and verifies its version.
func (s *Store) initialize() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return wallet.NewStorageError("create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return wallet.NewStorageError("insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return wallet.NewStorageError("get_schema_version", err)
	}
	if version != SchemaVersion {
		return wallet.NewStorageError("schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Close releases the database connection pool.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return wallet.NewStorageError("close", err)
	}
	s.logger.Info("wallet store closed")
	return nil
}

// Checkpoint forces a WAL checkpoint, used by maintenance sweeps.
func (s *Store) Checkpoint(ctx context.Context) error {
	if !s.config.WALMode {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
		return wallet.NewStorageError("wal_checkpoint", err)
	}
	return nil
}

// record reports an operation outcome to the attached recorder, if any.
func (s *Store) record(op string, err error) {
	if s.recorder == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = statusLabel(err)
	}
	s.recorder.RecordOperation(op, status)
}

// statusLabel buckets an error into a low-cardinality metric label.
func statusLabel(err error) string {
	switch {
	case isNotFound(err):
		return "not_found"
	case isValidation(err):
		return "invalid_input"
	case isInvalidCiphertext(err):
		return "invalid_ciphertext"
	default:
		return "error"
	}
}

// withTx runs fn inside a transaction, committing on nil and rolling back
// on error. Mutations never become visible partially.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wallet.NewStorageError(op, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("transaction rollback failed",
				"operation", op,
				"error", rbErr,
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return wallet.NewStorageError(op, err)
	}
	return nil
}
