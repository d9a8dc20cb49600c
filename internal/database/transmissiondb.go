package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/antenna/internal/model"
)

// DBFileName is the SQLite file created inside the data directory.
const DBFileName = "antenna.db"

// TransmissionDB is the SQLite backend.
type TransmissionDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures TransmissionDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a TransmissionDB inside dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*TransmissionDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite has a single writer; concurrent lookups and inserts queue here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	tdb := &TransmissionDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := tdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return tdb, nil
}

// Path returns the database file path.
func (tdb *TransmissionDB) Path() string {
	return tdb.dbPath
}

// Close closes the database connection.
func (tdb *TransmissionDB) Close() error {
	return tdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (tdb *TransmissionDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transmissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		body TEXT NOT NULL UNIQUE,
		body_digest TEXT NOT NULL,
		notified_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transmissions_digest ON transmissions(body_digest);
	CREATE INDEX IF NOT EXISTS idx_transmissions_notified ON transmissions(notified_at);
	`

	_, err := tdb.db.ExecContext(context.Background(), schema)
	return err
}

// Lookup reports whether a transmission with exactly this body was stored.
func (tdb *TransmissionDB) Lookup(ctx context.Context, body string) (bool, error) {
	query := `
	SELECT COUNT(*) FROM transmissions
	WHERE body_digest = ? AND body = ?
	`

	var count int
	if err := tdb.db.QueryRowContext(ctx, query, Digest(body), body).Scan(&count); err != nil {
		return false, model.StoreError("lookup", fmt.Errorf("failed to query transmission: %w", err))
	}
	return count > 0, nil
}

// Insert stores record. An existing entry with the same body is left as is.
func (tdb *TransmissionDB) Insert(ctx context.Context, record model.UpdateRecord) error {
	query := `
	INSERT INTO transmissions (title, body, body_digest)
	VALUES (?, ?, ?)
	ON CONFLICT(body) DO NOTHING
	`

	if _, err := tdb.db.ExecContext(ctx, query, record.Title, record.Body, Digest(record.Body)); err != nil {
		return model.StoreError("insert", fmt.Errorf("failed to insert transmission: %w", err))
	}
	return nil
}

// List returns stored transmissions, most recently notified first.
func (tdb *TransmissionDB) List(ctx context.Context, limit int) ([]StoredRecord, error) {
	query := `
	SELECT title, body, body_digest, notified_at
	FROM transmissions
	ORDER BY notified_at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := tdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, model.StoreError("list", fmt.Errorf("failed to list transmissions: %w", err))
	}
	defer rows.Close()

	var results []StoredRecord
	for rows.Next() {
		var rec StoredRecord
		var timestamp string
		if err := rows.Scan(&rec.Title, &rec.Body, &rec.Digest, &timestamp); err != nil {
			return nil, model.StoreError("list", fmt.Errorf("failed to scan transmission: %w", err))
		}
		rec.NotifiedAt = parseTimestamp(timestamp)
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, model.StoreError("list", err)
	}
	return results, nil
}

// Count returns the number of stored transmissions.
func (tdb *TransmissionDB) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := tdb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transmissions").Scan(&n); err != nil {
		return 0, model.StoreError("count", fmt.Errorf("failed to count transmissions: %w", err))
	}
	return n, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
