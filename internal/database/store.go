package database

import (
	"context"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/antenna/internal/model"
)

// Store is implemented by every backend.
type Store interface {
	// Lookup reports whether an entry with exactly this body exists.
	Lookup(ctx context.Context, body string) (bool, error)

	// Insert stores record unless an entry with the same body exists.
	Insert(ctx context.Context, record model.UpdateRecord) error

	// List returns up to limit entries, most recently notified first.
	// A limit <= 0 returns every entry.
	List(ctx context.Context, limit int) ([]StoredRecord, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int64, error)

	// Close releases the backend's resources.
	Close() error
}

// StoredRecord is a persisted transmission.
type StoredRecord struct {
	// Title is the entry title as extracted.
	Title string `json:"title" bson:"title"`

	// Body is the entry body; unique within the store.
	Body string `json:"body" bson:"body"`

	// Digest is the hex SHA3-256 of Body.
	Digest string `json:"digest" bson:"_id"`

	// NotifiedAt is when the entry was stored, i.e. right after delivery.
	NotifiedAt time.Time `json:"notified_at" bson:"notified_at"`
}

// Record returns the stored entry as an UpdateRecord.
func (s StoredRecord) Record() model.UpdateRecord {
	return model.UpdateRecord{Title: s.Title, Body: s.Body}
}

// Digest returns the hex SHA3-256 digest of body. It is used as the
// index key in SQLite and as the document id in MongoDB.
func Digest(body string) string {
	sum := sha3.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}
