package pipeline

import (
	"context"

	"github.com/nao1215/antenna/internal/model"
)

// PageFetcher retrieves the page text.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// RecordExtractor turns page text into records in document order.
type RecordExtractor interface {
	Extract(page string) ([]model.UpdateRecord, error)
}

// Store is the persisted set of already-notified records.
type Store interface {
	Lookup(ctx context.Context, body string) (bool, error)
	Insert(ctx context.Context, record model.UpdateRecord) error
}

// Notifier delivers one announcement.
type Notifier interface {
	Notify(ctx context.Context, record model.UpdateRecord) error
}
