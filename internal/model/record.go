package model

import "fmt"

// UpdateRecord is a single transmission entry found on the terminal page.
//
// Body is the identity key: two records are the same entry if and only if
// their bodies are exactly equal. Title is descriptive only.
type UpdateRecord struct {
	// Title is the timestamp-like header of the entry (e.g. "12:00").
	Title string `json:"title"`

	// Body is the message text of the entry.
	Body string `json:"body"`
}

// String renders the record as "<title>: <body>".
func (r UpdateRecord) String() string {
	return fmt.Sprintf("%s: %s", r.Title, r.Body)
}

// SameEntry reports whether r and other identify the same entry.
func (r UpdateRecord) SameEntry(other UpdateRecord) bool {
	return r.Body == other.Body
}

// Reverse returns a new slice holding records in reverse order.
// The page lists entries newest-first; callers use Reverse to get
// chronological (oldest-first) order. The input slice is not modified.
func Reverse(records []UpdateRecord) []UpdateRecord {
	out := make([]UpdateRecord, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}
