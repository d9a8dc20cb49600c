package notifier

import (
	"strings"
	"unicode/utf8"

	"github.com/nao1215/antenna/internal/model"
)

// MaxContentLength is the longest content a Discord webhook accepts.
const MaxContentLength = 2000

// MentionKind selects how the mention identifier is rendered.
type MentionKind string

const (
	// MentionRole renders "<@&id>".
	MentionRole MentionKind = "role"

	// MentionUser renders "<@id>".
	MentionUser MentionKind = "user"

	// MentionRaw inserts the identifier verbatim, e.g. "@everyone".
	MentionRaw MentionKind = "raw"
)

// Valid reports whether k is a known mention kind.
func (k MentionKind) Valid() bool {
	switch k {
	case MentionRole, MentionUser, MentionRaw:
		return true
	default:
		return false
	}
}

// Mention renders id as a chat mention. An empty id renders as "".
func Mention(kind MentionKind, id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	switch kind {
	case MentionUser:
		return "<@" + id + ">"
	case MentionRaw:
		return id
	default:
		return "<@&" + id + ">"
	}
}

// FormatContent builds the message content for record:
// "<mention> <title>: <body>", without the mention when it is empty.
// Content longer than MaxContentLength is cut and ends with "…".
func FormatContent(mention string, record model.UpdateRecord) string {
	content := record.String()
	if mention != "" {
		content = mention + " " + content
	}
	return truncate(content, MaxContentLength)
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
