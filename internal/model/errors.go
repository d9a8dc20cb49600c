package model

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the layer it originated in.
type Kind int

const (
	// KindUnknown is reported for errors that did not come from this module.
	KindUnknown Kind = iota

	// KindTransport covers fetch and notification HTTP failures
	// (network errors and non-2xx responses).
	KindTransport

	// KindParse covers documents without an anchor cell or without records.
	KindParse

	// KindStore covers lookup and insert failures against the persisted store.
	KindStore
)

// String returns a human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Parse errors.
var (
	// ErrNoRecords is returned when no container in the document yields a record.
	ErrNoRecords = errors.New("no records found")

	// ErrAnchorNotFound is returned when no cell matches the anchor markers.
	ErrAnchorNotFound = errors.New("anchor cell not found")
)

// Error is the error type returned by the fetcher, extractor, notifier and
// store layers. Kind tells the caller which layer failed; Err is the cause.
type Error struct {
	// Kind is the failing layer.
	Kind Kind

	// Op names the operation that failed, e.g. "fetch" or "lookup".
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// TransportError wraps err as a KindTransport error.
func TransportError(op string, err error) error {
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

// ParseError wraps err as a KindParse error.
func ParseError(op string, err error) error {
	return &Error{Kind: KindParse, Op: op, Err: err}
}

// StoreError wraps err as a KindStore error.
func StoreError(op string, err error) error {
	return &Error{Kind: KindStore, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
