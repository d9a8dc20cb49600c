package model

import (
	"errors"
	"fmt"
	"testing"
)

// TestKindString tests the String method of Kind.
func TestKindString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		kind     Kind
		expected string
	}{
		{KindTransport, "transport"},
		{KindParse, "parse"},
		{KindStore, "store"},
		{KindUnknown, "unknown"},
		{Kind(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.kind.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.kind.String(), tc.expected)
			}
		})
	}
}

// TestErrorKinds tests classification of wrapped errors.
func TestErrorKinds(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	testCases := []struct {
		name string
		err  error
		kind Kind
	}{
		{"transport", TransportError("fetch", cause), KindTransport},
		{"parse", ParseError("extract", ErrNoRecords), KindParse},
		{"store", StoreError("lookup", cause), KindStore},
		{"wrapped twice", fmt.Errorf("step failed: %w", StoreError("insert", cause)), KindStore},
		{"foreign", cause, KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := KindOf(tc.err); got != tc.kind {
				t.Errorf("KindOf: got %v, expected %v", got, tc.kind)
			}
			if tc.err != nil && tc.kind != KindUnknown && !IsKind(tc.err, tc.kind) {
				t.Errorf("IsKind(%v) should be true", tc.kind)
			}
		})
	}
}

// TestErrorUnwrap tests that the cause stays reachable.
func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	err := ParseError("extract", ErrNoRecords)
	if !errors.Is(err, ErrNoRecords) {
		t.Error("expected errors.Is to find ErrNoRecords")
	}

	expected := "parse error: extract: no records found"
	if err.Error() != expected {
		t.Errorf("got %q, expected %q", err.Error(), expected)
	}

	bare := &Error{Kind: KindStore, Err: errors.New("locked")}
	if bare.Error() != "store error: locked" {
		t.Errorf("got %q", bare.Error())
	}
}
