package pipeline

import (
	"context"
	"testing"

	"github.com/nao1215/antenna/internal/model"
)

func lookups(seen map[string]bool, bodies ...string) []model.LookupResult {
	out := make([]model.LookupResult, len(bodies))
	for i, b := range bodies {
		out[i] = model.LookupResult{Record: model.UpdateRecord{Title: "t-" + b, Body: b}, Seen: seen[b]}
	}
	return out
}

// TestWalk tests the sequential notification walk.
func TestWalk(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		lookups       []model.LookupResult
		failOn        []string
		wantSent      []string
		wantSkipped   int
		wantProcessed int
		wantHaltedAt  int
	}{
		{
			name:          "delivers all novel records in order",
			lookups:       lookups(nil, "A", "B", "C"),
			wantSent:      []string{"A", "B", "C"},
			wantProcessed: 3,
			wantHaltedAt:  -1,
		},
		{
			name:          "skips seen records without stopping",
			lookups:       lookups(map[string]bool{"A": true, "C": true}, "A", "B", "C", "D"),
			wantSent:      []string{"B", "D"},
			wantSkipped:   2,
			wantProcessed: 4,
			wantHaltedAt:  -1,
		},
		{
			name:          "all seen sends nothing",
			lookups:       lookups(map[string]bool{"A": true, "B": true}, "A", "B"),
			wantSent:      []string{},
			wantSkipped:   2,
			wantProcessed: 2,
			wantHaltedAt:  -1,
		},
		{
			name:          "halts on first delivery failure",
			lookups:       lookups(nil, "A", "B", "C"),
			failOn:        []string{"B"},
			wantSent:      []string{"A"},
			wantProcessed: 1,
			wantHaltedAt:  1,
		},
		{
			name:          "failure on first record sends nothing",
			lookups:       lookups(map[string]bool{"A": true}, "A", "B", "C"),
			failOn:        []string{"B"},
			wantSent:      []string{},
			wantSkipped:   1,
			wantProcessed: 1,
			wantHaltedAt:  1,
		},
		{
			name:          "repeated body in one page is delivered once",
			lookups:       lookups(nil, "A", "B", "A"),
			wantSent:      []string{"A", "B"},
			wantSkipped:   1,
			wantProcessed: 3,
			wantHaltedAt:  -1,
		},
		{
			name:          "empty input",
			lookups:       nil,
			wantSent:      []string{},
			wantProcessed: 0,
			wantHaltedAt:  -1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			n := newFakeNotifier(tc.failOn...)
			result := Walk(context.Background(), tc.lookups, n)

			if got := n.sentBodies(); !equalStrings(got, tc.wantSent) {
				t.Errorf("sent %q, expected %q", got, tc.wantSent)
			}
			if len(result.Delivered) != len(tc.wantSent) {
				t.Errorf("Delivered has %d records, expected %d", len(result.Delivered), len(tc.wantSent))
			}
			if result.Skipped != tc.wantSkipped {
				t.Errorf("Skipped = %d, expected %d", result.Skipped, tc.wantSkipped)
			}
			if result.Processed != tc.wantProcessed {
				t.Errorf("Processed = %d, expected %d", result.Processed, tc.wantProcessed)
			}
			if result.HaltedAt != tc.wantHaltedAt {
				t.Errorf("HaltedAt = %d, expected %d", result.HaltedAt, tc.wantHaltedAt)
			}
			if result.Halted() != (tc.wantHaltedAt >= 0) {
				t.Errorf("Halted() = %v", result.Halted())
			}
			if result.Halted() && !model.IsKind(result.HaltErr, model.KindTransport) {
				t.Errorf("expected transport HaltErr, got %v", result.HaltErr)
			}
		})
	}
}
