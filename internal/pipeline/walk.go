package pipeline

import (
	"context"

	"github.com/nao1215/antenna/internal/model"
)

// Walk delivers the unseen records of lookups in order, one at a time.
//
// Seen records are skipped, as are repeats of a body already delivered in
// this walk. The walk stops at the first delivery failure and reports it
// through the returned WalkResult; nothing after that point is attempted.
func Walk(ctx context.Context, lookups []model.LookupResult, notifier Notifier) *model.WalkResult {
	result := model.NewWalkResult()
	delivered := make(map[string]struct{}, len(lookups))

	for i, l := range lookups {
		if l.Seen {
			result.Skipped++
			result.Processed++
			continue
		}
		if _, dup := delivered[l.Record.Body]; dup {
			result.Skipped++
			result.Processed++
			continue
		}

		if err := notifier.Notify(ctx, l.Record); err != nil {
			result.HaltedAt = i
			result.HaltErr = err
			return result
		}

		delivered[l.Record.Body] = struct{}{}
		result.Delivered = append(result.Delivered, l.Record)
		result.Processed++
	}

	return result
}
