package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/antenna/internal/model"
)

// FetchStep downloads the page into the report.
type FetchStep struct {
	fetcher PageFetcher
}

// NewFetchStep creates a FetchStep.
func NewFetchStep(fetcher PageFetcher) *FetchStep {
	return &FetchStep{fetcher: fetcher}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, report *model.RunReport) error {
	page, err := s.fetcher.Fetch(ctx, report.SourceURL)
	if err != nil {
		if model.KindOf(err) == model.KindUnknown {
			err = model.TransportError("fetch", err)
		}
		return err
	}
	report.Page = page
	return nil
}

// ExtractStep decodes the fetched page into candidate records.
type ExtractStep struct {
	extractor RecordExtractor
	logger    *slog.Logger
}

// NewExtractStep creates an ExtractStep.
func NewExtractStep(extractor RecordExtractor, logger *slog.Logger) *ExtractStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractStep{extractor: extractor, logger: logger}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do executes the extract step.
func (s *ExtractStep) Do(_ context.Context, report *model.RunReport) error {
	records, err := s.extractor.Extract(report.Page)
	if err != nil {
		if model.KindOf(err) == model.KindUnknown {
			err = model.ParseError("extract", err)
		}
		return err
	}
	report.Candidates = records
	s.logger.Debug("extracted candidates", "count", len(records))
	return nil
}

// DiffStep checks every candidate against the store concurrently.
// Results are stored oldest-first.
type DiffStep struct {
	store       Store
	concurrency int
}

// NewDiffStep creates a DiffStep. concurrency <= 0 means DefaultConcurrency.
func NewDiffStep(store Store, concurrency int) *DiffStep {
	return &DiffStep{store: store, concurrency: concurrency}
}

// Name returns the step name.
func (s *DiffStep) Name() string {
	return "diff"
}

// Do executes the diff step. Every lookup completes before the step returns;
// if any failed, the first failure aborts the run and no lookup result is kept.
func (s *DiffStep) Do(ctx context.Context, report *model.RunReport) error {
	candidates := model.Reverse(report.Candidates)
	results := make([]model.LookupResult, len(candidates))

	err := fanOut(len(candidates), s.concurrency, func(i int) error {
		seen, err := s.store.Lookup(ctx, candidates[i].Body)
		if err != nil {
			return err
		}
		results[i] = model.LookupResult{Record: candidates[i], Seen: seen}
		return nil
	})
	if err != nil {
		if model.KindOf(err) == model.KindUnknown {
			err = model.StoreError("lookup", err)
		}
		return err
	}

	report.Lookups = results
	return nil
}

// NotifyStep walks the lookup results and delivers novel records.
type NotifyStep struct {
	notifier Notifier
	logger   *slog.Logger
}

// NewNotifyStep creates a NotifyStep.
func NewNotifyStep(notifier Notifier, logger *slog.Logger) *NotifyStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotifyStep{notifier: notifier, logger: logger}
}

// Name returns the step name.
func (s *NotifyStep) Name() string {
	return "notify"
}

// Do executes the notify step. A delivery failure halts the walk but is not
// returned: the delivered records still have to be persisted.
func (s *NotifyStep) Do(ctx context.Context, report *model.RunReport) error {
	walk := Walk(ctx, report.Lookups, s.notifier)
	report.Walk = walk

	for _, r := range walk.Delivered {
		s.logger.Info("transmission delivered", "title", r.Title, "body", r.Body)
	}

	if walk.Halted() {
		failed := report.Lookups[walk.HaltedAt].Record
		s.logger.Error("delivery failed, remaining transmissions deferred to next run",
			"title", failed.Title,
			"body", failed.Body,
			"delivered", len(walk.Delivered),
			"deferred", len(report.Lookups)-walk.Processed,
			"error", walk.HaltErr,
		)
	}
	return nil
}

// PersistStep stores the delivered records concurrently.
type PersistStep struct {
	store       Store
	concurrency int
	logger      *slog.Logger
}

// NewPersistStep creates a PersistStep. concurrency <= 0 means DefaultConcurrency.
func NewPersistStep(store Store, concurrency int, logger *slog.Logger) *PersistStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersistStep{store: store, concurrency: concurrency, logger: logger}
}

// Name returns the step name.
func (s *PersistStep) Name() string {
	return "persist"
}

// commits marks PersistStep as recording already-delivered notifications.
func (s *PersistStep) commits() bool {
	return true
}

// Do executes the persist step. Insert failures are recorded in the report
// and logged; they never fail the run.
func (s *PersistStep) Do(ctx context.Context, report *model.RunReport) error {
	delivered := report.Delivered()
	if len(delivered) == 0 {
		return nil
	}

	// The notifications are out; a cancelled run must still record them.
	ctx = context.WithoutCancel(ctx)

	errs := make([]error, len(delivered))
	_ = fanOut(len(delivered), s.concurrency, func(i int) error { //nolint:errcheck // errors are collected per record
		errs[i] = s.store.Insert(ctx, delivered[i])
		return nil
	})

	for i, r := range delivered {
		if errs[i] == nil {
			report.Persisted = append(report.Persisted, r)
			continue
		}
		report.PersistFailures = append(report.PersistFailures, model.PersistFailure{
			Record:       r,
			Err:          errs[i],
			ErrorMessage: errs[i].Error(),
		})
		s.logger.Warn("failed to persist delivered transmission; it may be announced again",
			"title", r.Title,
			"body", r.Body,
			"error", errs[i],
		)
	}
	return nil
}
