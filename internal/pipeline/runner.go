package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/antenna/internal/model"
)

// ErrMissingDependency is returned by NewRunner when a collaborator is nil.
var ErrMissingDependency = errors.New("runner requires a fetcher, extractor, store and notifier")

// Runner performs runs against one source URL.
type Runner struct {
	sourceURL   string
	fetcher     PageFetcher
	extractor   RecordExtractor
	store       Store
	notifier    Notifier
	logger      *slog.Logger
	concurrency int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets the logger used by the runner and its steps.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithStoreConcurrency bounds concurrent lookups and inserts.
func WithStoreConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// NewRunner creates a Runner.
func NewRunner(sourceURL string, fetcher PageFetcher, extractor RecordExtractor, store Store, notifier Notifier, opts ...RunnerOption) (*Runner, error) {
	if fetcher == nil || extractor == nil || store == nil || notifier == nil {
		return nil, ErrMissingDependency
	}
	r := &Runner{
		sourceURL:   sourceURL,
		fetcher:     fetcher,
		extractor:   extractor,
		store:       store,
		notifier:    notifier,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r, nil
}

// Pipeline builds the step sequence for one run.
func (r *Runner) Pipeline() *Pipeline {
	p := New(WithLogger(r.logger))
	p.AddSteps(
		NewFetchStep(r.fetcher),
		NewExtractStep(r.extractor, r.logger),
		NewDiffStep(r.store, r.concurrency),
		NewNotifyStep(r.notifier, r.logger),
		NewPersistStep(r.store, r.concurrency, r.logger),
	)
	return p
}

// Run performs one run. The returned error is non-nil only when the run was
// aborted by a fetch, parse or lookup failure (or cancellation) before any
// delivery. Delivery halts and insert failures are in the report.
func (r *Runner) Run(ctx context.Context) (*model.RunReport, error) {
	report := model.NewRunReport(r.sourceURL)

	if err := r.Pipeline().Execute(ctx, report); err != nil {
		return report, err
	}

	attrs := []any{
		"candidates", len(report.Candidates),
		"novel", len(report.Novel()),
		"delivered", len(report.Delivered()),
		"persisted", len(report.Persisted),
		"elapsed", report.FinishedAt.Sub(report.StartedAt),
	}
	switch {
	case report.Walk != nil && report.Walk.Halted():
		r.logger.Error("run completed with delivery failure", attrs...)
	case len(report.PersistFailures) > 0:
		r.logger.Warn("run completed with persistence failures",
			append(attrs, "persist_failures", len(report.PersistFailures))...)
	default:
		r.logger.Info("run completed", attrs...)
	}
	return report, nil
}
