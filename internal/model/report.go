package model

import "time"

// RunReport accumulates the state of a single run.
// Each pipeline step reads what earlier steps stored and adds its own output.
type RunReport struct {
	// SourceURL is the page that was checked.
	SourceURL string `json:"source_url"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run ended, successfully or not.
	FinishedAt time.Time `json:"finished_at,omitzero"`

	// Page is the raw page text returned by the fetcher.
	Page string `json:"-"`

	// Candidates are the extracted records in document (newest-first) order.
	Candidates []UpdateRecord `json:"candidates,omitempty"`

	// Lookups holds one entry per candidate in chronological (oldest-first) order.
	Lookups []LookupResult `json:"lookups,omitempty"`

	// Walk is the outcome of the notification walk. Nil until NotifyStep ran.
	Walk *WalkResult `json:"walk,omitempty"`

	// Persisted lists the delivered records that were stored successfully.
	Persisted []UpdateRecord `json:"persisted,omitempty"`

	// PersistFailures lists the delivered records that could not be stored.
	// They were notified, so they are reported but never retracted.
	PersistFailures []PersistFailure `json:"persist_failures,omitempty"`

	// PerformedSteps lists the steps that completed without error.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error is the error that aborted the run, if any.
	Error error `json:"-"`

	// ErrorMessage is Error rendered as a string for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewRunReport creates a report for a run against sourceURL.
func NewRunReport(sourceURL string) *RunReport {
	return &RunReport{
		SourceURL: sourceURL,
		StartedAt: time.Now(),
	}
}

// Novel returns the candidates whose lookup reported them as not yet seen,
// in chronological order.
func (r *RunReport) Novel() []UpdateRecord {
	novel := make([]UpdateRecord, 0, len(r.Lookups))
	for _, l := range r.Lookups {
		if !l.Seen {
			novel = append(novel, l.Record)
		}
	}
	return novel
}

// Delivered returns the records the walk delivered, or nil if the walk
// has not run.
func (r *RunReport) Delivered() []UpdateRecord {
	if r.Walk == nil {
		return nil
	}
	return r.Walk.Delivered
}

// LookupResult is the outcome of checking one candidate against the store.
type LookupResult struct {
	// Record is the candidate that was looked up.
	Record UpdateRecord `json:"record"`

	// Seen is true when the store already holds an entry with the same body.
	Seen bool `json:"seen"`
}

// WalkResult is the outcome of the sequential notification walk.
// A halted walk is a partial success: Processed candidates were handled
// and the remainder is left for the next run.
type WalkResult struct {
	// Processed is the number of lookup results handled before the walk ended,
	// including skipped ones. The failed delivery is not counted.
	Processed int `json:"processed"`

	// Skipped is the number of candidates skipped as already notified.
	Skipped int `json:"skipped"`

	// Delivered lists the records delivered, in delivery order.
	Delivered []UpdateRecord `json:"delivered,omitempty"`

	// HaltedAt is the index into the lookup results of the failed delivery,
	// or -1 when the walk ran to completion.
	HaltedAt int `json:"halted_at"`

	// HaltErr is the delivery error that stopped the walk.
	HaltErr error `json:"-"`
}

// NewWalkResult returns an empty, not halted, walk result.
func NewWalkResult() *WalkResult {
	return &WalkResult{HaltedAt: -1}
}

// Halted reports whether the walk stopped on a delivery failure.
func (w *WalkResult) Halted() bool {
	return w.HaltedAt >= 0
}

// PersistFailure records a delivered record the store could not save.
type PersistFailure struct {
	// Record is the record that was delivered but not stored.
	Record UpdateRecord `json:"record"`

	// Err is the store error.
	Err error `json:"-"`

	// ErrorMessage is Err rendered as a string for serialization.
	ErrorMessage string `json:"error"`
}
