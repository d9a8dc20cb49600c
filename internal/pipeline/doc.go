// Package pipeline runs one fetch/extract/diff/notify/persist cycle.
//
// A run is a Pipeline of Steps executed in order over a *model.RunReport:
//
//	FetchStep -> ExtractStep -> DiffStep -> NotifyStep -> PersistStep
//
// Failure handling differs per stage:
//   - fetch, extract and lookup failures abort the run before anything is sent
//   - a delivery failure halts the notification walk; the run still completes
//     and the undelivered records are retried by the next run
//   - insert failures are reported as warnings; the notifications they belong
//     to have already been delivered and are not retracted
//
// Store lookups and inserts fan out with errgroup and are fully joined before
// the next step starts. Deliveries are strictly sequential, oldest first.
package pipeline
