// Package model defines the data structures shared by the antenna packages.
//
// This package contains the following main types:
//   - UpdateRecord: A single transmission entry extracted from the terminal page
//   - RunReport: The accumulated state of one fetch/extract/notify/persist run
//   - WalkResult: The outcome of the sequential notification walk
//   - Error: The error kind union (transport, parse, store) carrying its cause
//
// Types live here so that the extractor, database, notifier and pipeline
// packages can share them without importing each other.
package model
