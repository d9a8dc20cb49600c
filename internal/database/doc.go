// Package database persists the transmissions that have already been
// announced.
//
// Two backends implement the same contract:
//   - TransmissionDB: SQLite via modernc.org/sqlite (default, CGO-free, one file)
//   - MongoStore: MongoDB via go.mongodb.org/mongo-driver
//
// Both are append-only. Insert is insert-if-absent keyed by the record body,
// so the store never holds two entries with the same body and overlapping
// inserts of the same record are harmless.
package database
