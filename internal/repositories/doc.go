// Package repositories implements the SQLite sink for extracted track tables.
//
// Each `ypc fetch --db` invocation is stored as a run: a row in runs plus one track_rows row per
// extracted track, keyed by position so [TrackRowRepository.ListByRun] restores the original order.
//
// Sequence numbers provide stable, human-readable ordering of runs independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
