// Package tasks routes album and playlist identifiers to an [Extractor] and concatenates the results.
//
// # Classification
//
// [Classify] checks the identifier for the substring "album" first and "playlist" second, so a string
// containing both is treated as an album. Identifiers matching neither are logged and skipped.
//
// # Failure
//
// [SongFetcher.Fetch] stops at the first extraction error: remaining identifiers are not requested and
// no partial table is returned.
package tasks
