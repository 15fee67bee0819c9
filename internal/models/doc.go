// Package models defines the tabular result of a Spotify extraction.
//
//   - [Row] : one track, with its display title and the identifier it was extracted from
//   - [Table] : ordered rows whose column set is the union of the columns of its rows
//
// Album rows carry an album_url and a track_number; playlist rows carry a playlist_url.
// Columns a row does not have are unset, which renders as an empty cell.
package models
