package models

import "strconv"

// Column names, as rendered in table headers and CSV files.
const (
	ColumnTitle       = "title"
	ColumnAlbumURL    = "album_url"
	ColumnPlaylistURL = "playlist_url"
	ColumnTrackName   = "track_name"
	ColumnArtist      = "artist"
	ColumnTrackNumber = "track_number"
)

var (
	albumColumns    = []string{ColumnTitle, ColumnAlbumURL, ColumnTrackName, ColumnArtist, ColumnTrackNumber}
	playlistColumns = []string{ColumnTitle, ColumnPlaylistURL, ColumnTrackName, ColumnArtist}
)

// Row is a single extracted track.
type Row struct {
	Title       string `json:"title"`
	AlbumURL    string `json:"album_url,omitempty"`
	PlaylistURL string `json:"playlist_url,omitempty"`
	TrackName   string `json:"track_name"`
	Artist      string `json:"artist"`
	TrackNumber *int   `json:"track_number,omitempty"`
}

// NewAlbumRow builds the row for track number n of the album identified by source.
func NewAlbumRow(source, artist, name string, n int) Row {
	return Row{
		Title:       DisplayTitle(artist, name),
		AlbumURL:    source,
		TrackName:   name,
		Artist:      artist,
		TrackNumber: &n,
	}
}

// NewPlaylistRow builds the row for a track of the playlist identified by source.
func NewPlaylistRow(source, artist, name string) Row {
	return Row{
		Title:       DisplayTitle(artist, name),
		PlaylistURL: source,
		TrackName:   name,
		Artist:      artist,
	}
}

// DisplayTitle formats "artist - track name".
func DisplayTitle(artist, name string) string {
	return artist + " - " + name
}

// Source returns the album or playlist identifier the row came from.
func (r Row) Source() string {
	if r.AlbumURL != "" {
		return r.AlbumURL
	}
	return r.PlaylistURL
}

// IsAlbum reports whether the row was extracted from an album.
func (r Row) IsAlbum() bool {
	return r.AlbumURL != ""
}

// Columns returns the columns this row has values for, in display order.
func (r Row) Columns() []string {
	if r.IsAlbum() {
		return albumColumns
	}
	return playlistColumns
}

// Value returns the cell for column and false when the row has no value there.
func (r Row) Value(column string) (string, bool) {
	switch column {
	case ColumnTitle:
		return r.Title, true
	case ColumnTrackName:
		return r.TrackName, true
	case ColumnArtist:
		return r.Artist, true
	case ColumnAlbumURL:
		return r.AlbumURL, r.AlbumURL != ""
	case ColumnPlaylistURL:
		return r.PlaylistURL, r.PlaylistURL != ""
	case ColumnTrackNumber:
		if r.TrackNumber == nil {
			return "", false
		}
		return strconv.Itoa(*r.TrackNumber), true
	}
	return "", false
}

// Table is an ordered collection of rows.
type Table struct {
	Rows []Row
}

// NewTable returns a table holding rows.
func NewTable(rows ...Row) *Table {
	return &Table{Rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Append adds rows to the end of the table.
func (t *Table) Append(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Concat appends the rows of every other table, preserving order. Nil tables are ignored.
func (t *Table) Concat(others ...*Table) {
	for _, o := range others {
		if o != nil {
			t.Rows = append(t.Rows, o.Rows...)
		}
	}
}

// Columns returns the union of the columns of all rows, in order of first appearance.
func (t *Table) Columns() []string {
	var columns []string
	seen := make(map[string]bool)
	for _, r := range t.Rows {
		for _, c := range r.Columns() {
			if !seen[c] {
				seen[c] = true
				columns = append(columns, c)
			}
		}
	}
	return columns
}

// Records returns the table as string cells aligned with [Table.Columns]. Absent values are empty.
func (t *Table) Records() [][]string {
	columns := t.Columns()
	records := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		record := make([]string, len(columns))
		for i, c := range columns {
			record[i], _ = r.Value(c)
		}
		records = append(records, record)
	}
	return records
}

// Kind is the type of collection an identifier names.
type Kind string

const (
	KindUnknown  Kind = ""
	KindAlbum    Kind = "album"
	KindPlaylist Kind = "playlist"
)
