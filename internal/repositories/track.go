package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/ypc/internal/models"
)

// ErrRunNotFound is returned when a run id is not stored.
var ErrRunNotFound = errors.New("run not found")

// Run describes one stored extraction.
type Run struct {
	ID          string
	Sequence    int
	Identifiers []string
	RowCount    int
	CreatedAt   time.Time
}

// TrackRowRepository stores extracted tables in SQLite.
type TrackRowRepository struct {
	db *sql.DB
}

// NewTrackRowRepository creates a new TrackRowRepository with the given database connection
func NewTrackRowRepository(db *sql.DB) *TrackRowRepository {
	return &TrackRowRepository{db: db}
}

// Save stores table under runID together with the identifiers that produced it.
func (r *TrackRowRepository) Save(runID string, identifiers []string, table *models.Table) error {
	if runID == "" {
		return fmt.Errorf("run id is required")
	}

	sequence, err := NextSequence(r.db, "runs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO runs (id, sequence, identifiers, row_count, created_at) VALUES (?, ?, ?, ?, ?)",
		runID, sequence, strings.Join(identifiers, "\n"), table.Len(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO track_rows (run_id, position, title, album_url, playlist_url, track_name, artist, track_number)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range table.Rows {
		var trackNumber sql.NullInt64
		if row.TrackNumber != nil {
			trackNumber = sql.NullInt64{Int64: int64(*row.TrackNumber), Valid: true}
		}

		_, err := stmt.Exec(runID, i, row.Title, nullString(row.AlbumURL), nullString(row.PlaylistURL), row.TrackName, row.Artist, trackNumber)
		if err != nil {
			return fmt.Errorf("failed to insert track row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// ListByRun restores the table stored under runID in its original order.
func (r *TrackRowRepository) ListByRun(runID string) (*models.Table, error) {
	var exists bool
	if err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM runs WHERE id = ?)", runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	rows, err := r.db.Query(`
		SELECT title, album_url, playlist_url, track_name, artist, track_number
		FROM track_rows
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query track rows: %w", err)
	}
	defer rows.Close()

	table := models.NewTable()
	for rows.Next() {
		var (
			row         models.Row
			albumURL    sql.NullString
			playlistURL sql.NullString
			trackNumber sql.NullInt64
		)
		if err := rows.Scan(&row.Title, &albumURL, &playlistURL, &row.TrackName, &row.Artist, &trackNumber); err != nil {
			return nil, fmt.Errorf("failed to scan track row: %w", err)
		}
		row.AlbumURL = albumURL.String
		row.PlaylistURL = playlistURL.String
		if trackNumber.Valid {
			n := int(trackNumber.Int64)
			row.TrackNumber = &n
		}
		table.Append(row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating track rows: %w", err)
	}

	return table, nil
}

// Runs lists stored runs, newest first.
func (r *TrackRowRepository) Runs() ([]Run, error) {
	rows, err := r.db.Query("SELECT id, sequence, identifiers, row_count, created_at FROM runs ORDER BY sequence DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run         Run
			identifiers string
		)
		if err := rows.Scan(&run.ID, &run.Sequence, &identifiers, &run.RowCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if identifiers != "" {
			run.Identifiers = strings.Split(identifiers, "\n")
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
