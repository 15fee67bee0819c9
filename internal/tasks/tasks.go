package tasks

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ypc/internal/models"
	"github.com/desertthunder/ypc/internal/shared"
)

// Extractor fetches every track of an album or playlist. Implemented by services.SpotifyService.
type Extractor interface {
	AlbumTracks(ctx context.Context, identifier string) (*models.Table, error)
	PlaylistTracks(ctx context.Context, identifier string) (*models.Table, error)
}

// Classify returns the kind of collection identifier names, by substring.
func Classify(identifier string) models.Kind {
	switch {
	case strings.Contains(identifier, string(models.KindAlbum)):
		return models.KindAlbum
	case strings.Contains(identifier, string(models.KindPlaylist)):
		return models.KindPlaylist
	default:
		return models.KindUnknown
	}
}

// SongFetcher dispatches identifiers to an [Extractor].
type SongFetcher struct {
	extractor Extractor
	logger    *log.Logger
}

// NewSongFetcher creates a SongFetcher. A nil logger discards output.
func NewSongFetcher(extractor Extractor, logger *log.Logger) *SongFetcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SongFetcher{extractor: extractor, logger: logger}
}

// Fetch extracts every identifier in order and returns the concatenated table.
//
// The first extraction error is logged and returned with a nil table.
func (f *SongFetcher) Fetch(ctx context.Context, identifiers []string) (*models.Table, error) {
	table := models.NewTable()

	for _, identifier := range identifiers {
		logger := shared.WithLogger(f.logger, "id", identifier)
		logger.Debug("dispatching identifier")

		var (
			result *models.Table
			err    error
		)

		switch Classify(identifier) {
		case models.KindAlbum:
			result, err = f.extractor.AlbumTracks(ctx, identifier)
		case models.KindPlaylist:
			result, err = f.extractor.PlaylistTracks(ctx, identifier)
		default:
			logger.Warn("identifier not recognized as an album or playlist, skipping")
			continue
		}

		if err != nil {
			logger.Error("error when requesting the Spotify API; check the credentials in your config file", "error", err)
			return nil, err
		}

		table.Concat(result)
	}

	return table, nil
}
