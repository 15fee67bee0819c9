package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ypc/internal/models"
	"github.com/desertthunder/ypc/internal/shared"
	"github.com/zmb3/spotify/v2"
)

const (
	albumPageSize    = 50
	playlistPageSize = 100
)

// SpotifyService extracts track rows from Spotify albums and playlists.
type SpotifyService struct {
	client *spotify.Client
	logger *log.Logger
}

// NewSpotifyService wraps an authenticated SDK client. A nil logger discards output.
func NewSpotifyService(client *spotify.Client, logger *log.Logger) *SpotifyService {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SpotifyService{client: client, logger: logger}
}

// Connect authenticates with creds and returns a ready [SpotifyService].
func Connect(ctx context.Context, creds *shared.Credentials, logger *log.Logger, opts ClientOptions) (*SpotifyService, error) {
	client, err := NewClient(ctx, creds, opts)
	if err != nil {
		return nil, err
	}
	return NewSpotifyService(client, logger), nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AlbumTracks returns one row per track of the album named by identifier, across all pages.
func (s *SpotifyService) AlbumTracks(ctx context.Context, identifier string) (*models.Table, error) {
	id, err := ParseID(models.KindAlbum, identifier)
	if err != nil {
		return nil, err
	}

	logger := shared.WithLogger(s.logger, "album", id)

	page, err := s.client.GetAlbumTracks(ctx, id, spotify.Limit(albumPageSize))
	if err != nil {
		return nil, fmt.Errorf("%w: album %s: %v", shared.ErrAPIRequest, id, err)
	}

	var tracks []spotify.SimpleTrack
	for pages := 1; ; pages++ {
		logger.Debug("fetched album page", "page", pages, "items", len(page.Tracks), "total", int(page.Total))
		tracks = append(tracks, page.Tracks...)

		if err := s.client.NextPage(ctx, page); err != nil {
			if errors.Is(err, spotify.ErrNoMorePages) {
				break
			}
			return nil, fmt.Errorf("%w: album %s page %d: %v", shared.ErrAPIRequest, id, pages+1, err)
		}
	}

	table := models.NewTable()
	for _, t := range tracks {
		table.Append(models.NewAlbumRow(identifier, joinArtists(t.Artists), t.Name, int(t.TrackNumber)))
	}

	logger.Info("extracted album tracks", "rows", table.Len())
	return table, nil
}

// PlaylistTracks returns one row per track of the playlist named by identifier, across all pages.
//
// Items without a track (podcast episodes, tracks removed from the catalogue) are skipped.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, identifier string) (*models.Table, error) {
	id, err := ParseID(models.KindPlaylist, identifier)
	if err != nil {
		return nil, err
	}

	logger := shared.WithLogger(s.logger, "playlist", id)

	page, err := s.client.GetPlaylistItems(ctx, id, spotify.Limit(playlistPageSize))
	if err != nil {
		return nil, fmt.Errorf("%w: playlist %s: %v", shared.ErrAPIRequest, id, err)
	}

	var items []spotify.PlaylistItem
	for pages := 1; ; pages++ {
		logger.Debug("fetched playlist page", "page", pages, "items", len(page.Items), "total", int(page.Total))
		items = append(items, page.Items...)

		if err := s.client.NextPage(ctx, page); err != nil {
			if errors.Is(err, spotify.ErrNoMorePages) {
				break
			}
			return nil, fmt.Errorf("%w: playlist %s page %d: %v", shared.ErrAPIRequest, id, pages+1, err)
		}
	}

	table := models.NewTable()
	for i, item := range items {
		track := item.Track.Track
		if track == nil {
			logger.Debug("skipping playlist item without a track", "position", i)
			continue
		}
		table.Append(models.NewPlaylistRow(identifier, joinArtists(track.Artists), track.Name))
	}

	logger.Info("extracted playlist tracks", "rows", table.Len())
	return table, nil
}

func joinArtists(artists []spotify.SimpleArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ",")
}
