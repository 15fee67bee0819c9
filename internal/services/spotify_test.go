package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ypc/internal/shared"
	tu "github.com/desertthunder/ypc/internal/testing"
)

var testCreds = &shared.Credentials{ClientID: "test_client_id", ClientSecret: "test_client_secret"}

func connectFake(t *testing.T, fake *tu.FakeSpotify) *SpotifyService {
	t.Helper()
	srv, err := Connect(context.Background(), testCreds, nil, ClientOptions{
		TokenURL: fake.TokenURL(),
		BaseURL:  fake.BaseURL(),
	})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	return srv
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewClient", func(t *testing.T) {
		t.Run("Fetches Token Eagerly", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t)
			srv := connectFake(t, fake)

			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}
			if fake.TokenRequests() != 1 {
				t.Errorf("expected 1 token request, got %d", fake.TokenRequests())
			}
			if len(fake.Requests()) != 0 {
				t.Errorf("expected no API requests, got %v", fake.Requests())
			}
		})

		t.Run("Rejected Credentials", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t)
			fake.RejectToken()

			_, err := NewClient(context.Background(), testCreds, ClientOptions{TokenURL: fake.TokenURL(), BaseURL: fake.BaseURL()})
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})

		t.Run("Missing Credentials", func(t *testing.T) {
			for _, creds := range []*shared.Credentials{nil, {ClientID: "id"}, {ClientSecret: "secret"}} {
				if _, err := NewClient(context.Background(), creds, ClientOptions{}); !errors.Is(err, shared.ErrMissingCredentials) {
					t.Errorf("expected ErrMissingCredentials for %+v, got %v", creds, err)
				}
			}
		})

		t.Run("Custom HTTP Client", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t)
			_, err := NewClient(context.Background(), testCreds, ClientOptions{
				TokenURL:   fake.TokenURL(),
				BaseURL:    fake.BaseURL(),
				HTTPClient: &http.Client{},
			})
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	})

	t.Run("AlbumTracks", func(t *testing.T) {
		t.Run("Follows Next Links", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t)
			fake.AddAlbum("abc",
				[]tu.Track{{Name: "One", Artists: []string{"A"}, Number: 1}, {Name: "Two", Artists: []string{"A", "B"}, Number: 2}},
				[]tu.Track{{Name: "Three", Artists: []string{"C"}, Number: 3}},
				[]tu.Track{{Name: "Four", Artists: []string{"A"}, Number: 4}},
			)
			srv := connectFake(t, fake)

			table, err := srv.AlbumTracks(context.Background(), "spotify:album:abc")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got := fake.RequestCount("albums/abc"); got != 3 {
				t.Errorf("expected 3 page requests, got %d", got)
			}
			if table.Len() != 4 {
				t.Fatalf("expected 4 rows, got %d", table.Len())
			}

			second := table.Rows[1]
			if second.Title != "A,B - Two" {
				t.Errorf("expected title 'A,B - Two', got %s", second.Title)
			}
			if second.Artist != "A,B" || second.TrackName != "Two" {
				t.Errorf("unexpected row %+v", second)
			}
			if second.TrackNumber == nil || *second.TrackNumber != 2 {
				t.Errorf("expected track number 2, got %v", second.TrackNumber)
			}
			if second.AlbumURL != "spotify:album:abc" {
				t.Errorf("expected album_url to keep the identifier, got %s", second.AlbumURL)
			}
			for i, want := range []string{"One", "Two", "Three", "Four"} {
				if table.Rows[i].TrackName != want {
					t.Errorf("row %d: expected %s, got %s", i, want, table.Rows[i].TrackName)
				}
			}
		})

		t.Run("Single Page", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t)
			fake.AddAlbum("solo", []tu.Track{{Name: "Only", Artists: []string{"A"}, Number: 1}})
			srv := connectFake(t, fake)

			table, err := srv.AlbumTracks(context.Background(), "https://open.spotify.com/album/solo")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if table.Len() != 1 || fake.RequestCount("albums/solo") != 1 {
				t.Errorf("expected 1 row and 1 request, got %d rows and %d requests", table.Len(), fake.RequestCount("albums/solo"))
			}
		})

		t.Run("API Error", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t)
			fake.FailAlbum("broken", http.StatusInternalServerError)
			srv := connectFake(t, fake)

			table, err := srv.AlbumTracks(context.Background(), "spotify:album:broken")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if table != nil {
				t.Error("expected no table on error")
			}
		})

		t.Run("Invalid Identifier", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t)
			srv := connectFake(t, fake)

			if _, err := srv.AlbumTracks(context.Background(), "spotify:album:"); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if len(fake.Requests()) != 0 {
				t.Errorf("expected no API requests, got %v", fake.Requests())
			}
		})
	})

	t.Run("PlaylistTracks", func(t *testing.T) {
		t.Run("Follows Next Links", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t)
			fake.AddPlaylist("xyz",
				[]tu.Track{{Name: "One", Artists: []string{"A", "B"}}, {Name: "Two", Artists: []string{"C"}}},
				[]tu.Track{{Name: "Three", Artists: []string{"D"}}},
			)
			srv := connectFake(t, fake)

			table, err := srv.PlaylistTracks(context.Background(), "spotify:playlist:xyz")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got := fake.RequestCount("playlists/xyz"); got != 2 {
				t.Errorf("expected 2 page requests, got %d", got)
			}
			if table.Len() != 3 {
				t.Fatalf("expected 3 rows, got %d", table.Len())
			}

			first := table.Rows[0]
			if first.Title != "A,B - One" || first.PlaylistURL != "spotify:playlist:xyz" {
				t.Errorf("unexpected row %+v", first)
			}
			if first.TrackNumber != nil {
				t.Error("playlist rows should not carry a track number")
			}
		})

		t.Run("Skips Episodes", func(t *testing.T) {
			var buf bytes.Buffer
			logger := shared.NewLogger(&buf)
			shared.SetLogLevel(logger, log.DebugLevel)

			fake := tu.NewFakeSpotify(t)
			fake.AddPlaylist("mixed", []tu.Track{
				{Name: "Song", Artists: []string{"A"}},
				{Name: "Podcast", Episode: true},
			})
			client, err := NewClient(context.Background(), testCreds, ClientOptions{TokenURL: fake.TokenURL(), BaseURL: fake.BaseURL()})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}
			srv := NewSpotifyService(client, logger)

			table, err := srv.PlaylistTracks(context.Background(), "spotify:playlist:mixed")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if table.Len() != 1 {
				t.Errorf("expected 1 row, got %d", table.Len())
			}
			if !strings.Contains(buf.String(), "skipping playlist item without a track") {
				t.Errorf("expected skip to be logged, got %s", buf.String())
			}
		})

		t.Run("Empty Playlist", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t)
			fake.AddPlaylist("empty")
			srv := connectFake(t, fake)

			table, err := srv.PlaylistTracks(context.Background(), "spotify:playlist:empty")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if table.Len() != 0 {
				t.Errorf("expected no rows, got %d", table.Len())
			}
		})

		t.Run("Not Found", func(t *testing.T) {
			fake := tu.NewFakeSpotify(t)
			srv := connectFake(t, fake)

			if _, err := srv.PlaylistTracks(context.Background(), "spotify:playlist:missing"); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})
}

func TestJoinArtists(t *testing.T) {
	if got := joinArtists(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
