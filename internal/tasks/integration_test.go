package tasks

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/desertthunder/ypc/internal/services"
	"github.com/desertthunder/ypc/internal/shared"
	tu "github.com/desertthunder/ypc/internal/testing"
)

func connect(t *testing.T, fake *tu.FakeSpotify) *services.SpotifyService {
	t.Helper()
	creds := &shared.Credentials{ClientID: "id", ClientSecret: "secret"}
	srv, err := services.Connect(context.Background(), creds, nil, services.ClientOptions{
		TokenURL: fake.TokenURL(),
		BaseURL:  fake.BaseURL(),
	})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	return srv
}

func tracks(n int) []tu.Track {
	out := make([]tu.Track, n)
	for i := range out {
		out[i] = tu.Track{Name: "Song", Artists: []string{"Artist"}, Number: i + 1}
	}
	return out
}

func TestFetchAgainstAPI(t *testing.T) {
	t.Run("Row Count Sums All Pages", func(t *testing.T) {
		fake := tu.NewFakeSpotify(t)
		fake.AddPlaylist("one", tracks(3), tracks(3), tracks(1))
		fake.AddPlaylist("two", tracks(2))

		ids := []string{"spotify:playlist:one", "spotify:playlist:two"}
		table, err := NewSongFetcher(connect(t, fake), nil).Fetch(context.Background(), ids)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if table.Len() != 9 {
			t.Errorf("expected 9 rows, got %d", table.Len())
		}
		if table.Rows[6].Source() != "spotify:playlist:one" || table.Rows[7].Source() != "spotify:playlist:two" {
			t.Errorf("rows not in input order")
		}
		if fake.RequestCount("playlists/one") != 3 || fake.RequestCount("playlists/two") != 1 {
			t.Errorf("unexpected requests %v", fake.Requests())
		}
	})

	t.Run("API Error On Second Identifier", func(t *testing.T) {
		fake := tu.NewFakeSpotify(t)
		fake.AddAlbum("first", tracks(2))
		fake.FailPlaylist("second", http.StatusUnauthorized)
		fake.AddAlbum("third", tracks(2))

		ids := []string{"spotify:album:first", "spotify:playlist:second", "spotify:album:third"}
		table, err := NewSongFetcher(connect(t, fake), nil).Fetch(context.Background(), ids)

		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if table != nil {
			t.Error("expected no table on error")
		}
		if fake.RequestCount("albums/third") != 0 {
			t.Error("third identifier should not be requested")
		}
	})
}
