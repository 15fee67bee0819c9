package services

import (
	"errors"
	"testing"

	"github.com/desertthunder/ypc/internal/models"
	"github.com/desertthunder/ypc/internal/shared"
	"github.com/zmb3/spotify/v2"
)

func TestParseID(t *testing.T) {
	tt := []struct {
		name       string
		kind       models.Kind
		identifier string
		want       spotify.ID
		wantErr    bool
	}{
		{name: "album URI", kind: models.KindAlbum, identifier: "spotify:album:4aawyAB9vmqN3uQ7FjRGTy", want: "4aawyAB9vmqN3uQ7FjRGTy"},
		{name: "playlist URI", kind: models.KindPlaylist, identifier: "spotify:playlist:37i9dQZF1DXcBWIGoYBM5M", want: "37i9dQZF1DXcBWIGoYBM5M"},
		{name: "legacy user playlist URI", kind: models.KindPlaylist, identifier: "spotify:user:someone:playlist:37i9dQZF1DXcBWIGoYBM5M", want: "37i9dQZF1DXcBWIGoYBM5M"},
		{name: "album URL with query", kind: models.KindAlbum, identifier: "https://open.spotify.com/album/4aawyAB9vmqN3uQ7FjRGTy?si=abc123", want: "4aawyAB9vmqN3uQ7FjRGTy"},
		{name: "playlist URL with locale", kind: models.KindPlaylist, identifier: "https://open.spotify.com/intl-de/playlist/37i9dQZF1DXcBWIGoYBM5M", want: "37i9dQZF1DXcBWIGoYBM5M"},
		{name: "surrounding whitespace", kind: models.KindAlbum, identifier: "  spotify:album:abc  ", want: "abc"},
		{name: "bare id", kind: models.KindAlbum, identifier: "4aawyAB9vmqN3uQ7FjRGTy", want: "4aawyAB9vmqN3uQ7FjRGTy"},
		{name: "kind mismatch", kind: models.KindAlbum, identifier: "spotify:playlist:37i9dQZF1DXcBWIGoYBM5M", wantErr: true},
		{name: "missing id", kind: models.KindAlbum, identifier: "https://open.spotify.com/album/", wantErr: true},
		{name: "foreign host", kind: models.KindAlbum, identifier: "https://example.com/album/abc", wantErr: true},
		{name: "garbage", kind: models.KindPlaylist, identifier: "my playlist!", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseID(tc.kind, tc.identifier)
			if tc.wantErr {
				if !errors.Is(err, shared.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v (id %q)", err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseID() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("ParseID() = %q, want %q", got, tc.want)
			}
		})
	}
}
