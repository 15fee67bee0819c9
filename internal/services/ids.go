package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/desertthunder/ypc/internal/models"
	"github.com/desertthunder/ypc/internal/shared"
	"github.com/zmb3/spotify/v2"
)

var bareID = regexp.MustCompile(`^[0-9A-Za-z]+$`)

// ParseID extracts the Spotify ID of a collection of the given kind from identifier.
//
// Accepted forms:
//
//	spotify:album:4aawyAB9vmqN3uQ7FjRGTy
//	spotify:user:someone:playlist:37i9dQZF1DXcBWIGoYBM5M
//	https://open.spotify.com/album/4aawyAB9vmqN3uQ7FjRGTy?si=abc
//	https://open.spotify.com/intl-de/playlist/37i9dQZF1DXcBWIGoYBM5M
//	4aawyAB9vmqN3uQ7FjRGTy
func ParseID(kind models.Kind, identifier string) (spotify.ID, error) {
	s := strings.TrimSpace(identifier)

	var segments []string
	switch {
	case strings.HasPrefix(s, "spotify:"):
		segments = strings.Split(s, ":")[1:]
	case strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://"):
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not a valid URL: %v", shared.ErrInvalidInput, identifier, err)
		}
		if !strings.HasSuffix(u.Hostname(), "spotify.com") {
			return "", fmt.Errorf("%w: %q is not a Spotify URL", shared.ErrInvalidInput, identifier)
		}
		segments = strings.Split(strings.Trim(u.Path, "/"), "/")
	default:
		if !bareID.MatchString(s) {
			return "", fmt.Errorf("%w: %q is not a Spotify %s ID", shared.ErrInvalidInput, identifier, kind)
		}
		return spotify.ID(s), nil
	}

	for i := 0; i+1 < len(segments); i++ {
		if segments[i] != string(kind) {
			continue
		}
		if id := segments[i+1]; bareID.MatchString(id) {
			return spotify.ID(id), nil
		}
		break
	}

	return "", fmt.Errorf("%w: %q does not name a Spotify %s", shared.ErrInvalidInput, identifier, kind)
}
