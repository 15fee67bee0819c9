package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/ypc/internal/shared"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientOptions overrides the Spotify endpoints. Zero values select the production endpoints.
type ClientOptions struct {
	TokenURL   string
	BaseURL    string // must end with "/"
	HTTPClient *http.Client
}

// NewClient authenticates with the client-credentials flow and returns an SDK client.
func NewClient(ctx context.Context, creds *shared.Credentials, opts ClientOptions) (*spotify.Client, error) {
	if creds == nil || creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, shared.ErrMissingCredentials
	}

	tokenURL := opts.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}

	config := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     tokenURL,
	}

	source := config.TokenSource(ctx)
	if _, err := source.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	var clientOpts []spotify.ClientOption
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, spotify.WithBaseURL(opts.BaseURL))
	}

	return spotify.New(oauth2.NewClient(ctx, source), clientOpts...), nil
}
