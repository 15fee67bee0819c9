// Package services wraps the Spotify Web API SDK ([spotify.Client]) for track extraction.
//
// # Authentication
//
// [NewClient] uses the OAuth2 client-credentials flow. The first token is requested eagerly so invalid
// credentials fail before any extraction starts; later tokens are renewed by the [oauth2] transport.
//
// # Extraction
//
// [SpotifyService.AlbumTracks] and [SpotifyService.PlaylistTracks] request the first page of a
// collection and follow its "next" link until the API stops returning one. Every item becomes a
// [models.Row]; artists are joined with ",".
//
// # Identifiers
//
// [ParseID] accepts Spotify URIs (spotify:album:ID), open.spotify.com URLs, and bare IDs.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAuthFailed] : token request rejected
//   - [shared.ErrAPIRequest] : any failed page request
//   - [shared.ErrInvalidInput] : identifier does not name a collection of the requested kind
package services
