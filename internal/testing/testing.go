// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/ypc/internal/models"
)

// Track is a track served by [FakeSpotify].
type Track struct {
	Name    string
	Artists []string
	Number  int
	Episode bool // served as a podcast episode instead of a track
}

// FakeSpotify is an httptest server speaking enough of the Spotify Web API for extraction:
// the client-credentials token endpoint, album tracks and playlist items, paginated with "next" links.
type FakeSpotify struct {
	Server *httptest.Server

	mu            sync.Mutex
	collections   map[string][][]Track
	failures      map[string]int
	requests      []string
	tokenRequests int
	rejectToken   bool
}

// NewFakeSpotify starts a fake API server that is closed when the test ends.
func NewFakeSpotify(t *testing.T) *FakeSpotify {
	t.Helper()
	f := &FakeSpotify{
		collections: make(map[string][][]Track),
		failures:    make(map[string]int),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// TokenURL is the client-credentials token endpoint.
func (f *FakeSpotify) TokenURL() string { return f.Server.URL + "/api/token" }

// BaseURL is the API root, suitable for spotify.WithBaseURL.
func (f *FakeSpotify) BaseURL() string { return f.Server.URL + "/v1/" }

// AddAlbum serves an album whose tracks are split into the given pages.
func (f *FakeSpotify) AddAlbum(id string, pages ...[]Track) {
	f.add("albums/"+id, pages)
}

// AddPlaylist serves a playlist whose items are split into the given pages.
func (f *FakeSpotify) AddPlaylist(id string, pages ...[]Track) {
	f.add("playlists/"+id, pages)
}

func (f *FakeSpotify) add(key string, pages [][]Track) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(pages) == 0 {
		pages = [][]Track{{}}
	}
	f.collections[key] = pages
}

// FailAlbum makes every request for the album respond with status.
func (f *FakeSpotify) FailAlbum(id string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures["albums/"+id] = status
}

// FailPlaylist makes every request for the playlist respond with status.
func (f *FakeSpotify) FailPlaylist(id string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures["playlists/"+id] = status
}

// RejectToken makes the token endpoint answer 401 invalid_client.
func (f *FakeSpotify) RejectToken() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejectToken = true
}

// Requests returns the API paths requested so far (token requests excluded), e.g. "albums/abc".
func (f *FakeSpotify) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

// RequestCount counts requests for one collection key such as "playlists/abc".
func (f *FakeSpotify) RequestCount(key string) int {
	n := 0
	for _, r := range f.Requests() {
		if r == key {
			n++
		}
	}
	return n
}

// TokenRequests returns how many tokens were issued or rejected.
func (f *FakeSpotify) TokenRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokenRequests
}

func (f *FakeSpotify) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/token" {
		f.serveToken(w)
		return
	}

	key := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/"), "/tracks")

	f.mu.Lock()
	f.requests = append(f.requests, key)
	pages, ok := f.collections[key]
	status := f.failures[key]
	f.mu.Unlock()

	if status != 0 {
		writeError(w, status, "simulated failure")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Resource not found")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 0 || page >= len(pages) {
		writeError(w, http.StatusBadRequest, "page out of range")
		return
	}

	offset := 0
	total := 0
	for i, p := range pages {
		if i < page {
			offset += len(p)
		}
		total += len(p)
	}

	var next any
	if page+1 < len(pages) {
		next = fmt.Sprintf("%s/v1/%s/tracks?page=%d", f.Server.URL, key, page+1)
	}

	items := make([]any, 0, len(pages[page]))
	for _, t := range pages[page] {
		if strings.HasPrefix(key, "albums/") {
			items = append(items, trackJSON(t))
			continue
		}
		items = append(items, map[string]any{
			"added_at": "2024-01-01T00:00:00Z",
			"is_local": false,
			"track":    trackJSON(t),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"href":     f.Server.URL + r.URL.String(),
		"items":    items,
		"limit":    len(pages[page]),
		"offset":   offset,
		"total":    total,
		"next":     next,
		"previous": nil,
	})
}

func (f *FakeSpotify) serveToken(w http.ResponseWriter) {
	f.mu.Lock()
	f.tokenRequests++
	reject := f.rejectToken
	f.mu.Unlock()

	if reject {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":             "invalid_client",
			"error_description": "Invalid client",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": "fake-access-token",
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func trackJSON(t Track) map[string]any {
	if t.Episode {
		return map[string]any{"type": "episode", "id": "episode", "name": t.Name}
	}
	artists := make([]map[string]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, map[string]string{"name": a, "type": "artist"})
	}
	return map[string]any{
		"type":         "track",
		"id":           "track",
		"name":         t.Name,
		"artists":      artists,
		"track_number": t.Number,
		"disc_number":  1,
		"duration_ms":  180000,
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"status": status, "message": message},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// ErrMock is returned by [MockExtractor] for identifiers registered with Fail.
var ErrMock = errors.New("mock extraction failed")

// MockExtractor is a test double for the dispatcher's extractor.
type MockExtractor struct {
	Albums    map[string]*models.Table
	Playlists map[string]*models.Table
	Failures  map[string]error
	Calls     []string // "album:<id>" or "playlist:<id>", in call order
}

func NewMockExtractor() *MockExtractor {
	return &MockExtractor{
		Albums:    make(map[string]*models.Table),
		Playlists: make(map[string]*models.Table),
		Failures:  make(map[string]error),
	}
}

// Fail makes any extraction of identifier return [ErrMock].
func (m *MockExtractor) Fail(identifier string) {
	m.Failures[identifier] = ErrMock
}

func (m *MockExtractor) AlbumTracks(ctx context.Context, identifier string) (*models.Table, error) {
	m.Calls = append(m.Calls, "album:"+identifier)
	if err := m.Failures[identifier]; err != nil {
		return nil, err
	}
	if t, ok := m.Albums[identifier]; ok {
		return t, nil
	}
	return models.NewTable(), nil
}

func (m *MockExtractor) PlaylistTracks(ctx context.Context, identifier string) (*models.Table, error) {
	m.Calls = append(m.Calls, "playlist:"+identifier)
	if err := m.Failures[identifier]; err != nil {
		return nil, err
	}
	if t, ok := m.Playlists[identifier]; ok {
		return t, nil
	}
	return models.NewTable(), nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
