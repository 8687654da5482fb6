// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/services"
)

var _ services.Catalog = (*MockCatalog)(nil)

// MockCatalog is a configurable test double for [services.Catalog].
type MockCatalog struct {
	Artists       map[string]*models.Artist      // search query -> artist
	Tracks        map[string][]services.TopTrack // artist ID -> top tracks
	Related       map[string][]models.Artist     // artist ID -> related artists
	Playlists     []*models.Playlist
	SearchCalls   []string
	AddCalls      [][]string
	Authenticated bool
	Err           error
}

func (m *MockCatalog) Authenticate(ctx context.Context, credentials map[string]string) error {
	m.Authenticated = true
	return m.Err
}

func (m *MockCatalog) SearchArtist(ctx context.Context, name string) (*models.Artist, error) {
	m.SearchCalls = append(m.SearchCalls, name)
	if m.Err != nil {
		return nil, m.Err
	}
	if artist, ok := m.Artists[name]; ok {
		return artist, nil
	}
	return nil, fmt.Errorf("no results for artist %q", name)
}

func (m *MockCatalog) TopTracks(ctx context.Context, artistID string) ([]services.TopTrack, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tracks[artistID], nil
}

func (m *MockCatalog) AudioFeatures(ctx context.Context, trackID string) (*services.AudioFeatures, error) {
	return nil, m.Err
}

func (m *MockCatalog) RelatedArtists(ctx context.Context, artistID string) ([]models.Artist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Related[artistID], nil
}

func (m *MockCatalog) CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	playlist := &models.Playlist{
		ID:          fmt.Sprintf("pl%d", len(m.Playlists)),
		Name:        name,
		Description: description,
		Public:      public,
	}
	m.Playlists = append(m.Playlists, playlist)
	return playlist, nil
}

func (m *MockCatalog) AddPlaylistItems(ctx context.Context, playlistID string, uris []string) error {
	if m.Err != nil {
		return m.Err
	}
	m.AddCalls = append(m.AddCalls, uris)
	return nil
}

func (m *MockCatalog) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
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
