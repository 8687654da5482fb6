package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/services"
	"github.com/desertthunder/setlist/internal/shared"
)

type mockCatalog struct {
	mu sync.Mutex

	searchResults map[string]*models.Artist
	topTracks     map[string][]services.TopTrack
	features      map[string]*services.AudioFeatures
	related       map[string][]models.Artist

	searchErr    error
	topTracksErr map[string]error
	featuresErr  error
	relatedErr   error
	createErr    error
	addErr       error

	createdPlaylists []models.Playlist
	addCalls         [][]string
}

func (m *mockCatalog) Name() string { return "Mock" }

func (m *mockCatalog) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (m *mockCatalog) SearchArtist(ctx context.Context, name string) (*models.Artist, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if artist, ok := m.searchResults[name]; ok {
		return artist, nil
	}
	return nil, fmt.Errorf("%w: no results for %q", shared.ErrArtistNotFound, name)
}

func (m *mockCatalog) TopTracks(ctx context.Context, artistID string) ([]services.TopTrack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.topTracksErr[artistID]; ok {
		return nil, err
	}
	return m.topTracks[artistID], nil
}

func (m *mockCatalog) AudioFeatures(ctx context.Context, trackID string) (*services.AudioFeatures, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.featuresErr != nil {
		return nil, m.featuresErr
	}
	return m.features[trackID], nil
}

func (m *mockCatalog) RelatedArtists(ctx context.Context, artistID string) ([]models.Artist, error) {
	if m.relatedErr != nil {
		return nil, m.relatedErr
	}
	return m.related[artistID], nil
}

func (m *mockCatalog) CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	pl := models.Playlist{ID: "pl1", Name: name, Description: description, Public: public}
	m.createdPlaylists = append(m.createdPlaylists, pl)
	created := pl
	return &created, nil
}

func (m *mockCatalog) AddPlaylistItems(ctx context.Context, playlistID string, uris []string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.addCalls = append(m.addCalls, uris)
	return nil
}

func mockArtist(id, name string, pop int) *models.Artist {
	return &models.Artist{ID: id, Name: name, Popularity: pop, Genres: []string{"EDM"}}
}

func TestResolve(t *testing.T) {
	t.Run("Resolves In Input Order", func(t *testing.T) {
		catalog := &mockCatalog{searchResults: map[string]*models.Artist{
			"odesza": mockArtist("a1", "ODESZA", 78),
			"Hozier": mockArtist("a2", "Hozier", 82),
		}}
		engine := NewPlaylistEngine(catalog)

		artists, warnings, err := engine.Resolve(context.Background(), nil, []string{"odesza", "Hozier"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(artists) != 2 || artists[0].ID != "a1" || artists[1].ID != "a2" {
			t.Errorf("artists = %+v", artists)
		}
		// "odesza" matches "ODESZA" case-insensitively, so no warning.
		if len(warnings) != 0 {
			t.Errorf("warnings = %+v", warnings)
		}
	})

	t.Run("Mismatched Name Warns But Resolves", func(t *testing.T) {
		catalog := &mockCatalog{searchResults: map[string]*models.Artist{
			"Arya": mockArtist("a3", "Arya (Serbia)", 40),
		}}
		engine := NewPlaylistEngine(catalog)

		artists, warnings, err := engine.Resolve(context.Background(), nil, []string{"Arya"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(artists) != 1 || artists[0].Name != "Arya (Serbia)" {
			t.Errorf("expected the resolved record to be used, got %+v", artists)
		}
		if len(warnings) != 1 || warnings[0].Query != "Arya" || warnings[0].Resolved != "Arya (Serbia)" {
			t.Errorf("warnings = %+v", warnings)
		}
	})

	t.Run("Unresolved Artist Is A Hard Error", func(t *testing.T) {
		catalog := &mockCatalog{searchResults: map[string]*models.Artist{}}
		engine := NewPlaylistEngine(catalog)

		_, _, err := engine.Resolve(context.Background(), nil, []string{"nobody at all"})
		if !errors.Is(err, shared.ErrArtistNotFound) {
			t.Fatalf("expected ErrArtistNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), "nobody at all") {
			t.Errorf("expected the error to name the artist, got %v", err)
		}
	})
}

func TestCollect(t *testing.T) {
	artists := []models.Artist{
		{ID: "a1", Name: "Headline", Popularity: 95, Genres: []string{"EDM"}},
		{ID: "a2", Name: "Support", Popularity: 60},
		{ID: "a3", Name: "Opener", Popularity: 40},
	}

	topFor := func(prefix string, n int) []services.TopTrack {
		tracks := make([]services.TopTrack, 0, n)
		for i := 0; i < n; i++ {
			tracks = append(tracks, services.TopTrack{
				ID:         fmt.Sprintf("%s%d", prefix, i),
				Title:      fmt.Sprintf("%s Song %d", prefix, i),
				Popularity: 90 - i,
			})
		}
		return tracks
	}

	t.Run("Joins Rows In Artist Order", func(t *testing.T) {
		catalog := &mockCatalog{
			topTracks: map[string][]services.TopTrack{
				"a1": topFor("h", 3),
				"a2": topFor("s", 2),
				"a3": topFor("o", 2),
			},
			features: map[string]*services.AudioFeatures{
				"h0": {Danceability: 0.8, Energy: 0.9, Tempo: 128, Speechiness: 0.04},
			},
		}
		engine := NewPlaylistEngine(catalog)

		table, err := engine.Collect(context.Background(), nil, artists, BuildOpts{NumWorkers: 3})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(table) != 7 {
			t.Fatalf("expected 7 rows, got %d", len(table))
		}
		for i, wantArtist := range []string{"Headline", "Headline", "Headline", "Support", "Support", "Opener", "Opener"} {
			if table[i].ArtistName != wantArtist {
				t.Fatalf("row %d artist = %s, want %s", i, table[i].ArtistName, wantArtist)
			}
		}

		if table[0].Danceability == nil || *table[0].Danceability != 0.8 {
			t.Errorf("expected features on h0, got %+v", table[0])
		}
		if table[1].Danceability != nil || table[1].Tempo != nil {
			t.Errorf("expected absent features to stay nil, got %+v", table[1])
		}
		if table[0].ArtistPopularity != 95 || len(table[0].ArtistGenres) != 1 {
			t.Errorf("expected artist metadata stamped on rows, got %+v", table[0])
		}
	})

	t.Run("Caps Tracks Per Artist", func(t *testing.T) {
		catalog := &mockCatalog{
			topTracks: map[string][]services.TopTrack{"a1": topFor("h", 12)},
		}
		engine := NewPlaylistEngine(catalog)

		table, err := engine.Collect(context.Background(), nil, artists[:1], BuildOpts{TracksPerArtist: 5})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(table) != 5 {
			t.Errorf("expected 5 rows, got %d", len(table))
		}
		if table[0].TrackID != "h0" {
			t.Errorf("expected the ranking prefix, got %s first", table[0].TrackID)
		}
	})

	t.Run("Failed Artist Fails The Collection", func(t *testing.T) {
		catalog := &mockCatalog{
			topTracks:    map[string][]services.TopTrack{"a1": topFor("h", 2), "a3": topFor("o", 2)},
			topTracksErr: map[string]error{"a2": shared.ErrAPIRequest},
		}
		engine := NewPlaylistEngine(catalog)

		_, err := engine.Collect(context.Background(), nil, artists, BuildOpts{})
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if !strings.Contains(err.Error(), "Support") {
			t.Errorf("expected the error to name the artist, got %v", err)
		}
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		catalog := &mockCatalog{topTracks: map[string][]services.TopTrack{}}
		engine := NewPlaylistEngine(catalog)

		_, err := engine.Collect(ctx, nil, artists, BuildOpts{NumWorkers: 1})
		if err == nil {
			t.Error("expected an error from a cancelled context")
		}
	})
}

func TestPublish(t *testing.T) {
	makeTracks := func(n int) []models.Track {
		tracks := make([]models.Track, 0, n)
		for i := 0; i < n; i++ {
			tracks = append(tracks, models.Track{
				Title:   fmt.Sprintf("Song %d", i),
				TrackID: fmt.Sprintf("t%d", i),
			})
		}
		return tracks
	}

	t.Run("Batches Of At Most 100", func(t *testing.T) {
		catalog := &mockCatalog{}
		engine := NewPlaylistEngine(catalog)

		playlist, err := engine.Publish(context.Background(), nil, "Setlist - Test Fest", makeTracks(250), BuildOpts{Public: true})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(catalog.addCalls) != 3 {
			t.Fatalf("expected 3 batches, got %d", len(catalog.addCalls))
		}
		for i, want := range []int{100, 100, 50} {
			if len(catalog.addCalls[i]) != want {
				t.Errorf("batch %d size = %d, want %d", i, len(catalog.addCalls[i]), want)
			}
		}
		if catalog.addCalls[0][0] != "spotify:track:t0" {
			t.Errorf("first URI = %s", catalog.addCalls[0][0])
		}
		if playlist.TrackCount != 250 {
			t.Errorf("TrackCount = %d", playlist.TrackCount)
		}
	})

	t.Run("Visibility And Description", func(t *testing.T) {
		catalog := &mockCatalog{}
		engine := NewPlaylistEngine(catalog)

		_, err := engine.Publish(context.Background(), nil, "Setlist - Test Fest", makeTracks(1), BuildOpts{Public: true})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		created := catalog.createdPlaylists[0]
		if !created.Public {
			t.Error("expected a public playlist")
		}
		if created.Description != defaultPlaylistDescription {
			t.Errorf("description = %q", created.Description)
		}
	})

	t.Run("Empty Table", func(t *testing.T) {
		engine := NewPlaylistEngine(&mockCatalog{})
		if _, err := engine.Publish(context.Background(), nil, "Empty", nil, BuildOpts{}); err == nil {
			t.Error("expected an error for an empty track table")
		}
	})

	t.Run("Missing Name", func(t *testing.T) {
		engine := NewPlaylistEngine(&mockCatalog{})
		_, err := engine.Publish(context.Background(), nil, "", makeTracks(1), BuildOpts{})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestRecommend(t *testing.T) {
	inputs := []models.Artist{
		{ID: "a1", Name: "Headline"},
		{ID: "a2", Name: "Support"},
	}

	t.Run("Ranks By Overlap", func(t *testing.T) {
		catalog := &mockCatalog{related: map[string][]models.Artist{
			"a1": {{ID: "r1", Name: "Shared"}, {ID: "r2", Name: "OnlyOne"}},
			"a2": {{ID: "r1", Name: "Shared"}, {ID: "a1", Name: "Headline"}},
		}}
		engine := NewPlaylistEngine(catalog)

		recs, err := engine.Recommend(context.Background(), nil, inputs, 5)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(recs) != 2 {
			t.Fatalf("expected 2 recommendations, got %d", len(recs))
		}
		if recs[0].Artist.ID != "r1" || recs[0].Count != 2 {
			t.Errorf("top recommendation = %+v", recs[0])
		}
		if recs[1].Artist.ID != "r2" || recs[1].Count != 1 {
			t.Errorf("second recommendation = %+v", recs[1])
		}
	})

	t.Run("Excludes Inputs", func(t *testing.T) {
		catalog := &mockCatalog{related: map[string][]models.Artist{
			"a1": {{ID: "a2", Name: "Support"}},
		}}
		engine := NewPlaylistEngine(catalog)

		recs, err := engine.Recommend(context.Background(), nil, inputs, 5)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("expected no recommendations, got %+v", recs)
		}
	})

	t.Run("Ties Keep First-Seen Order", func(t *testing.T) {
		catalog := &mockCatalog{related: map[string][]models.Artist{
			"a1": {{ID: "r1", Name: "First"}, {ID: "r2", Name: "Second"}},
		}}
		engine := NewPlaylistEngine(catalog)

		recs, err := engine.Recommend(context.Background(), nil, inputs, 5)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if recs[0].Artist.ID != "r1" || recs[1].Artist.ID != "r2" {
			t.Errorf("recommendations = %+v", recs)
		}
	})

	t.Run("All Lookups Failing Is An Error", func(t *testing.T) {
		catalog := &mockCatalog{relatedErr: shared.ErrAPIRequest}
		engine := NewPlaylistEngine(catalog)

		_, err := engine.Recommend(context.Background(), nil, inputs, 5)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestBuild(t *testing.T) {
	catalog := &mockCatalog{
		searchResults: map[string]*models.Artist{
			"Headline": mockArtist("a1", "Headline", 95),
			"Support":  mockArtist("a2", "Support", 60),
		},
		topTracks: map[string][]services.TopTrack{
			"a1": {
				{ID: "h1", Title: "Sunrise", Popularity: 80},
				{ID: "h2", Title: "Sunrise - Club Remix", Popularity: 90},
				{ID: "shared", Title: "Midnight", Popularity: 70},
			},
			"a2": {
				{ID: "shared", Title: "Midnight", Popularity: 70},
				{ID: "s1", Title: "Drift", Popularity: 55},
			},
		},
	}
	engine := NewPlaylistEngine(catalog)

	progress := make(chan ProgressUpdate, 64)
	result, err := engine.Build(context.Background(), progress, []string{"Headline", "Support"}, "Setlist - Test Fest", BuildOpts{Public: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.TotalCollected != 5 {
		t.Errorf("TotalCollected = %d, want 5", result.TotalCollected)
	}
	if got := result.Curation.DuplicatesRemoved; len(got) != 1 || got[0] != "Midnight" {
		t.Errorf("DuplicatesRemoved = %v", got)
	}
	if got := result.Curation.VersionsRemoved; len(got) != 1 || got[0] != "Sunrise" {
		t.Errorf("VersionsRemoved = %v", got)
	}
	if result.Playlist == nil || result.Playlist.Name != "Setlist - Test Fest" {
		t.Errorf("playlist = %+v", result.Playlist)
	}
	if len(catalog.addCalls) != 1 || len(catalog.addCalls[0]) != 3 {
		t.Errorf("addCalls = %v", catalog.addCalls)
	}

	close(progress)
	phases := map[Phase]bool{}
	for update := range progress {
		phases[update.Phase] = true
	}
	for _, phase := range []Phase{ResolveArtists, CollectTracks, CurateTracks, CreatePlaylist, AddTracks} {
		if !phases[phase] {
			t.Errorf("expected a %s progress update", phase)
		}
	}
}

func TestBuildValidation(t *testing.T) {
	t.Run("Nil Catalog", func(t *testing.T) {
		engine := NewPlaylistEngine(nil)
		_, err := engine.Build(context.Background(), nil, []string{"x"}, "Name", BuildOpts{})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("No Artists", func(t *testing.T) {
		engine := NewPlaylistEngine(&mockCatalog{})
		_, err := engine.Build(context.Background(), nil, nil, "Name", BuildOpts{})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}
