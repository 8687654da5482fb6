package formatter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/desertthunder/setlist/internal/curation"
	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/tasks"
)

func floatPtr(v float64) *float64 { return &v }

func sampleTracks() []models.Track {
	return []models.Track{
		{
			Title:            "Sunrise - Club Remix",
			TrackID:          "t1",
			TrackPopularity:  90,
			Danceability:     floatPtr(0.8),
			Energy:           floatPtr(0.9),
			Tempo:            floatPtr(128),
			Speechiness:      floatPtr(0.05),
			ArtistName:       "Headline",
			ArtistID:         "a1",
			ArtistPopularity: 95,
			ArtistGenres:     []string{"EDM", "House"},
		},
		{
			Title:            "Drift",
			TrackID:          "t2",
			TrackPopularity:  50,
			ArtistName:       "Support",
			ArtistID:         "a2",
			ArtistPopularity: 60,
			ArtistGenres:     []string{"EDM"},
		},
	}
}

func TestTracksToCSV(t *testing.T) {
	data, err := TracksToCSV(sampleTracks())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[1][0] != "Sunrise - Club Remix" || records[1][3] != "0.8" {
		t.Errorf("unexpected first row %v", records[1])
	}
	// Absent features are empty cells, not zeros.
	for _, col := range []int{3, 4, 5, 6} {
		if records[2][col] != "" {
			t.Errorf("expected empty feature cell, got %q", records[2][col])
		}
	}
	if records[1][10] != "EDM; House" {
		t.Errorf("genres cell = %q", records[1][10])
	}
}

func TestArtistsToCSV(t *testing.T) {
	artists := []models.Artist{
		{ID: "a1", Name: "Headline", Popularity: 95, Genres: []string{"EDM"}, ImageURL: "https://img/h"},
	}

	data, err := ArtistsToCSV(artists)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	want := []string{"Headline", "a1", "95", "EDM", "https://img/h"}
	if !reflect.DeepEqual(records[1], want) {
		t.Errorf("row = %v, want %v", records[1], want)
	}
}

func TestWriteTracksCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.csv")
	if err := WriteTracksCSV(sampleTracks(), path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
	if !strings.HasPrefix(string(data), "Title,Track ID") {
		t.Errorf("unexpected file contents: %s", data[:40])
	}
}

func TestBuildSummaryMarkdown(t *testing.T) {
	result := &tasks.BuildResult{
		Playlist: &models.Playlist{
			Name:   "Setlist - Test Fest",
			Public: true,
			URL:    "https://open.spotify.com/playlist/pl1",
		},
		Artists:        []models.Artist{{Name: "Headline"}, {Name: "Support"}},
		Warnings:       []tasks.ResolutionWarning{{Query: "Arya", Resolved: "Arya (Serbia)"}},
		TotalCollected: 5,
		Curation: curation.Result{
			Tracks:            sampleTracks(),
			DuplicatesRemoved: []string{"Midnight"},
			VersionsRemoved:   []string{"Sunrise"},
		},
	}
	recs := []tasks.Recommendation{{Artist: models.Artist{Name: "Shared"}, Count: 2}}

	out := string(BuildSummaryMarkdown(result, recs))

	for _, want := range []string{
		"# Setlist - Test Fest",
		"**Visibility**: Public",
		"- Tracks collected: 5",
		"- Tracks kept: 2",
		"- Duplicates removed: 1",
		"\"Arya\" resolved to \"Arya (Serbia)\"",
		"- EDM",
		"- Mean track popularity: 70.0",
		"- Mean tempo: 128.000 (1 tracks with data)",
		"1. Shared (related to 2 of your artists)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}
}

func TestTopGenres(t *testing.T) {
	tracks := []models.Track{
		{ArtistGenres: []string{"EDM", "House"}},
		{ArtistGenres: []string{"EDM", "Trance"}},
		{ArtistGenres: []string{"House"}},
	}

	got := topGenres(tracks, 2)
	if !reflect.DeepEqual(got, []string{"EDM", "House"}) {
		t.Errorf("topGenres = %v", got)
	}

	if topGenres(nil, 3) != nil {
		t.Error("expected nil for an empty table")
	}
}
