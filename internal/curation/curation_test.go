package curation

import (
	"reflect"
	"testing"

	"github.com/desertthunder/setlist/internal/models"
)

// A small festival worth of rows: three artists, one shared track, one remix
// pair, and one low-popularity artist that the trim should cut down to the
// floor of two rows.
func festivalTable() []models.Track {
	return []models.Track{
		track("Sunrise", "h1", 80, "Headline", 95),
		track("Sunrise - Club Remix", "h2", 90, "Headline", 95),
		track("Midnight", "h3", 70, "Headline", 95),
		track("Midnight", "h3", 70, "Support", 60), // shared track, same ID
		track("Drift", "s1", 55, "Support", 60),
		track("Echoes", "s2", 50, "Support", 60),
		track("Opener A", "o1", 30, "Opener", 20),
		track("Opener B", "o2", 25, "Opener", 20),
		track("Opener C", "o3", 20, "Opener", 20),
	}
}

func TestCurate(t *testing.T) {
	t.Run("full pipeline", func(t *testing.T) {
		got := Curate(festivalTable(), Options{PopularityFilter: true})

		if !reflect.DeepEqual(got.DuplicatesRemoved, []string{"Midnight"}) {
			t.Errorf("DuplicatesRemoved = %v", got.DuplicatesRemoved)
		}
		if !reflect.DeepEqual(got.VersionsRemoved, []string{"Sunrise"}) {
			t.Errorf("VersionsRemoved = %v, want the lower-popularity original", got.VersionsRemoved)
		}
		// Opener sits 75 points below Headline, so its share of 25% clamps
		// up to the 30% floor; 30% of the 3-track max floors to 0 rows,
		// raised to the minimum of 2. Opener C is the row trimmed.
		if !reflect.DeepEqual(got.TrimmedRemoved, []string{"Opener C"}) {
			t.Errorf("TrimmedRemoved = %v", got.TrimmedRemoved)
		}

		want := []string{
			"Sunrise - Club Remix", "Midnight",
			"Opener A", "Opener B",
			"Drift", "Echoes",
		}
		if !reflect.DeepEqual(titles(got.Tracks), want) {
			t.Errorf("curated titles = %v, want %v", titles(got.Tracks), want)
		}
	})

	t.Run("include versions skips the collapse", func(t *testing.T) {
		got := Curate(festivalTable(), Options{IncludeVersions: true})

		if got.VersionsRemoved != nil {
			t.Errorf("VersionsRemoved = %v, want none", got.VersionsRemoved)
		}
		for _, title := range []string{"Sunrise", "Sunrise - Club Remix"} {
			found := false
			for _, row := range got.Tracks {
				if row.Title == title {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %q in output", title)
			}
		}
	})

	t.Run("trim disabled keeps every artist row", func(t *testing.T) {
		got := Curate(festivalTable(), Options{IncludeVersions: true})

		if got.TrimmedRemoved != nil {
			t.Errorf("TrimmedRemoved = %v, want none", got.TrimmedRemoved)
		}
		if len(got.Tracks) != len(festivalTable())-1 {
			t.Errorf("len = %d, want all rows minus one duplicate", len(got.Tracks))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		got := Curate(nil, Options{PopularityFilter: true})
		if len(got.Tracks) != 0 {
			t.Errorf("tracks = %v, want empty", got.Tracks)
		}
	})
}
