package curation

import (
	"reflect"
	"sort"
	"testing"

	"github.com/desertthunder/setlist/internal/models"
)

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		title       string
		wantBase    string
		wantVersion string
	}{
		{"Where You Are", "Where You Are", ""},
		{"Where You Are - Kaskade Remix", "Where You Are", "Kaskade Remix"},
		{"Alive - Radio Edit - 2014", "Alive", "Radio Edit - 2014"},
		{"Dash-Titled", "Dash-Titled", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			base, version := SplitTitle(tt.title)
			if base != tt.wantBase || version != tt.wantVersion {
				t.Errorf("SplitTitle(%q) = (%q, %q), want (%q, %q)",
					tt.title, base, version, tt.wantBase, tt.wantVersion)
			}
		})
	}
}

func TestCollapseVersions(t *testing.T) {
	t.Run("keeps most popular version", func(t *testing.T) {
		input := []models.Track{
			track("Where You Are", "t1", 50, "Willow", 70),
			track("Where You Are - Kaskade Remix", "t2", 80, "Willow", 70),
		}

		got, removed := CollapseVersions(input)

		if len(got) != 1 || got[0].Title != "Where You Are - Kaskade Remix" {
			t.Errorf("kept = %v, want only the remix", titles(got))
		}
		if !reflect.DeepEqual(removed, []string{"Where You Are"}) {
			t.Errorf("removed = %v", removed)
		}
	})

	t.Run("popularity tie keeps first row", func(t *testing.T) {
		input := []models.Track{
			track("Echo - Live", "t1", 60, "Aster", 50),
			track("Echo", "t2", 60, "Aster", 50),
		}

		got, _ := CollapseVersions(input)

		if len(got) != 1 || got[0].TrackID != "t1" {
			t.Errorf("expected first-encountered row to win the tie, got %v", got)
		}
	})

	t.Run("output sorted by artist name", func(t *testing.T) {
		input := []models.Track{
			track("Zenith", "t1", 40, "Zed", 60),
			track("Apex", "t2", 90, "Ada", 80),
			track("Midline", "t3", 70, "Mia", 70),
		}

		got, _ := CollapseVersions(input)

		names := make([]string, 0, len(got))
		for _, row := range got {
			names = append(names, row.ArtistName)
		}
		if !sort.StringsAreSorted(names) {
			t.Errorf("output not sorted by artist name: %v", names)
		}
	})

	t.Run("within artist sorted by popularity descending", func(t *testing.T) {
		input := []models.Track{
			track("Low", "t1", 20, "Ada", 80),
			track("High", "t2", 90, "Ada", 80),
			track("Mid", "t3", 50, "Ada", 80),
		}

		got, _ := CollapseVersions(input)

		if !reflect.DeepEqual(titles(got), []string{"High", "Mid", "Low"}) {
			t.Errorf("within-artist order = %v, want popularity descending", titles(got))
		}
	})

	t.Run("groups by base title across artists", func(t *testing.T) {
		// Two different artists sharing a base title collapse to one row.
		// Deliberate fidelity to the title-only grouping rule; flagged as a
		// defect candidate in DESIGN.md.
		input := []models.Track{
			track("Home", "t1", 40, "Ada", 80),
			track("Home - Acoustic", "t2", 75, "Zed", 60),
		}

		got, removed := CollapseVersions(input)

		if len(got) != 1 || got[0].TrackID != "t2" {
			t.Errorf("expected cross-artist collapse to the popular version, got %v", titles(got))
		}
		if !reflect.DeepEqual(removed, []string{"Home"}) {
			t.Errorf("removed = %v", removed)
		}
	})

	t.Run("no duplicate base names in output", func(t *testing.T) {
		input := []models.Track{
			track("Pulse", "t1", 10, "Ada", 80),
			track("Pulse - VIP", "t2", 20, "Ada", 80),
			track("Pulse - Edit", "t3", 30, "Ada", 80),
			track("Drift", "t4", 40, "Zed", 60),
		}

		got, removed := CollapseVersions(input)

		bases := map[string]bool{}
		for _, row := range got {
			base, _ := SplitTitle(row.Title)
			if bases[base] {
				t.Errorf("duplicate base name %q in output", base)
			}
			bases[base] = true
		}
		if len(got)+len(removed) != len(input) {
			t.Errorf("row count mismatch: kept %d removed %d input %d", len(got), len(removed), len(input))
		}
	})
}
