package curation

import (
	"sort"
	"strings"

	"github.com/desertthunder/setlist/internal/models"
)

// versionSeparator splits a track title into base name and version suffix.
// "Where You Are - Kaskade Remix" -> ("Where You Are", "Kaskade Remix").
const versionSeparator = " - "

// SplitTitle parses a track title into its base name and version suffix.
// Titles without a " - " separator have an empty version. The split happens at
// the first separator, so "A - B - C" parses as base "A", version "B - C".
func SplitTitle(title string) (base, version string) {
	if idx := strings.Index(title, versionSeparator); idx >= 0 {
		return title[:idx], title[idx+len(versionSeparator):]
	}
	return title, ""
}

// CollapseVersions keeps a single version of each song: rows are grouped by
// the base name parsed from their title, and only the row with the highest
// track popularity survives (ties keep the earliest row). Removed titles are
// reported in input order.
//
// Grouping is by base title alone, not scoped to the artist. Two unrelated
// songs by different artists that happen to share a base title therefore
// collapse to one row. Known defect, kept for output compatibility; see the
// curation notes in DESIGN.md.
//
// The returned table is sorted by artist name ascending; within an artist,
// rows are ordered by track popularity descending. That ordering is part of
// the contract - the popularity trim downstream keeps each artist's first N
// rows.
func CollapseVersions(table []models.Track) ([]models.Track, []string) {
	type candidate struct {
		index int
		row   models.Track
	}

	winners := make(map[string]candidate, len(table))
	for i, row := range table {
		base, _ := SplitTitle(row.Title)
		best, ok := winners[base]
		if !ok || row.TrackPopularity > best.row.TrackPopularity {
			winners[base] = candidate{index: i, row: row}
		}
	}

	winningIndex := make(map[int]bool, len(winners))
	for _, c := range winners {
		winningIndex[c.index] = true
	}

	kept := make([]models.Track, 0, len(winners))
	var removed []string
	for i, row := range table {
		if winningIndex[i] {
			kept = append(kept, row)
		} else {
			removed = append(removed, row.Title)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].TrackPopularity > kept[j].TrackPopularity
	})
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].ArtistName < kept[j].ArtistName
	})

	return kept, removed
}
