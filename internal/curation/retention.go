package curation

import "github.com/desertthunder/setlist/internal/models"

const (
	// minRetentionPct is the floor on the retention percentage so even the
	// least popular artist keeps a meaningful share of their tracks.
	minRetentionPct = 30
	// minRetainedTracks guarantees every artist at least two rows.
	minRetainedTracks = 2
)

// FilterByArtistPopularity trims each artist's rows in proportion to how
// close their popularity is to the most popular artist in the table.
//
// With maxCount the largest number of rows any single artist has and maxPop
// the highest artist popularity, an artist keeps
//
//	max(2, floor(clamp(100-(maxPop-pop), 30, 100)/100 * maxCount))
//
// rows. The first N rows of each artist in arrival order are kept - the stage
// performs no re-sort, so callers control which rows are "first" (after
// [CollapseVersions] that is popularity-descending within each artist).
// Removed titles are reported in input order.
func FilterByArtistPopularity(table []models.Track) ([]models.Track, []string) {
	if len(table) == 0 {
		return []models.Track{}, nil
	}

	counts := make(map[string]int)
	maxCount := 0
	maxPop := 0
	for _, row := range table {
		counts[row.ArtistName]++
		if counts[row.ArtistName] > maxCount {
			maxCount = counts[row.ArtistName]
		}
		if row.ArtistPopularity > maxPop {
			maxPop = row.ArtistPopularity
		}
	}

	quota := make(map[string]int, len(counts))
	for _, row := range table {
		if _, ok := quota[row.ArtistName]; ok {
			continue
		}
		pct := clamp(100-(maxPop-row.ArtistPopularity), minRetentionPct, 100)
		retained := pct * maxCount / 100 // floor; all operands non-negative
		if retained < minRetainedTracks {
			retained = minRetainedTracks
		}
		quota[row.ArtistName] = retained
	}

	kept := make([]models.Track, 0, len(table))
	var removed []string
	taken := make(map[string]int, len(counts))
	for _, row := range table {
		if taken[row.ArtistName] < quota[row.ArtistName] {
			taken[row.ArtistName]++
			kept = append(kept, row)
		} else {
			removed = append(removed, row.Title)
		}
	}

	return kept, removed
}

func clamp(v, lower, upper int) int {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}
