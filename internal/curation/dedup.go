package curation

import "github.com/desertthunder/setlist/internal/models"

// RemoveDuplicates drops rows that share a track ID with an earlier row.
//
// The track ID is the provider's identity for a distinct recording, so two
// rows with the same ID are the exact same track queried twice (e.g. a song
// two collected artists share). The first occurrence is kept; output order is
// input order restricted to kept rows. The second return value lists the
// titles of dropped rows in input order.
func RemoveDuplicates(table []models.Track) ([]models.Track, []string) {
	kept := make([]models.Track, 0, len(table))
	var removed []string

	seen := make(map[string]bool, len(table))
	for _, row := range table {
		if seen[row.TrackID] {
			removed = append(removed, row.Title)
			continue
		}
		seen[row.TrackID] = true
		kept = append(kept, row)
	}

	return kept, removed
}
