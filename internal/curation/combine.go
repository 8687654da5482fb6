package curation

import "github.com/desertthunder/setlist/internal/models"

// CombineArtists merges the two sources of artist selection into one
// deduplicated set: lineup artists whose name appears in selectedNames,
// followed by the manually entered artists, in that order. Duplicate names
// keep the first occurrence, so a lineup artist re-entered by hand is not
// duplicated. Pure; no I/O.
func CombineArtists(selectedNames []string, lineup, entered []models.Artist) []models.Artist {
	selected := make(map[string]bool, len(selectedNames))
	for _, name := range selectedNames {
		selected[name] = true
	}

	combined := make([]models.Artist, 0, len(selectedNames)+len(entered))
	seen := make(map[string]bool)

	for _, artist := range lineup {
		if selected[artist.Name] && !seen[artist.Name] {
			seen[artist.Name] = true
			combined = append(combined, artist)
		}
	}

	for _, artist := range entered {
		if !seen[artist.Name] {
			seen[artist.Name] = true
			combined = append(combined, artist)
		}
	}

	return combined
}

// CombineNames merges lineup artist names with manually entered names before
// resolution, lineup first, deduplicating by name with the first occurrence
// winning. A lineup artist re-entered by hand is resolved once, not twice.
func CombineNames(lineup, entered []string) []string {
	combined := make([]string, 0, len(lineup)+len(entered))
	seen := make(map[string]bool, len(lineup)+len(entered))

	for _, name := range lineup {
		if !seen[name] {
			seen[name] = true
			combined = append(combined, name)
		}
	}

	for _, name := range entered {
		if !seen[name] {
			seen[name] = true
			combined = append(combined, name)
		}
	}

	return combined
}
