package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/setlist/internal/models"
)

// Resolve maps artist names to resolved catalog records, one output per
// input, in input order.
//
// A best-match whose display name does not case-insensitively equal the query
// produces a [ResolutionWarning] but is still used; ambiguous spellings are a
// resolution-accuracy concern, not an error. A name with zero search results
// is a hard failure naming the artist, never a silent skip.
func (e *PlaylistEngine) Resolve(ctx context.Context, progress chan<- ProgressUpdate, names []string) ([]models.Artist, []ResolutionWarning, error) {
	artists := make([]models.Artist, 0, len(names))
	var warnings []ResolutionWarning

	total := len(names)
	for i, name := range names {
		e.sendProgress(progress, resolveArtistUpdate(i+1, total, name))

		artist, err := e.catalog.SearchArtist(ctx, name)
		if err != nil {
			return nil, warnings, fmt.Errorf("failed to resolve %q: %w", name, err)
		}

		if !strings.EqualFold(artist.Name, name) {
			warning := ResolutionWarning{Query: name, Resolved: artist.Name}
			warnings = append(warnings, warning)
			e.sendProgress(progress, resolveMismatchUpdate(i+1, total, warning))
		}

		artists = append(artists, *artist)
	}

	return artists, warnings, nil
}
