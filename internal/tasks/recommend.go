package tasks

import (
	"context"
	"sort"

	"github.com/desertthunder/setlist/internal/models"
)

const defaultRecommendLimit = 10

// Recommend ranks artists related to the given ones by how many of the
// inputs they are related to, excluding the inputs themselves.
//
// A failing related-artists lookup skips that input; the call only fails when
// every lookup failed and nothing could be ranked. Ties rank in first-seen
// order, so the output is deterministic for a given input order.
func (e *PlaylistEngine) Recommend(ctx context.Context, progress chan<- ProgressUpdate, artists []models.Artist, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = defaultRecommendLimit
	}

	inputIDs := make(map[string]bool, len(artists))
	for _, a := range artists {
		inputIDs[a.ID] = true
	}

	type tally struct {
		order  int
		artist models.Artist
		count  int
	}
	seen := make(map[string]*tally)
	var ranked []*tally

	var lastErr error
	for i, artist := range artists {
		e.sendProgress(progress, recommendUpdate(i+1, len(artists), artist.Name))

		related, err := e.catalog.RelatedArtists(ctx, artist.ID)
		if err != nil {
			lastErr = err
			continue
		}

		for _, candidate := range related {
			if inputIDs[candidate.ID] {
				continue
			}
			entry, ok := seen[candidate.ID]
			if !ok {
				entry = &tally{order: len(ranked), artist: candidate}
				seen[candidate.ID] = entry
				ranked = append(ranked, entry)
			}
			entry.count++
		}
	}

	if len(ranked) == 0 && lastErr != nil {
		return nil, lastErr
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].order < ranked[j].order
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	recommendations := make([]Recommendation, 0, len(ranked))
	for _, entry := range ranked {
		recommendations = append(recommendations, Recommendation{Artist: entry.artist, Count: entry.count})
	}
	return recommendations, nil
}
