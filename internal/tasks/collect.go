package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/desertthunder/setlist/internal/models"
)

const (
	defaultTracksPerArtist = 10
	defaultCollectWorkers  = 5
	maxCollectWorkers      = 10
)

// Collect fetches each artist's top tracks and audio features, producing the
// flat table consumed by the curation pipeline.
//
// Artists are processed by a bounded worker pool; no ordering is assumed
// during collection and results are re-joined in artist order afterward, so
// the output is deterministic. A track the provider has no audio analysis for
// gets nil feature fields, never zeros. An artist whose fetch fails
// contributes no rows and fails the whole collection, with failures reported
// in artist order.
func (e *PlaylistEngine) Collect(ctx context.Context, progress chan<- ProgressUpdate, artists []models.Artist, opts BuildOpts) ([]models.Track, error) {
	perArtist := opts.TracksPerArtist
	if perArtist <= 0 {
		perArtist = defaultTracksPerArtist
	}

	workers := opts.NumWorkers
	if workers <= 0 {
		workers = defaultCollectWorkers
	}
	if workers > maxCollectWorkers {
		workers = maxCollectWorkers
	}
	if workers > len(artists) {
		workers = len(artists)
	}

	rows := make([][]models.Track, len(artists))
	errs := make([]error, len(artists))

	jobs := make(chan int)
	var completed atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				artist := artists[idx]
				rows[idx], errs[idx] = e.collectArtist(ctx, artist, perArtist)

				step := int(completed.Add(1))
				e.sendProgress(progress, collectTracksUpdate(step, len(artists), artist.Name))
			}
		}()
	}

	for i := range artists {
		if ctx.Err() != nil {
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	var table []models.Track
	for _, artistRows := range rows {
		table = append(table, artistRows...)
	}
	return table, nil
}

// collectArtist builds the track rows for one artist: the first perArtist
// provider-ranked top tracks, each joined with the artist's metadata and its
// audio features when available.
func (e *PlaylistEngine) collectArtist(ctx context.Context, artist models.Artist, perArtist int) ([]models.Track, error) {
	top, err := e.catalog.TopTracks(ctx, artist.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect tracks for %q: %w", artist.Name, err)
	}

	if len(top) > perArtist {
		top = top[:perArtist]
	}

	rows := make([]models.Track, 0, len(top))
	for _, t := range top {
		row := models.Track{
			Title:            t.Title,
			TrackID:          t.ID,
			TrackPopularity:  t.Popularity,
			ArtistName:       artist.Name,
			ArtistID:         artist.ID,
			ArtistGenres:     artist.Genres,
			ArtistPopularity: artist.Popularity,
			ArtistImageURL:   artist.ImageURL,
		}

		features, err := e.catalog.AudioFeatures(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch features for %q: %w", t.Title, err)
		}
		if features != nil {
			row.Danceability = &features.Danceability
			row.Energy = &features.Energy
			row.Tempo = &features.Tempo
			row.Speechiness = &features.Speechiness
		}

		rows = append(rows, row)
	}

	return rows, nil
}
