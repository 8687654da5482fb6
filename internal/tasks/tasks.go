// package tasks implements the festival playlist build pipeline.
//
// The core abstraction is BuildEngine, which orchestrates artist resolution,
// track collection, curation, and playlist publishing. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI
// layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/setlist/internal/curation"
	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/services"
	"github.com/desertthunder/setlist/internal/shared"
)

// ResolutionWarning records a search whose best match did not
// case-insensitively equal the query. The resolved record is still used.
type ResolutionWarning struct {
	Query    string // Name as entered or scraped
	Resolved string // Display name the provider returned
}

// BuildOpts contains configuration for a full playlist build.
type BuildOpts struct {
	TracksPerArtist  int    // Top tracks collected per artist (default: 10)
	IncludeVersions  bool   // Keep remixes/edits instead of collapsing them
	PopularityFilter bool   // Trim per-artist rows by artist popularity
	Public           bool   // Playlist visibility
	Description      string // Playlist description (default: "Created with setlist.")
	NumWorkers       int    // Concurrent collection workers (default: 5)
}

// BuildResult contains all data from a full playlist build.
type BuildResult struct {
	Playlist       *models.Playlist    // Created playlist
	Artists        []models.Artist     // Resolved artist records, input order
	Warnings       []ResolutionWarning // Non-fatal name mismatches
	Curation       curation.Result     // Curated table and per-stage removals
	TotalCollected int                 // Track rows collected before curation
}

// Recommendation is an artist related to the build's inputs, ranked by how
// many input artists it was related to.
type Recommendation struct {
	Artist models.Artist
	Count  int
}

// BuildEngine defines operations for building playlists from artist lineups.
type BuildEngine interface {
	// Resolve maps artist names to resolved records, one per input, in input order.
	Resolve(ctx context.Context, progress chan<- ProgressUpdate, names []string) ([]models.Artist, []ResolutionWarning, error)

	// Collect fetches top tracks and audio features for each artist, producing the raw curation table.
	Collect(ctx context.Context, progress chan<- ProgressUpdate, artists []models.Artist, opts BuildOpts) ([]models.Track, error)

	// Publish creates a playlist and uploads the curated tracks in batches.
	Publish(ctx context.Context, progress chan<- ProgressUpdate, name string, tracks []models.Track, opts BuildOpts) (*models.Playlist, error)

	// Recommend ranks artists related to the given ones, excluding the inputs themselves.
	Recommend(ctx context.Context, progress chan<- ProgressUpdate, artists []models.Artist, limit int) ([]Recommendation, error)

	// Build runs the full pipeline: resolve, collect, curate, publish.
	Build(ctx context.Context, progress chan<- ProgressUpdate, names []string, playlistName string, opts BuildOpts) (*BuildResult, error)
}

// PlaylistEngine implements BuildEngine against a catalog provider.
type PlaylistEngine struct {
	catalog services.Catalog
}

// NewPlaylistEngine creates a new PlaylistEngine with the provided catalog.
func NewPlaylistEngine(catalog services.Catalog) *PlaylistEngine {
	return &PlaylistEngine{catalog: catalog}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Build runs the full pipeline for the given artist names and publishes the
// curated playlist.
func (e *PlaylistEngine) Build(ctx context.Context, progress chan<- ProgressUpdate, names []string, playlistName string, opts BuildOpts) (*BuildResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no artists to build from", shared.ErrMissingArgument)
	}

	result := &BuildResult{}

	artists, warnings, err := e.Resolve(ctx, progress, names)
	if err != nil {
		return nil, err
	}
	result.Artists = artists
	result.Warnings = warnings

	table, err := e.Collect(ctx, progress, artists, opts)
	if err != nil {
		return nil, err
	}
	result.TotalCollected = len(table)

	result.Curation = curation.Curate(table, curation.Options{
		IncludeVersions:  opts.IncludeVersions,
		PopularityFilter: opts.PopularityFilter,
	})
	e.sendProgress(progress, curateTracksUpdate(result.TotalCollected, len(result.Curation.Tracks)))

	playlist, err := e.Publish(ctx, progress, playlistName, result.Curation.Tracks, opts)
	if err != nil {
		return result, err
	}
	result.Playlist = playlist

	return result, nil
}
