package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/services"
	"github.com/desertthunder/setlist/internal/shared"
)

const defaultPlaylistDescription = "Created with setlist."

// Publish creates a playlist and uploads the curated track references in
// consecutive batches of at most [services.MaxPlaylistBatch], in table order.
func (e *PlaylistEngine) Publish(ctx context.Context, progress chan<- ProgressUpdate, name string, tracks []models.Track, opts BuildOpts) (*models.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no tracks were curated - cannot create empty playlist")
	}

	description := opts.Description
	if description == "" {
		description = defaultPlaylistDescription
	}

	playlist, err := e.catalog.CreatePlaylist(ctx, name, description, opts.Public)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create playlist: %v", shared.ErrAPIRequest, err)
	}
	e.sendProgress(progress, createPlaylistUpdate(playlist))

	uris := make([]string, len(tracks))
	for i, track := range tracks {
		uris[i] = trackURI(track.TrackID)
	}

	batches := (len(uris) + services.MaxPlaylistBatch - 1) / services.MaxPlaylistBatch
	for i := 0; i < len(uris); i += services.MaxPlaylistBatch {
		end := i + services.MaxPlaylistBatch
		if end > len(uris) {
			end = len(uris)
		}

		batch := i/services.MaxPlaylistBatch + 1
		e.sendProgress(progress, addTracksUpdate(batch, batches, end-i))

		if err := e.catalog.AddPlaylistItems(ctx, playlist.ID, uris[i:end]); err != nil {
			return playlist, fmt.Errorf("%w: failed to add batch %d of %d: %v", shared.ErrAPIRequest, batch, batches, err)
		}
	}

	playlist.TrackCount = len(tracks)
	return playlist, nil
}

// trackURI builds the provider item reference for a track ID.
func trackURI(trackID string) string {
	return "spotify:track:" + trackID
}
