package tasks

import (
	"fmt"

	"github.com/desertthunder/setlist/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ScrapeLineup Phase = iota
	ResolveArtists
	CollectTracks
	CurateTracks
	CreatePlaylist
	AddTracks
	Recommend
)

func (p Phase) String() string {
	switch p {
	case ScrapeLineup:
		return "scrape_lineup"
	case ResolveArtists:
		return "resolve_artists"
	case CollectTracks:
		return "collect_tracks"
	case CurateTracks:
		return "curate_tracks"
	case CreatePlaylist:
		return "create_playlist"
	case AddTracks:
		return "add_tracks"
	case Recommend:
		return "recommend"
	default:
		return ""
	}
}

func resolveArtistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveArtists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving: %s...", step, total, name),
	}
}

func resolveMismatchUpdate(step, total int, warning ResolutionWarning) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveArtists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ⚠ %q resolved to %q", step, total, warning.Query, warning.Resolved),
		Data:    warning,
	}
}

func collectTracksUpdate(step, total int, artist string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CollectTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Collecting top tracks: %s...", step, total, artist),
	}
}

func curateTracksUpdate(collected, kept int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CurateTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Curated %d of %d collected tracks", kept, collected),
	}
}

func createPlaylistUpdate(pl *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Playlist created: %s (ID: %s)", pl.Name, pl.ID),
		Data:    pl,
	}
}

func addTracksUpdate(batch, totalBatches, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    batch,
		Total:   totalBatches,
		Message: fmt.Sprintf("[%d/%d] Adding %d tracks...", batch, totalBatches, count),
	}
}

func recommendUpdate(step, total int, artist string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Recommend,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Finding artists related to %s...", step, total, artist),
	}
}
