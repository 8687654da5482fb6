// package services defines interface Catalog for interacting with music
// catalog HTTP APIs
//
// Spotify
package services

import (
	"context"

	"github.com/desertthunder/setlist/internal/models"
)

// MaxPlaylistBatch is the largest number of item references the provider
// accepts in a single AddPlaylistItems call.
const MaxPlaylistBatch = 100

// TopTrack is a provider-ranked track reference before it is joined with its
// artist's metadata.
type TopTrack struct {
	ID         string
	Title      string
	URI        string
	Popularity int
}

// AudioFeatures holds the provider's audio analysis for one track. A nil
// *AudioFeatures means the provider has no feature data for the track.
type AudioFeatures struct {
	Danceability float64
	Energy       float64
	Tempo        float64
	Speechiness  float64
}

// Catalog defines the interface for music catalog providers (Spotify) that
// can resolve artists, rank tracks, and publish playlists.
type Catalog interface {
	// Authenticate performs OAuth or client-credential authentication with
	// the provider. Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// SearchArtist resolves a free-text name to the provider's best match
	// (limit 1). Zero results is an error naming the artist.
	SearchArtist(ctx context.Context, name string) (*models.Artist, error)

	// TopTracks retrieves the provider-ranked top tracks for an artist.
	TopTracks(ctx context.Context, artistID string) ([]TopTrack, error)

	// AudioFeatures retrieves the audio analysis for a track. A track
	// without feature data returns (nil, nil).
	AudioFeatures(ctx context.Context, trackID string) (*AudioFeatures, error)

	// RelatedArtists retrieves artists the provider considers similar.
	RelatedArtists(ctx context.Context, artistID string) ([]models.Artist, error)

	// CreatePlaylist creates an empty playlist for the authenticated user.
	CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error)

	// AddPlaylistItems appends item references to a playlist. Callers pass
	// at most MaxPlaylistBatch references per call.
	AddPlaylistItems(ctx context.Context, playlistID string, uris []string) error

	// Name returns the name of the provider (e.g., "Spotify")
	Name() string
}
