// package models defines the data model for the festival playlist generator
package models

import (
	"fmt"
	"time"
)

// Artist is a resolved catalog artist record.
//
// ID is the provider's opaque identity and the stable primary key; Name is the
// display name returned by resolution and is not guaranteed unique.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	ImageURL   string   `json:"image_url,omitempty"`
}

// Track is one row of the curation table: a top track joined with the full
// record of its owning artist at collection time.
//
// The four audio feature fields are pointers because the provider may have no
// feature data for a track; nil means "absent", never zero.
type Track struct {
	Title           string `json:"title"`
	TrackID         string `json:"track_id"`
	TrackPopularity int    `json:"track_popularity"`

	Danceability *float64 `json:"danceability,omitempty"`
	Energy       *float64 `json:"energy,omitempty"`
	Tempo        *float64 `json:"tempo,omitempty"`
	Speechiness  *float64 `json:"speechiness,omitempty"`

	ArtistName       string   `json:"artist_name"`
	ArtistID         string   `json:"artist_id"`
	ArtistGenres     []string `json:"artist_genres"`
	ArtistPopularity int      `json:"artist_popularity"`
	ArtistImageURL   string   `json:"artist_image_url,omitempty"`
}

// Playlist is a reference to a playlist created on the catalog service.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
	URL         string `json:"url,omitempty"`
	TrackCount  int    `json:"track_count"`
}

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// CachedArtist is a resolved artist persisted in the local cache database.
type CachedArtist struct {
	id        string
	sequence  int
	artist    Artist
	createdAt time.Time
	updatedAt time.Time
}

// NewCachedArtist creates a CachedArtist wrapping the given resolved record.
func NewCachedArtist(sequence int, artist Artist) *CachedArtist {
	now := time.Now()
	return &CachedArtist{
		sequence:  sequence,
		artist:    artist,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreCachedArtist reconstructs a CachedArtist from database columns.
func RestoreCachedArtist(id string, sequence int, artist Artist, createdAt, updatedAt time.Time) *CachedArtist {
	return &CachedArtist{
		id:        id,
		sequence:  sequence,
		artist:    artist,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c *CachedArtist) ID() string            { return c.id }
func (c *CachedArtist) Sequence() int         { return c.sequence }
func (c *CachedArtist) Artist() Artist        { return c.artist }
func (c *CachedArtist) CreatedAt() time.Time  { return c.createdAt }
func (c *CachedArtist) UpdatedAt() time.Time  { return c.updatedAt }
func (c *CachedArtist) SetID(id string)       { c.id = id }
func (c *CachedArtist) SetUpdatedAt(t time.Time) { c.updatedAt = t }

// Validate checks the cached record carries the fields the cache depends on.
func (c *CachedArtist) Validate() error {
	if c.artist.ID == "" {
		return fmt.Errorf("cached artist missing catalog ID")
	}
	if c.artist.Name == "" {
		return fmt.Errorf("cached artist missing name")
	}
	if c.artist.Popularity < 0 || c.artist.Popularity > 100 {
		return fmt.Errorf("artist popularity %d out of range [0,100]", c.artist.Popularity)
	}
	return nil
}
