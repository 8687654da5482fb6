package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/shared"
)

// ArtistRepository implements [models.Repository] for [models.CachedArtist] persistence.
//
// Genre tags are stored as a JSON array in a TEXT column; lookups by name use
// the case-insensitive index so "odesza" and "ODESZA" hit the same row.
type ArtistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates a new [ArtistRepository] with the given database connection
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Create inserts a new cached artist into the database with generated ID and sequence
func (r *ArtistRepository) Create(cached *models.CachedArtist) error {
	sequence, err := NextSequence(r.db, "artists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	cached.SetID(id)

	if err := cached.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	artist := cached.Artist()
	genres, err := json.Marshal(artist.Genres)
	if err != nil {
		return fmt.Errorf("failed to encode genres: %w", err)
	}

	query := `
		INSERT INTO artists (id, sequence, spotify_id, name, genres, popularity, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, artist.ID, artist.Name, string(genres),
		artist.Popularity, artist.ImageURL, cached.CreatedAt(), cached.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert artist: %w", err)
	}

	return nil
}

// Get retrieves a cached artist by its cache row ID
func (r *ArtistRepository) Get(id string) (*models.CachedArtist, error) {
	return r.getWhere("id = ?", id)
}

// GetBySpotifyID retrieves a cached artist by its catalog identity
func (r *ArtistRepository) GetBySpotifyID(spotifyID string) (*models.CachedArtist, error) {
	return r.getWhere("spotify_id = ?", spotifyID)
}

// GetByName retrieves a cached artist by display name, case-insensitively
func (r *ArtistRepository) GetByName(name string) (*models.CachedArtist, error) {
	return r.getWhere("name = ? COLLATE NOCASE", name)
}

func (r *ArtistRepository) getWhere(where string, arg any) (*models.CachedArtist, error) {
	query := `
		SELECT id, sequence, spotify_id, name, genres, popularity, image_url, created_at, updated_at
		FROM artists
		WHERE ` + where

	var (
		rowID     string
		sequence  int
		spotifyID string
		name      string
		genres    string
		pop       int
		imageURL  sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	err := r.db.QueryRow(query, arg).Scan(&rowID, &sequence, &spotifyID, &name, &genres, &pop, &imageURL, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %v", shared.ErrArtistNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query artist: %w", err)
	}

	artist := models.Artist{
		ID:         spotifyID,
		Name:       name,
		Popularity: pop,
	}
	if imageURL.Valid {
		artist.ImageURL = imageURL.String
	}
	if err := json.Unmarshal([]byte(genres), &artist.Genres); err != nil {
		return nil, fmt.Errorf("failed to decode genres: %w", err)
	}

	return models.RestoreCachedArtist(rowID, sequence, artist, createdAt, updatedAt), nil
}

// Update modifies an existing cached artist in the database
func (r *ArtistRepository) Update(cached *models.CachedArtist) error {
	if err := cached.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	cached.SetUpdatedAt(now)

	artist := cached.Artist()
	genres, err := json.Marshal(artist.Genres)
	if err != nil {
		return fmt.Errorf("failed to encode genres: %w", err)
	}

	query := `
		UPDATE artists
		SET name = ?, genres = ?, popularity = ?, image_url = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, artist.Name, string(genres), artist.Popularity, artist.ImageURL, now, cached.ID())
	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("artist not found: %s", cached.ID())
	}

	return nil
}

// Delete removes a cached artist by its cache row ID
func (r *ArtistRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM artists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("artist not found: %s", id)
	}

	return nil
}

// List retrieves all cached artists matching the given criteria
func (r *ArtistRepository) List(criteria map[string]any) ([]*models.CachedArtist, error) {
	query := `
		SELECT id, sequence, spotify_id, name, genres, popularity, image_url, created_at, updated_at
		FROM artists
		WHERE 1 = 1
	`

	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ? COLLATE NOCASE"
		args = append(args, name)
	}
	if minPop, ok := criteria["min_popularity"].(int); ok {
		query += " AND popularity >= ?"
		args = append(args, minPop)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []*models.CachedArtist
	for rows.Next() {
		var (
			rowID     string
			sequence  int
			spotifyID string
			name      string
			genres    string
			pop       int
			imageURL  sql.NullString
			createdAt time.Time
			updatedAt time.Time
		)

		if err := rows.Scan(&rowID, &sequence, &spotifyID, &name, &genres, &pop, &imageURL, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}

		artist := models.Artist{ID: spotifyID, Name: name, Popularity: pop}
		if imageURL.Valid {
			artist.ImageURL = imageURL.String
		}
		if err := json.Unmarshal([]byte(genres), &artist.Genres); err != nil {
			return nil, fmt.Errorf("failed to decode genres: %w", err)
		}

		artists = append(artists, models.RestoreCachedArtist(rowID, sequence, artist, createdAt, updatedAt))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate artists: %w", err)
	}

	return artists, nil
}
