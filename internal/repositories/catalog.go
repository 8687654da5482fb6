package repositories

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/services"
)

var _ services.Catalog = (*CachedCatalog)(nil)

// CachedCatalog wraps a [services.Catalog], serving artist searches from the
// local cache before falling back to the provider. Resolved records are
// written back on a miss, so repeat builds over the same lineup skip the
// provider's search endpoint. Every other call delegates unchanged.
type CachedCatalog struct {
	services.Catalog
	artists *ArtistRepository
	logger  *log.Logger
}

// NewCachedCatalog creates a CachedCatalog over the given provider and
// artist repository.
func NewCachedCatalog(inner services.Catalog, artists *ArtistRepository, logger *log.Logger) *CachedCatalog {
	return &CachedCatalog{Catalog: inner, artists: artists, logger: logger}
}

// SearchArtist returns the cached record for name when one exists (matched
// case-insensitively, like the provider's own search), otherwise resolves via
// the provider and caches the result. Cache write failures are logged, never
// fatal; a failed provider search caches nothing.
func (c *CachedCatalog) SearchArtist(ctx context.Context, name string) (*models.Artist, error) {
	if cached, err := c.artists.GetByName(name); err == nil {
		artist := cached.Artist()
		c.logger.Debugf("artist cache hit for %q", name)
		return &artist, nil
	}

	artist, err := c.Catalog.SearchArtist(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := c.artists.Create(models.NewCachedArtist(0, *artist)); err != nil {
		c.logger.Warnf("failed to cache artist %s %v", artist.Name, err)
	}

	return artist, nil
}
