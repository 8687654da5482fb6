package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/desertthunder/setlist/internal/repositories"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// openCacheDB opens the artist cache database from the configured path.
func (r *Runner) openCacheDB(cmd *cli.Command) (*sql.DB, error) {
	config := r.config
	if config == nil {
		loaded, err := shared.LoadConfig(cmd.String("config"))
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		config = loaded
		r.config = config
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, err
	}

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	return db, nil
}

// CacheSetup initializes the cache database and applies migrations.
func (r *Runner) CacheSetup(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openCacheDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Infof("running migrations against %v", r.config.Database.Path)

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.writePlainln("✓ Cache database ready at %s", r.config.Database.Path)
	return nil
}

// CacheList prints cached artists, optionally filtered by name or popularity.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openCacheDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{}
	if name := cmd.String("name"); name != "" {
		criteria["name"] = name
	}
	if min := cmd.Int("min-popularity"); min > 0 {
		criteria["min_popularity"] = int(min)
	}

	repo := repositories.NewArtistRepository(db)
	cached, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list cached artists: %w", err)
	}

	if cmd.Bool("json") {
		artists := make([]any, 0, len(cached))
		for _, c := range cached {
			artists = append(artists, c.Artist())
		}
		return r.writeJSON(artists, true)
	}

	if len(cached) == 0 {
		r.writePlain("No cached artists.\n")
		return nil
	}

	r.writePlain("Found %d cached artists:\n\n", len(cached))
	for _, c := range cached {
		artist := c.Artist()
		r.writePlain("%d. %s\n", c.Sequence(), artist.Name)
		r.writePlain("   Popularity: %d\n", artist.Popularity)
		if len(artist.Genres) > 0 {
			r.writePlain("   Genres: %s\n", strings.Join(artist.Genres, ", "))
		}
	}

	return nil
}

// CacheClear removes every cached artist.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openCacheDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewArtistRepository(db)
	cached, err := repo.List(nil)
	if err != nil {
		return fmt.Errorf("failed to list cached artists: %w", err)
	}

	for _, c := range cached {
		if err := repo.Delete(c.ID()); err != nil {
			return fmt.Errorf("failed to delete artist %s: %w", c.ID(), err)
		}
	}

	r.writePlainln("✓ Removed %d cached artists", len(cached))
	return nil
}
