package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/setlist/internal/curation"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// ArtistsResolve resolves artist names against the catalog and prints the matches.
func (r *Runner) ArtistsResolve(ctx context.Context, cmd *cli.Command) error {
	names := cmd.StringSlice("artists")
	pageURL := cmd.String("url")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if pageURL != "" {
		scraped, err := r.scraper.Fetch(ctx, pageURL)
		if err != nil {
			return err
		}
		names = curation.CombineNames(scraped.ArtistNames, names)
	}

	if len(names) == 0 {
		return fmt.Errorf("%w: provide --artists or --url", shared.ErrMissingArgument)
	}

	if err := r.requireCatalog(ctx, cmd); err != nil {
		return err
	}

	r.logger.Infof("resolving %d artists", len(names))

	artists, warnings, err := r.engine.Resolve(ctx, nil, names)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(artists, pretty)
	}

	for i, artist := range artists {
		r.writePlain("%d. %s\n", i+1, artist.Name)
		r.writePlain("   ID: %s\n", artist.ID)
		r.writePlain("   Popularity: %d\n", artist.Popularity)
		if len(artist.Genres) > 0 {
			r.writePlain("   Genres: %s\n", strings.Join(artist.Genres, ", "))
		}
	}

	for _, w := range warnings {
		r.writePlainln("⚠ %q resolved to %q", w.Query, w.Resolved)
	}

	return nil
}

// ArtistsRecommend suggests related artists for the given names.
func (r *Runner) ArtistsRecommend(ctx context.Context, cmd *cli.Command) error {
	names := cmd.StringSlice("artists")
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")

	if err := r.requireCatalog(ctx, cmd); err != nil {
		return err
	}

	artists, _, err := r.engine.Resolve(ctx, nil, names)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	recommendations, err := r.engine.Recommend(ctx, nil, artists, int(limit))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(recommendations, true)
	}

	if len(recommendations) == 0 {
		r.writePlain("No suggestions found.\n")
		return nil
	}

	r.writePlain("You might also like:\n\n")
	for i, rec := range recommendations {
		r.writePlain("%d. %s (related to %d of your artists)\n", i+1, rec.Artist.Name, rec.Count)
	}

	return nil
}
