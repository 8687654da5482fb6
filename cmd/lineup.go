package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/setlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// Lineup scrapes a festival lineup page and prints the artists found.
func (r *Runner) Lineup(ctx context.Context, cmd *cli.Command) error {
	pageURL := cmd.StringArg("url")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if pageURL == "" {
		return fmt.Errorf("%w: lineup URL is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("scraping lineup from %v", pageURL)

	result, err := r.scraper.Fetch(ctx, pageURL)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	r.writePlain("%s\n\n", result.FestivalName)
	r.writePlain("Found %d artists:\n", len(result.ArtistNames))
	for i, name := range result.ArtistNames {
		r.writePlain("%d. %s\n", i+1, name)
	}

	return nil
}
