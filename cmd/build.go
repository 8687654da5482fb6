package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/desertthunder/setlist/internal/curation"
	"github.com/desertthunder/setlist/internal/formatter"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/desertthunder/setlist/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Build runs the full pipeline: scrape, resolve, collect, curate, publish.
func (r *Runner) Build(ctx context.Context, cmd *cli.Command) error {
	pageURL := cmd.String("url")
	names := cmd.StringSlice("artists")
	playlistName := cmd.String("name")
	csvPath := cmd.String("csv")
	summaryPath := cmd.String("summary")

	if pageURL == "" && len(names) == 0 {
		return fmt.Errorf("%w: provide --url or --artists", shared.ErrMissingArgument)
	}

	var lineupNames []string
	if pageURL != "" {
		scraped, err := r.scraper.Fetch(ctx, pageURL)
		if err != nil {
			return err
		}
		r.writePlain("Scraped %d artists from %s\n", len(scraped.ArtistNames), scraped.FestivalName)
		lineupNames = scraped.ArtistNames
		if playlistName == "" {
			playlistName = scraped.FestivalName
		}
	}
	names = curation.CombineNames(lineupNames, names)

	if playlistName == "" {
		return fmt.Errorf("%w: --name is required when no lineup URL is given", shared.ErrMissingArgument)
	}

	if err := r.requireCatalog(ctx, cmd); err != nil {
		return err
	}

	opts := tasks.BuildOpts{
		TracksPerArtist:  int(cmd.Int("tracks-per-artist")),
		IncludeVersions:  cmd.Bool("include-versions"),
		PopularityFilter: !cmd.Bool("no-filter"),
		Public:           cmd.Bool("public"),
		Description:      cmd.String("description"),
		NumWorkers:       int(cmd.Int("workers")),
	}

	result, err := r.runBuild(ctx, names, playlistName, opts)
	if err != nil {
		return err
	}

	r.writePlainln("✓ Playlist created: %s", result.Playlist.Name)
	if result.Playlist.URL != "" {
		r.writePlain("  URL: %s\n", result.Playlist.URL)
	}
	r.writePlain("  Tracks: %d (of %d collected)\n", result.Playlist.TrackCount, result.TotalCollected)
	r.writePlain("  Duplicates removed: %d\n", len(result.Curation.DuplicatesRemoved))
	r.writePlain("  Versions collapsed: %d\n", len(result.Curation.VersionsRemoved))
	r.writePlain("  Trimmed by popularity: %d\n", len(result.Curation.TrimmedRemoved))

	for _, w := range result.Warnings {
		r.writePlain("  ⚠ %q resolved to %q\n", w.Query, w.Resolved)
	}

	if csvPath != "" {
		if err := formatter.WriteTracksCSV(result.Curation.Tracks, csvPath); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		r.writePlain("✓ Track table written to %s\n", csvPath)
	}

	if summaryPath != "" {
		var recommendations []tasks.Recommendation
		if cmd.Bool("recommend") {
			recommendations, err = r.engine.Recommend(ctx, nil, result.Artists, 0)
			if err != nil {
				r.logger.Warnf("failed to fetch suggestions %v", err)
			}
		}

		summary := formatter.BuildSummaryMarkdown(result, recommendations)
		if err := os.WriteFile(summaryPath, summary, 0644); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		r.writePlain("✓ Summary written to %s\n", summaryPath)
	}

	return nil
}

// runBuild drives the engine while logging progress updates as they arrive.
func (r *Runner) runBuild(ctx context.Context, names []string, playlistName string, opts tasks.BuildOpts) (*tasks.BuildResult, error) {
	progress := make(chan tasks.ProgressUpdate, 50)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			if update.Total > 0 {
				r.logger.Infof("[%v] %s (%d/%d)", update.Phase, update.Message, update.Step, update.Total)
			} else {
				r.logger.Infof("[%v] %s", update.Phase, update.Message)
			}
		}
	}()

	result, err := r.engine.Build(ctx, progress, names, playlistName, opts)
	close(progress)
	wg.Wait()

	if err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}

	return result, nil
}
