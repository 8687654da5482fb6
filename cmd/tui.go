package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/setlist/internal/curation"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/desertthunder/setlist/internal/tasks"
	"github.com/desertthunder/setlist/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI scrapes a lineup and launches the interactive artist picker.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	pageURL := cmd.String("url")

	scraped, err := r.scraper.Fetch(ctx, pageURL)
	if err != nil {
		return err
	}

	if len(scraped.ArtistNames) == 0 {
		return fmt.Errorf("%w: no artists found at %s", shared.ErrLineupNotFound, pageURL)
	}

	names := curation.CombineNames(scraped.ArtistNames, cmd.StringSlice("artists"))

	playlistName := cmd.String("name")
	if playlistName == "" {
		playlistName = scraped.FestivalName
	}

	if err := r.requireCatalog(ctx, cmd); err != nil {
		return err
	}

	opts := tasks.BuildOpts{
		PopularityFilter: true,
		Public:           cmd.Bool("public"),
	}
	if r.config != nil {
		opts.TracksPerArtist = r.config.Curation.TracksPerArtist
		opts.IncludeVersions = r.config.Curation.IncludeVersions
		opts.PopularityFilter = r.config.Curation.PopularityFilter
	}

	model := ui.NewModel(ctx, r.engine, playlistName, names, opts)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	result, buildErr := model.Result()
	if buildErr != nil {
		return fmt.Errorf("build failed: %w", buildErr)
	}

	if result != nil && result.Playlist != nil {
		r.writePlainln("✓ Playlist created: %s", result.Playlist.Name)
		if result.Playlist.URL != "" {
			r.writePlain("  URL: %s\n", result.Playlist.URL)
		}
	}

	return nil
}
