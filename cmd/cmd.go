// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// authCommand handles Spotify authentication
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with Spotify using OAuth2",
		Flags: []cli.Flag{configFlag()},
		Action: r.Auth,
	}
}

// lineupCommand previews a festival lineup without building anything
func lineupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lineup",
		Usage: "Scrape and preview a festival lineup",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Lineup,
	}
}

// buildCommand runs the full lineup to playlist pipeline
func buildCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build a Spotify playlist from a festival lineup",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "url",
				Usage: "Festival lineup page URL to scrape",
			},
			&cli.StringSliceFlag{
				Name:    "artists",
				Aliases: []string{"a"},
				Usage:   "Artist names to include (repeatable, added to any scraped lineup)",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Playlist name (default: the festival name)",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Playlist description",
			},
			&cli.BoolFlag{
				Name:  "public",
				Usage: "Make the playlist public",
				Value: true,
			},
			&cli.IntFlag{
				Name:  "tracks-per-artist",
				Usage: "Top tracks to collect per artist",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "include-versions",
				Usage: "Keep remixes and alternate versions",
			},
			&cli.BoolFlag{
				Name:  "no-filter",
				Usage: "Skip the popularity based track trim",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent track collection workers",
			},
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Write the curated track table to a CSV file",
			},
			&cli.StringFlag{
				Name:  "summary",
				Usage: "Write a Markdown build summary to a file",
			},
			&cli.BoolFlag{
				Name:  "recommend",
				Usage: "Include related artist suggestions in the summary",
			},
		},
		Action: r.Build,
	}
}

// artistsCommand handles artist resolution and recommendation
func artistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artists",
		Usage: "Resolve and explore artists",
		Commands: []*cli.Command{
			{
				Name:  "resolve",
				Usage: "Resolve artist names against the Spotify catalog",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringSliceFlag{
						Name:    "artists",
						Aliases: []string{"a"},
						Usage:   "Artist names to resolve (repeatable)",
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "Festival lineup page URL to scrape names from",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ArtistsResolve,
			},
			{
				Name:  "recommend",
				Usage: "Suggest artists related to the given lineup",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringSliceFlag{
						Name:     "artists",
						Aliases:  []string{"a"},
						Usage:    "Artist names to base suggestions on (repeatable)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of suggestions",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ArtistsRecommend,
			},
		},
	}
}

// cacheCommand handles the local artist cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local artist cache",
		Commands: []*cli.Command{
			{
				Name:   "setup",
				Usage:  "Initialize the cache database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CacheSetup,
			},
			{
				Name:  "list",
				Usage: "List cached artists",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "name",
						Usage: "Filter by artist name",
					},
					&cli.IntFlag{
						Name:  "min-popularity",
						Usage: "Only show artists at or above this popularity",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheList,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached artists",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CacheClear,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist building.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Interactively pick lineup artists and build a playlist",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "url",
				Usage:    "Festival lineup page URL to scrape",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:    "artists",
				Aliases: []string{"a"},
				Usage:   "Extra artist names to offer alongside the lineup (repeatable)",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Playlist name (default: the festival name)",
			},
			&cli.BoolFlag{
				Name:  "public",
				Usage: "Make the playlist public",
				Value: true,
			},
		},
		Action: r.TUI,
	}
}
