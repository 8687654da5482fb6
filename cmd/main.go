package main

import (
	"context"
	"os"

	"github.com/desertthunder/setlist/internal/services"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := ""
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
			configPath = "config.toml"
		}
	}

	var catalog services.Catalog
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyServiceFromConfig(config); err == nil {
			catalog = svc
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Catalog:    catalog,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "setlist",
		Usage:    "Build Spotify playlists from festival lineups",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
