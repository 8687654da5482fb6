package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/desertthunder/setlist/internal/repositories"
	"github.com/desertthunder/setlist/internal/server"
	"github.com/desertthunder/setlist/internal/services"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/desertthunder/setlist/internal/tasks"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Auth performs the OAuth2 authorization flow for Spotify.
//
// Starts a local HTTP server, opens browser for user authorization, and
// exchanges the auth code for tokens that are saved back to the config file.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if config == nil {
		var err error
		if _, statErr := os.Stat(configPath); statErr == nil {
			config, err = shared.LoadConfig(configPath)
			if err != nil {
				r.logger.Warnf("failed to load config, using defaults %v", err)
				config = shared.DefaultConfig()
			}
		} else {
			config = shared.DefaultConfig()
		}
		r.config = config
	}
	r.configPath = configPath

	if config.Credentials.Spotify.ClientID == "" || config.Credentials.Spotify.ClientSecret == "" {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in config.toml", shared.ErrInvalidArgument)
	}

	spotifyService, err := services.NewSpotifyServiceFromConfig(config)
	if err != nil {
		return fmt.Errorf("failed to create Spotify service: %w", err)
	}

	token, err := r.doOAuth(config, spotifyService)
	if err != nil {
		return err
	}

	if err := r.saveTokens(token); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Tokens saved to %s\n\n", configPath)
	r.writePlain("You can now use: setlist build --url <lineup-url>\n")

	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(config *shared.Config, srv *services.SpotifyService) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := srv.GetAuthURL(state)
	oauthHandler := server.NewOAuthHandler(srv.OAuthConfig(), state)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}

// requireCatalog authenticates the catalog provider with saved credentials,
// lazily constructing it from the config file when the runner has none.
func (r *Runner) requireCatalog(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		configPath := cmd.String("config")
		if configPath == "" {
			configPath = "config.toml"
		}

		config := r.config
		if config == nil {
			loaded, err := shared.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("%w: %v", shared.ErrMissingCredentials, err)
			}
			config = loaded
			r.config = config
			r.configPath = configPath
		}

		srv, err := services.NewSpotifyServiceFromConfig(config)
		if err != nil {
			return fmt.Errorf("failed to create Spotify service: %w", err)
		}
		r.catalog = srv
	}

	if err := r.catalog.Authenticate(ctx, r.config.Credentials.Spotify.Map()); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.wrapCatalogWithCache()
	r.engine = tasks.NewPlaylistEngine(r.catalog)

	return nil
}

// wrapCatalogWithCache layers the artist cache over the catalog so repeat
// lineups resolve without provider searches. Skipped when no cache database
// is configured or it cannot be prepared.
func (r *Runner) wrapCatalogWithCache() {
	if _, ok := r.catalog.(*repositories.CachedCatalog); ok {
		return
	}
	if r.config == nil || r.config.Database.Path == "" {
		return
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		r.logger.Warnf("artist cache unavailable %v", err)
		return
	}
	if err := shared.RunMigrations(db); err != nil {
		r.logger.Warnf("artist cache unavailable %v", err)
		db.Close()
		return
	}

	r.catalog = repositories.NewCachedCatalog(r.catalog, repositories.NewArtistRepository(db), r.logger)
}
