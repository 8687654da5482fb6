package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlist/internal/lineup"
	"github.com/desertthunder/setlist/internal/services"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/desertthunder/setlist/internal/tasks"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    services.Catalog
	scraper    *lineup.Scraper
	engine     *tasks.PlaylistEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    services.Catalog
	Scraper    *lineup.Scraper
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Scraper == nil {
		opts.Scraper = lineup.NewScraper(opts.HTTPClient)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		scraper:    opts.Scraper,
		engine:     tasks.NewPlaylistEngine(opts.Catalog),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		authCommand, lineupCommand, buildCommand, artistsCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// saveTokens updates the in-memory credentials and persists them when a
// config path is known.
func (r *Runner) saveTokens(token *oauth2.Token) error {
	if r.config == nil {
		return fmt.Errorf("config is nil")
	}

	if err := r.config.Credentials.Spotify.Update(token); err != nil {
		return fmt.Errorf("failed to update spotify configuration: %w", err)
	}

	if r.configPath == "" {
		return nil
	}

	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
