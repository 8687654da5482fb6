package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/oauth2"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Curation    CurationConfig    `toml:"curation"`
	Genres      GenresConfig      `toml:"genres"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials and saved tokens.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	UserID       string `toml:"user_id"`
	AccessToken  string `toml:"access_token"`
	RefreshToken string `toml:"refresh_token"`
	TokenExpiry  string `toml:"token_expiry"`
}

// Map converts the credentials to the map form consumed by the services package.
func (s SpotifyConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     s.ClientID,
		"client_secret": s.ClientSecret,
		"redirect_uri":  s.RedirectURI,
		"user_id":       s.UserID,
		"access_token":  s.AccessToken,
		"refresh_token": s.RefreshToken,
	}
}

// Token reconstructs an [oauth2.Token] from the saved credential fields.
// Returns nil if no access token has been saved.
func (s SpotifyConfig) Token() *oauth2.Token {
	if s.AccessToken == "" {
		return nil
	}

	token := &oauth2.Token{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}

	if s.TokenExpiry != "" {
		if expiry, err := time.Parse(time.RFC3339, s.TokenExpiry); err == nil {
			token.Expiry = expiry
		}
	}

	return token
}

// Update stores the fields of an [oauth2.Token] back into the config.
func (s *SpotifyConfig) Update(token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("%w: nil token", ErrInvalidCredentials)
	}

	s.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		s.RefreshToken = token.RefreshToken
	}
	if !token.Expiry.IsZero() {
		s.TokenExpiry = token.Expiry.Format(time.RFC3339)
	}

	return nil
}

// DatabaseConfig contains artist cache database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains OAuth callback server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// CurationConfig contains defaults for the track curation pipeline.
type CurationConfig struct {
	TracksPerArtist  int     `toml:"tracks_per_artist"`
	IncludeVersions  bool    `toml:"include_versions"`
	PopularityFilter bool    `toml:"popularity_filter"`
	RateLimit        float64 `toml:"rate_limit"`
	MaxRetries       int     `toml:"max_retries"`
}

// GenresConfig contains genre normalization settings.
//
// Acronyms maps title-cased tokens to their preferred casing (e.g. "Edm" -> "EDM").
type GenresConfig struct {
	Acronyms map[string]string `toml:"acronyms"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// SaveConfig writes the configuration back to the specified path as TOML.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
