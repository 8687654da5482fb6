// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlist/internal/genre"
	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// defaultMarket scopes top-track rankings to one country.
	defaultMarket = "US"
)

// SpotifyImage represents an image resource. The provider orders images
// largest to smallest.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Genres     []string       `json:"genres"`
	Popularity int            `json:"popularity"`
	Images     []SpotifyImage `json:"images"`
	URI        string         `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Popularity int    `json:"popularity"`
	URI        string `json:"uri"`
}

type followers struct {
	Total int `json:"total"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Country     string         `json:"country"`
	Followers   followers      `json:"followers"`
	Images      []SpotifyImage `json:"images"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyPlaylist represents a Spotify playlist.
type SpotifyPlaylist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Public       bool         `json:"public"`
	ExternalURLs externalURLs `json:"external_urls"`
	URI          string       `json:"uri"`
}

type searchResponse struct {
	Artists struct {
		Items []SpotifyArtist `json:"items"`
	} `json:"artists"`
}

type topTracksResponse struct {
	Tracks []SpotifyTrack `json:"tracks"`
}

type relatedArtistsResponse struct {
	Artists []SpotifyArtist `json:"artists"`
}

type audioFeaturesPayload struct {
	ID           string  `json:"id"`
	Danceability float64 `json:"danceability"`
	Energy       float64 `json:"energy"`
	Tempo        float64 `json:"tempo"`
	Speechiness  float64 `json:"speechiness"`
}

// apiError is a non-2xx provider response.
type apiError struct {
	Status   int
	Endpoint string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("spotify API error: status %d on %s", e.Status, e.Endpoint)
}

func (e *apiError) Unwrap() error { return shared.ErrAPIRequest }

// SpotifyService implements the Catalog interface for Spotify API
// interactions. Uses [oauth2] for authentication; when no user token is
// available it falls back to the client-credentials grant, which covers every
// read-only operation.
type SpotifyService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	baseURL    string
	userID     string
	retry      *retryPolicy
	normalizer *genre.Normalizer
	logger     *log.Logger

	authenticated bool
}

// NewSpotifyService creates a new Spotify service with the given OAuth2
// credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("missing client_id in credentials")
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("missing client_secret in credentials")
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-read-private",
			"playlist-modify-public",
			"playlist-modify-private",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		baseURL:    spotifyBaseURL,
		userID:     credentials["user_id"],
		retry:      newRetryPolicy(0, 5),
		normalizer: genre.NewNormalizer(nil),
		logger:     shared.NewLogger(nil),
	}, nil
}

// NewSpotifyServiceFromConfig builds a service from the application config,
// applying the configured request pacing, retry cap, and genre acronyms.
func NewSpotifyServiceFromConfig(cfg *shared.Config) (*SpotifyService, error) {
	srv, err := NewSpotifyService(cfg.Credentials.Spotify.Map())
	if err != nil {
		return nil, err
	}
	srv.retry = newRetryPolicy(cfg.Curation.RateLimit, cfg.Curation.MaxRetries)
	srv.normalizer = genre.NewNormalizer(cfg.Genres.Acronyms)
	return srv, nil
}

// Authenticate performs OAuth2 authentication with Spotify. An "access_token"
// or "auth_code" in credentials selects the user-authorized flow; with
// neither, the client-credentials grant is used.
func (s *SpotifyService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		s.token = &oauth2.Token{
			AccessToken:  accessToken,
			RefreshToken: credentials["refresh_token"],
		}
		s.httpClient = s.config.Client(ctx, s.token)
		s.authenticated = true
		return nil
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := s.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("failed to exchange auth code: %w", err)
		}
		s.token = token
		s.httpClient = s.config.Client(ctx, s.token)
		s.authenticated = true
		return nil
	}

	cc := &clientcredentials.Config{
		ClientID:     s.config.ClientID,
		ClientSecret: s.config.ClientSecret,
		TokenURL:     s.config.Endpoint.TokenURL,
	}
	if _, err := cc.Token(ctx); err != nil {
		return fmt.Errorf("client credentials grant failed: %w", err)
	}
	s.httpClient = cc.Client(ctx)
	s.authenticated = true
	return nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Token returns the user token obtained during Authenticate, if any.
func (s *SpotifyService) Token() *oauth2.Token {
	return s.token
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// OAuthConfig exposes the OAuth2 configuration for the callback server.
func (s *SpotifyService) OAuthConfig() *oauth2.Config {
	return s.config
}

// doRequest performs an authenticated HTTP request to the Spotify API.
// Requests are paced by the rate limiter and 429 responses are retried with
// the provider's delay before the call fails.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	if !s.authenticated {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	apiURL := s.baseURL + endpoint

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	resp, err := s.retry.do(ctx, func() (*http.Response, error) {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, apiURL, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		if s.token != nil {
			req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
		}
		req.Header.Set("Content-Type", "application/json")

		return s.httpClient.Do(req)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apiError{Status: resp.StatusCode, Endpoint: endpoint}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// UserProfile retrieves the current authenticated user's profile.
func (s *SpotifyService) UserProfile(ctx context.Context) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, "GET", "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchArtist resolves a name to the provider's single best match. Genre
// tags are normalized and the smallest available image is kept (the provider
// lists images largest first).
func (s *SpotifyService) SearchArtist(ctx context.Context, name string) (*models.Artist, error) {
	endpoint := fmt.Sprintf("/search?q=%s&type=artist&limit=1", url.QueryEscape(name))

	var response searchResponse
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	if len(response.Artists.Items) == 0 {
		return nil, fmt.Errorf("%w: no results for %q", shared.ErrArtistNotFound, name)
	}

	artist := s.mapArtist(response.Artists.Items[0])
	return &artist, nil
}

// TopTracks retrieves the provider-ranked top tracks for an artist.
func (s *SpotifyService) TopTracks(ctx context.Context, artistID string) ([]TopTrack, error) {
	endpoint := fmt.Sprintf("/artists/%s/top-tracks?market=%s", artistID, defaultMarket)

	var response topTracksResponse
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	tracks := make([]TopTrack, 0, len(response.Tracks))
	for _, t := range response.Tracks {
		tracks = append(tracks, TopTrack{
			ID:         t.ID,
			Title:      t.Name,
			URI:        t.URI,
			Popularity: t.Popularity,
		})
	}
	return tracks, nil
}

// AudioFeatures retrieves the audio analysis for a track. Tracks the provider
// has no analysis for return (nil, nil), not zero values.
func (s *SpotifyService) AudioFeatures(ctx context.Context, trackID string) (*AudioFeatures, error) {
	endpoint := fmt.Sprintf("/audio-features/%s", trackID)

	var payload *audioFeaturesPayload
	if err := s.doRequest(ctx, "GET", endpoint, nil, &payload); err != nil {
		var ae *apiError
		if errors.As(err, &ae) && (ae.Status == http.StatusForbidden || ae.Status == http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if payload == nil {
		return nil, nil
	}

	return &AudioFeatures{
		Danceability: payload.Danceability,
		Energy:       payload.Energy,
		Tempo:        payload.Tempo,
		Speechiness:  payload.Speechiness,
	}, nil
}

// RelatedArtists retrieves artists the provider considers similar to the
// given one.
func (s *SpotifyService) RelatedArtists(ctx context.Context, artistID string) ([]models.Artist, error) {
	endpoint := fmt.Sprintf("/artists/%s/related-artists", artistID)

	var response relatedArtistsResponse
	if err := s.doRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, err
	}

	artists := make([]models.Artist, 0, len(response.Artists))
	for _, a := range response.Artists {
		artists = append(artists, s.mapArtist(a))
	}
	return artists, nil
}

// CreatePlaylist creates an empty playlist for the authenticated user,
// resolving the user ID from the profile when it was not configured.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error) {
	if s.userID == "" {
		user, err := s.UserProfile(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user for playlist creation: %w", err)
		}
		s.userID = user.ID
	}

	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      public,
	}

	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(s.userID))

	var created SpotifyPlaylist
	if err := s.doRequest(ctx, "POST", endpoint, body, &created); err != nil {
		return nil, err
	}

	return &models.Playlist{
		ID:          created.ID,
		Name:        created.Name,
		Description: created.Description,
		Public:      created.Public,
		URL:         created.ExternalURLs.Spotify,
	}, nil
}

// AddPlaylistItems appends item references to a playlist. The provider caps
// each call at MaxPlaylistBatch references; larger slices are the caller's
// partitioning mistake, not something to split silently.
func (s *SpotifyService) AddPlaylistItems(ctx context.Context, playlistID string, uris []string) error {
	if len(uris) == 0 {
		return nil
	}
	if len(uris) > MaxPlaylistBatch {
		return fmt.Errorf("%w: %d URIs exceeds the batch limit of %d", shared.ErrInvalidArgument, len(uris), MaxPlaylistBatch)
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)
	body := map[string]any{"uris": uris}

	return s.doRequest(ctx, "POST", endpoint, body, nil)
}

// mapArtist converts a provider artist to the domain record.
func (s *SpotifyService) mapArtist(a SpotifyArtist) models.Artist {
	artist := models.Artist{
		ID:         a.ID,
		Name:       a.Name,
		Genres:     s.normalizer.NormalizeAll(a.Genres),
		Popularity: a.Popularity,
	}
	if len(a.Images) > 0 {
		artist.ImageURL = a.Images[len(a.Images)-1].URL
	}
	return artist
}
