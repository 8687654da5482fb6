package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// Catalog and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrRateLimited        = fmt.Errorf("rate limited")
	ErrArtistNotFound     = fmt.Errorf("artist not found")
	ErrTrackNotFound      = fmt.Errorf("track not found")
	ErrLineupNotFound     = fmt.Errorf("lineup not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
