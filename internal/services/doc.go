// Package services defines the [Catalog] interface for music catalog
// providers and implements it for Spotify.
//
// # Catalog Interface
//
// The catalog abstraction covers everything the playlist builder needs from a
// provider: artist search, top-track rankings, audio features, related
// artists, and playlist publishing.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 for authentication with automatic token
// refresh. Playlist creation requires a user-authorized token; every
// read-only operation also works on the client-credentials grant, so lineup
// previews run without a login.
//
// # Rate Limiting
//
// All requests flow through a token-bucket limiter and a capped retry loop.
// A 429 response is retried after the provider's Retry-After delay; when the
// attempt cap is exhausted the call fails with [shared.ErrRateLimited].
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrArtistNotFound] : search returned zero results
//   - [shared.ErrRateLimited] : retry attempts exhausted
//   - [shared.ErrAPIRequest] : HTTP request failed
//
// # API Mappings
//
// Provider JSON responses map to domain records: SpotifyArtist becomes
// [models.Artist] with genre tags normalized and the smallest image kept
// (the provider lists images largest first), and top-track entries become
// [TopTrack] references consumed by the track collector.
package services
