// Package web implements an HTMX-based web application mirroring the TUI functionality.
//
// # HTMX Web Application Implementation Plan
//
// # Architecture
//
// The web app replicates the four-view TUI workflow using server-side rendering
// with HTMX for dynamic updates. Each view corresponds to a template and handler:
//
//  1. Lineup Entry: Form taking a festival lineup URL, hx-post to scrape
//  2. Artist Picker: Checkbox table of scraped artists with select-all toggle
//  3. Build Confirm: Modal confirmation with hx-post trigger
//  4. Progress Monitor: SSE (Server-Sent Events) streaming build progress
//  5. Results Display: Playlist link plus the curation removal report
//
// Core Components
//
//   - HTTP Server: net/http server with html/template rendering
//   - Service Integration: Uses same services.Catalog and tasks.PlaylistEngine as TUI
//   - Session Management: Cookie-based sessions for OAuth state and user tracking
//   - SSE Handler: Streams real-time progress during playlist builds
//
// Routes
//
//	GET  /                      → Lineup entry form (requires auth)
//	GET  /auth/spotify          → OAuth initiation
//	GET  /auth/spotify/callback → OAuth completion
//	POST /lineup                → Scrape lineup, return artist picker partial
//	POST /build                 → Start build, return SSE endpoint
//	GET  /build/{id}/stream     → SSE progress stream
//	GET  /build/{id}/result     → Final result view
//
// Templates
//
//   - base.html: Layout with navigation, auth status
//   - lineup.html: URL form with hx-post
//   - artists.html: Partial template for the artist picker
//   - progress.html: SSE consumer with per-phase progress bar
//   - results.html: Playlist link and removal report
//
// # State Management
//
// Unlike the TUI's in-memory state, the web app persists state in:
//   - Session cookies: Authentication tokens, user ID
//   - Artist cache records: Resolved artists across requests
//   - In-memory channels: SSE connections for active builds
//
// # Progress Streaming
//
// Build progress uses Server-Sent Events:
//  1. POST /build starts a build, returns job ID
//  2. Client opens SSE connection to /build/{id}/stream
//  3. Handler launches goroutine running PlaylistEngine.Build
//  4. Progress channel updates stream as SSE events
//  5. On completion, send "done" event with redirect URL
//
// Authentication Flow
//
//  1. User visits /, redirected to /auth/spotify if not authenticated
//  2. OAuth dance stores tokens in session
//  3. Session middleware validates tokens on protected routes
//  4. Expired tokens trigger reauthorization flow
//
// Dependencies
//
//   - html/template: Server-side rendering
//   - net/http: HTTP server and SSE
//   - gorilla/sessions or similar: Cookie management
//
// Implementation Tasks
//
//  1. HTTP server setup with route registration
//  2. Template structure with HTMX integration
//  3. Session middleware for auth state
//  4. Lineup scrape handler wrapping lineup.Scraper
//  5. Artist picker handler (HTMX partial)
//  6. Build endpoint wiring BuildOpts from form values
//  7. SSE handler streaming progress updates
//  8. Result handler displaying the BuildResult
//  9. OAuth handlers wrapping existing Spotify auth
//  10. Error handling and validation
//
// # Testing Strategy
//
// Use httptest:
//   - Mock services.Catalog for artist/track data
//   - Mock tasks.PlaylistEngine for builds
//   - Validate HTMX headers and response structure
//   - Test SSE stream formatting
package web
