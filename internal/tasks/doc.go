// Package tasks orchestrates the festival playlist build with real-time progress reporting.
//
// # Core Operations
//
// The [BuildEngine] interface defines the pipeline stages:
//
//  1. [BuildEngine.Resolve] : Artist names → resolved catalog records
//     - One best-match search per name, limit 1
//     - Mismatched display names produce warnings, not errors
//     - Zero search results is a hard failure naming the artist
//
//  2. [BuildEngine.Collect] : Resolved artists → raw track table
//     - Bounded worker pool across artists, deterministic re-join
//     - Top tracks capped per artist, joined with artist metadata
//     - Audio features stamped as pointers; nil means absent
//
//  3. [BuildEngine.Publish] : Curated table → provider playlist
//     - Creates the playlist, then uploads item references in
//       consecutive batches of at most 100
//
//  4. [BuildEngine.Recommend] : Related-artist suggestions
//     - Counts how many inputs each related artist appears under
//     - Excludes the inputs themselves, ties rank in first-seen order
//
// [BuildEngine.Build] composes Resolve, Collect, the curation pipeline
// (internal/curation), and Publish into one operation.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [PlaylistEngine] implements [BuildEngine] with a single dependency on
// [services.Catalog], the music catalog provider client.
package tasks
