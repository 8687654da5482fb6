// Package repositories implements SQLite persistence for resolved artist records.
//
// The cache exists so repeated builds of the same festival do not re-query
// the catalog for every artist: the CLI's cache command and the build
// pipeline both read through [ArtistRepository] before hitting the provider.
//
// Key Implementations:
//   - [ArtistRepository] : Resolved artist caching with name and catalog-ID lookups
//
// Sequence numbers provide stable, human-readable ordering (e.g., artist #42)
// independent of UUIDs and creation timestamps. The [NextSequence] function
// atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
