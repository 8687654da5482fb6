// Package models defines domain entities for the setlist playlist generator.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing catalog data
//   - [Artist] : Resolved artist record with genres, popularity, and image
//   - [Track] : One row of the curation table, a top track denormalized with its owning artist
//   - [Playlist] : Reference to a created playlist
//
// 2. Persistent Entities: Database-backed models for the artist resolution cache
//   - [CachedArtist] : A resolved artist stored locally to avoid repeat catalog lookups
//
// Persistent entities implement the Model interface providing ID generation,
// timestamps, and validation. The Repository[T] interface defines standard
// CRUD operations for database access.
package models
