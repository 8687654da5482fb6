// Package curation implements the track curation pipeline.
//
// The pipeline operates on an in-memory table of [models.Track] rows and is a
// sequence of three pure stages, each returning a new table plus the titles it
// removed:
//
//  1. [RemoveDuplicates] : drops rows sharing a track ID, keeping the first occurrence
//  2. [CollapseVersions] : collapses remixes/edits of the same base title to the most popular version
//  3. [FilterByArtistPopularity] : trims each artist's rows in proportion to their popularity
//
// Stages never mutate their input and can be invoked standalone; [Curate]
// composes them in order. The package also provides [CombineArtists] for
// merging lineup selections with manually entered artists.
package curation
