package curation

import "github.com/desertthunder/setlist/internal/models"

// Options controls which optional stages [Curate] applies. Duplicate removal
// always runs.
type Options struct {
	IncludeVersions  bool // keep remixes/edits (skip CollapseVersions)
	PopularityFilter bool // trim per-artist rows by artist popularity
}

// Result holds the curated table and the removal report of each stage.
type Result struct {
	Tracks            []models.Track
	DuplicatesRemoved []string
	VersionsRemoved   []string
	TrimmedRemoved    []string
}

// Curate runs the full pipeline in order: duplicate removal, version
// collapsing (unless versions are kept), then the popularity trim (if
// enabled). The input table is never mutated.
func Curate(table []models.Track, opts Options) Result {
	result := Result{}

	result.Tracks, result.DuplicatesRemoved = RemoveDuplicates(table)

	if !opts.IncludeVersions {
		result.Tracks, result.VersionsRemoved = CollapseVersions(result.Tracks)
	}

	if opts.PopularityFilter {
		result.Tracks, result.TrimmedRemoved = FilterByArtistPopularity(result.Tracks)
	}

	return result
}
