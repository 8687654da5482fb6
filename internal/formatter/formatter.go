// package formatter provides functions to export build results to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/desertthunder/setlist/internal/models"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/desertthunder/setlist/internal/tasks"
)

// TracksToCSV converts a track table to CSV. Absent audio features render as
// empty cells, never zeros.
func TracksToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{
		"Title", "Track ID", "Track Popularity",
		"Danceability", "Energy", "Tempo", "Speechiness",
		"Artist", "Artist ID", "Artist Popularity", "Genres",
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.Title,
			track.TrackID,
			strconv.Itoa(track.TrackPopularity),
			featureCell(track.Danceability),
			featureCell(track.Energy),
			featureCell(track.Tempo),
			featureCell(track.Speechiness),
			track.ArtistName,
			track.ArtistID,
			strconv.Itoa(track.ArtistPopularity),
			strings.Join(track.ArtistGenres, "; "),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ArtistsToCSV converts resolved artist records to CSV.
func ArtistsToCSV(artists []models.Artist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name", "ID", "Popularity", "Genres", "Image URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, artist := range artists {
		record := []string{
			artist.Name,
			artist.ID,
			strconv.Itoa(artist.Popularity),
			strings.Join(artist.Genres, "; "),
			artist.ImageURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteTracksCSV writes the track table to a CSV file.
func WriteTracksCSV(tracks []models.Track, path string) error {
	data, err := TracksToCSV(tracks)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}

// BuildSummaryMarkdown renders a build result as a Markdown report: playlist
// details, per-stage removals, genre and feature aggregates, and optional
// recommendations.
func BuildSummaryMarkdown(result *tasks.BuildResult, recommendations []tasks.Recommendation) []byte {
	var buf bytes.Buffer

	if result.Playlist != nil {
		buf.WriteString(fmt.Sprintf("# %s\n\n", result.Playlist.Name))
		if result.Playlist.Description != "" {
			buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", result.Playlist.Description))
		}
		buf.WriteString(fmt.Sprintf("**Visibility**: %s\n", shared.VisibilityString(result.Playlist.Public)))
		if result.Playlist.URL != "" {
			buf.WriteString(fmt.Sprintf("**URL**: %s\n", result.Playlist.URL))
		}
		buf.WriteString("\n")
	}

	tracks := result.Curation.Tracks
	buf.WriteString("## Curation\n\n")
	buf.WriteString(fmt.Sprintf("- Artists: %d\n", len(result.Artists)))
	buf.WriteString(fmt.Sprintf("- Tracks collected: %d\n", result.TotalCollected))
	buf.WriteString(fmt.Sprintf("- Tracks kept: %d\n", len(tracks)))
	buf.WriteString(fmt.Sprintf("- Duplicates removed: %d\n", len(result.Curation.DuplicatesRemoved)))
	buf.WriteString(fmt.Sprintf("- Versions collapsed: %d\n", len(result.Curation.VersionsRemoved)))
	buf.WriteString(fmt.Sprintf("- Trimmed by popularity: %d\n\n", len(result.Curation.TrimmedRemoved)))

	if len(result.Warnings) > 0 {
		buf.WriteString("## Resolution Warnings\n\n")
		for _, warning := range result.Warnings {
			buf.WriteString(fmt.Sprintf("- %q resolved to %q\n", warning.Query, warning.Resolved))
		}
		buf.WriteString("\n")
	}

	if genres := topGenres(tracks, 5); len(genres) > 0 {
		buf.WriteString("## Top Genres\n\n")
		for _, g := range genres {
			buf.WriteString(fmt.Sprintf("- %s\n", g))
		}
		buf.WriteString("\n")
	}

	buf.WriteString("## Audio Profile\n\n")
	buf.WriteString(fmt.Sprintf("- Mean track popularity: %.1f\n", meanPopularity(tracks)))
	writeMeanFeature(&buf, "Danceability", tracks, func(t models.Track) *float64 { return t.Danceability })
	writeMeanFeature(&buf, "Energy", tracks, func(t models.Track) *float64 { return t.Energy })
	writeMeanFeature(&buf, "Tempo", tracks, func(t models.Track) *float64 { return t.Tempo })
	writeMeanFeature(&buf, "Speechiness", tracks, func(t models.Track) *float64 { return t.Speechiness })
	buf.WriteString("\n")

	if len(recommendations) > 0 {
		buf.WriteString("## You Might Also Like\n\n")
		for i, rec := range recommendations {
			buf.WriteString(fmt.Sprintf("%d. %s (related to %d of your artists)\n", i+1, rec.Artist.Name, rec.Count))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// featureCell renders an optional audio feature for CSV output.
func featureCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// meanPopularity averages track popularity over the table.
func meanPopularity(tracks []models.Track) float64 {
	if len(tracks) == 0 {
		return 0
	}
	sum := 0
	for _, t := range tracks {
		sum += t.TrackPopularity
	}
	return float64(sum) / float64(len(tracks))
}

// writeMeanFeature writes the mean of one audio feature, averaged only over
// rows where the feature is present. Rows without data are excluded, not
// counted as zero.
func writeMeanFeature(buf *bytes.Buffer, label string, tracks []models.Track, get func(models.Track) *float64) {
	sum := 0.0
	count := 0
	for _, t := range tracks {
		if v := get(t); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		buf.WriteString(fmt.Sprintf("- Mean %s: n/a\n", strings.ToLower(label)))
		return
	}
	buf.WriteString(fmt.Sprintf("- Mean %s: %.3f (%d tracks with data)\n", strings.ToLower(label), sum/float64(count), count))
}

// topGenres tallies genre tags across the table and returns the n most
// frequent, ties broken alphabetically.
func topGenres(tracks []models.Track, n int) []string {
	counts := make(map[string]int)
	for _, t := range tracks {
		for _, g := range t.ArtistGenres {
			counts[g]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	genres := make([]string, 0, len(counts))
	for g := range counts {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool {
		if counts[genres[i]] != counts[genres[j]] {
			return counts[genres[i]] > counts[genres[j]]
		}
		return genres[i] < genres[j]
	})

	if len(genres) > n {
		genres = genres[:n]
	}
	return genres
}
