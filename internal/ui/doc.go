// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for building a festival playlist:
//  1. [ArtistListView] : Browse the scraped lineup and toggle artists on/off
//  2. [ConfirmView] : Confirm the build with the selected artists
//  3. [BuildView] : Monitor real-time progress updates
//  4. [ResultView] : Display the created playlist and curation summary
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the PlaylistEngine, providing non-blocking status reporting during builds.
//
// Keyboard navigation uses vim-style bindings (j/k, space, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
