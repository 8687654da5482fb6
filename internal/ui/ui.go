package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/setlist/internal/shared"
	"github.com/desertthunder/setlist/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ArtistListView ViewState = iota
	ConfirmView
	BuildView
	ResultView
)

type progressUpdateMsg tasks.ProgressUpdate

type buildCompleteMsg struct {
	result *tasks.BuildResult
	err    error
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.PlaylistEngine
	playlistName string
	opts         tasks.BuildOpts
	width        int
	height       int
	artistList   list.Model
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *tasks.BuildResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model for the given lineup. Every artist starts
// selected; the list lets the user prune before confirming the build.
func NewModel(ctx context.Context, engine *tasks.PlaylistEngine, playlistName string, artistNames []string, opts tasks.BuildOpts) *Model {
	items := make([]list.Item, len(artistNames))
	for i, name := range artistNames {
		items[i] = artistItem{name: name, selected: true}
	}

	artistList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	artistList.Title = fmt.Sprintf("Lineup for %s", playlistName)

	return &Model{
		ctx:          ctx,
		view:         ArtistListView,
		engine:       engine,
		playlistName: playlistName,
		opts:         opts,
		artistList:   artistList,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Selected returns the names of the currently selected artists, lineup order.
func (m *Model) Selected() []string {
	var names []string
	for _, item := range m.artistList.Items() {
		if artist, ok := item.(artistItem); ok && artist.selected {
			names = append(names, artist.name)
		}
	}
	return names
}

// Result returns the build outcome once the program has finished.
func (m *Model) Result() (*tasks.BuildResult, error) {
	return m.result, m.err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.artistList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ArtistListView:
			return m.handleArtistListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case buildCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.artistList, cmd = m.artistList.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ArtistListView:
		return m.renderArtistList()
	case ConfirmView:
		return m.renderConfirm()
	case BuildView:
		return m.renderBuild()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleArtistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle):
		if item, ok := m.artistList.SelectedItem().(artistItem); ok {
			item.selected = !item.selected
			return m, m.artistList.SetItem(m.artistList.Index(), item)
		}
		return m, nil
	case key.Matches(msg, m.keys.all):
		return m, m.toggleAll()
	case key.Matches(msg, m.keys.enter):
		if len(m.Selected()) == 0 {
			return m, nil
		}
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.artistList, cmd = m.artistList.Update(msg)
	return m, cmd
}

// toggleAll selects every artist, or clears the selection when everything is
// already selected.
func (m *Model) toggleAll() tea.Cmd {
	items := m.artistList.Items()
	allSelected := true
	for _, item := range items {
		if artist, ok := item.(artistItem); ok && !artist.selected {
			allSelected = false
			break
		}
	}

	var cmds []tea.Cmd
	for i, item := range items {
		if artist, ok := item.(artistItem); ok {
			artist.selected = !allSelected
			cmds = append(cmds, m.artistList.SetItem(i, artist))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit), key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.view = ArtistListView
		return m, nil
	case key.Matches(msg, m.keys.yes):
		m.view = BuildView
		return m, m.startBuild()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) || key.Matches(msg, m.keys.enter) {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) startBuild() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	go func() {
		result, err := m.engine.Build(m.ctx, progress, m.Selected(), m.playlistName, m.opts)
		m.result = result
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	return func() tea.Msg {
		if progress == nil {
			return buildCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-progress
		if !ok {
			return buildCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderArtistList() string {
	helpKeys := []key.Binding{m.keys.toggle, m.keys.all, m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	count := styles.help.Render(fmt.Sprintf("%d of %d artists selected", len(m.Selected()), len(m.artistList.Items())))
	return fmt.Sprintf("%s\n%s\n\n%s", m.artistList.View(), count, helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Build playlist '%s'?", m.playlistName))
	info := fmt.Sprintf("\nArtists: %d\nVisibility: %s\n", len(m.Selected()), shared.VisibilityString(m.opts.Public))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderBuild() string {
	title := styles.title.Render("Building Playlist")

	var phase string
	switch m.progress.Phase {
	case tasks.ResolveArtists:
		phase = fmt.Sprintf("Resolving artists (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.CollectTracks:
		phase = fmt.Sprintf("Collecting tracks (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.CurateTracks:
		phase = "Curating tracks..."
	case tasks.CreatePlaylist:
		phase = "Creating playlist..."
	case tasks.AddTracks:
		phase = fmt.Sprintf("Adding tracks (batch %d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Build failed: %v\n\nPress q to quit", m.err))
	}

	if m.result == nil || m.result.Playlist == nil {
		return styles.err.Render("No result available\n\nPress q to quit")
	}

	title := styles.ok.Render("✓ Playlist Created!")
	info := fmt.Sprintf(
		"\nPlaylist: %s\nTracks: %d (of %d collected)\nDuplicates removed: %d\nVersions collapsed: %d\nTrimmed: %d",
		m.result.Playlist.Name,
		len(m.result.Curation.Tracks),
		m.result.TotalCollected,
		len(m.result.Curation.DuplicatesRemoved),
		len(m.result.Curation.VersionsRemoved),
		len(m.result.Curation.TrimmedRemoved),
	)
	if m.result.Playlist.URL != "" {
		info += fmt.Sprintf("\nURL: %s", m.result.Playlist.URL)
	}

	var warnings string
	if len(m.result.Warnings) > 0 {
		warnings = fmt.Sprintf("\n\n%s", styles.warn.Render(fmt.Sprintf("%d name(s) resolved differently:", len(m.result.Warnings))))
		for _, warning := range m.result.Warnings {
			warnings += fmt.Sprintf("\n  • %q → %q", warning.Query, warning.Resolved)
		}
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, warnings, helpView)
}
