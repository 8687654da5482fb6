package ui

import (
	"github.com/charmbracelet/bubbles/list"
)

var _ list.Item = artistItem{}

// artistItem wraps a lineup artist name with its selection state to implement
// [list.Item]. Toggling replaces the item in the list model, so the checkbox
// in the title always reflects the current state.
type artistItem struct {
	name     string
	selected bool
}

func (i artistItem) FilterValue() string { return i.name }

func (i artistItem) Title() string {
	if i.selected {
		return "[x] " + i.name
	}
	return "[ ] " + i.name
}

func (i artistItem) Description() string {
	if i.selected {
		return "included in the playlist"
	}
	return "skipped"
}
