package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is a screen opened from the main menu. Screens return Back to hand
// control to the menu.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
