package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rendervault/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
	Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n/esc", "cancel")),
}

// ConfirmationModel provides a base for confirmation-style views (delete, archive)
type ConfirmationModel struct {
	ViewState
	Keys ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// HandleKeyMsg processes key messages for confirmation views.
// Returns (handled, cmd) where handled is true if the key was processed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg, onConfirm, onCancel func() tea.Msg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		return true, func() tea.Msg { return onCancel() }
	case key.Matches(msg, m.Keys.Confirm):
		return true, func() tea.Msg { return onConfirm() }
	}
	return false, nil
}

// RenderConfirmPrompt renders question followed by the confirm and cancel keys
func RenderConfirmPrompt(question string) string {
	return question + "  " + RenderHelpLine(DefaultConfirmKeys.Confirm, DefaultConfirmKeys.Cancel)
}

// RenderTargetInfo renders "<action> <kind>:" then the name and, if set, the path
func RenderTargetInfo(action, kind, name, path string) string {
	lines := []string{styles.InputLabel.Render(action + " " + kind + ":"), "  " + name}
	if path != "" {
		lines = append(lines, "  "+styles.MutedText.Render(path))
	}
	return strings.Join(lines, "\n")
}
