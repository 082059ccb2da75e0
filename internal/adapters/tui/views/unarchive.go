package views

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rendervault/internal/application/commands"
	"rendervault/internal/domain"
)

// VersionsKeyMap defines key bindings for the versions view
type VersionsKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Restore     key.Binding
	RestoreKeep key.Binding
	Copy        key.Binding
	Back        key.Binding
}

var VersionsKeys = VersionsKeyMap{
	Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Restore:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restore")),
	RestoreKeep: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "archive current, then restore")),
	Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
	Back:        key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
}

// VersionsModel lists the archived versions of an asset and restores them
type VersionsModel struct {
	ViewState
	reg      Registry
	category domain.Category
	asset    domain.Asset
	versions []domain.ArchiveEntry
	pager    *Paginator
	loaded   bool
}

// NewVersionsModel creates a new versions view model
func NewVersionsModel(reg Registry) *VersionsModel {
	return &VersionsModel{reg: reg, pager: NewPaginator(15)}
}

// SetTarget sets the asset whose versions are listed
func (m *VersionsModel) SetTarget(category domain.Category, asset domain.Asset) {
	m.category = category
	m.asset = asset
	m.versions = nil
	m.loaded = false
	m.pager.Reset()
	m.ClearMessage()
}

type versionsLoadedMsg struct {
	versions []domain.ArchiveEntry
	err      error
}

type restoredMsg struct {
	message string
	err     error
}

// Init loads the versions
func (m *VersionsModel) Init() tea.Cmd {
	path := m.asset.Path
	return func() tea.Msg {
		versions, err := commands.NewListVersionsCommand(m.reg, path).Execute(context.Background())
		return versionsLoadedMsg{versions: versions, err: err}
	}
}

// Update handles messages for the versions view
func (m *VersionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case versionsLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		m.versions = msg.versions
		m.pager.SetTotal(len(m.versions))
		// Newest first is what one usually restores
		m.pager.SetCursor(len(m.versions) - 1)
		return m, nil

	case restoredMsg:
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		m.SetMessage(msg.message, false)
		return m, m.Init()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, VersionsKeys.Back):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, VersionsKeys.Up):
			m.pager.CursorUp()
		case key.Matches(msg, VersionsKeys.Down):
			m.pager.CursorDown()
		case key.Matches(msg, VersionsKeys.Restore):
			return m, m.restore(false)
		case key.Matches(msg, VersionsKeys.RestoreKeep):
			return m, m.restore(true)
		case key.Matches(msg, VersionsKeys.Copy):
			if i := m.pager.Cursor(); i >= 0 && i < len(m.versions) {
				if err := clipboard.WriteAll(m.versions[i].Path); err != nil {
					m.SetMessage(err.Error(), true)
				} else {
					m.SetMessage("Copied "+m.versions[i].Path, false)
				}
			}
		}
	}
	return m, nil
}

func (m *VersionsModel) restore(keepCurrent bool) tea.Cmd {
	i := m.pager.Cursor()
	if i < 0 || i >= len(m.versions) {
		return nil
	}
	entry := m.versions[i]

	cmd := commands.NewRestoreVersionCommand(m.reg, m.category, m.asset.Path, entry.Version)
	cmd.KeepCurrent = keepCurrent
	return func() tea.Msg {
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return restoredMsg{err: err}
		}
		return restoredMsg{message: result.Message}
	}
}

// View renders the versions view
func (m *VersionsModel) View() string {
	v := NewViewBuilder()
	v.Title("Versions of " + m.asset.Stem)
	v.Muted(m.asset.Path)
	v.BlankLine()

	switch {
	case !m.loaded:
		v.Muted("Loading...")
	case len(m.versions) == 0:
		v.Muted("No archived versions. Press a in the browser to archive the asset.")
	default:
		start, end := m.pager.VisibleRange()
		for i := start; i < end; i++ {
			e := m.versions[i]
			label := fmt.Sprintf("%-28s", e.Label())
			v.Line(renderRow(label, e.Path, i == m.pager.Cursor()))
		}
	}

	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Raw(RenderHelpLine(VersionsKeys.Up, VersionsKeys.Down, VersionsKeys.Restore, VersionsKeys.RestoreKeep, VersionsKeys.Copy, VersionsKeys.Back))
	return v.String()
}
