package views

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rendervault/internal/adapters/tui/styles"
	"rendervault/internal/application/commands"
	"rendervault/internal/domain"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy path")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

const maxSearchResults = 10

// SearchModel fuzzy-searches asset names across every indexed pool
type SearchModel struct {
	ViewState
	reg     Registry
	input   textinput.Model
	results []commands.SearchResult
	query   string // query the results belong to
	cursor  int
}

// NewSearchModel creates a new search view model
func NewSearchModel(reg Registry) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Asset name..."
	input.Focus()

	return &SearchModel{
		reg:   reg,
		input: input,
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset resets the search view
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.query = ""
	m.cursor = 0
	m.ClearMessage()
	m.input.Focus()
}

type searchResultsMsg struct {
	query   string
	results []commands.SearchResult
	err     error
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		// Drop answers to queries the user has already typed past
		if msg.query != m.input.Value() {
			return m, nil
		}
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
		}
		m.results = msg.results
		m.query = msg.query
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < min(len(m.results), maxSearchResults)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if m.cursor >= 0 && m.cursor < len(m.results) {
				path := m.results[m.cursor].Asset.Path
				if err := clipboard.WriteAll(path); err != nil {
					m.SetMessage(err.Error(), true)
				} else {
					m.SetMessage("Copied "+path, false)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	query := m.input.Value()
	if len(query) >= 2 && query != m.query {
		return m, tea.Batch(cmd, m.search(query))
	} else if len(query) < 2 {
		m.results = nil
		m.query = ""
	}

	return m, cmd
}

func (m *SearchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := commands.NewSearchCommand(m.reg, domain.CategoryUnknown, query).Execute(context.Background())
		return searchResultsMsg{query: query, results: results, err: err}
	}
}

// View renders the search view
func (m *SearchModel) View() string {
	v := NewViewBuilder()
	v.Title("Search")
	v.Line(styles.InputFocused.Render(m.input.View()))
	v.BlankLine()

	switch {
	case len(m.results) > 0:
		shown := m.results[:min(len(m.results), maxSearchResults)]
		for i, r := range shown {
			v.Line(m.renderResult(r, i == m.cursor))
		}
		if rest := len(m.results) - len(shown); rest > 0 {
			v.Muted(fmt.Sprintf("... and %d more", rest))
		}
	case len(m.input.Value()) >= 2:
		v.Muted("No assets match")
	default:
		v.Muted("Type at least 2 characters to search every pool")
	}

	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Raw(RenderHelpLine(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Cancel))
	return v.String()
}

func (m *SearchModel) renderResult(r commands.SearchResult, selected bool) string {
	name := fmt.Sprintf("%-28s", r.Asset.Stem+r.Asset.Extension)
	if selected {
		return styles.RowSelected.Render(name + "  " + r.Pool.Category.String() + "/" + r.Pool.Name)
	}
	category := r.Pool.Category.String()
	where := lipgloss.NewStyle().Foreground(styles.CategoryColor(category)).Render(category) + "/" + r.Pool.Name
	return styles.Row.Render(name) + "  " + where
}
