package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rendervault/internal/adapters/tui/styles"
)

var helpClose = key.NewBinding(key.WithKeys("esc", "q", "?"), key.WithHelp("esc/q/?", "close"))

type helpSection struct {
	title    string
	bindings []key.Binding
}

// helpSections lists the browser bindings, so the page follows any rebinding
var helpSections = []helpSection{
	{"Navigation", []key.Binding{BrowserKeys.NextTab, BrowserKeys.PrevTab, BrowserKeys.Up, BrowserKeys.Down,
		BrowserKeys.NextPage, BrowserKeys.PrevPage, BrowserKeys.Enter, BrowserKeys.Back}},
	{"Pools", []key.Binding{BrowserKeys.New, BrowserKeys.Delete, BrowserKeys.Reveal,
		BrowserKeys.Thumbnails, BrowserKeys.CancelJob}},
	{"Assets", []key.Binding{BrowserKeys.Archive, BrowserKeys.Versions, BrowserKeys.Copy,
		BrowserKeys.Edit, BrowserKeys.Search}},
	{"General", []key.Binding{BrowserKeys.Help, BrowserKeys.Quit}},
}

// HelpModel shows every browser key binding
type HelpModel struct {
	ViewState
}

func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

func (m *HelpModel) Init() tea.Cmd {
	return nil
}

func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, helpClose) {
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		}
	}
	return m, nil
}

func (m *HelpModel) View() string {
	v := NewViewBuilder()
	v.Title("Render Vault Help")

	for _, s := range helpSections {
		v.Line(styles.InputLabel.Render(s.title))
		for _, b := range s.bindings {
			h := b.Help()
			keys := strings.Join(b.Keys(), " / ")
			v.Line("  " + styles.HelpKey.Render(fmt.Sprintf("%-20s", keys)) + styles.HelpDesc.Render(h.Desc))
		}
		v.BlankLine()
	}

	v.Muted(fmt.Sprintf("  %s thumbnail present   %s missing", styles.ThumbPresent, styles.ThumbMissing))
	v.Muted("  Utility lists the built-in directory and is read-only.")
	v.BlankLine()
	v.Raw(RenderHelpLine(helpClose))
	return v.String()
}
