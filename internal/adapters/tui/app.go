package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"rendervault/internal/adapters/tui/views"
	"rendervault/internal/ports"
	"rendervault/internal/worker"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewCreate
	ViewDelete
	ViewArchive
	ViewVersions
	ViewSearch
	ViewHelp
)

// App is the main TUI application model
type App struct {
	reg    views.Registry
	editor ports.EditorOpener

	state    ViewState
	browser  *views.BrowserModel
	create   *views.CreateModel
	remove   *views.DeleteModel
	archive  *views.ArchiveModel
	versions *views.VersionsModel
	search   *views.SearchModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(reg views.Registry, ed ports.EditorOpener, w *worker.Worker, thumbs views.ThumbnailSettings) *App {
	return &App{
		reg:      reg,
		editor:   ed,
		state:    ViewBrowser,
		browser:  views.NewBrowserModel(reg, w, thumbs),
		create:   views.NewCreateModel(reg),
		remove:   views.NewDeleteModel(reg),
		archive:  views.NewArchiveModel(reg),
		versions: views.NewVersionsModel(reg),
		search:   views.NewSearchModel(reg),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, v := range a.views() {
			v.Update(msg)
		}
		return a, nil

	// View switching messages
	case views.SwitchToCreateMsg:
		a.state = ViewCreate
		a.create.SetCategory(msg.Category)
		return a, a.create.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.remove.SetTarget(msg.Target)
		return a, nil

	case views.SwitchToArchiveMsg:
		a.state = ViewArchive
		a.archive.SetTarget(msg.Category, msg.Asset)
		return a, nil

	case views.SwitchToVersionsMsg:
		a.state = ViewVersions
		a.versions.SetTarget(msg.Category, msg.Asset)
		return a, a.versions.Init()

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	// Results of confirmed actions land in the browser
	case views.ActionDoneMsg:
		a.state = ViewBrowser
		_, cmd := a.browser.Update(msg)
		return a, cmd

	case views.CreateErrMsg:
		a.create.SetMessage(msg.Err.Error(), true)
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.browser.SetMessage(msg.err.Error(), true)
		}
		return a, a.browser.Reload()
	}

	// Background job progress and loads always belong to the browser
	if a.state != ViewBrowser && views.IsBrowserMsg(msg) {
		_, cmd := a.browser.Update(msg)
		return a, cmd
	}

	_, cmd := a.current().Update(msg)
	return a, cmd
}

// views lists every view model in ViewState order
func (a *App) views() []tea.Model {
	return []tea.Model{a.browser, a.create, a.remove, a.archive, a.versions, a.search, a.help}
}

func (a *App) current() tea.Model {
	if all := a.views(); int(a.state) < len(all) {
		return all[a.state]
	}
	return a.browser
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	return a.current().View()
}
