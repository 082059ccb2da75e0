package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rendervault/internal/adapters/tui/styles"
	"rendervault/internal/application/commands"
	"rendervault/internal/domain"
	"rendervault/internal/ports"
	"rendervault/internal/worker"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Enter      key.Binding
	Back       key.Binding
	New        key.Binding
	Delete     key.Binding
	Archive    key.Binding
	Versions   key.Binding
	Copy       key.Binding
	Edit       key.Binding
	Reveal     key.Binding
	Thumbnails key.Binding
	CancelJob  key.Binding
	Search     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	NextPage:   key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "next page")),
	PrevPage:   key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "prev page")),
	NextTab:    key.NewBinding(key.WithKeys("tab", "L"), key.WithHelp("tab", "next category")),
	PrevTab:    key.NewBinding(key.WithKeys("shift+tab", "H"), key.WithHelp("shift+tab", "prev category")),
	Enter:      key.NewBinding(key.WithKeys("enter", "l", "right"), key.WithHelp("enter", "open pool")),
	Back:       key.NewBinding(key.WithKeys("esc", "backspace", "h", "left"), key.WithHelp("esc", "back")),
	New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new pool")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Archive:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archive")),
	Versions:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "versions")),
	Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit metadata")),
	Reveal:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "reveal")),
	Thumbnails: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "thumbnails")),
	CancelJob:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cancel job")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ThumbnailSettings configures the batch thumbnail job
type ThumbnailSettings struct {
	Generator ports.ThumbnailGenerator
	Category  domain.Category // the only category whose assets are images
	Size      int
	Workers   int
}

type browseLevel int

const (
	levelPools browseLevel = iota
	levelAssets
)

// BrowserModel lists the pools of the selected category and the assets of an open pool
type BrowserModel struct {
	ViewState
	reg    Registry
	worker *worker.Worker
	thumbs ThumbnailSettings

	categories []domain.Category
	tab        int
	level      browseLevel

	pools  []domain.Pool
	pool   *domain.Pool
	assets []domain.Asset
	pager  *Paginator
	loaded bool

	spinner  spinner.Model
	progress *worker.Event
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(reg Registry, w *worker.Worker, thumbs ThumbnailSettings) *BrowserModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Progress

	return &BrowserModel{
		reg:        reg,
		worker:     w,
		thumbs:     thumbs,
		categories: append(domain.PoolCategories(), domain.CategoryUtility),
		pager:      NewPaginator(15),
		spinner:    s,
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.load()
}

type poolsLoadedMsg struct {
	category domain.Category
	pools    []domain.Pool
}

type assetsLoadedMsg struct {
	category domain.Category
	pool     string
	assets   []domain.Asset
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

type jobStartedMsg struct {
	events <-chan worker.Event
}

type jobEventMsg struct {
	event  worker.Event
	events <-chan worker.Event
}

// Category returns the category of the active tab
func (m *BrowserModel) Category() domain.Category {
	return m.categories[m.tab]
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case poolsLoadedMsg:
		if msg.category != m.Category() {
			return m, nil
		}
		m.pools = msg.pools
		m.loaded = true
		m.pager.SetTotal(len(m.pools))
		return m, nil

	case assetsLoadedMsg:
		if msg.category != m.Category() {
			return m, nil
		}
		m.assets = msg.assets
		m.loaded = true
		m.pager.SetTotal(len(m.assets))
		return m, nil

	case errMsg:
		m.loaded = true
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.load()

	case ActionDoneMsg:
		if msg.Err != nil {
			m.SetMessage(msg.Err.Error(), true)
		} else {
			m.SetMessage(msg.Message, false)
		}
		return m, m.load()

	case jobStartedMsg:
		m.progress = &worker.Event{Kind: worker.EventStarted}
		return m, tea.Batch(waitForEvent(msg.events), m.spinner.Tick)

	case jobEventMsg:
		return m, m.handleJobEvent(msg)

	case spinner.TickMsg:
		if m.progress == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.ClearMessage()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		m.worker.Cancel()
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.pager.CursorUp()

	case key.Matches(msg, BrowserKeys.Down):
		m.pager.CursorDown()

	case key.Matches(msg, BrowserKeys.NextPage):
		m.pager.NextPage()

	case key.Matches(msg, BrowserKeys.PrevPage):
		m.pager.PrevPage()

	case key.Matches(msg, BrowserKeys.NextTab):
		return m.switchTab(1)

	case key.Matches(msg, BrowserKeys.PrevTab):
		return m.switchTab(-1)

	case key.Matches(msg, BrowserKeys.Enter):
		if m.level == levelPools {
			if p := m.selectedPool(); p != nil {
				pool := *p
				m.pool = &pool
				m.level = levelAssets
				m.pager.Reset()
				return m.load()
			}
		}

	case key.Matches(msg, BrowserKeys.Back):
		if m.level == levelAssets && m.Category() != domain.CategoryUtility {
			m.level = levelPools
			m.pool = nil
			m.assets = nil
			m.pager.Reset()
			return m.load()
		}

	case key.Matches(msg, BrowserKeys.New):
		if m.Category() == domain.CategoryUtility {
			m.SetMessage("Utility is read-only", true)
			return nil
		}
		category := m.Category()
		return func() tea.Msg { return SwitchToCreateMsg{Category: category} }

	case key.Matches(msg, BrowserKeys.Delete):
		return m.requestDelete()

	case key.Matches(msg, BrowserKeys.Archive):
		if a := m.selectedAsset(); a != nil {
			category, asset := m.Category(), *a
			return func() tea.Msg { return SwitchToArchiveMsg{Category: category, Asset: asset} }
		}

	case key.Matches(msg, BrowserKeys.Versions):
		if a := m.selectedAsset(); a != nil {
			category, asset := m.Category(), *a
			return func() tea.Msg { return SwitchToVersionsMsg{Category: category, Asset: asset} }
		}

	case key.Matches(msg, BrowserKeys.Copy):
		return m.copyPath()

	case key.Matches(msg, BrowserKeys.Edit):
		return m.editMetadata()

	case key.Matches(msg, BrowserKeys.Reveal):
		return m.reveal()

	case key.Matches(msg, BrowserKeys.Thumbnails):
		return m.generateThumbnails()

	case key.Matches(msg, BrowserKeys.CancelJob):
		if m.worker.Running() {
			m.worker.Cancel()
			m.SetMessage("Cancelling after the current item...", false)
		}

	case key.Matches(msg, BrowserKeys.Search):
		return func() tea.Msg { return SwitchToSearchMsg{} }

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}
	return nil
}

func (m *BrowserModel) switchTab(delta int) tea.Cmd {
	m.tab = (m.tab + delta + len(m.categories)) % len(m.categories)
	m.level = levelPools
	if m.Category() == domain.CategoryUtility {
		m.level = levelAssets
	}
	m.pool = nil
	m.pools = nil
	m.assets = nil
	m.pager.Reset()
	return m.load()
}

// load fetches the rows for the current tab and level
func (m *BrowserModel) load() tea.Cmd {
	m.loaded = false
	category := m.Category()

	if m.level == levelPools {
		return func() tea.Msg {
			pools, err := commands.NewListPoolsCommand(m.reg, category).Execute(context.Background())
			if err != nil {
				return errMsg{err}
			}
			return poolsLoadedMsg{category: category, pools: pools}
		}
	}

	var name string
	if m.pool != nil {
		name = m.pool.Name
	}
	return func() tea.Msg {
		assets, err := commands.NewListAssetsCommand(m.reg, category, name).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return assetsLoadedMsg{category: category, pool: name, assets: assets}
	}
}

// Reload refreshes the current listing
func (m *BrowserModel) Reload() tea.Cmd {
	return m.load()
}

func (m *BrowserModel) selectedPool() *domain.Pool {
	if m.level != levelPools {
		return nil
	}
	if i := m.pager.Cursor(); i >= 0 && i < len(m.pools) {
		return &m.pools[i]
	}
	return nil
}

func (m *BrowserModel) selectedAsset() *domain.Asset {
	if m.level != levelAssets {
		return nil
	}
	if i := m.pager.Cursor(); i >= 0 && i < len(m.assets) {
		return &m.assets[i]
	}
	return nil
}

func (m *BrowserModel) requestDelete() tea.Cmd {
	category := m.Category()
	if category == domain.CategoryUtility {
		m.SetMessage("Utility is read-only", true)
		return nil
	}

	var target DeleteTarget
	switch {
	case m.selectedPool() != nil:
		target = DeleteTarget{Category: category, Pool: m.selectedPool().Name}
	case m.selectedAsset() != nil:
		asset := *m.selectedAsset()
		target = DeleteTarget{Category: category, Pool: m.pool.Name, Asset: &asset}
	default:
		return nil
	}
	return func() tea.Msg { return SwitchToDeleteMsg{Target: target} }
}

func (m *BrowserModel) copyPath() tea.Cmd {
	var path string
	if p := m.selectedPool(); p != nil {
		path = p.Dir()
	} else if a := m.selectedAsset(); a != nil {
		path = a.Path
	}
	if path == "" {
		return nil
	}
	if err := clipboard.WriteAll(path); err != nil {
		m.SetMessage(fmt.Sprintf("Clipboard unavailable: %v", err), true)
		return nil
	}
	m.SetMessage("Copied "+path, false)
	return nil
}

func (m *BrowserModel) editMetadata() tea.Cmd {
	a := m.selectedAsset()
	if a == nil || m.Category() == domain.CategoryUtility {
		return nil
	}
	assetPath := a.Path
	return func() tea.Msg {
		// Loading heals a missing or partial sidecar before the editor sees it
		if _, err := m.reg.Metadata(assetPath); err != nil {
			return errMsg{err}
		}
		return OpenEditorMsg{Path: m.reg.MetadataPath(assetPath)}
	}
}

func (m *BrowserModel) reveal() tea.Cmd {
	category := m.Category()
	var name string
	if p := m.selectedPool(); p != nil {
		name = p.Name
	} else if m.pool != nil {
		name = m.pool.Name
	}
	if name == "" {
		return nil
	}
	return func() tea.Msg {
		if err := m.reg.RevealPool(context.Background(), category, name); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m *BrowserModel) generateThumbnails() tea.Cmd {
	if m.thumbs.Generator == nil {
		return nil
	}
	if m.Category() != m.thumbs.Category {
		m.SetMessage(fmt.Sprintf("Thumbnails are generated for %s pools only", m.thumbs.Category), true)
		return nil
	}

	var pool domain.Pool
	if p := m.selectedPool(); p != nil {
		pool = *p
	} else if m.pool != nil {
		pool = *m.pool
	} else {
		return nil
	}

	return func() tea.Msg {
		missing, err := m.reg.MissingThumbnails(context.Background(), pool.Category, pool.Name)
		if err != nil {
			return errMsg{err}
		}
		if len(missing) == 0 {
			return successMsg{fmt.Sprintf("All thumbnails of %s are present", pool.Name)}
		}

		job := &worker.ThumbnailJob{
			Assets:    missing,
			Generator: m.thumbs.Generator,
			Size:      m.thumbs.Size,
			Workers:   m.thumbs.Workers,
		}
		events, err := m.worker.Start(context.Background(), job)
		if err != nil {
			if errors.Is(err, worker.ErrBusy) {
				return errMsg{fmt.Errorf("a job is already running")}
			}
			return errMsg{err}
		}
		return jobStartedMsg{events: events}
	}
}

func waitForEvent(events <-chan worker.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return jobEventMsg{event: ev, events: events}
	}
}

func (m *BrowserModel) handleJobEvent(msg jobEventMsg) tea.Cmd {
	ev := msg.event
	if ev.Kind != worker.EventFinished {
		m.progress = &ev
		return waitForEvent(msg.events)
	}

	m.progress = nil
	switch {
	case errors.Is(ev.Err, context.Canceled):
		m.SetMessage(fmt.Sprintf("Cancelled: %d of %d thumbnails generated", ev.Completed, ev.Total), true)
	case ev.Err != nil:
		m.SetMessage(ev.Err.Error(), true)
	case ev.Completed < ev.Total:
		m.SetMessage(fmt.Sprintf("Generated %d of %d thumbnails, see log for failures", ev.Completed, ev.Total), true)
	default:
		m.SetMessage(fmt.Sprintf("Generated %d thumbnails", ev.Completed), false)
	}
	return m.load()
}

// View renders the browser
func (m *BrowserModel) View() string {
	v := NewViewBuilder()
	v.Raw(styles.Title.Render("Render Vault"))
	v.BlankLine()
	v.Line(m.renderTabs())
	v.BlankLine()

	if m.level == levelAssets && m.pool != nil {
		v.Line(RenderLabelValue(m.pool.Name, styles.MutedText.Render(m.pool.Dir())))
		v.BlankLine()
	}

	switch {
	case !m.loaded:
		v.Muted("Loading...")
	case m.level == levelPools:
		m.renderPools(v)
	default:
		m.renderAssets(v)
	}

	if m.progress != nil {
		v.BlankLine()
		v.Line(m.spinner.View() + " " + styles.Progress.Render(m.progressText()))
	}

	if m.Message != "" {
		v.BlankLine()
		v.Line(RenderMessage(m.Message, m.MessageErr))
	}

	v.BlankLine()
	v.Raw(m.renderHelpLine())
	return v.String()
}

func (m *BrowserModel) renderTabs() string {
	var tabs []string
	for i, c := range m.categories {
		name := c.String()
		if i == m.tab {
			tabs = append(tabs, styles.TabActive.Foreground(styles.CategoryColor(name)).Render(name))
		} else {
			tabs = append(tabs, styles.Tab.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *BrowserModel) renderPools(v *ViewBuilder) {
	if len(m.pools) == 0 {
		v.Muted(fmt.Sprintf("No %s pools yet. Press n to create one.", m.Category()))
		return
	}
	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		p := m.pools[i]
		v.Line(renderRow(fmt.Sprintf("%-24s", p.Name), p.Root, i == m.pager.Cursor()))
	}
	m.renderPageInfo(v)
}

func (m *BrowserModel) renderAssets(v *ViewBuilder) {
	if len(m.assets) == 0 {
		v.Muted("No assets.")
		return
	}
	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		a := m.assets[i]
		marker := styles.ThumbMissing.String()
		if a.HasThumbnail() {
			marker = styles.ThumbPresent.String()
		}
		label := fmt.Sprintf("%-32s", a.Stem+a.Extension)
		v.Line(marker + " " + renderRow(label, fmt.Sprintf("%10s", HumanSize(a.Size)), i == m.pager.Cursor()))
	}
	m.renderPageInfo(v)
}

func (m *BrowserModel) renderPageInfo(v *ViewBuilder) {
	if m.pager.TotalPages() > 1 {
		v.BlankLine()
		v.Muted(fmt.Sprintf("Page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages()))
	}
}

func renderRow(label, detail string, selected bool) string {
	if selected {
		return styles.RowSelected.Render(label + "  " + detail)
	}
	return styles.Row.Render(label) + "  " + styles.RowDetail.Render(detail)
}

func (m *BrowserModel) progressText() string {
	if m.progress.Kind == worker.EventStarted {
		return "Generating thumbnails..."
	}
	return fmt.Sprintf("Generating thumbnails %d/%d  %s", m.progress.Index, m.progress.Total, domain.Stem(m.progress.Item))
}

func (m *BrowserModel) renderHelpLine() string {
	if m.level == levelPools {
		return RenderHelpLine(BrowserKeys.NextTab, BrowserKeys.Enter, BrowserKeys.New, BrowserKeys.Delete,
			BrowserKeys.Thumbnails, BrowserKeys.Search, BrowserKeys.Help, BrowserKeys.Quit)
	}
	return RenderHelpLine(BrowserKeys.Back, BrowserKeys.Archive, BrowserKeys.Versions, BrowserKeys.Copy,
		BrowserKeys.Edit, BrowserKeys.Delete, BrowserKeys.Help, BrowserKeys.Quit)
}

// SetSize updates the view dimensions and the page length
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// Title, tabs, pool header, status and help take about 14 lines
	m.pager.SetPageSize(max(height-14, 5))
}

// IsBrowserMsg reports whether msg is addressed to the browser regardless of the visible view
func IsBrowserMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case poolsLoadedMsg, assetsLoadedMsg, errMsg, successMsg, jobStartedMsg, jobEventMsg, spinner.TickMsg:
		return true
	}
	return false
}
