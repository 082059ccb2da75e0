package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"rendervault/internal/application/commands"
	"rendervault/internal/domain"
)

// ArchiveModel is the model for the archive confirmation view
type ArchiveModel struct {
	ConfirmationModel
	reg      Registry
	category domain.Category
	asset    domain.Asset
}

// NewArchiveModel creates a new archive view model
func NewArchiveModel(reg Registry) *ArchiveModel {
	return &ArchiveModel{
		ConfirmationModel: NewConfirmationModel(),
		reg:               reg,
	}
}

// SetTarget sets the asset to archive
func (m *ArchiveModel) SetTarget(category domain.Category, asset domain.Asset) {
	m.category = category
	m.asset = asset
}

// Init initializes the archive view
func (m *ArchiveModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the archive view
func (m *ArchiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			func() tea.Msg { return m.doArchive() },
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *ArchiveModel) doArchive() tea.Msg {
	result, err := commands.NewArchiveAssetCommand(m.reg, m.category, m.asset.Path).Execute(context.Background())
	if err != nil {
		return ActionDoneMsg{Err: err}
	}
	return ActionDoneMsg{Message: result.Message}
}

// View renders the archive confirmation view
func (m *ArchiveModel) View() string {
	v := NewViewBuilder()
	v.Title("Archive Confirmation")
	v.Muted("A copy is stored in Archive/" + m.asset.Stem + " with the next version number.")
	v.Muted("The asset itself stays in place.")
	v.BlankLine()
	v.Line(RenderTargetInfo("Archive", "asset", m.asset.Stem+m.asset.Extension, m.asset.Path))
	v.BlankLine()
	v.Raw(RenderConfirmPrompt("Proceed with archive?"))
	return v.String()
}
