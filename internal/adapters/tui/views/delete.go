package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"rendervault/internal/adapters/tui/styles"
	"rendervault/internal/application/commands"
	"rendervault/internal/domain"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	reg    Registry
	target DeleteTarget
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(reg Registry) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		reg:               reg,
	}
}

// SetTarget sets the pool or asset to delete
func (m *DeleteModel) SetTarget(t DeleteTarget) {
	m.target = t
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			func() tea.Msg { return m.doDelete() },
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	ctx := context.Background()

	if m.target.Asset == nil {
		result, err := commands.NewDeletePoolCommand(m.reg, m.target.Category, m.target.Pool).Execute(ctx)
		if err != nil {
			return ActionDoneMsg{Err: err}
		}
		return ActionDoneMsg{Message: result.Message}
	}

	result, err := commands.NewDeleteAssetCommand(m.reg, m.target.Category, m.target.Asset.Path).Execute(ctx)
	if err != nil {
		if result != nil {
			return ActionDoneMsg{Err: fmt.Errorf("%s: %w", result.Message, err)}
		}
		return ActionDoneMsg{Err: err}
	}
	return ActionDoneMsg{Message: result.Message}
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	v := NewViewBuilder()
	v.Title("Delete Confirmation")
	v.Line(styles.ErrorMsg.Render("This action cannot be undone!"))
	v.BlankLine()

	if a := m.target.Asset; a != nil {
		v.Line(RenderTargetInfo("Delete", "asset", a.Stem+a.Extension, a.Path))
		v.BlankLine()
		if l, err := domain.LayoutFor(m.target.Category); err == nil {
			v.Muted("  Matching files in " + strings.Join(l.DeleteDirs, ", ") + " are removed too.")
			v.BlankLine()
		}
	} else {
		v.Line(RenderTargetInfo("Delete", m.target.Category.String()+" pool", m.target.Pool, ""))
		v.BlankLine()
		v.Muted("  The pool folder and all its assets are permanently deleted.")
		v.BlankLine()
	}

	v.Raw(RenderConfirmPrompt("Are you sure?"))
	return v.String()
}
