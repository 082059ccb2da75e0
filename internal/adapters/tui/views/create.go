package views

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rendervault/internal/application/commands"
	"rendervault/internal/domain"
)

const (
	fieldName = iota
	fieldRoot
)

// CreateModel is the form that scaffolds and indexes a new pool
type CreateModel struct {
	ViewState
	reg      Registry
	category domain.Category
	form     *InputForm
}

// NewCreateModel creates a new create view model
func NewCreateModel(reg Registry) *CreateModel {
	return &CreateModel{
		reg: reg,
		form: NewInputForm(
			NewInputField("Pool name", "e.g. Rocks", 64),
			NewInputField("Root directory", "directory that will hold the pool folder", 512),
		),
	}
}

// SetCategory prepares the form for a new pool of category
func (m *CreateModel) SetCategory(category domain.Category) {
	m.category = category
	m.ClearMessage()
	m.form.Reset()
	if wd, err := os.Getwd(); err == nil {
		m.form.SetValue(fieldRoot, wd)
	}
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *CreateModel) submit() tea.Cmd {
	name := m.form.Value(fieldName)
	root := m.form.Value(fieldRoot)

	cmd := commands.NewCreatePoolCommand(m.reg, m.category, name, root)
	if err := cmd.Validate(); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}

	return func() tea.Msg {
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return CreateErrMsg{Err: err}
		}
		return ActionDoneMsg{Message: result.Message}
	}
}

// CreateErrMsg keeps the form open with the error shown
type CreateErrMsg struct {
	Err error
}

// View renders the create view
func (m *CreateModel) View() string {
	v := NewViewBuilder()
	v.Title("New " + m.category.String() + " Pool")

	if l, err := domain.LayoutFor(m.category); err == nil {
		target := filepath.Join(m.form.Value(fieldRoot), l.PoolFolder)
		v.Muted("Creates " + target + " with " + strings.Join(l.Subdirs, ", "))
		v.BlankLine()
	}

	v.Line(m.form.RenderField(fieldName))
	v.BlankLine()
	v.Line(m.form.RenderField(fieldRoot))
	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Raw(m.form.RenderHelp("create"))
	return v.String()
}
