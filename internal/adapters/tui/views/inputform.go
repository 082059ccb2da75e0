package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rendervault/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
}

// InputField is a labelled text input
type InputField struct {
	Label string
	Input textinput.Model
}

// NewInputField creates a field; a charLimit of zero keeps the textinput default
func NewInputField(label, placeholder string, charLimit int) InputField {
	in := textinput.New()
	in.Placeholder = placeholder
	if charLimit > 0 {
		in.CharLimit = charLimit
	}
	return InputField{Label: label, Input: in}
}

// InputForm is a column of fields with one focused at a time.
// Submit and Cancel are left to the owning view.
type InputForm struct {
	Fields []InputField
	Keys   InputFormKeyMap
	focus  int
}

func NewInputForm(fields ...InputField) *InputForm {
	f := &InputForm{Fields: fields, Keys: DefaultInputFormKeys}
	f.focusField(0)
	return f
}

func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update moves focus on Next/Prev and feeds everything else to the focused
// field. handled reports a focus change.
func (f *InputForm) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && len(f.Fields) > 1 {
		switch {
		case key.Matches(k, f.Keys.Next):
			f.focusField(f.focus + 1)
			return true, nil
		case key.Matches(k, f.Keys.Prev):
			f.focusField(f.focus - 1)
			return true, nil
		}
	}
	if len(f.Fields) == 0 {
		return false, nil
	}
	f.Fields[f.focus].Input, cmd = f.Fields[f.focus].Input.Update(msg)
	return false, cmd
}

// focusField focuses field i, wrapping around both ends
func (f *InputForm) focusField(i int) {
	n := len(f.Fields)
	if n == 0 {
		return
	}
	f.Fields[f.focus].Input.Blur()
	f.focus = (i%n + n) % n
	f.Fields[f.focus].Input.Focus()
}

// Value returns the trimmed text of field i
func (f *InputForm) Value(i int) string {
	if i < 0 || i >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[i].Input.Value())
}

func (f *InputForm) SetValue(i int, value string) {
	if i >= 0 && i < len(f.Fields) {
		f.Fields[i].Input.SetValue(value)
	}
}

// Reset clears every field and focuses the first
func (f *InputForm) Reset() {
	for i := range f.Fields {
		f.Fields[i].Input.SetValue("")
	}
	f.focusField(0)
}

// RenderField renders the label above the input, highlighted when focused
func (f *InputForm) RenderField(i int) string {
	if i < 0 || i >= len(f.Fields) {
		return ""
	}
	field := f.Fields[i]
	box := styles.InputField
	if i == f.focus {
		box = styles.InputFocused
	}
	return styles.InputLabel.Render(field.Label) + "\n" + box.Render(field.Input.View())
}

// RenderHelp renders the form keys with submitText as the enter action
func (f *InputForm) RenderHelp(submitText string) string {
	submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp(f.Keys.Submit.Help().Key, submitText))
	if len(f.Fields) > 1 {
		return RenderHelpLine(f.Keys.Next, submit, f.Keys.Cancel)
	}
	return RenderHelpLine(submit, f.Keys.Cancel)
}
