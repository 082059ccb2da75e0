package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"rendervault/internal/adapters/tui/styles"
)

// RenderHelpLine joins the help of each binding as "key desc • key desc"
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage styles a status line; empty stays empty
func RenderMessage(message string, isError bool) string {
	switch {
	case message == "":
		return ""
	case isError:
		return styles.ErrorMsg.Render(message)
	default:
		return styles.Success.Render(message)
	}
}

// RenderLabelValue renders "label: value" with the label highlighted
func RenderLabelValue(label, value string) string {
	return styles.InputLabel.Render(label+":") + " " + value
}

// ViewBuilder accumulates the lines of a view and wraps them in the app frame
type ViewBuilder struct {
	b strings.Builder
}

func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title writes a heading followed by a blank line
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title) + "\n\n")
	return v
}

func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text + "\n")
	return v
}

func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteByte('\n')
	return v
}

func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Message writes a status line and a blank line, or nothing when empty
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message != "" {
		v.b.WriteString(RenderMessage(message, isError) + "\n\n")
	}
	return v
}

// Raw writes text as is, without a trailing newline
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
