package views

import (
	"context"
	"fmt"

	"rendervault/internal/application/commands"
	"rendervault/internal/domain"
)

// Registry is what the views need from the application layer
type Registry interface {
	commands.Registry
	Metadata(assetPath string) (domain.Metadata, error)
	MetadataPath(assetPath string) string
	MissingThumbnails(ctx context.Context, category domain.Category, name string) ([]domain.Asset, error)
	RevealPool(ctx context.Context, category domain.Category, name string) error
}

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// HumanSize formats a byte count, e.g. "12.4 MiB"
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Messages for view switching
type SwitchToCreateMsg struct {
	Category domain.Category
}

// DeleteTarget is a pool, or an asset when Asset is set
type DeleteTarget struct {
	Category domain.Category
	Pool     string
	Asset    *domain.Asset
}

type SwitchToDeleteMsg struct {
	Target DeleteTarget
}

type SwitchToArchiveMsg struct {
	Category domain.Category
	Asset    domain.Asset
}

type SwitchToVersionsMsg struct {
	Category domain.Category
	Asset    domain.Asset
}

type SwitchToSearchMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

// OpenEditorMsg asks the app to open a file in $EDITOR
type OpenEditorMsg struct {
	Path string
}

// ActionDoneMsg reports the outcome of a confirmed action back to the browser
type ActionDoneMsg struct {
	Message string
	Err     error
}
