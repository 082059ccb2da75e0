package launcher

import (
	"fmt"
	"os"
	"os/exec"

	"rendervault/internal/domain"
	"rendervault/internal/ports"
)

// Editor implements ports.EditorOpener
type Editor struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// Ensure Editor implements ports.EditorOpener
var _ ports.EditorOpener = (*Editor)(nil)

// NewEditor creates an editor opener driven by $VISUAL and $EDITOR
func NewEditor() *Editor {
	return &Editor{getenv: os.Getenv, lookPath: exec.LookPath}
}

// OpenFile opens a file in the user's preferred editor and waits for it
func (e *Editor) OpenFile(path string) error {
	cmd, err := e.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor.
// The TUI hands it to tea.ExecProcess.
func (e *Editor) Command(path string) (*exec.Cmd, error) {
	editor := e.find()
	if editor == "" {
		return nil, fmt.Errorf("%w: no editor found: set $EDITOR environment variable", domain.ErrNotFound)
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

func (e *Editor) find() string {
	if visual := e.getenv("VISUAL"); visual != "" {
		return visual
	}
	if editor := e.getenv("EDITOR"); editor != "" {
		return editor
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := e.lookPath(editor); err == nil {
			return path
		}
	}
	return ""
}
