package ports

import (
	"context"
	"os/exec"
)

// EditorOpener opens files such as metadata sidecars in an external editor
type EditorOpener interface {
	// OpenFile opens the specified file in the user's preferred editor
	OpenFile(path string) error

	// Command returns an exec.Cmd for the editor, for bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}

// Revealer shows a path in the operating system's file manager
type Revealer interface {
	Reveal(path string) error
}

// ScriptRunner runs an out-of-process script invocation to completion
type ScriptRunner interface {
	Run(ctx context.Context, args []string) error
}
