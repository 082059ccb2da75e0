// Package launcher hands paths to the desktop: the file manager and the user's editor.
package launcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"rendervault/internal/domain"
	"rendervault/internal/ports"
)

// Revealer implements ports.Revealer with the platform's file manager
type Revealer struct {
	goos string
}

// Ensure Revealer implements ports.Revealer
var _ ports.Revealer = (*Revealer)(nil)

// NewRevealer creates a revealer for the running operating system
func NewRevealer() *Revealer {
	return &Revealer{goos: runtime.GOOS}
}

// Reveal opens path in the file manager
func (r *Revealer) Reveal(path string) error {
	cmd, err := r.Command(path)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return domain.NewPathError("reveal", path, domain.ErrIOFailure, err)
	}
	// file managers outlive us; reap in the background
	go cmd.Wait()
	return nil
}

// Command builds the file manager invocation for path
func (r *Revealer) Command(path string) (*exec.Cmd, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path is empty", domain.ErrInvalidArgument)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, domain.NewPathError("reveal", path, domain.ErrInvalidArgument, err)
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewPathError("reveal", abs, domain.ErrNotFound, err)
		}
		return nil, domain.NewPathError("reveal", abs, domain.ErrIOFailure, err)
	}

	switch r.goos {
	case "darwin":
		return exec.Command("open", abs), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", abs), nil
	case "windows":
		return exec.Command("explorer", abs), nil
	default:
		return nil, fmt.Errorf("%w: unsupported operating system: %s", domain.ErrNotSupported, r.goos)
	}
}
