// Package app assembles the registry and its adapters from configuration.
// Every entrypoint opens one App and closes it on exit.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"rendervault/internal/adapters/filesystem"
	"rendervault/internal/adapters/launcher"
	"rendervault/internal/adapters/script"
	"rendervault/internal/adapters/sqlite"
	"rendervault/internal/adapters/thumbnail"
	"rendervault/internal/application"
	"rendervault/internal/config"
	"rendervault/internal/domain"
	"rendervault/internal/logging"
	"rendervault/internal/worker"
)

// LogMode selects where an entrypoint writes its log
type LogMode int

const (
	// LogStderr writes readable output to a terminal and JSON otherwise
	LogStderr LogMode = iota
	// LogFileOnly never touches stderr; used when the terminal belongs to the UI
	LogFileOnly
)

// App holds the wired collaborators of one process
type App struct {
	Config     *config.Config
	Log        zerolog.Logger
	Registry   *application.Registry
	Thumbnails *thumbnail.Generator
	Worker     *worker.Worker
	Runner     *script.Runner
	Editor     *launcher.Editor

	// ThumbnailCategory is the category whose assets get jpg previews
	ThumbnailCategory domain.Category

	closers []io.Closer
}

// Open loads configuration from cfgPath (empty searches the defaults),
// opens the index and wires every adapter.
func Open(cfgPath string, mode LogMode) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg}
	if err := a.openLog(mode); err != nil {
		return nil, err
	}

	a.ThumbnailCategory, err = cfg.ThumbnailCategory()
	if err != nil {
		a.Close()
		return nil, err
	}

	index := sqlite.NewIndex(a.Log)
	if err := index.Open(cfg.IndexPath); err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, index)

	a.Registry = application.NewRegistry(
		application.Options{UtilityDir: cfg.UtilityDir},
		application.Deps{
			Index:    index,
			Store:    filesystem.NewRepository(a.Log),
			Metadata: filesystem.NewMetadataStore(a.Log),
			Revealer: launcher.NewRevealer(),
		},
		a.Log,
	)
	a.Thumbnails = thumbnail.New(a.Log)
	a.Worker = worker.New(a.Log)
	a.Runner = script.NewRunner(cfg.Render.Interpreter, a.Log)
	a.Editor = launcher.NewEditor()

	a.Log.Debug().Str("index", cfg.IndexPath).Str("utility_dir", cfg.UtilityDir).Msg("vault opened")
	return a, nil
}

func (a *App) openLog(mode LogMode) error {
	cfg := a.Config
	if mode == LogStderr && cfg.LogFile == "" {
		if isatty.IsTerminal(os.Stderr.Fd()) {
			a.Log = logging.Console(cfg.LogLevel, os.Stderr)
		} else {
			a.Log = logging.New(cfg.LogLevel, os.Stderr)
		}
		return nil
	}

	path := cfg.LogFile
	if path == "" {
		path = filepath.Join(cfg.LogDir(), "rendervault.log")
	}
	log, closer, err := logging.OpenFile(cfg.LogLevel, path)
	if err != nil {
		return err
	}
	a.Log = log
	a.closers = append(a.closers, closer)
	return nil
}

// Close cancels any running job and releases the index and log file
func (a *App) Close() error {
	if a.Worker != nil {
		a.Worker.Cancel()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to close vault: %w", err)
	}
	return nil
}
