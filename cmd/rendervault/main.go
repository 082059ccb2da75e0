package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rendervault/internal/adapters/tui"
	"rendervault/internal/adapters/tui/views"
	"rendervault/internal/app"
)

func main() {
	cfgFlag := flag.String("config", "", "path to rendervault.yaml")
	flag.Parse()

	// The terminal belongs to the UI, so logs go to the file only
	vault, err := app.Open(*cfgFlag, app.LogFileOnly)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer vault.Close()

	cfg := vault.Config
	model := tui.NewApp(vault.Registry, vault.Editor, vault.Worker, views.ThumbnailSettings{
		Generator: vault.Thumbnails,
		Category:  vault.ThumbnailCategory,
		Size:      cfg.ThumbnailSize,
		Workers:   cfg.ThumbnailWorkers,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		vault.Log.Error().Err(err).Msg("tui exited")
		vault.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
