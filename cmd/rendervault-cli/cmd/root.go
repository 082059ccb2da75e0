package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rendervault/internal/app"
	"rendervault/internal/application"
	"rendervault/internal/domain"
)

var (
	cfgPath string
	vault   *app.App
)

var rootCmd = &cobra.Command{
	Use:   "rendervault-cli",
	Short: "CLI for managing render asset pools",
	Long: `rendervault-cli is a command-line interface for the Render Vault
asset library.

Pools of materials, models, HDRIs and lightsets live on disk in a fixed
folder layout and are registered in a SQLite index. This CLI creates and
deletes pools, lists, archives and restores assets, edits their metadata
and runs thumbnail and render batches.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		vault, err = app.Open(cfgPath, app.LogStderr)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if vault == nil {
			return nil
		}
		return vault.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if vault != nil {
			vault.Close()
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to rendervault.yaml")
}

// GetRegistry returns the initialized registry
func GetRegistry() *application.Registry {
	return vault.Registry
}

// parseCategory accepts names like "material", "Materials" or "hdri"
func parseCategory(s string) (domain.Category, error) {
	c, err := domain.ParseCategory(s)
	if err != nil {
		return domain.CategoryUnknown, &application.ValidationError{Field: "category", Message: err.Error()}
	}
	return c, nil
}
