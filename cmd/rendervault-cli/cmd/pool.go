package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rendervault/internal/adapters/sqlite"
	"rendervault/internal/application/commands"
	"rendervault/internal/domain"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Manage asset pools",
	Long: `Create, delete, list and check pools.

Examples:
  rendervault-cli pool create material Rocks ~/projects/env
  rendervault-cli pool list hdri
  rendervault-cli pool delete model Props
  rendervault-cli pool reconcile`,
}

var poolCreateCmd = &cobra.Command{
	Use:   "create <category> <name> <root>",
	Short: "Scaffold a pool folder under root and index it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := parseCategory(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewCreatePoolCommand(GetRegistry(), category, args[1], args[2]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var poolDeleteCmd = &cobra.Command{
	Use:   "delete <category> <name>",
	Short: "Delete a pool folder and its index row",
	Long: `Delete a pool from disk and from the index.

Warning: This operation cannot be undone. The pool folder and every
asset, thumbnail and archived version inside it are removed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := parseCategory(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewDeletePoolCommand(GetRegistry(), category, args[1]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var poolListCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List indexed pools, of one category or all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if len(args) == 1 {
			category, err := parseCategory(args[0])
			if err != nil {
				return err
			}
			pools, err := commands.NewListPoolsCommand(GetRegistry(), category).Execute(ctx)
			if err != nil {
				return err
			}
			for _, p := range pools {
				fmt.Printf("%s\t%s\n", p.Name, p.Dir())
			}
			return nil
		}

		all, err := commands.NewListAllPoolsCommand(GetRegistry()).Execute(ctx)
		if err != nil {
			return err
		}
		for _, c := range domain.PoolCategories() {
			for _, p := range all[c] {
				fmt.Printf("%s\t%s\t%s\n", c, p.Name, p.Dir())
			}
		}
		return nil
	},
}

var poolRevealCmd = &cobra.Command{
	Use:   "reveal <category> <name>",
	Short: "Open a pool folder in the file manager",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := parseCategory(args[0])
		if err != nil {
			return err
		}
		return GetRegistry().RevealPool(context.Background(), category, args[1])
	},
}

var poolReconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Check every indexed pool against its folder layout",
	Long: `Report indexed pools whose root or layout directories are missing.
Nothing is repaired; fix the folders or delete the pool.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := GetRegistry().Reconcile(context.Background())
		if err != nil {
			return err
		}
		for _, h := range report.Unhealthy {
			switch {
			case h.RootMissing:
				fmt.Printf("%s %s: root %s missing\n", h.Pool.Category, h.Pool.Name, h.Pool.Root)
			default:
				fmt.Printf("%s %s: missing %s\n", h.Pool.Category, h.Pool.Name, strings.Join(h.Missing, ", "))
			}
		}
		fmt.Printf("Checked %d pools, %d unhealthy\n", report.Checked, len(report.Unhealthy))
		return nil
	},
}

var poolImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Bulk-load pools into the index",
	Long: `Insert pools listed in a JSON file into the index. Folders are not
created and duplicate names are skipped.

The file maps category to pool name to root:
  {"materials": {"Rocks": "/proj/env"}, "hdris": {"Skies": "/proj/light"}}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := sqlite.LoadImportFile(args[0])
		if err != nil {
			return err
		}
		stats, err := GetRegistry().Import(context.Background(), entries)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d pools, skipped %d duplicates in %s\n", stats.Inserted, stats.Skipped, stats.Duration)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(poolCmd)
	poolCmd.AddCommand(poolCreateCmd)
	poolCmd.AddCommand(poolDeleteCmd)
	poolCmd.AddCommand(poolListCmd)
	poolCmd.AddCommand(poolRevealCmd)
	poolCmd.AddCommand(poolReconcileCmd)
	poolCmd.AddCommand(poolImportCmd)
}
