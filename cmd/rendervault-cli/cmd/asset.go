package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rendervault/internal/application/commands"
	"rendervault/internal/domain"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Work with the assets of a pool",
	Long: `List, delete, archive and restore assets, and edit their metadata.

Assets are addressed by category, pool name and file stem.

Examples:
  rendervault-cli asset list material Rocks
  rendervault-cli asset archive material Rocks basalt
  rendervault-cli asset restore material Rocks basalt 2 --keep-current
  rendervault-cli asset tag hdri Skies dusk outdoor`,
}

// assetArgs resolves <category> <pool> <asset> to an asset on disk
func assetArgs(ctx context.Context, args []string) (domain.Category, domain.Asset, error) {
	category, err := parseCategory(args[0])
	if err != nil {
		return category, domain.Asset{}, err
	}
	asset, err := GetRegistry().FindAsset(ctx, category, args[1], args[2])
	return category, asset, err
}

var assetListCmd = &cobra.Command{
	Use:   "list <category> [pool]",
	Short: "List the assets of a pool, or of the utility directory",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := parseCategory(args[0])
		if err != nil {
			return err
		}
		var pool string
		if len(args) == 2 {
			pool = args[1]
		}

		assets, err := commands.NewListAssetsCommand(GetRegistry(), category, pool).Execute(context.Background())
		if err != nil {
			return err
		}
		printAssets(assets)
		return nil
	},
}

var assetDeleteCmd = &cobra.Command{
	Use:   "delete <category> <pool> <asset>",
	Short: "Delete an asset with its thumbnails, textures, archive and metadata",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		category, asset, err := assetArgs(ctx, args)
		if err != nil {
			return err
		}

		result, err := commands.NewDeleteAssetCommand(GetRegistry(), category, asset.Path).Execute(ctx)
		if result != nil && result.Report != nil {
			for _, s := range result.Report.Steps {
				fmt.Printf("removed %s %s\n", s.Kind, s.Path)
			}
		}
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var assetArchiveCmd = &cobra.Command{
	Use:   "archive <category> <pool> <asset>",
	Short: "Copy an asset into its next archive version",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		category, asset, err := assetArgs(ctx, args)
		if err != nil {
			return err
		}
		result, err := commands.NewArchiveAssetCommand(GetRegistry(), category, asset.Path).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var assetVersionsCmd = &cobra.Command{
	Use:   "versions <category> <pool> <asset>",
	Short: "List the archived versions of an asset",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		_, asset, err := assetArgs(ctx, args)
		if err != nil {
			return err
		}
		versions, err := commands.NewListVersionsCommand(GetRegistry(), asset.Path).Execute(ctx)
		if err != nil {
			return err
		}
		for _, v := range versions {
			fmt.Printf("%d\t%s\n", v.Version, v.Path)
		}
		return nil
	},
}

var keepCurrent bool

var assetRestoreCmd = &cobra.Command{
	Use:   "restore <category> <pool> <asset> <version>",
	Short: "Replace an asset with one of its archived versions",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		version, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[3], domain.ErrInvalidArgument)
		}
		category, asset, err := assetArgs(ctx, args[:3])
		if err != nil {
			return err
		}

		restore := commands.NewRestoreVersionCommand(GetRegistry(), category, asset.Path, version)
		restore.KeepCurrent = keepCurrent
		result, err := restore.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func tagCommand(use, short string, remove bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <category> <pool> <asset> <tag>",
		Short: short,
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, asset, err := assetArgs(ctx, args[:3])
			if err != nil {
				return err
			}
			result, err := commands.NewTagAssetCommand(GetRegistry(), asset.Path, args[3], remove).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
}

var assetNotesCmd = &cobra.Command{
	Use:   "notes <category> <pool> <asset> <text>...",
	Short: "Replace the notes of an asset",
	Args:  cobra.MinimumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		_, asset, err := assetArgs(ctx, args[:3])
		if err != nil {
			return err
		}
		notes := strings.Join(args[3:], " ")
		result, err := commands.NewSetNotesCommand(GetRegistry(), asset.Path, notes).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var assetMetaCmd = &cobra.Command{
	Use:   "meta <category> <pool> <asset>",
	Short: "Print the metadata sidecar of an asset",
	Long: `Print the metadata sidecar of an asset as JSON. A missing sidecar is
created with default values first.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, asset, err := assetArgs(context.Background(), args)
		if err != nil {
			return err
		}
		meta, err := GetRegistry().Metadata(asset.Path)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(meta, "", "    ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var assetFilterCmd = &cobra.Command{
	Use:   "filter <category> <pool> <tag>",
	Short: "List the assets of a pool carrying a tag",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := parseCategory(args[0])
		if err != nil {
			return err
		}
		assets, err := commands.NewFilterByTagCommand(GetRegistry(), category, args[1], args[2]).Execute(context.Background())
		if err != nil {
			return err
		}
		printAssets(assets)
		return nil
	},
}

var searchCategory string

var assetSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search asset names across indexed pools",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := domain.CategoryUnknown
		if searchCategory != "" {
			var err error
			if category, err = parseCategory(searchCategory); err != nil {
				return err
			}
		}

		query := strings.Join(args, " ")
		results, err := commands.NewSearchCommand(GetRegistry(), category, query).Execute(context.Background())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No matches")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%s\t%s\t%s\n", r.Pool.Category, r.Pool.Name, r.Asset.Path)
		}
		return nil
	},
}

func printAssets(assets []domain.Asset) {
	for _, a := range assets {
		thumb := "-"
		if a.HasThumbnail() {
			thumb = "thumb"
		}
		fmt.Printf("%s\t%d\t%s\t%s\n", a.Stem, a.Size, thumb, a.Path)
	}
}

func init() {
	assetRestoreCmd.Flags().BoolVar(&keepCurrent, "keep-current", false, "archive the current file before restoring")
	assetSearchCmd.Flags().StringVar(&searchCategory, "category", "", "limit the search to one category")

	rootCmd.AddCommand(assetCmd)
	assetCmd.AddCommand(assetListCmd)
	assetCmd.AddCommand(assetDeleteCmd)
	assetCmd.AddCommand(assetArchiveCmd)
	assetCmd.AddCommand(assetVersionsCmd)
	assetCmd.AddCommand(assetRestoreCmd)
	assetCmd.AddCommand(tagCommand("tag", "Add a tag to an asset", false))
	assetCmd.AddCommand(tagCommand("untag", "Remove a tag from an asset", true))
	assetCmd.AddCommand(assetNotesCmd)
	assetCmd.AddCommand(assetMetaCmd)
	assetCmd.AddCommand(assetFilterCmd)
	assetCmd.AddCommand(assetSearchCmd)
}
