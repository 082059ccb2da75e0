package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rendervault/internal/worker"
)

var thumbsCmd = &cobra.Command{
	Use:   "thumbs",
	Short: "Generate asset thumbnails",
}

var thumbsGenerateCmd = &cobra.Command{
	Use:   "generate <pool>",
	Short: "Generate missing jpg thumbnails for a pool",
	Long: `Generate a jpg thumbnail for every asset of the pool that has none.
Only pools of the configured thumbnail_category (hdri by default) are
converted; material and model previews come from the render script.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := vault.ThumbnailCategory
		missing, err := GetRegistry().MissingThumbnails(context.Background(), category, args[0])
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			fmt.Printf("All thumbnails of %s are present\n", args[0])
			return nil
		}

		cfg := vault.Config
		err = runJob(&worker.ThumbnailJob{
			Assets:    missing,
			Generator: vault.Thumbnails,
			Size:      cfg.ThumbnailSize,
			Workers:   cfg.ThumbnailWorkers,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Generated %d thumbnails\n", len(missing))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(thumbsCmd)
	thumbsCmd.AddCommand(thumbsGenerateCmd)
}
