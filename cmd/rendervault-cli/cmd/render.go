package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"rendervault/internal/adapters/script"
	"rendervault/internal/domain"
	"rendervault/internal/worker"
)

var renderScene string

var renderCmd = &cobra.Command{
	Use:   "render <material-pool> [material]",
	Short: "Render shaderball thumbnails for a material pool",
	Long: `Run the configured render script over a material pool, or over one
material of it. The script is started with the configured interpreter and
receives the target path and a JSON blob of render settings; it writes its
output to the daily log.

Examples:
  rendervault-cli render Rocks
  rendervault-cli render Rocks basalt --scene ~/scenes/ball.ma
  rendervault-cli render repath material Rocks basalt granite`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		pool, err := GetRegistry().Pool(ctx, domain.CategoryMaterial, args[0])
		if err != nil {
			return err
		}

		// The script expands a pool root itself; single mode gets the file
		target, single := pool.Root, len(args) == 2
		if single {
			asset, err := GetRegistry().FindAsset(ctx, domain.CategoryMaterial, pool.Name, args[1])
			if err != nil {
				return err
			}
			target = asset.Path
		}

		rc := vault.Config.Render
		renderer, err := rc.RendererValue()
		if err != nil {
			return err
		}
		scene := rc.Scene
		if renderScene != "" {
			scene = renderScene
		}

		logPath := script.LogPath(vault.Config.LogDir(), time.Now())
		scriptArgs, err := script.RenderArgs(rc.RenderScript, logPath, target, single, script.RenderSettings{
			CurrentPool: pool.Name,
			Renderer:    renderer,
			Scene:       scene,
			Object:      rc.Object,
			Camera:      rc.Camera,
			ResolutionX: rc.ResolutionX,
			ResolutionY: rc.ResolutionY,
		})
		if err != nil {
			return err
		}

		if err := runJob(&worker.ScriptJob{Label: "render", Runner: vault.Runner, Args: scriptArgs}); err != nil {
			return err
		}
		fmt.Printf("Rendered %s, log at %s\n", filepath.Base(target), logPath)
		return nil
	},
}

var repathCmd = &cobra.Command{
	Use:   "repath <category> <pool> [asset]...",
	Short: "Copy referenced textures into the pool and repoint them",
	Long: `Run the configured repath script. For a material pool every listed
material is processed, or the whole pool when none is given. For a model
pool exactly one model is processed.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		category, err := parseCategory(args[0])
		if err != nil {
			return err
		}
		pool, err := GetRegistry().Pool(ctx, category, args[1])
		if err != nil {
			return err
		}

		var (
			mode      script.RepathMode
			materials []string
			model     string
		)
		switch category {
		case domain.CategoryMaterial:
			mode, materials = script.RepathMaterials, args[2:]
			if len(materials) == 0 {
				assets, err := GetRegistry().Assets(ctx, category, pool.Name)
				if err != nil {
					return err
				}
				for _, a := range assets {
					materials = append(materials, a.Stem)
				}
			}
		case domain.CategoryModel:
			if len(args) != 3 {
				return fmt.Errorf("%w: repath of a model pool takes exactly one model", domain.ErrInvalidArgument)
			}
			asset, err := GetRegistry().FindAsset(ctx, category, pool.Name, args[2])
			if err != nil {
				return err
			}
			mode, model = script.RepathModel, asset.Path
		default:
			return fmt.Errorf("%w: repath supports material and model pools", domain.ErrNotSupported)
		}

		logPath := script.LogPath(vault.Config.LogDir(), time.Now())
		scriptArgs, err := script.RepathArgs(vault.Config.Render.RepathScript, logPath, pool.Root, materials, model, mode)
		if err != nil {
			return err
		}

		if err := runJob(&worker.ScriptJob{Label: "repath", Runner: vault.Runner, Args: scriptArgs}); err != nil {
			return err
		}
		fmt.Printf("Repathed %s, log at %s\n", pool.Name, logPath)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderScene, "scene", "", "override the configured render scene")

	rootCmd.AddCommand(renderCmd)
	renderCmd.AddCommand(repathCmd)
}
