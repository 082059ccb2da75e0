package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"rendervault/internal/application/commands"
	"rendervault/internal/domain"
)

// Registry is what the tools need from the application layer
type Registry interface {
	commands.Registry
	Metadata(assetPath string) (domain.Metadata, error)
}

// RegisterReadTools adds all read-only vault tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, reg Registry) {
	s.AddTool(listPoolsTool(), listPoolsHandler(reg))
	s.AddTool(listAssetsTool(), listAssetsHandler(reg))
	s.AddTool(archivedVersionsTool(), archivedVersionsHandler(reg))
	s.AddTool(readMetadataTool(), readMetadataHandler(reg))
	s.AddTool(filterByTagTool(), filterByTagHandler(reg))
	s.AddTool(searchTool(), searchHandler(reg))
}

const categoryHelp = "Asset category: material, model, hdri or lightset"

func withCategory(required bool) mcp.ToolOption {
	opts := []mcp.PropertyOption{
		mcp.Description(categoryHelp),
		mcp.Enum("material", "model", "hdri", "lightset"),
	}
	if required {
		opts = append(opts, mcp.Required())
	}
	return mcp.WithString("category", opts...)
}

// --- list_pools ---

func listPoolsTool() mcp.Tool {
	return mcp.NewTool("list_pools",
		mcp.WithDescription("List indexed pools with their root directories. Without a category lists every category."),
		withCategory(false),
	)
}

func listPoolsHandler(reg Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw := req.GetString("category", "")
		if raw != "" {
			category, err := domain.ParseCategory(raw)
			if err != nil {
				return toolError(err)
			}
			pools, err := commands.NewListPoolsCommand(reg, category).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return formatEntities(pools, formatPool)
		}

		all, err := commands.NewListAllPoolsCommand(reg).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		var pools []domain.Pool
		for _, c := range domain.PoolCategories() {
			pools = append(pools, all[c]...)
		}
		return formatEntities(pools, formatPool)
	}
}

// --- list_assets ---

func listAssetsTool() mcp.Tool {
	return mcp.NewTool("list_assets",
		mcp.WithDescription("List the assets of a pool with size and thumbnail state."),
		withCategory(true),
		mcp.WithString("pool",
			mcp.Description("Pool name"),
			mcp.Required(),
		),
	)
}

func listAssetsHandler(reg Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, err := domain.ParseCategory(req.GetString("category", ""))
		if err != nil {
			return toolError(err)
		}
		assets, err := commands.NewListAssetsCommand(reg, category, req.GetString("pool", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(assets, formatAsset)
	}
}

// --- archived_versions ---

func archivedVersionsTool() mcp.Tool {
	return mcp.NewTool("archived_versions",
		mcp.WithDescription("List the archived versions of an asset, oldest first."),
		withCategory(true),
		mcp.WithString("pool", mcp.Description("Pool name"), mcp.Required()),
		mcp.WithString("asset", mcp.Description("Asset name without extension"), mcp.Required()),
	)
}

func archivedVersionsHandler(reg Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, asset, err := resolveAsset(ctx, reg, req)
		if err != nil {
			return toolError(err)
		}
		versions, err := commands.NewListVersionsCommand(reg, asset.Path).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(versions, formatVersion)
	}
}

// --- read_metadata ---

func readMetadataTool() mcp.Tool {
	return mcp.NewTool("read_metadata",
		mcp.WithDescription("Read the metadata sidecar of an asset as JSON. A missing sidecar is created with defaults."),
		withCategory(true),
		mcp.WithString("pool", mcp.Description("Pool name"), mcp.Required()),
		mcp.WithString("asset", mcp.Description("Asset name without extension"), mcp.Required()),
	)
}

func readMetadataHandler(reg Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, asset, err := resolveAsset(ctx, reg, req)
		if err != nil {
			return toolError(err)
		}
		m, err := reg.Metadata(asset.Path)
		if err != nil {
			return toolError(err)
		}
		data, err := json.MarshalIndent(m, "", "    ")
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// --- filter_by_tag ---

func filterByTagTool() mcp.Tool {
	return mcp.NewTool("filter_by_tag",
		mcp.WithDescription("List the assets of a pool whose metadata carries a tag."),
		withCategory(true),
		mcp.WithString("pool", mcp.Description("Pool name"), mcp.Required()),
		mcp.WithString("tag", mcp.Description("Tag to match exactly"), mcp.Required()),
	)
}

func filterByTagHandler(reg Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, err := domain.ParseCategory(req.GetString("category", ""))
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewFilterByTagCommand(reg, category, req.GetString("pool", ""), req.GetString("tag", ""))
		assets, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(assets, formatAsset)
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy search asset names across all indexed pools."),
		mcp.WithString("query", mcp.Description("Search query"), mcp.Required()),
		withCategory(false),
	)
}

func searchHandler(reg Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}
		var category domain.Category
		if raw := req.GetString("category", ""); raw != "" {
			c, err := domain.ParseCategory(raw)
			if err != nil {
				return toolError(err)
			}
			category = c
		}

		results, err := commands.NewSearchCommand(reg, category, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s/%s  %s\n", r.Asset.Stem, r.Pool.Category, r.Pool.Name, r.Asset.Path)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func resolveAsset(ctx context.Context, reg Registry, req mcp.CallToolRequest) (domain.Category, domain.Asset, error) {
	category, err := domain.ParseCategory(req.GetString("category", ""))
	if err != nil {
		return 0, domain.Asset{}, err
	}
	pool := req.GetString("pool", "")
	stem := req.GetString("asset", "")
	if pool == "" || stem == "" {
		return 0, domain.Asset{}, fmt.Errorf("%w: pool and asset are required", domain.ErrInvalidArgument)
	}
	asset, err := reg.FindAsset(ctx, category, pool, stem)
	return category, asset, err
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatPool(p domain.Pool) string {
	return fmt.Sprintf("%s  %s  %s", p.Category, p.Name, p.Root)
}

func formatAsset(a domain.Asset) string {
	thumb := "-"
	if a.HasThumbnail() {
		thumb = "thumb"
	}
	return fmt.Sprintf("%s  %s  %s  %s", a.Stem, humanSize(a.Size), thumb, a.Path)
}

func formatVersion(e domain.ArchiveEntry) string {
	return fmt.Sprintf("%s  %s", e.Label(), e.Path)
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
