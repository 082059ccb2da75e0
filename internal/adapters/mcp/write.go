package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"rendervault/internal/application/commands"
	"rendervault/internal/domain"
)

// RegisterWriteTools adds all write vault tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, reg Registry) {
	s.AddTool(createPoolTool(), createPoolHandler(reg))
	s.AddTool(deletePoolTool(), deletePoolHandler(reg))
	s.AddTool(deleteAssetTool(), deleteAssetHandler(reg))
	s.AddTool(archiveAssetTool(), archiveAssetHandler(reg))
	s.AddTool(restoreVersionTool(), restoreVersionHandler(reg))
	s.AddTool(tagAssetTool(), tagAssetHandler(reg))
	s.AddTool(setNotesTool(), setNotesHandler(reg))
}

// --- create_pool ---

func createPoolTool() mcp.Tool {
	return mcp.NewTool("create_pool",
		mcp.WithDescription("Create a pool: scaffold <root>/<Category>Pool with its subfolders and index it by name."),
		withCategory(true),
		mcp.WithString("name", mcp.Description("Pool name, unique within the category"), mcp.Required()),
		mcp.WithString("root", mcp.Description("Existing directory that will hold the pool folder"), mcp.Required()),
	)
}

func createPoolHandler(reg Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, err := domain.ParseCategory(req.GetString("category", ""))
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewCreatePoolCommand(reg, category, req.GetString("name", ""), req.GetString("root", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_pool ---

func deletePoolTool() mcp.Tool {
	return mcp.NewTool("delete_pool",
		mcp.WithDescription("Delete a pool: remove its folder tree and its index entry. Irreversible."),
		withCategory(true),
		mcp.WithString("name", mcp.Description("Pool name"), mcp.Required()),
	)
}

func deletePoolHandler(reg Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, err := domain.ParseCategory(req.GetString("category", ""))
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewDeletePoolCommand(reg, category, req.GetString("name", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_asset ---

func deleteAssetTool() mcp.Tool {
	return mcp.NewTool("delete_asset",
		mcp.WithDescription("Delete an asset with its thumbnails, textures, archived versions and metadata. Irreversible."),
		withCategory(true),
		mcp.WithString("pool", mcp.Description("Pool name"), mcp.Required()),
		mcp.WithString("asset", mcp.Description("Asset name without extension"), mcp.Required()),
	)
}

func deleteAssetHandler(reg Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, asset, err := resolveAsset(ctx, reg, req)
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewDeleteAssetCommand(reg, category, asset.Path).Execute(ctx)
		if err != nil {
			if result != nil {
				return mcp.NewToolResultError(fmt.Sprintf("%s: %v\n%s", result.Message, err, formatSteps(result.Report))), nil
			}
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message + "\n" + formatSteps(result.Report)), nil
	}
}

func formatSteps(r *domain.DeleteReport) string {
	var sb strings.Builder
	for _, step := range r.Steps {
		fmt.Fprintf(&sb, "%s  %s\n", step.Kind, step.Path)
	}
	return sb.String()
}

// --- archive_asset ---

func archiveAssetTool() mcp.Tool {
	return mcp.NewTool("archive_asset",
		mcp.WithDescription("Copy an asset into Archive/<name>/<name>_NNN with the next version number."),
		withCategory(true),
		mcp.WithString("pool", mcp.Description("Pool name"), mcp.Required()),
		mcp.WithString("asset", mcp.Description("Asset name without extension"), mcp.Required()),
	)
}

func archiveAssetHandler(reg Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, asset, err := resolveAsset(ctx, reg, req)
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewArchiveAssetCommand(reg, category, asset.Path).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- restore_version ---

func restoreVersionTool() mcp.Tool {
	return mcp.NewTool("restore_version",
		mcp.WithDescription("Replace an asset with one of its archived versions."),
		withCategory(true),
		mcp.WithString("pool", mcp.Description("Pool name"), mcp.Required()),
		mcp.WithString("asset", mcp.Description("Asset name without extension"), mcp.Required()),
		mcp.WithNumber("version", mcp.Description("Archived version number, e.g. 2 for name_002"), mcp.Required()),
		mcp.WithBoolean("keep_current", mcp.Description("Archive the current file before restoring")),
	)
}

func restoreVersionHandler(reg Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category, asset, err := resolveAsset(ctx, reg, req)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewRestoreVersionCommand(reg, category, asset.Path, req.GetInt("version", 0))
		cmd.KeepCurrent = req.GetBool("keep_current", false)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- tag_asset ---

func tagAssetTool() mcp.Tool {
	return mcp.NewTool("tag_asset",
		mcp.WithDescription("Add a tag to an asset's metadata, or remove it."),
		withCategory(true),
		mcp.WithString("pool", mcp.Description("Pool name"), mcp.Required()),
		mcp.WithString("asset", mcp.Description("Asset name without extension"), mcp.Required()),
		mcp.WithString("tag", mcp.Description("Tag, without commas"), mcp.Required()),
		mcp.WithBoolean("remove", mcp.Description("Remove the tag instead of adding it")),
	)
}

func tagAssetHandler(reg Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, asset, err := resolveAsset(ctx, reg, req)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewTagAssetCommand(reg, asset.Path, req.GetString("tag", ""), req.GetBool("remove", false))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_notes ---

func setNotesTool() mcp.Tool {
	return mcp.NewTool("set_notes",
		mcp.WithDescription("Replace the free-form notes of an asset's metadata."),
		withCategory(true),
		mcp.WithString("pool", mcp.Description("Pool name"), mcp.Required()),
		mcp.WithString("asset", mcp.Description("Asset name without extension"), mcp.Required()),
		mcp.WithString("notes", mcp.Description("New notes; empty clears them")),
	)
}

func setNotesHandler(reg Registry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		_, asset, err := resolveAsset(ctx, reg, req)
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewSetNotesCommand(reg, asset.Path, req.GetString("notes", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
