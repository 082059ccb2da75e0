package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "rendervault/internal/adapters/mcp"
	"rendervault/internal/app"
)

func main() {
	cfgFlag := flag.String("config", "", "path to rendervault.yaml")
	flag.Parse()

	// stdout carries the protocol; logs go to stderr or the configured file
	vault, err := app.Open(*cfgFlag, app.LogStderr)
	if err != nil {
		log.Fatalf("rendervault-mcp: %v", err)
	}
	defer vault.Close()

	mcpServer := server.NewMCPServer(
		"rendervault-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, vault.Registry)
	mcpadapter.RegisterWriteTools(mcpServer, vault.Registry)

	vault.Log.Info().Msg("serving mcp on stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		vault.Log.Error().Err(err).Msg("mcp server stopped")
		vault.Close()
		log.Fatalf("rendervault-mcp: %v", err)
	}
}
