package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "tripgenie/internal/adapters/mcp"
	"tripgenie/internal/application"
	"tripgenie/internal/bootstrap"
	"tripgenie/internal/config"
)

func main() {
	configFlag := flag.String("config", config.ConfigPath(), "path to the config file")
	flag.Parse()

	// stdout carries the protocol; there is no foreground to return to
	app, err := bootstrap.Open(bootstrap.Options{
		ConfigPath:     *configFlag,
		DefaultLogFile: config.LogPath("tripgenie-mcp"),
		Session:        &application.SessionOptions{AutoSync: true, SyncOnMount: true},
	})
	if err != nil {
		log.Fatalf("tripgenie-mcp: %v", err)
	}
	defer app.Close()

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("tripgenie-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"tripgenie-mcp",
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

	mcpadapter.RegisterReadTools(mcpServer, app.Trips, app.Session)
	mcpadapter.RegisterWriteTools(mcpServer, app.Trips, app.Session)

	if err := server.ServeStdio(mcpServer); err != nil {
		app.Logger.Error("mcp server stopped", "error", err)
		app.Close()
		log.Fatalf("tripgenie-mcp: %v", err)
	}
}
