// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to use the lorekeeper tools via stdio
package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/lorekeeper/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the lorekeeper as an MCP (Model Context Protocol) server,
exposing lore search, compendium lookup, map rendering, and
walkthrough search as tools over stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an agent host)
  lorekeeper mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "lorekeeper": {
  #       "command": "lorekeeper",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rt, ingestor, cleanup, err := buildAgent(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	server := mcpserver.NewMCPServer(
		"Lorekeeper Knowledge Agent",
		"0.1.0",
	)
	mcp.RegisterTools(server, rt, ingestor)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Lorekeeper MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
		return nil
	case err := <-serverErr:
		return err
	}
}
