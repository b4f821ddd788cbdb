package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sam-maryland/standings-mcp-server/internal/config"
	"github.com/sam-maryland/standings-mcp-server/internal/mcp"
)

func main() {
	cfg := config.Load()
	logger := cfg.NewLogger()

	competitions, err := config.LoadCompetitions(cfg.CompetitionsPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load competitions")
	}
	logger.WithField("competitions", len(competitions.Competitions)).Info("Loaded competitions")

	mcpServer := mcp.NewStandingsMCPServer(competitions, logger)
	if mcpServer == nil {
		logger.Fatal("Failed to create MCP server")
	}

	logger.Info("Starting League Standings MCP Server...")

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
		os.Exit(1)
	}
}
