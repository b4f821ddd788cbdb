package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sam-maryland/standings-mcp-server/internal/handlers"
	"github.com/sirupsen/logrus"
)

const (
	serverName    = "League Standings"
	serverVersion = "1.0.0"
)

// NewStandingsMCPServer registers the standings tools on a new stdio MCP server
func NewStandingsMCPServer(store handlers.CompetitionStore, logger *logrus.Logger) *server.DefaultServer {
	standingsHandler := handlers.NewStandingsHandler(store, logger)

	s := server.NewDefaultServer(serverName, serverVersion)
	if s == nil {
		logger.Error("Failed to create MCP server instance")
		return nil
	}

	logger.Info("MCP server instance created successfully")

	s.HandleListTools(func(ctx context.Context, cursor *string) (*mcp.ListToolsResult, error) {
		tools := ListTools(standingsHandler)

		logger.WithField("tools_count", len(tools)).Info("Listing available tools")

		return &mcp.ListToolsResult{
			Tools: tools,
		}, nil
	})

	s.HandleCallTool(func(ctx context.Context, name string, arguments map[string]interface{}) (*mcp.CallToolResult, error) {
		return CallTool(ctx, standingsHandler, logger, name, arguments)
	})

	logger.Info("All tools registered successfully")
	return s
}

// ListTools returns every tool the server exposes
func ListTools(h *handlers.StandingsHandler) []mcp.Tool {
	return []mcp.Tool{
		h.GetStandingsTool(),
		h.ExplainTiesTool(),
		h.ListPresetsTool(),
		h.ListCompetitionsTool(),
	}
}

// CallTool routes a tool call to its handler
func CallTool(ctx context.Context, h *handlers.StandingsHandler, logger *logrus.Logger, name string, arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	logger.WithFields(logrus.Fields{
		"tool": name,
		"args": arguments,
	}).Info("Tool called")

	switch name {
	case "get_standings":
		return h.HandleGetStandings(ctx, arguments)
	case "explain_ties":
		return h.HandleExplainTies(ctx, arguments)
	case "list_presets":
		return h.HandleListPresets(ctx, arguments)
	case "list_competitions":
		return h.HandleListCompetitions(ctx, arguments)
	default:
		logger.WithField("tool", name).Warn("Unknown tool called")
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Type: "text",
					Text: "Unknown tool: " + name,
				},
			},
			IsError: true,
		}, nil
	}
}
