package handlers

import (
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/standings-mcp-server/internal/league"
)

// APIResponse represents the standard response format for our tools
type APIResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Summary  string      `json:"summary"`
	Error    string      `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata contains response metadata
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	Source      string    `json:"source"`
	Competition string    `json:"competition,omitempty"`
	Teams       int       `json:"teams,omitempty"`
	Matches     int       `json:"matches,omitempty"`
}

// StandingsData is the payload of get_standings
type StandingsData struct {
	Standings       interface{}  `json:"standings"`
	Ties            []league.Tie `json:"ties"`
	PendingShootout bool         `json:"pending_shootout"`
}

// TiesData is the payload of explain_ties
type TiesData struct {
	Ties    []league.Tie   `json:"ties,omitempty"`
	History []league.Cycle `json:"history,omitempty"`
}

// PresetInfo describes one regulation bundle
type PresetInfo struct {
	Name    string         `json:"name"`
	Sorting league.Sorting `json:"sorting"`
}

// CompetitionInfo describes one configured competition
type CompetitionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Teams       int    `json:"teams"`
	Matches     int    `json:"matches"`
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
		IsError: isError,
	}
}
