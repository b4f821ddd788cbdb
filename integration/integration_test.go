//go:build integration
// +build integration

package main

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/standings-mcp-server/internal/config"
	"github.com/sam-maryland/standings-mcp-server/internal/handlers"
	"github.com/sam-maryland/standings-mcp-server/internal/league"
	standingsmcp "github.com/sam-maryland/standings-mcp-server/internal/mcp"
	"github.com/sirupsen/logrus/hooks/test"
)

// End-to-end runs over the shipped competitions file
// Run with: go test -tags=integration ./...

func loadCompetitions(t *testing.T) *config.CompetitionsConfig {
	t.Helper()
	path := os.Getenv("COMPETITIONS_PATH")
	if path == "" {
		path = "../configs/competitions.yaml"
	}
	competitions, err := config.LoadCompetitions(path)
	if err != nil {
		t.Fatalf("Failed to load competitions: %v", err)
	}
	return competitions
}

func callTool(t *testing.T, name string, args map[string]interface{}, data interface{}) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	handler := handlers.NewStandingsHandler(loadCompetitions(t), logger)

	result, err := standingsmcp.CallTool(context.Background(), handler, logger, name, args)
	if err != nil {
		t.Fatalf("Failed to handle %s: %v", name, err)
	}
	if result == nil {
		t.Fatal("Expected result but got nil")
	}
	text := result.Content[0].(*mcp.TextContent).Text
	if result.IsError {
		t.Fatalf("Expected successful result but got error: %s", text)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, data); err != nil {
		t.Fatalf("Failed to decode response data: %v", err)
	}
}

func TestIntegration_ConfiguredCompetitions(t *testing.T) {
	tests := []struct {
		competition string
		order       []string
	}{
		{"euro-2020-group-b", []string{"Belgium", "Denmark", "Finland", "Russia"}},
		{"world-cup-1994-group-d", []string{"Nigeria", "Bulgaria", "Argentina", "Greece"}},
		{"world-cup-2018-group-h", []string{"COL", "JPN", "SEN", "POL"}},
	}

	for _, tt := range tests {
		t.Run(tt.competition, func(t *testing.T) {
			var data struct {
				Standings []league.Standing `json:"standings"`
			}
			callTool(t, "get_standings", map[string]interface{}{"competition": tt.competition}, &data)

			if len(data.Standings) != len(tt.order) {
				t.Fatalf("Expected %d rows, got %d", len(tt.order), len(data.Standings))
			}
			for i, id := range tt.order {
				if data.Standings[i].ID != id {
					t.Errorf("Expected %s at position %d, got %s", id, i+1, data.Standings[i].ID)
				}
			}
		})
	}
}

func TestIntegration_FairPlayNarrative(t *testing.T) {
	var data handlers.TiesData
	callTool(t, "explain_ties", map[string]interface{}{"competition": "world-cup-2018-group-h"}, &data)

	if len(data.Ties) != 1 {
		t.Fatalf("Expected 1 tie, got %d", len(data.Ties))
	}
	want := "Japan and Senegal are sorted on fair play points (Japan: 4; Senegal: 6)."
	messages := data.Ties[0].Messages
	if messages[len(messages)-1] != want {
		t.Errorf("Expected '%s', got '%s'", want, messages[len(messages)-1])
	}
}

func TestIntegration_ListPresets(t *testing.T) {
	var presets []handlers.PresetInfo
	callTool(t, "list_presets", map[string]interface{}{}, &presets)

	if len(presets) == 0 {
		t.Error("Expected at least one preset")
	}
}
