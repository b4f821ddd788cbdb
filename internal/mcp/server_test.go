package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/standings-mcp-server/internal/config"
	"github.com/sam-maryland/standings-mcp-server/internal/handlers"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestHandler() (*handlers.StandingsHandler, *config.CompetitionsConfig) {
	logger, _ := test.NewNullLogger()
	store := &config.CompetitionsConfig{Competitions: map[string]config.CompetitionSettings{}}
	return handlers.NewStandingsHandler(store, logger), store
}

func TestNewStandingsMCPServer(t *testing.T) {
	logger, hook := test.NewNullLogger()
	_, store := newTestHandler()

	if s := NewStandingsMCPServer(store, logger); s == nil {
		t.Fatal("Expected server instance")
	}
	if len(hook.Entries) == 0 {
		t.Error("Expected log entries while registering tools")
	}
}

func TestListTools(t *testing.T) {
	h, _ := newTestHandler()
	tools := ListTools(h)

	want := map[string]bool{"get_standings": true, "explain_ties": true, "list_presets": true, "list_competitions": true}
	if len(tools) != len(want) {
		t.Fatalf("Expected %d tools, got %d", len(want), len(tools))
	}
	for _, tool := range tools {
		if !want[tool.Name] {
			t.Errorf("Unexpected tool '%s'", tool.Name)
		}
	}
}

func TestCallTool(t *testing.T) {
	h, _ := newTestHandler()
	logger, hook := test.NewNullLogger()

	result, err := CallTool(context.Background(), h, logger, "list_presets", map[string]interface{}{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Error("Expected successful result")
	}

	result, err = CallTool(context.Background(), h, logger, "get_fixtures", map[string]interface{}{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected unknown tool to be an error result")
	}
	if text := result.Content[0].(*mcp.TextContent).Text; text != "Unknown tool: get_fixtures" {
		t.Errorf("Unexpected text '%s'", text)
	}
	if hook.LastEntry() == nil || hook.LastEntry().Message != "Unknown tool called" {
		t.Error("Expected a warning for the unknown tool")
	}

	if _, err := CallTool(context.Background(), h, logger, "get_standings", map[string]interface{}{}); err == nil {
		t.Error("Expected error for missing competition")
	}
}
