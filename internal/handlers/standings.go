package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/standings-mcp-server/internal/config"
	"github.com/sam-maryland/standings-mcp-server/internal/league"
	"github.com/sirupsen/logrus"
)

// CompetitionStore resolves named competition definitions
type CompetitionStore interface {
	Get(name string) (config.CompetitionSettings, bool)
	Names() []string
}

// StandingsArgs represents the parameters shared by get_standings and explain_ties
type StandingsArgs struct {
	Competition string                      `json:"competition,omitempty"`
	Definition  *config.CompetitionSettings `json:"definition,omitempty"`
	Matches     []config.MatchSpec          `json:"matches,omitempty"`
	Shootouts   []config.ShootoutSpec       `json:"shootouts,omitempty"`
	Flags       []FlagUpdate                `json:"flags,omitempty"`
	Detail      string                      `json:"detail,omitempty"`
	Raw         bool                        `json:"raw,omitempty"`
}

// FlagUpdate sets one flag value for one team before computing
type FlagUpdate struct {
	Team  string `json:"team"`
	Flag  string `json:"flag"`
	Value int    `json:"value"`
}

// StandingsHandler handles standings related MCP tools
type StandingsHandler struct {
	store  CompetitionStore
	logger *logrus.Logger
}

// NewStandingsHandler creates a new standings handler
func NewStandingsHandler(store CompetitionStore, logger *logrus.Logger) *StandingsHandler {
	return &StandingsHandler{
		store:  store,
		logger: logger,
	}
}

var competitionProperties = map[string]interface{}{
	"competition": map[string]interface{}{
		"type":        "string",
		"description": "Name of a competition from the competitions file",
	},
	"definition": map[string]interface{}{
		"type":        "object",
		"description": "Inline competition: teams, format (round-robin|home-and-away), points (standard|old), sorting (preset name or object), names, matches, shootouts",
	},
	"matches": map[string]interface{}{
		"type":        "array",
		"description": "Extra results as [id, matchday, home, away, homeGoals, awayGoals]",
	},
	"shootouts": map[string]interface{}{
		"type":        "array",
		"description": "Penalty shootout results as [home, away, homeGoals, awayGoals]",
	},
	"flags": map[string]interface{}{
		"type":        "array",
		"description": "Flag updates as {team, flag, value}",
	},
}

func withProperties(extra map[string]interface{}) map[string]interface{} {
	props := make(map[string]interface{}, len(competitionProperties)+len(extra))
	for k, v := range competitionProperties {
		props[k] = v
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// GetStandingsTool returns the MCP tool definition for get_standings
func (h *StandingsHandler) GetStandingsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_standings",
		Description: "Compute the league table of a competition, applying its tiebreak rules, and explain every tie on points",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: withProperties(map[string]interface{}{
				"detail": map[string]interface{}{
					"type":        "string",
					"description": "public (default) or all, which adds the away goals and away wins columns",
					"enum":        []string{"public", "all"},
				},
			}),
		},
	}
}

// ExplainTiesTool returns the MCP tool definition for explain_ties
func (h *StandingsHandler) ExplainTiesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "explain_ties",
		Description: "Explain how teams level on points were separated, or return the raw tiebreak history",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: withProperties(map[string]interface{}{
				"raw": map[string]interface{}{
					"type":        "boolean",
					"description": "Return every tiebreak step instead of the narrative",
				},
			}),
		},
	}
}

// ListPresetsTool returns the MCP tool definition for list_presets
func (h *StandingsHandler) ListPresetsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_presets",
		Description: "List the built-in tiebreak regulations with their full sorting configuration",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// ListCompetitionsTool returns the MCP tool definition for list_competitions
func (h *StandingsHandler) ListCompetitionsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_competitions",
		Description: "List the competitions defined in the competitions file",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// HandleGetStandings handles the get_standings tool call
func (h *StandingsHandler) HandleGetStandings(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_standings")

	parsed, err := parseStandingsArgs(args)
	if err != nil {
		return nil, err
	}
	if parsed.Detail != "" && parsed.Detail != "public" && parsed.Detail != "all" {
		return nil, fmt.Errorf("detail must be public or all")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, name, matches, err := h.competition(parsed)
	if err != nil {
		return h.failure("Failed to build competition", err), nil
	}

	var standings interface{}
	var leader string
	var leaderPoints int
	if parsed.Detail == "all" {
		rows, err := c.Table()
		if err != nil {
			return h.failure("Failed to compute standings", err), nil
		}
		standings = rows
		leader, leaderPoints = rows[0].ID, rows[0].Points
	} else {
		rows, err := c.Standings()
		if err != nil {
			return h.failure("Failed to compute standings", err), nil
		}
		standings = rows
		leader, leaderPoints = rows[0].ID, rows[0].Points
	}

	ties, err := c.Ties()
	if err != nil {
		return h.failure("Failed to explain ties", err), nil
	}
	pending, err := c.PendingShootout()
	if err != nil {
		return h.failure("Failed to compute standings", err), nil
	}

	summary := fmt.Sprintf("%s leads with %d points after %d matches; %d group(s) level on points", leader, leaderPoints, matches, len(ties))
	if pending {
		summary += "; a penalty shootout result is required"
	}

	response := APIResponse{
		Success: true,
		Data: StandingsData{
			Standings:       standings,
			Ties:            ties,
			PendingShootout: pending,
		},
		Summary:  summary,
		Metadata: h.metadata(name, teamsOf(standings), matches),
	}

	return h.respond(response)
}

// HandleExplainTies handles the explain_ties tool call
func (h *StandingsHandler) HandleExplainTies(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling explain_ties")

	parsed, err := parseStandingsArgs(args)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, name, matches, err := h.competition(parsed)
	if err != nil {
		return h.failure("Failed to build competition", err), nil
	}

	var data TiesData
	var summary string
	if parsed.Raw {
		history, err := c.History()
		if err != nil {
			return h.failure("Failed to compute tiebreak history", err), nil
		}
		data.History = history
		summary = fmt.Sprintf("%d tiebreak step(s) recorded", len(history))
	} else {
		ties, err := c.Ties()
		if err != nil {
			return h.failure("Failed to explain ties", err), nil
		}
		data.Ties = ties
		summary = fmt.Sprintf("%d group(s) of teams level on points", len(ties))
		for _, tie := range ties {
			if tie.Requests == league.RequestShootout {
				summary += "; a penalty shootout result is required"
				break
			}
		}
	}

	return h.respond(APIResponse{
		Success:  true,
		Data:     data,
		Summary:  summary,
		Metadata: h.metadata(name, c.TeamCount(), matches),
	})
}

// HandleListPresets handles the list_presets tool call
func (h *StandingsHandler) HandleListPresets(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.Info("Handling list_presets")

	names := league.Presets()
	presets := make([]PresetInfo, 0, len(names))
	for _, name := range names {
		sorting, err := league.Preset(name)
		if err != nil {
			return h.failure("Failed to load preset", err), nil
		}
		presets = append(presets, PresetInfo{Name: name, Sorting: sorting})
	}

	return h.respond(APIResponse{
		Success:  true,
		Data:     presets,
		Summary:  fmt.Sprintf("%d tiebreak presets available", len(presets)),
		Metadata: h.metadata("", 0, 0),
	})
}

// HandleListCompetitions handles the list_competitions tool call
func (h *StandingsHandler) HandleListCompetitions(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.Info("Handling list_competitions")

	names := h.store.Names()
	competitions := make([]CompetitionInfo, 0, len(names))
	for _, name := range names {
		settings, _ := h.store.Get(name)
		competitions = append(competitions, CompetitionInfo{
			Name:        name,
			Description: settings.Description,
			Teams:       len(settings.Teams),
			Matches:     len(settings.Matches),
		})
	}

	return h.respond(APIResponse{
		Success:  true,
		Data:     competitions,
		Summary:  fmt.Sprintf("%d competition(s) configured", len(competitions)),
		Metadata: h.metadata("", 0, 0),
	})
}

func parseStandingsArgs(args map[string]interface{}) (StandingsArgs, error) {
	var parsed StandingsArgs
	if err := decodeArgs(args, &parsed); err != nil {
		return parsed, err
	}
	if parsed.Competition == "" && parsed.Definition == nil {
		return parsed, fmt.Errorf("competition or definition is required")
	}
	if parsed.Competition != "" && parsed.Definition != nil {
		return parsed, fmt.Errorf("competition and definition are mutually exclusive")
	}
	return parsed, nil
}

// competition builds the requested competition and applies the extra matches, shootouts and flags.
func (h *StandingsHandler) competition(args StandingsArgs) (*league.Competition, string, int, error) {
	name := args.Competition
	var settings config.CompetitionSettings
	if args.Definition != nil {
		name = "inline"
		settings = *args.Definition
	} else {
		s, ok := h.store.Get(args.Competition)
		if !ok {
			return nil, name, 0, fmt.Errorf("unknown competition %q", args.Competition)
		}
		settings = s
	}

	c, err := settings.Build(h.logger)
	if err != nil {
		return nil, name, 0, err
	}

	if len(args.Matches) > 0 {
		matches := make([]league.MatchInput, len(args.Matches))
		for i, m := range args.Matches {
			matches[i] = league.MatchInput(m)
		}
		if err := c.AddMatches(matches); err != nil {
			return nil, name, 0, err
		}
	}
	for _, so := range args.Shootouts {
		if err := c.AddShootout(so.Home, so.Away, so.HomeGoals, so.AwayGoals); err != nil {
			return nil, name, 0, err
		}
	}
	for _, f := range args.Flags {
		if err := c.UpdateFlags(f.Team, f.Flag, f.Value); err != nil {
			return nil, name, 0, err
		}
	}

	return c, name, len(settings.Matches) + len(args.Matches), nil
}

func (h *StandingsHandler) failure(msg string, err error) *mcp.CallToolResult {
	h.logger.WithError(err).Error(msg)

	text := fmt.Sprintf("%s: %s", msg, err.Error())
	var cfgErr *league.ConfigError
	if errors.As(err, &cfgErr) {
		text = fmt.Sprintf("%s: invalid %s: %s", msg, cfgErr.Field, cfgErr.Reason)
	}
	return textResult(text, true)
}

func (h *StandingsHandler) metadata(competition string, teams, matches int) Metadata {
	return Metadata{
		Timestamp:   time.Now(),
		Source:      "tiebreak_engine",
		Competition: competition,
		Teams:       teams,
		Matches:     matches,
	}
}

func (h *StandingsHandler) respond(response APIResponse) (*mcp.CallToolResult, error) {
	jsonResponse, err := formatJSONResponse(response)
	if err != nil {
		h.logger.WithError(err).Error("Failed to format response")
		return textResult(fmt.Sprintf("Failed to format response: %s", err.Error()), true), nil
	}
	return textResult(jsonResponse, false), nil
}

func teamsOf(standings interface{}) int {
	switch rows := standings.(type) {
	case []league.Row:
		return len(rows)
	case []league.Standing:
		return len(rows)
	}
	return 0
}
