package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sam-maryland/standings-mcp-server/internal/league"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// CompetitionsConfig represents the entire competitions file
type CompetitionsConfig struct {
	Instructions string                         `json:"_instructions,omitempty" yaml:"_instructions,omitempty"`
	Competitions map[string]CompetitionSettings `json:"competitions" yaml:"competitions"`
}

// CompetitionSettings is one competition definition: the construction options plus optional results
type CompetitionSettings struct {
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Teams       []TeamSpec        `json:"teams" yaml:"teams"`
	Format      league.Format     `json:"format" yaml:"format"`
	Points      string            `json:"points,omitempty" yaml:"points,omitempty"`
	Sorting     SortingSpec       `json:"sorting" yaml:"sorting"`
	Names       map[string]string `json:"names,omitempty" yaml:"names,omitempty"`
	Matches     []MatchSpec       `json:"matches,omitempty" yaml:"matches,omitempty"`
	Shootouts   []ShootoutSpec    `json:"shootouts,omitempty" yaml:"shootouts,omitempty"`
}

var defaultCompetitionPaths = []string{
	"configs/competitions.json",
	"configs/competitions.yaml",
	"../configs/competitions.json",
	"../configs/competitions.yaml",
	"../../configs/competitions.json",
	"../../configs/competitions.yaml",
}

// LoadCompetitions loads a competitions file. With an empty path the default locations are probed
// and an empty configuration is returned when none exists.
func LoadCompetitions(path string) (*CompetitionsConfig, error) {
	if path == "" {
		for _, candidate := range defaultCompetitionPaths {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return &CompetitionsConfig{Competitions: make(map[string]CompetitionSettings)}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read competitions: %w", err)
	}

	cfg, err := ParseCompetitions(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse competitions from %s: %w", path, err)
	}
	return cfg, nil
}

// ParseCompetitions decodes a competitions document. ext selects YAML for ".yaml" and ".yml",
// JSON otherwise.
func ParseCompetitions(data []byte, ext string) (*CompetitionsConfig, error) {
	var cfg CompetitionsConfig
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Competitions == nil {
		cfg.Competitions = make(map[string]CompetitionSettings)
	}
	return &cfg, nil
}

// Get returns the named competition
func (c *CompetitionsConfig) Get(name string) (CompetitionSettings, bool) {
	s, ok := c.Competitions[name]
	return s, ok
}

// Names lists the configured competitions in alphabetical order
func (c *CompetitionsConfig) Names() []string {
	names := make([]string, 0, len(c.Competitions))
	for name := range c.Competitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options converts the definition into league construction options, expanding a preset sorting
func (s CompetitionSettings) Options(logger *logrus.Logger) (league.Options, error) {
	points, err := league.PointSystemByName(s.Points)
	if err != nil {
		return league.Options{}, err
	}
	sorting, err := s.Sorting.Resolve()
	if err != nil {
		return league.Options{}, err
	}

	teams := make([]league.Team, len(s.Teams))
	for i, t := range s.Teams {
		teams[i] = league.Team(t)
	}

	format := s.Format
	if format == "" {
		format = league.FormatRoundRobin
	}

	return league.Options{
		Teams:   teams,
		Format:  format,
		Points:  points,
		Sorting: sorting,
		Names:   s.Names,
		Logger:  logger,
	}, nil
}

// Build creates the competition and replays the stored matches and shootouts into it
func (s CompetitionSettings) Build(logger *logrus.Logger) (*league.Competition, error) {
	opts, err := s.Options(logger)
	if err != nil {
		return nil, err
	}
	c, err := league.New(opts)
	if err != nil {
		return nil, err
	}
	if len(s.Matches) > 0 {
		matches := make([]league.MatchInput, len(s.Matches))
		for i, m := range s.Matches {
			matches[i] = league.MatchInput(m)
		}
		if err := c.AddMatches(matches); err != nil {
			return nil, err
		}
	}
	for _, so := range s.Shootouts {
		if err := c.AddShootout(so.Home, so.Away, so.HomeGoals, so.AwayGoals); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// TeamSpec is a team given either as a bare id or as {team, flags}
type TeamSpec league.Team

// UnmarshalJSON accepts "Italy" or {"team": "Italy", "flags": [0, 3]}
func (t *TeamSpec) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*t = TeamSpec{ID: id}
		return nil
	}
	var team league.Team
	if err := json.Unmarshal(data, &team); err != nil {
		return fmt.Errorf("team must be an id or an object with team and flags: %w", err)
	}
	*t = TeamSpec(team)
	return nil
}

// UnmarshalYAML accepts a scalar id or a mapping with team and flags
func (t *TeamSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*t = TeamSpec{ID: value.Value}
		return nil
	}
	var team league.Team
	if err := value.Decode(&team); err != nil {
		return fmt.Errorf("team must be an id or a mapping with team and flags: %w", err)
	}
	*t = TeamSpec(team)
	return nil
}

// SortingSpec is either a preset name or a full sorting object
type SortingSpec struct {
	Preset string
	Custom *league.Sorting
}

// Resolve returns the sorting to apply. An empty value is the FIFA World Cup preset.
func (s SortingSpec) Resolve() (league.Sorting, error) {
	if s.Custom != nil {
		return *s.Custom, nil
	}
	if s.Preset == "" {
		return league.Preset("FIFA World Cup")
	}
	return league.Preset(s.Preset)
}

// MarshalJSON writes the preset name or the sorting object
func (s SortingSpec) MarshalJSON() ([]byte, error) {
	if s.Custom != nil {
		return json.Marshal(s.Custom)
	}
	return json.Marshal(s.Preset)
}

// UnmarshalJSON accepts "UEFA Euro" or a sorting object
func (s *SortingSpec) UnmarshalJSON(data []byte) error {
	var preset string
	if err := json.Unmarshal(data, &preset); err == nil {
		*s = SortingSpec{Preset: preset}
		return nil
	}
	var sorting league.Sorting
	if err := json.Unmarshal(data, &sorting); err != nil {
		return fmt.Errorf("sorting must be a preset name or an object: %w", err)
	}
	*s = SortingSpec{Custom: &sorting}
	return nil
}

// UnmarshalYAML accepts a scalar preset name or a sorting mapping
func (s *SortingSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*s = SortingSpec{Preset: value.Value}
		return nil
	}
	var sorting league.Sorting
	if err := value.Decode(&sorting); err != nil {
		return fmt.Errorf("sorting must be a preset name or a mapping: %w", err)
	}
	*s = SortingSpec{Custom: &sorting}
	return nil
}

// MatchSpec is a result given as [id, matchday, home, away, homeGoals, awayGoals] or as an object
type MatchSpec league.Match

// UnmarshalJSON accepts the six element tuple or a match object
func (m *MatchSpec) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		var match league.Match
		if err := json.Unmarshal(data, &match); err != nil {
			return err
		}
		*m = MatchSpec(match)
		return nil
	}

	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("match must be a tuple or an object: %w", err)
	}
	if len(fields) != 6 {
		return fmt.Errorf("match tuple needs 6 values [id, matchday, home, away, homeGoals, awayGoals], got %d", len(fields))
	}
	targets := []interface{}{&m.ID, &m.Matchday, &m.Home, &m.Away, &m.HomeGoals, &m.AwayGoals}
	for i, target := range targets {
		if err := json.Unmarshal(fields[i], target); err != nil {
			return fmt.Errorf("match tuple value %d: %w", i, err)
		}
	}
	return nil
}

// UnmarshalYAML accepts the six element sequence or a match mapping
func (m *MatchSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		var match struct {
			ID        int    `yaml:"id"`
			Matchday  int    `yaml:"matchday"`
			Home      string `yaml:"home"`
			Away      string `yaml:"away"`
			HomeGoals int    `yaml:"home_goals"`
			AwayGoals int    `yaml:"away_goals"`
		}
		if err := value.Decode(&match); err != nil {
			return err
		}
		*m = MatchSpec(match)
		return nil
	}

	if value.Kind != yaml.SequenceNode || len(value.Content) != 6 {
		return fmt.Errorf("line %d: match must be [id, matchday, home, away, homeGoals, awayGoals]", value.Line)
	}
	targets := []interface{}{&m.ID, &m.Matchday, &m.Home, &m.Away, &m.HomeGoals, &m.AwayGoals}
	for i, target := range targets {
		if err := value.Content[i].Decode(target); err != nil {
			return fmt.Errorf("match tuple value %d: %w", i, err)
		}
	}
	return nil
}

// ShootoutSpec is a penalty shootout given as [home, away, homeGoals, awayGoals] or as an object
type ShootoutSpec league.Shootout

// UnmarshalJSON accepts the four element tuple or a shootout object
func (s *ShootoutSpec) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		var so league.Shootout
		if err := json.Unmarshal(data, &so); err != nil {
			return err
		}
		*s = ShootoutSpec(so)
		return nil
	}

	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("shootout must be a tuple or an object: %w", err)
	}
	if len(fields) != 4 {
		return fmt.Errorf("shootout tuple needs 4 values [home, away, homeGoals, awayGoals], got %d", len(fields))
	}
	targets := []interface{}{&s.Home, &s.Away, &s.HomeGoals, &s.AwayGoals}
	for i, target := range targets {
		if err := json.Unmarshal(fields[i], target); err != nil {
			return fmt.Errorf("shootout tuple value %d: %w", i, err)
		}
	}
	return nil
}

// UnmarshalYAML accepts the four element sequence
func (s *ShootoutSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) != 4 {
		return fmt.Errorf("line %d: shootout must be [home, away, homeGoals, awayGoals]", value.Line)
	}
	targets := []interface{}{&s.Home, &s.Away, &s.HomeGoals, &s.AwayGoals}
	for i, target := range targets {
		if err := value.Content[i].Decode(target); err != nil {
			return fmt.Errorf("shootout tuple value %d: %w", i, err)
		}
	}
	return nil
}
