package league

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Format is the schedule shape of a competition.
type Format string

const (
	FormatRoundRobin  Format = "round-robin"
	FormatHomeAndAway Format = "home-and-away"
)

// When places the head-to-head regime before or after the overall criteria.
type When string

const (
	Before When = "before"
	After  When = "after"
)

// Span controls how head-to-head sub-tables are rebuilt.
//
//	SpanAll    rebuild once per pass and reapply the pass to teams still level after it
//	SpanSingle rebuild on every step and restart the criteria as soon as a sub-table splits
//	SpanNone   a single pass with no reapplication
type Span string

const (
	SpanAll    Span = "all"
	SpanSingle Span = "single"
	SpanNone   Span = "none"
)

// FinalRule is the terminal step used when no criterion separates the teams.
type FinalRule string

const (
	FinalLots         FinalRule = "lots"
	FinalAlphabetical FinalRule = "alphabetical"
)

// Order is the sort direction of a flag.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// H2H configures the head-to-head regime.
type H2H struct {
	When When `json:"when" yaml:"when"`
	Span Span `json:"span" yaml:"span"`
}

// Flag is a federation defined per-team value used late in the cascade.
type Flag struct {
	Name  string `json:"name" yaml:"name"`
	Order Order  `json:"order" yaml:"order"`
}

// Sorting is the full tiebreak configuration. Points are always the first criterion and are not listed.
type Sorting struct {
	Criteria   []Stat    `json:"criteria" yaml:"criteria"`
	H2H        H2H       `json:"h2h" yaml:"h2h"`
	Additional []Stat    `json:"additional" yaml:"additional"`
	Shootout   bool      `json:"shootout" yaml:"shootout"`
	Flags      []Flag    `json:"flags" yaml:"flags"`
	Final      FinalRule `json:"final" yaml:"final"`
}

// Validate checks every field of the sorting configuration.
func (s Sorting) Validate() error {
	if err := validateStats("sorting.criteria", s.Criteria); err != nil {
		return err
	}
	if err := validateStats("sorting.additional", s.Additional); err != nil {
		return err
	}
	switch s.H2H.When {
	case Before, After:
	default:
		return configError("sorting.h2h.when", s.H2H.When, `expected "before" or "after"`)
	}
	switch s.H2H.Span {
	case SpanAll, SpanSingle, SpanNone:
	default:
		return configError("sorting.h2h.span", s.H2H.Span, `expected "all", "single" or "none"`)
	}
	seen := make(map[string]bool, len(s.Flags))
	for i, f := range s.Flags {
		field := fmt.Sprintf("sorting.flags[%d]", i)
		if f.Name == "" {
			return configError(field+".name", nil, "flag name is empty")
		}
		if seen[f.Name] {
			return configError(field+".name", f.Name, "duplicate flag name")
		}
		seen[f.Name] = true
		if f.Order != Asc && f.Order != Desc {
			return configError(field+".order", f.Order, `expected "asc" or "desc"`)
		}
	}
	switch s.Final {
	case FinalLots, FinalAlphabetical:
	default:
		return configError("sorting.final", s.Final, `expected "lots" or "alphabetical"`)
	}
	return nil
}

func validateStats(field string, stats []Stat) error {
	for i, st := range stats {
		if st == StatPoints {
			return configError(fmt.Sprintf("%s[%d]", field, i), st, "points are always applied first")
		}
		if !st.Valid() {
			return configError(fmt.Sprintf("%s[%d]", field, i), st, "unknown statistic")
		}
	}
	return nil
}

// Team is a participant; Flags are positional and follow Sorting.Flags.
type Team struct {
	ID    string `json:"team" yaml:"team"`
	Flags []int  `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// Teams builds flagless participants from plain ids.
func Teams(ids ...string) []Team {
	teams := make([]Team, len(ids))
	for i, id := range ids {
		teams[i] = Team{ID: id}
	}
	return teams
}

// Options configures a Competition.
type Options struct {
	Teams   []Team
	Format  Format
	Points  PointSystem
	Sorting Sorting
	Names   map[string]string

	// Logger receives integrity warnings and per-step debug entries.
	// Nil uses logrus.StandardLogger().
	Logger *logrus.Logger

	// Rand drives drawing of lots and provisional shootout orders.
	// Nil uses a time seeded math/rand source.
	Rand Randomizer
}

func (o Options) validate() error {
	if len(o.Teams) < 2 {
		return configError("teams", len(o.Teams), "at least two teams are required")
	}
	if err := o.Sorting.Validate(); err != nil {
		return err
	}
	ids := make(map[string]bool, len(o.Teams))
	for i, t := range o.Teams {
		if t.ID == "" {
			return configError(fmt.Sprintf("teams[%d]", i), nil, "team id is empty")
		}
		if ids[t.ID] {
			return configError(fmt.Sprintf("teams[%d]", i), t.ID, "duplicate team id")
		}
		ids[t.ID] = true
		if len(t.Flags) != 0 && len(t.Flags) != len(o.Sorting.Flags) {
			return configError(fmt.Sprintf("teams[%d].flags", i), t.Flags,
				fmt.Sprintf("expected %d values, one per sorting flag", len(o.Sorting.Flags)))
		}
	}
	switch o.Format {
	case FormatRoundRobin, FormatHomeAndAway:
	default:
		return configError("format", o.Format, `expected "round-robin" or "home-and-away"`)
	}
	if o.Points == nil {
		return configError("points", nil, "a point system is required")
	}
	for id := range o.Names {
		if !ids[id] {
			return configError("names", id, "not a team of this competition")
		}
	}
	return nil
}
