package league

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// MatchInput is one raw result: match id, matchday, home id, away id, home goals, away goals.
type MatchInput = Match

// Competition ranks a fixed set of teams from the matches added to it.
//
// Every call to Standings recomputes the table from scratch. Ties and History read the state left
// by the latest computation and recompute first when matches, flags or shootouts changed since.
type Competition struct {
	mu sync.Mutex

	teams   []string
	known   map[string]bool
	flags   map[string]map[string]int
	format  Format
	points  PointSystem
	sorting Sorting
	names   map[string]string
	logger  *logrus.Logger
	rand    Randomizer

	matches   []Match
	matchIDs  map[int]bool
	shootouts []Shootout

	last  *outcome
	stale bool
}

// New validates opts and returns an empty competition.
func New(opts Options) (*Competition, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	c := &Competition{
		known:    make(map[string]bool, len(opts.Teams)),
		flags:    make(map[string]map[string]int, len(opts.Teams)),
		format:   opts.Format,
		points:   opts.Points,
		sorting:  opts.Sorting,
		names:    make(map[string]string, len(opts.Names)),
		logger:   opts.Logger,
		rand:     opts.Rand,
		matchIDs: make(map[int]bool),
		stale:    true,
	}
	if c.logger == nil {
		c.logger = logrus.StandardLogger()
	}
	if c.rand == nil {
		c.rand = defaultRandomizer()
	}
	for id, name := range opts.Names {
		c.names[id] = name
	}
	for _, t := range opts.Teams {
		c.teams = append(c.teams, t.ID)
		c.known[t.ID] = true
		if len(opts.Sorting.Flags) == 0 {
			continue
		}
		values := make(map[string]int, len(opts.Sorting.Flags))
		for i, f := range opts.Sorting.Flags {
			if i < len(t.Flags) {
				values[f.Name] = t.Flags[i]
			} else {
				values[f.Name] = 0
			}
		}
		c.flags[t.ID] = values
	}
	return c, nil
}

// AddMatches ingests a batch of results. The batch is rejected as a whole on a duplicate match id,
// an unknown team, or a matchday collision while shootouts are enabled. Other format
// inconsistencies are logged as warnings.
func (c *Competition) AddMatches(matches []MatchInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	batch := make(map[int]bool, len(matches))
	pending := append([]Match(nil), c.matches...)
	for _, m := range matches {
		if c.matchIDs[m.ID] || batch[m.ID] {
			return fmt.Errorf("%w %d", ErrDuplicateMatch, m.ID)
		}
		batch[m.ID] = true
		if !c.known[m.Home] {
			return fmt.Errorf("%w %q (home team of match %d)", ErrUnknownTeam, m.Home, m.ID)
		}
		if !c.known[m.Away] {
			return fmt.Errorf("%w %q (away team of match %d)", ErrUnknownTeam, m.Away, m.ID)
		}
		if err := c.checkIntegrity(pending, m); err != nil {
			return err
		}
		pending = append(pending, m)
	}

	for id := range batch {
		c.matchIDs[id] = true
	}
	c.matches = pending
	c.stale = true
	return nil
}

func (c *Competition) checkIntegrity(existing []Match, m Match) error {
	meetings := 0
	for _, other := range existing {
		if other.involves(m.Home, m.Away) {
			meetings++
		}
		if other.Matchday != m.Matchday {
			continue
		}
		for _, team := range []string{m.Home, m.Away} {
			if other.Home != team && other.Away != team {
				continue
			}
			if c.sorting.Shootout {
				return fmt.Errorf("%w: %q on matchday %d (match %d)", ErrMatchdayIntegrity, team, m.Matchday, m.ID)
			}
			c.logger.WithFields(logrus.Fields{
				"match_id": m.ID,
				"team":     team,
				"matchday": m.Matchday,
			}).Warn("Team plays more than once on the same matchday")
		}
	}

	allowed := 1
	if c.format == FormatHomeAndAway {
		allowed = 2
	}
	if meetings >= allowed {
		c.logger.WithFields(logrus.Fields{
			"match_id": m.ID,
			"home":     m.Home,
			"away":     m.Away,
			"format":   c.format,
		}).Warnf("Format %s allows only %d match(es) between two teams", c.format, allowed)
	}
	return nil
}

// TeamCount returns the number of participants.
func (c *Competition) TeamCount() int { return len(c.teams) }

// UpdateFlags sets one flag value for one team.
func (c *Competition) UpdateFlags(team, flag string, value int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.known[team] {
		return fmt.Errorf("%w %q", ErrUnknownTeam, team)
	}
	values, ok := c.flags[team]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownFlag, flag)
	}
	if _, ok := values[flag]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownFlag, flag)
	}
	values[flag] = value
	c.stale = true
	return nil
}

// AddShootout records a penalty shootout result. The latest result for a pair wins.
func (c *Competition) AddShootout(home, away string, homeGoals, awayGoals int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, team := range []string{home, away} {
		if !c.known[team] {
			return fmt.Errorf("%w %q", ErrUnknownTeam, team)
		}
	}
	c.shootouts = append(c.shootouts, Shootout{Home: home, Away: away, HomeGoals: homeGoals, AwayGoals: awayGoals})
	c.stale = true
	return nil
}

// Standings recomputes and returns the public table, best team first.
func (c *Competition) Standings() ([]Standing, error) {
	rows, err := c.Table()
	if err != nil {
		return nil, err
	}
	out := make([]Standing, len(rows))
	for i, r := range rows {
		out[i] = r.Public()
	}
	return out, nil
}

// Table recomputes and returns the full rows, best team first.
func (c *Competition) Table() ([]Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.compute()
	if err != nil {
		return nil, err
	}
	return res.timeline.Last(), nil
}

// Ties explains every group of teams that finished level on points.
func (c *Competition) Ties() ([]Tie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.current()
	if err != nil {
		return nil, err
	}
	n := narrator{history: res.history.cycles, names: c.names}
	return n.explain(res.timeline.last()), nil
}

// History returns the raw cycle log of the latest computation.
func (c *Competition) History() ([]Cycle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.current()
	if err != nil {
		return nil, err
	}
	return res.history.Cycles(), nil
}

// PendingShootout reports whether the latest computation ordered a pair provisionally.
func (c *Competition) PendingShootout() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.current()
	if err != nil {
		return false, err
	}
	return res.pending, nil
}

func (c *Competition) current() (*outcome, error) {
	if c.last != nil && !c.stale {
		return c.last, nil
	}
	return c.compute()
}

func (c *Competition) compute() (*outcome, error) {
	if len(c.matches) == 0 {
		c.logger.Warn("No matches have been added to this competition")
		return nil, ErrNoMatches
	}

	table := make([]Row, len(c.teams))
	for i, id := range c.teams {
		table[i] = Row{ID: id}
		if values, ok := c.flags[id]; ok {
			table[i].Flags = make(map[string]int, len(values))
			for k, v := range values {
				table[i].Flags[k] = v
			}
		}
	}
	if err := tally(table, c.matches, c.points); err != nil {
		return nil, err
	}

	e := &engine{
		sorting:   c.sorting,
		format:    c.format,
		points:    c.points,
		matches:   c.matches,
		shootouts: c.shootouts,
		rand:      c.rand,
		logger:    c.logger,
	}
	res, err := e.run(table)
	if err != nil {
		return nil, err
	}

	c.last = res
	c.stale = false
	c.logger.WithFields(logrus.Fields{
		"teams":   len(table),
		"matches": len(c.matches),
		"cycles":  res.history.Len(),
	}).Debug("Computed standings")
	return res, nil
}
