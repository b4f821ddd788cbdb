package league

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// defaultMaxDepth bounds the recursion. A valid configuration always reaches the final regime long before.
const defaultMaxDepth = 100

type criterion struct {
	name      string
	ascending bool
	value     func(Row) int
}

func statCriterion(s Stat) criterion {
	return criterion{name: string(s), ascending: s.Ascending(), value: func(r Row) int { return r.Value(s) }}
}

// state is carried through the recursion.
//
// run is the position in the active criteria list and origin the size of the sub-table the current
// pass started with; a child smaller than origin means the pass made progress.
type state struct {
	index   int
	regime  Regime
	run     int
	origin  int
	special bool
	parent  int
}

func (s state) enter(r Regime, size int) state {
	s.regime = r
	s.run = 0
	s.origin = size
	s.special = false
	return s
}

type engine struct {
	sorting   Sorting
	format    Format
	points    PointSystem
	matches   []Match
	shootouts []Shootout
	rand      Randomizer
	logger    *logrus.Logger
	maxDepth  int

	history  *History
	timeline *Timeline
	pending  bool

	maxPlayed    int
	lastMatchday int
}

// outcome is what one engine run leaves behind.
type outcome struct {
	history  *History
	timeline *Timeline
	pending  bool
}

func (e *engine) run(table []Row) (*outcome, error) {
	e.history = &History{}
	e.timeline = &Timeline{}
	e.pending = false
	if e.maxDepth == 0 {
		e.maxDepth = defaultMaxDepth
	}
	for _, r := range table {
		if r.Played > e.maxPlayed {
			e.maxPlayed = r.Played
		}
	}
	for _, m := range e.matches {
		if m.Matchday > e.lastMatchday {
			e.lastMatchday = m.Matchday
		}
	}

	if err := e.resolve(cloneRows(table), state{regime: RegimeOverall, origin: len(table), parent: -1}); err != nil {
		return nil, err
	}
	return &outcome{history: e.history, timeline: e.timeline, pending: e.pending}, nil
}

func (e *engine) criteria(r Regime) []criterion {
	var list []criterion
	switch r {
	case RegimeOverall, RegimeH2H:
		list = append(list, statCriterion(StatPoints))
		for _, s := range e.sorting.Criteria {
			list = append(list, statCriterion(s))
		}
	case RegimeAdditional:
		for _, s := range e.sorting.Additional {
			list = append(list, statCriterion(s))
		}
	case RegimeFlags:
		for _, f := range e.sorting.Flags {
			name := f.Name
			list = append(list, criterion{
				name:      name,
				ascending: f.Order == Asc,
				value:     func(r Row) int { return r.Flag(name) },
			})
		}
	case RegimeShootout:
		list = append(list, criterion{name: CriterionShootout})
	case RegimeFinal:
		list = append(list, criterion{name: string(e.sorting.Final)})
	}
	return list
}

// resolve applies one criterion to table, records the step and recurses into every group still tied.
func (e *engine) resolve(table []Row, st state) error {
	if st.index > e.maxDepth {
		return fmt.Errorf("%w (%d steps)", ErrMaxDepth, e.maxDepth)
	}
	list := e.criteria(st.regime)
	crit := list[st.run]

	if st.regime == RegimeH2H {
		if e.sorting.H2H.Span == SpanSingle || st.run == 0 {
			rebuilt := cloneRows(table)
			if err := tally(rebuilt, among(table, e.matches), e.points); err != nil {
				return err
			}
			table = rebuilt
		}
	} else {
		// head-to-head rows never leak into overall comparisons
		table = e.overall(table)
	}

	cycle := Cycle{
		Index:     st.index,
		Type:      st.regime,
		Criterion: crit.name,
		Special:   st.special,
		Parent:    st.parent,
	}
	var groups [][]Row
	switch st.regime {
	case RegimeShootout:
		groups, cycle.Criterion, cycle.Values = e.shootout(table)
	case RegimeFinal:
		groups = singletons(e.draw(table))
	default:
		groups, cycle.Values = partition(table, crit)
	}
	cycle.Snapshot = cloneRows(table)
	cycle.Groups = groupIDs(groups)
	idx := e.history.append(cycle)

	prev := e.timeline.last()
	if prev == nil {
		prev = table
	}
	e.timeline.push(reorder(prev, groups))

	e.logger.WithFields(logrus.Fields{
		"index":     st.index,
		"type":      st.regime,
		"criterion": cycle.Criterion,
		"special":   st.special,
		"teams":     rowIDs(table),
		"groups":    len(groups),
	}).Debug("Applied tiebreak step")

	split := len(groups) > 1
	for _, g := range groups {
		if len(g) < 2 {
			continue
		}
		next := e.next(st, len(list), split, g)
		next.parent = idx
		if err := e.resolve(g, next); err != nil {
			return err
		}
	}
	return nil
}

// next decides the regime and criterion of a group that is still tied after st.
func (e *engine) next(st state, n int, split bool, group []Row) state {
	size := len(group)
	last := st.run >= n-1
	nx := st
	nx.index++
	nx.run++
	nx.special = false

	switch st.regime {
	case RegimeOverall:
		switch {
		case st.index == 0 && e.sorting.H2H.When == Before:
			return nx.enter(RegimeH2H, size)
		case !last:
			return nx
		case e.sorting.H2H.When == After, size < st.origin:
			return nx.enter(RegimeH2H, size)
		}
		return e.fallThrough(nx, RegimeAdditional, group)

	case RegimeH2H:
		switch {
		case e.sorting.H2H.Span == SpanSingle && st.index >= 2 && split:
			nx = nx.enter(RegimeH2H, size)
			nx.special = true
			return nx
		case !last:
			return nx
		case e.sorting.H2H.Span != SpanNone && size < st.origin:
			return nx.enter(RegimeH2H, size)
		case e.sorting.H2H.When == Before:
			return nx.enter(RegimeOverall, size)
		}
		return e.fallThrough(nx, RegimeAdditional, group)

	case RegimeAdditional:
		if !last {
			return nx
		}
		return e.fallThrough(nx, RegimeShootout, group)

	case RegimeShootout:
		return e.fallThrough(nx, RegimeFlags, group)

	case RegimeFlags:
		if !last {
			return nx
		}
	}
	return nx.enter(RegimeFinal, size)
}

// fallThrough enters the first applicable regime of additional, shootout, flags, starting at from.
func (e *engine) fallThrough(nx state, from Regime, group []Row) state {
	started := false
	for _, r := range []Regime{RegimeAdditional, RegimeShootout, RegimeFlags} {
		if r == from {
			started = true
		}
		if !started {
			continue
		}
		switch r {
		case RegimeAdditional:
			if len(e.sorting.Additional) > 0 {
				return nx.enter(r, len(group))
			}
		case RegimeShootout:
			if e.shootoutApplies(group) {
				return nx.enter(r, len(group))
			}
		case RegimeFlags:
			if len(e.sorting.Flags) > 0 {
				return nx.enter(r, len(group))
			}
		}
	}
	return nx.enter(RegimeFinal, len(group))
}

// overall returns the rows of table as they stand in the latest timeline entry.
func (e *engine) overall(table []Row) []Row {
	last := e.timeline.last()
	if last == nil {
		return cloneRows(table)
	}
	byID := make(map[string]Row, len(last))
	for _, r := range last {
		byID[r.ID] = r
	}
	out := make([]Row, len(table))
	for i, r := range table {
		out[i] = byID[r.ID].Clone()
	}
	return out
}

// shootoutApplies reports whether group is a pair that completed its schedule and drew its
// mutual match on the last matchday of a round-robin.
func (e *engine) shootoutApplies(group []Row) bool {
	if !e.sorting.Shootout || e.format != FormatRoundRobin || len(group) != 2 {
		return false
	}
	rows := e.overall(group)
	for _, r := range rows {
		if r.Played != e.maxPlayed {
			return false
		}
	}
	for _, m := range e.matches {
		if m.involves(rows[0].ID, rows[1].ID) && m.Matchday == e.lastMatchday && m.level() {
			return true
		}
	}
	return false
}

func (e *engine) shootout(table []Row) ([][]Row, string, map[string]int) {
	if rec, ok := e.findShootout(table[0].ID, table[1].ID); ok {
		groups, values := partition(table, criterion{
			name:  CriterionShootout,
			value: func(r Row) int { return rec.goals(r.ID) },
		})
		return groups, CriterionShootout, values
	}
	e.pending = true
	e.logger.WithField("teams", rowIDs(table)).Warn("Penalty shootout result required, ordering provisionally at random")
	return singletons(shuffled(e.rand, table)), CriterionProvisional, nil
}

func (e *engine) findShootout(a, b string) (Shootout, bool) {
	for i := len(e.shootouts) - 1; i >= 0; i-- {
		if e.shootouts[i].between(a, b) {
			return e.shootouts[i], true
		}
	}
	return Shootout{}, false
}

func (e *engine) draw(table []Row) []Row {
	if e.sorting.Final == FinalAlphabetical {
		return alphabetical(table)
	}
	return shuffled(e.rand, table)
}

// partition groups table by the criterion value, best value first, keeping table order inside a group.
func partition(table []Row, c criterion) ([][]Row, map[string]int) {
	values := make(map[string]int, len(table))
	buckets := make(map[int][]Row)
	var keys []int
	for _, r := range table {
		v := c.value(r)
		values[r.ID] = v
		if _, exists := buckets[v]; !exists {
			keys = append(keys, v)
		}
		buckets[v] = append(buckets[v], r)
	}

	sort.Slice(keys, func(i, j int) bool {
		if c.ascending {
			return keys[i] < keys[j]
		}
		return keys[i] > keys[j]
	})

	groups := make([][]Row, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, buckets[k])
	}
	return groups, values
}

func singletons(table []Row) [][]Row {
	groups := make([][]Row, len(table))
	for i, r := range table {
		groups[i] = []Row{r}
	}
	return groups
}

func groupIDs(groups [][]Row) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = rowIDs(g)
	}
	return out
}
