package league

// Regime is the category of a tiebreak step.
type Regime string

const (
	RegimeOverall    Regime = "overall"
	RegimeH2H        Regime = "h2h"
	RegimeAdditional Regime = "additional"
	RegimeShootout   Regime = "shootout"
	RegimeFlags      Regime = "flags"
	RegimeFinal      Regime = "final"
)

// Criterion names recorded by steps that do not compare a statistic or flag.
const (
	CriterionShootout    = "shootout"
	CriterionProvisional = "provisional"
)

// Cycle records one step of the tiebreak engine.
//
// Snapshot holds value copies of the rows that were compared: overall rows for the overall,
// additional, flags, shootout and final regimes, rebuilt head-to-head rows for h2h.
// Groups is the resulting partition, best first. Values holds the compared value per team and is
// nil for lots, alphabetical and provisional steps.
type Cycle struct {
	Index     int            `json:"index"`
	Type      Regime         `json:"type"`
	Criterion string         `json:"criterion"`
	Special   bool           `json:"special"`
	Parent    int            `json:"parent"`
	Snapshot  []Row          `json:"snapshot"`
	Groups    [][]string     `json:"groups"`
	Values    map[string]int `json:"values,omitempty"`
}

func (c Cycle) clone() Cycle {
	out := c
	out.Snapshot = cloneRows(c.Snapshot)
	out.Groups = make([][]string, len(c.Groups))
	for i, g := range c.Groups {
		out.Groups[i] = append([]string(nil), g...)
	}
	if c.Values != nil {
		out.Values = make(map[string]int, len(c.Values))
		for k, v := range c.Values {
			out.Values[k] = v
		}
	}
	return out
}

// History is the append-only log of cycles. Position in the log is recursion pre-order.
type History struct {
	cycles []Cycle
}

func (h *History) append(c Cycle) int {
	h.cycles = append(h.cycles, c)
	return len(h.cycles) - 1
}

// Len returns the number of recorded cycles.
func (h *History) Len() int { return len(h.cycles) }

// At returns a copy of the i-th cycle.
func (h *History) At(i int) Cycle { return h.cycles[i].clone() }

// Cycles returns copies of every recorded cycle.
func (h *History) Cycles() []Cycle {
	out := make([]Cycle, len(h.cycles))
	for i, c := range h.cycles {
		out[i] = c.clone()
	}
	return out
}

// Timeline is the sequence of whole-league orderings, one per cycle.
type Timeline struct {
	entries [][]Row
}

func (t *Timeline) push(rows []Row) {
	t.entries = append(t.entries, rows)
}

// Len returns the number of entries.
func (t *Timeline) Len() int { return len(t.entries) }

// At returns a copy of the i-th entry.
func (t *Timeline) At(i int) []Row { return cloneRows(t.entries[i]) }

// Last returns a copy of the latest entry, nil when empty.
func (t *Timeline) Last() []Row {
	if len(t.entries) == 0 {
		return nil
	}
	return cloneRows(t.entries[len(t.entries)-1])
}

func (t *Timeline) last() []Row {
	if len(t.entries) == 0 {
		return nil
	}
	return t.entries[len(t.entries)-1]
}

// reorder returns a copy of prev in which the members of groups take the slots they already occupy,
// filled in group order. Teams outside groups keep their position.
func reorder(prev []Row, groups [][]Row) []Row {
	byID := make(map[string]Row, len(prev))
	for _, r := range prev {
		byID[r.ID] = r
	}
	var order []string
	for _, g := range groups {
		for _, r := range g {
			order = append(order, r.ID)
		}
	}
	members := make(map[string]bool, len(order))
	for _, id := range order {
		members[id] = true
	}

	next := make([]Row, len(prev))
	k := 0
	for i, r := range prev {
		if members[r.ID] {
			next[i] = byID[order[k]].Clone()
			k++
			continue
		}
		next[i] = r.Clone()
	}
	return next
}
