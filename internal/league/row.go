package league

// Stat names one numeric field of a Row.
type Stat string

const (
	StatPoints  Stat = "points"
	StatFor     Stat = "for"
	StatAgainst Stat = "against"
	StatDiff    Stat = "diff"
	StatWon     Stat = "won"
	StatDrawn   Stat = "drawn"
	StatLost    Stat = "lost"
	StatAwayFor Stat = "away_for"
	StatAwayWon Stat = "away_won"
	StatPlayed  Stat = "played"
)

var statLabels = map[Stat]string{
	StatPoints:  "points",
	StatFor:     "goals scored",
	StatAgainst: "goals conceded",
	StatDiff:    "goal difference",
	StatWon:     "number of games won",
	StatDrawn:   "number of games drawn",
	StatLost:    "number of games lost",
	StatAwayFor: "goals scored away from home",
	StatAwayWon: "number of games won away from home",
	StatPlayed:  "games played",
}

// Valid reports whether s is one of the known statistics.
func (s Stat) Valid() bool {
	_, ok := statLabels[s]
	return ok
}

// Label returns the human readable name used in tie explanations.
func (s Stat) Label() string {
	if label, ok := statLabels[s]; ok {
		return label
	}
	return string(s)
}

// Ascending reports whether a lower value ranks higher (fewer goals conceded, fewer losses).
func (s Stat) Ascending() bool {
	return s == StatAgainst || s == StatLost
}

// Row holds the full statistics of one team.
type Row struct {
	ID      string         `json:"id"`
	Points  int            `json:"points"`
	For     int            `json:"for"`
	Against int            `json:"against"`
	Diff    int            `json:"diff"`
	Won     int            `json:"won"`
	Drawn   int            `json:"drawn"`
	Lost    int            `json:"lost"`
	AwayFor int            `json:"away_for"`
	AwayWon int            `json:"away_won"`
	Played  int            `json:"played"`
	Flags   map[string]int `json:"flags,omitempty"`
}

// Value returns the value of statistic s. Unknown statistics read as zero.
func (r Row) Value(s Stat) int {
	switch s {
	case StatPoints:
		return r.Points
	case StatFor:
		return r.For
	case StatAgainst:
		return r.Against
	case StatDiff:
		return r.Diff
	case StatWon:
		return r.Won
	case StatDrawn:
		return r.Drawn
	case StatLost:
		return r.Lost
	case StatAwayFor:
		return r.AwayFor
	case StatAwayWon:
		return r.AwayWon
	case StatPlayed:
		return r.Played
	}
	return 0
}

// Flag returns the value of the named flag, zero when unset.
func (r Row) Flag(name string) int {
	return r.Flags[name]
}

// Clone returns a deep copy of r.
func (r Row) Clone() Row {
	c := r
	if r.Flags != nil {
		c.Flags = make(map[string]int, len(r.Flags))
		for k, v := range r.Flags {
			c.Flags[k] = v
		}
	}
	return c
}

func (r *Row) reset() {
	*r = Row{ID: r.ID, Flags: r.Flags}
}

// Standing is the public projection of a Row.
type Standing struct {
	ID      string         `json:"id"`
	Points  int            `json:"points"`
	For     int            `json:"for"`
	Against int            `json:"against"`
	Diff    int            `json:"diff"`
	Won     int            `json:"won"`
	Drawn   int            `json:"drawn"`
	Lost    int            `json:"lost"`
	Played  int            `json:"played"`
	Flags   map[string]int `json:"flags,omitempty"`
}

// Public drops the away split fields.
func (r Row) Public() Standing {
	c := r.Clone()
	return Standing{
		ID:      c.ID,
		Points:  c.Points,
		For:     c.For,
		Against: c.Against,
		Diff:    c.Diff,
		Won:     c.Won,
		Drawn:   c.Drawn,
		Lost:    c.Lost,
		Played:  c.Played,
		Flags:   c.Flags,
	}
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

func rowIDs(rows []Row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}
