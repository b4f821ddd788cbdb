package league

// Match is one played fixture. Matches are immutable once added.
type Match struct {
	ID        int    `json:"id"`
	Matchday  int    `json:"matchday"`
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
}

func (m Match) involves(a, b string) bool {
	return (m.Home == a && m.Away == b) || (m.Home == b && m.Away == a)
}

func (m Match) level() bool {
	return m.HomeGoals == m.AwayGoals
}

// Shootout is a penalty shootout result between two teams that drew their last match.
type Shootout struct {
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
}

// goals returns the goals scored by team, which must be one of the two sides.
func (s Shootout) goals(team string) int {
	if team == s.Home {
		return s.HomeGoals
	}
	return s.AwayGoals
}

func (s Shootout) between(a, b string) bool {
	return (s.Home == a && s.Away == b) || (s.Home == b && s.Away == a)
}
