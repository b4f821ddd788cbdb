package league

import "fmt"

// tally resets every row of table and accumulates matches into it. Each match must be played between
// teams of the table; points are derived last from the won/drawn/lost record.
func tally(table []Row, matches []Match, points PointSystem) error {
	index := make(map[string]int, len(table))
	for i := range table {
		table[i].reset()
		index[table[i].ID] = i
	}

	for _, m := range matches {
		h, ok := index[m.Home]
		if !ok {
			return fmt.Errorf("%w %q (home team of match %d)", ErrUnknownTeam, m.Home, m.ID)
		}
		a, ok := index[m.Away]
		if !ok {
			return fmt.Errorf("%w %q (away team of match %d)", ErrUnknownTeam, m.Away, m.ID)
		}
		record(&table[h], &table[a], m)
	}

	for i := range table {
		r := &table[i]
		r.Points = points.Points(r.Won, r.Drawn, r.Lost)
	}
	return nil
}

func record(home, away *Row, m Match) {
	home.Played++
	home.For += m.HomeGoals
	home.Against += m.AwayGoals
	home.Diff = home.For - home.Against

	away.Played++
	away.For += m.AwayGoals
	away.AwayFor += m.AwayGoals
	away.Against += m.HomeGoals
	away.Diff = away.For - away.Against

	switch {
	case m.HomeGoals > m.AwayGoals:
		home.Won++
		away.Lost++
	case m.HomeGoals < m.AwayGoals:
		home.Lost++
		away.Won++
		away.AwayWon++
	default:
		home.Drawn++
		away.Drawn++
	}
}

// among returns the matches played strictly between members of table, in ingestion order.
func among(table []Row, matches []Match) []Match {
	members := make(map[string]bool, len(table))
	for _, r := range table {
		members[r.ID] = true
	}
	var out []Match
	for _, m := range matches {
		if members[m.Home] && members[m.Away] {
			out = append(out, m)
		}
	}
	return out
}
