package league

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allDrawn = []Match{
	m(1, 1, "San Marino", "Italy", 0, 0),
	m(2, 1, "Spain", "France", 0, 0),
	m(3, 2, "San Marino", "Spain", 0, 0),
	m(4, 2, "Italy", "France", 0, 0),
	m(5, 3, "San Marino", "France", 0, 0),
	m(6, 3, "Italy", "Spain", 0, 0),
}

// spainBeatFrance leaves Italy and San Marino level after a goalless draw on the last matchday.
var spainBeatFrance = []Match{
	m(1, 1, "San Marino", "Spain", 0, 0),
	m(2, 1, "Italy", "France", 0, 0),
	m(3, 2, "San Marino", "France", 0, 0),
	m(4, 2, "Spain", "Italy", 0, 0),
	m(5, 3, "San Marino", "Italy", 0, 0),
	m(6, 3, "Spain", "France", 1, 0),
}

func newTestCompetition(t *testing.T, sorting Sorting, rnd Randomizer, matches []Match) *Competition {
	t.Helper()
	logger, _ := test.NewNullLogger()
	c, err := New(Options{
		Teams:   Teams("San Marino", "Italy", "Spain", "France"),
		Format:  FormatRoundRobin,
		Points:  Standard,
		Sorting: sorting,
		Logger:  logger,
		Rand:    rnd,
	})
	require.NoError(t, err)
	require.NoError(t, c.AddMatches(matches))
	return c
}

func worldCupSorting() Sorting {
	return Sorting{
		Criteria: []Stat{StatDiff, StatFor},
		H2H:      H2H{When: After, Span: SpanNone},
		Final:    FinalLots,
	}
}

func standingIDs(t *testing.T, c *Competition) []string {
	t.Helper()
	standings, err := c.Standings()
	require.NoError(t, err)
	ids := make([]string, len(standings))
	for i, s := range standings {
		ids[i] = s.ID
	}
	return ids
}

func TestTies_DrawingOfLots(t *testing.T) {
	c := newTestCompetition(t, worldCupSorting(), reverseRand{}, allDrawn)

	assert.Equal(t, []string{"France", "Spain", "Italy", "San Marino"}, standingIDs(t, c))

	ties, err := c.Ties()
	require.NoError(t, err)
	require.Len(t, ties, 1)
	assert.ElementsMatch(t, []string{"San Marino", "Italy", "Spain", "France"}, ties[0].Group)
	assert.Equal(t, []string{
		"France, Italy, San Marino and Spain are tied on points (3).",
		"France, Italy, San Marino and Spain are sorted on drawing of random lots.",
	}, ties[0].Messages)
	assert.Empty(t, ties[0].Requests)
}

func TestTies_AlphabeticalOrder(t *testing.T) {
	sorting := worldCupSorting()
	sorting.Final = FinalAlphabetical
	c := newTestCompetition(t, sorting, reverseRand{}, allDrawn)

	assert.Equal(t, []string{"France", "Italy", "San Marino", "Spain"}, standingIDs(t, c))

	ties, err := c.Ties()
	require.NoError(t, err)
	require.Len(t, ties, 1)
	assert.Equal(t, "France, Italy, San Marino and Spain are sorted on the alphabetical order of their names.",
		ties[0].Messages[len(ties[0].Messages)-1])
}

func TestTies_PenaltyShootout(t *testing.T) {
	sorting := worldCupSorting()
	sorting.Shootout = true
	c := newTestCompetition(t, sorting, identityRand{}, spainBeatFrance)

	assert.Equal(t, []string{"Spain", "San Marino", "Italy", "France"}, standingIDs(t, c))

	pending, err := c.PendingShootout()
	require.NoError(t, err)
	assert.True(t, pending)

	ties, err := c.Ties()
	require.NoError(t, err)
	require.Len(t, ties, 1)
	assert.Equal(t, []string{
		"Italy and San Marino are tied on points (3).",
		"Italy and San Marino are provisionally sorted at random while waiting for the results of their penalty shootout.",
	}, ties[0].Messages)
	assert.Equal(t, RequestShootout, ties[0].Requests)

	require.NoError(t, c.AddShootout("Italy", "San Marino", 5, 4))

	assert.Equal(t, []string{"Spain", "Italy", "San Marino", "France"}, standingIDs(t, c))

	pending, err = c.PendingShootout()
	require.NoError(t, err)
	assert.False(t, pending)

	ties, err = c.Ties()
	require.NoError(t, err)
	require.Len(t, ties, 1)
	assert.Equal(t, []string{
		"Italy and San Marino are tied on points (3).",
		"Italy and San Marino are sorted on the results of their penalty shootout (Italy: 5; San Marino: 4).",
	}, ties[0].Messages)
	assert.Empty(t, ties[0].Requests)
}

func TestTies_LatestShootoutWins(t *testing.T) {
	sorting := worldCupSorting()
	sorting.Shootout = true
	c := newTestCompetition(t, sorting, identityRand{}, spainBeatFrance)

	require.NoError(t, c.AddShootout("Italy", "San Marino", 5, 4))
	require.NoError(t, c.AddShootout("San Marino", "Italy", 6, 5))

	assert.Equal(t, []string{"Spain", "San Marino", "Italy", "France"}, standingIDs(t, c))
}

func TestTies_ShootoutNeedsRoundRobin(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sorting := worldCupSorting()
	sorting.Shootout = true
	c, err := New(Options{
		Teams:   Teams("San Marino", "Italy", "Spain", "France"),
		Format:  FormatHomeAndAway,
		Points:  Standard,
		Sorting: sorting,
		Logger:  logger,
		Rand:    identityRand{},
	})
	require.NoError(t, err)
	require.NoError(t, c.AddMatches(spainBeatFrance))

	pending, err := c.PendingShootout()
	require.NoError(t, err)
	assert.False(t, pending)

	ties, err := c.Ties()
	require.NoError(t, err)
	require.Len(t, ties, 1)
	assert.Equal(t, "Italy and San Marino are sorted on drawing of random lots.", ties[0].Messages[1])
}

func TestTies_HeadToHeadAfterOverall(t *testing.T) {
	sc := scenarioNamed(t, "1994 World Cup group D falls back to head-to-head")
	c, err := New(sc.options(t))
	require.NoError(t, err)
	require.NoError(t, c.AddMatches(sc.matches))

	ties, err := c.Ties()
	require.NoError(t, err)
	require.Len(t, ties, 1)
	assert.Equal(t, []string{
		"Argentina, Bulgaria and Nigeria are tied on points (6).",
		"Argentina, Bulgaria and Nigeria are sorted on goal difference (Nigeria: 4; Bulgaria: 3; Argentina: 3).",
		"Argentina and Bulgaria are sorted on head-to-head points (Bulgaria: 3; Argentina: 0).",
	}, ties[0].Messages)
}

func TestTies_Flags(t *testing.T) {
	sc := scenarioNamed(t, "2018 World Cup group H resolved on fair play points")
	c, err := New(sc.options(t))
	require.NoError(t, err)
	require.NoError(t, c.AddMatches(sc.matches))

	ties, err := c.Ties()
	require.NoError(t, err)
	require.Len(t, ties, 1)
	assert.Equal(t, []string{
		"Japan and Senegal are tied on points (4).",
		"Japan and Senegal are sorted on fair play points (Japan: 4; Senegal: 6).",
	}, ties[0].Messages)
}

func TestTies_NoTies(t *testing.T) {
	sc := scenarioNamed(t, "2022 World Cup group A has no ties on points")
	c, err := New(sc.options(t))
	require.NoError(t, err)
	require.NoError(t, c.AddMatches(sc.matches))

	ties, err := c.Ties()
	require.NoError(t, err)
	assert.NotNil(t, ties)
	assert.Empty(t, ties)
}

func TestTies_DisplayNames(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c, err := New(Options{
		Teams:   Teams("SMR", "ITA", "ESP", "FRA"),
		Format:  FormatRoundRobin,
		Points:  Standard,
		Sorting: worldCupSorting(),
		Names:   map[string]string{"SMR": "San Marino", "ITA": "Italy", "ESP": "Spain", "FRA": "France"},
		Logger:  logger,
		Rand:    identityRand{},
	})
	require.NoError(t, err)
	require.NoError(t, c.AddMatches([]Match{
		m(1, 1, "SMR", "ITA", 0, 0),
		m(2, 1, "ESP", "FRA", 0, 0),
		m(3, 2, "SMR", "ESP", 0, 0),
		m(4, 2, "ITA", "FRA", 0, 0),
		m(5, 3, "SMR", "FRA", 0, 0),
		m(6, 3, "ITA", "ESP", 0, 0),
	}))

	ties, err := c.Ties()
	require.NoError(t, err)
	require.Len(t, ties, 1)
	assert.Equal(t, "France, Italy, San Marino and Spain are tied on points (3).", ties[0].Messages[0])
}

func TestTies_ReturnsFreshSlices(t *testing.T) {
	c := newTestCompetition(t, worldCupSorting(), reverseRand{}, allDrawn)

	first, err := c.Ties()
	require.NoError(t, err)
	first[0].Messages[0] = "changed"

	second, err := c.Ties()
	require.NoError(t, err)
	assert.Equal(t, "France, Italy, San Marino and Spain are tied on points (3).", second[0].Messages[0])
}

func TestNarrator_List(t *testing.T) {
	n := narrator{names: map[string]string{"b": "Bravo"}}

	assert.Equal(t, "", n.list(nil))
	assert.Equal(t, "Alpha", n.list([]string{"Alpha"}))
	assert.Equal(t, "Alpha and Bravo", n.list([]string{"b", "Alpha"}))
	assert.Equal(t, "Alpha, Bravo and Charlie", n.list([]string{"Charlie", "b", "Alpha"}))
}

func TestPointsClusters(t *testing.T) {
	rows := []Row{
		{ID: "a", Points: 9},
		{ID: "b", Points: 4},
		{ID: "c", Points: 4},
		{ID: "d", Points: 1},
		{ID: "e", Points: 1},
		{ID: "f", Points: 1},
	}

	clusters := pointsClusters(rows)
	require.Len(t, clusters, 2)
	assert.Equal(t, []string{"b", "c"}, rowIDs(clusters[0]))
	assert.Equal(t, []string{"d", "e", "f"}, rowIDs(clusters[1]))
}

func scenarioNamed(t *testing.T, name string) scenario {
	t.Helper()
	for _, sc := range scenarios {
		if sc.name == name {
			return sc
		}
	}
	t.Fatalf("no scenario named %q", name)
	return scenario{}
}
