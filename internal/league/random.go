package league

import (
	"math/rand"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Randomizer shuffles n elements through swap. *math/rand.Rand satisfies it.
type Randomizer interface {
	Shuffle(n int, swap func(i, j int))
}

func defaultRandomizer() Randomizer {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func shuffled(rnd Randomizer, table []Row) []Row {
	out := cloneRows(table)
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// alphabetical sorts ids with a locale independent collation, so "Ferencváros" sorts next to "Ferencvaros".
func alphabetical(table []Row) []Row {
	out := cloneRows(table)
	c := collate.New(language.Und)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].ID, out[j].ID) < 0
	})
	return out
}

func sortNames(names []string) {
	c := collate.New(language.Und)
	sort.SliceStable(names, func(i, j int) bool {
		return c.CompareString(names[i], names[j]) < 0
	})
}
