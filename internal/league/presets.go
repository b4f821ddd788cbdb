package league

import "sort"

var presets = map[string]Sorting{
	"FIFA World Cup": {
		Criteria: []Stat{StatDiff, StatFor},
		H2H:      H2H{When: After, Span: SpanNone},
		Flags:    []Flag{{Name: "fair play points", Order: Asc}},
		Final:    FinalLots,
	},
	"UEFA Euro": {
		Criteria: []Stat{StatDiff, StatFor},
		H2H:      H2H{When: Before, Span: SpanAll},
		Shootout: true,
		Flags: []Flag{
			{Name: "disciplinary points", Order: Asc},
			{Name: "qualifiers ranking", Order: Asc},
		},
		Final: FinalLots,
	},
	"pre-2021 UEFA Champions League": {
		Criteria:   []Stat{StatDiff, StatFor, StatAwayFor},
		H2H:        H2H{When: Before, Span: SpanAll},
		Additional: []Stat{StatWon, StatAwayWon},
		Flags: []Flag{
			{Name: "disciplinary points", Order: Asc},
			{Name: "club coefficient", Order: Desc},
		},
		Final: FinalLots,
	},
	"2021-2024 UEFA Champions League": {
		Criteria:   []Stat{StatDiff, StatFor},
		H2H:        H2H{When: Before, Span: SpanAll},
		Additional: []Stat{StatAwayFor, StatWon, StatAwayWon},
		Flags: []Flag{
			{Name: "disciplinary points", Order: Asc},
			{Name: "club coefficient", Order: Desc},
		},
		Final: FinalLots,
	},
}

// Preset returns a copy of the named regulation bundle.
func Preset(name string) (Sorting, error) {
	p, ok := presets[name]
	if !ok {
		return Sorting{}, configError("sorting", name, "unknown preset")
	}
	p.Criteria = append([]Stat(nil), p.Criteria...)
	p.Additional = append([]Stat(nil), p.Additional...)
	p.Flags = append([]Flag(nil), p.Flags...)
	return p, nil
}

// Presets lists the preset names in alphabetical order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
