package league

// PointSystem turns a won/drawn/lost record into league points.
type PointSystem interface {
	Points(won, drawn, lost int) int
}

// PointsFunc adapts a plain function to PointSystem.
type PointsFunc func(won, drawn, lost int) int

// Points implements PointSystem.
func (f PointsFunc) Points(won, drawn, lost int) int {
	return f(won, drawn, lost)
}

var (
	// Standard awards three points for a win and one for a draw.
	Standard PointSystem = PointsFunc(func(won, drawn, _ int) int { return 3*won + drawn })

	// Old awards two points for a win and one for a draw.
	Old PointSystem = PointsFunc(func(won, drawn, _ int) int { return 2*won + drawn })
)

// PointSystemByName resolves the built-in rules "standard" and "old".
func PointSystemByName(name string) (PointSystem, error) {
	switch name {
	case "standard", "":
		return Standard, nil
	case "old":
		return Old, nil
	}
	return nil, configError("points", name, `expected "standard" or "old"`)
}
