package league

import (
	"errors"
	"fmt"
)

// Sentinel errors for ingestion and computation.
var (
	// ErrNoMatches is returned when standings are requested before any match was added.
	ErrNoMatches = errors.New("league: no matches have been added")

	// ErrDuplicateMatch indicates a match id that was already ingested.
	ErrDuplicateMatch = errors.New("league: duplicate match id")

	// ErrUnknownTeam indicates a team id that was not given at construction time.
	ErrUnknownTeam = errors.New("league: unknown team")

	// ErrUnknownFlag indicates a flag name that is not part of the sorting configuration.
	ErrUnknownFlag = errors.New("league: unknown flag")

	// ErrMatchdayIntegrity indicates a team playing twice on one matchday while shootouts are enabled.
	ErrMatchdayIntegrity = errors.New("league: team plays more than once on a matchday")

	// ErrMaxDepth indicates the tiebreak recursion exceeded its depth guard.
	ErrMaxDepth = errors.New("league: maximum tiebreak depth exceeded")
)

// ConfigError reports an invalid construction option.
type ConfigError struct {
	Field  string      `json:"field"`
	Value  interface{} `json:"value,omitempty"`
	Reason string      `json:"reason"`
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("league: invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("league: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func configError(field string, value interface{}, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}
