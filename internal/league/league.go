package league

import (
	"errors"
	"fmt"
	"strings"
)

// League identifies one of the supported football competitions. Each league
// owns its own teams and events tables.
type League string

const (
	England League = "england"
	France  League = "france"
	Spain   League = "spain"
	Germany League = "germany"
	Italy   League = "italy"
)

// ErrUnknownLeague is returned when an identifier is not one of the supported leagues.
var ErrUnknownLeague = errors.New("unknown league")

var all = []League{England, France, Spain, Germany, Italy}

// All returns the supported leagues in display order.
func All() []League {
	out := make([]League, len(all))
	copy(out, all)
	return out
}

// Parse resolves a league identifier, ignoring case and surrounding whitespace.
func Parse(s string) (League, error) {
	candidate := League(strings.ToLower(strings.TrimSpace(s)))
	for _, l := range all {
		if l == candidate {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLeague, s)
}

func (l League) Valid() bool {
	for _, known := range all {
		if l == known {
			return true
		}
	}
	return false
}

func (l League) String() string {
	return string(l)
}

// TeamsTable is the name of the league's teams table.
func (l League) TeamsTable() string {
	return string(l) + "_teams"
}

// EventsTable is the name of the league's events table.
func (l League) EventsTable() string {
	return string(l) + "_events"
}
