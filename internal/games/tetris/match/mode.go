// Package match runs one round of falling-block play for one or two
// sessions: a human and optionally a computer opponent.
//
// The Orchestrator advances every session once per tick, notices when a
// board finishes clearing rows, and turns those rows into level speed-ups
// and, in tug of war, into health moved between the two players.
package match

import "fmt"

// Role says who controls a session.
type Role int

const (
	RoleHuman Role = iota
	RoleComputer

	roleCount
)

// String returns the role name used in logs and storage.
func (r Role) String() string {
	switch r {
	case RoleHuman:
		return "human"
	case RoleComputer:
		return "cpu"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r >= RoleHuman && r < roleCount
}

// other returns the opposing role.
func (r Role) other() Role {
	if r == RoleHuman {
		return RoleComputer
	}
	return RoleHuman
}

// Mode selects the rule set for a round.
type Mode int

const (
	// ModeClassic ends a player's game when their board stacks out.
	ModeClassic Mode = iota
	// ModeInfinite restarts a stacked-out board immediately.
	ModeInfinite
	// ModeTugOfWar moves health between players as rows are cleared.
	ModeTugOfWar

	modeCount
)

// String returns the mode name used in logs and storage.
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeInfinite:
		return "infinite"
	case ModeTugOfWar:
		return "tug_of_war"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Title returns a display label.
func (m Mode) Title() string {
	switch m {
	case ModeClassic:
		return "Classic"
	case ModeInfinite:
		return "Infinite"
	case ModeTugOfWar:
		return "Tug of War"
	default:
		return m.String()
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= ModeClassic && m < modeCount
}
