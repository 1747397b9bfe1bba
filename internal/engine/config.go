// Package engine implements the pure state factory and transition function
// for a single hand of No-Limit Hold'em.
package engine

import (
	"github.com/lox/riversolver/internal/apperr"
	"github.com/lox/riversolver/internal/cards"
	"github.com/lox/riversolver/internal/state"
	"github.com/lox/riversolver/internal/validation"
)

// PlayerConfig describes one seat's starting configuration.
type PlayerConfig struct {
	Seat  int
	Stack int
	Name  string
}

// HandConfig is the external configuration used to build an initial state.
type HandConfig struct {
	MaxSeats   int
	SmallBlind int
	BigBlind   int
	Ante       int
	DealerSeat int
	Seed       int64
	Players    []PlayerConfig
}

// ScenarioPlayer optionally pre-assigns a seat's hole cards and/or stack.
type ScenarioPlayer struct {
	Seat  int
	Stack int
	Cards []cards.Card
}

// ScenarioConfig is a "god-mode" override: pre-assigned hole cards, a
// non-preflop start street, an initial pot, and dead cards removed from
// the deck before dealing.
type ScenarioConfig struct {
	StartStreet state.Street
	InitialPot  int
	BoardCards  []cards.Card
	DeadCards   []cards.Card
	Players     []ScenarioPlayer
}

// Validate checks HandConfig's invalid-configuration conditions that do
// not depend on a scenario.
func (c HandConfig) Validate() error {
	if err := validation.IntRange("maxSeats", c.MaxSeats, 2, 10); err != nil {
		return err
	}
	if _, err := validation.ChipAmount("smallBlind", float64(c.SmallBlind)); err != nil {
		return err
	}
	if _, err := validation.ChipAmount("bigBlind", float64(c.BigBlind)); err != nil {
		return err
	}
	if c.BigBlind < c.SmallBlind {
		return apperr.New(apperr.InvalidConfig, "bigBlind", "must be >= smallBlind")
	}
	if _, err := validation.ChipAmount("ante", float64(c.Ante)); err != nil {
		return err
	}
	if err := validation.IntRange("dealerSeat", c.DealerSeat, 0, c.MaxSeats-1); err != nil {
		return err
	}
	active := 0
	seen := make(map[int]bool)
	for _, p := range c.Players {
		if err := validation.IntRange("players[].seat", p.Seat, 0, c.MaxSeats-1); err != nil {
			return err
		}
		if seen[p.Seat] {
			return apperr.New(apperr.InvalidConfig, "players[].seat", "duplicate seat")
		}
		seen[p.Seat] = true
		if _, err := validation.ChipAmount("players[].stack", float64(p.Stack)); err != nil {
			return err
		}
		if p.Stack > 0 {
			active++
		}
	}
	if active < 2 {
		return apperr.New(apperr.InvalidConfig, "players", "fewer than 2 active players")
	}
	return nil
}

// boardLenForStreet returns the expected communityCards length for a
// scenario's start street (preflop=0 is not a valid scenario start).
func boardLenForStreet(s state.Street) (int, bool) {
	switch s {
	case state.Flop:
		return 3, true
	case state.Turn:
		return 4, true
	case state.River:
		return 5, true
	default:
		return 0, false
	}
}
