// Package rules implements pure predicates and queries over GameState:
// legal actions with amount ranges, street-completion, side-pot
// resolution.
package rules

import (
	"sort"

	"github.com/lox/riversolver/internal/state"
)

// LegalActions returns the ordered set of legal actions for the player
// currently to act, with amounts expressed as chips-to-add (deltas).
func LegalActions(g state.GameState) []state.LegalAction {
	idx := g.PlayerBySeat(g.ActionSeat)
	if idx < 0 {
		return nil
	}
	p := g.Players[idx]
	var out []state.LegalAction

	toCall := g.CurrentBet - p.Bet

	if toCall > 0 {
		out = append(out, state.LegalAction{Type: state.Fold})
	}

	if toCall == 0 || bbOption(g, p) {
		out = append(out, state.LegalAction{Type: state.Check})
	}

	if toCall > 0 && p.Stack > 0 {
		callAmount := min(p.Stack, toCall)
		if callAmount > 0 {
			out = append(out, state.LegalAction{Type: state.Call, MinAmount: callAmount, MaxAmount: callAmount})
		}
	}

	if g.CurrentBet == 0 && p.Stack > 0 {
		minAmt := min(g.MinRaise, p.Stack)
		out = append(out, state.LegalAction{Type: state.Bet, MinAmount: minAmt, MaxAmount: p.Stack})
	}

	if g.CurrentBet > 0 && p.Stack > toCall {
		canReraise := g.LastRaiseIsFull || !p.ActedOnStreet
		if canReraise {
			minAmt := min((g.CurrentBet+g.MinRaise)-p.Bet, p.Stack)
			out = append(out, state.LegalAction{Type: state.Raise, MinAmount: minAmt, MaxAmount: p.Stack})
		}
	}

	return out
}

// bbOption reports whether the given player currently holds the
// preflop big-blind option: no raise has occurred and the BB has matched
// the current bet but has not yet acted this street.
func bbOption(g state.GameState, p state.Player) bool {
	if g.Street != state.Preflop {
		return false
	}
	if g.LastAggressor != state.NoSeat {
		return false
	}
	if p.Bet != g.CurrentBet {
		return false
	}
	return !p.ActedOnStreet
}

// IsStreetComplete reports whether betting on the current street is over.
func IsStreetComplete(g state.GameState) bool {
	if g.InHandCount() <= 1 {
		return true
	}

	activeCount := 0
	for _, p := range g.Players {
		if p.Status == state.Active {
			activeCount++
		}
	}
	if activeCount == 0 {
		return true
	}

	for _, p := range g.Players {
		if p.Status != state.Active {
			continue
		}
		if p.Bet != g.CurrentBet {
			return false
		}
		if !p.HasActed {
			return false
		}
	}
	return true
}

// ResolveSidePots computes pots from players' current-street bets: every
// distinct non-zero bet level becomes a layer; a layer's eligible players
// are the non-folded players whose bet reaches that level.
func ResolveSidePots(players []state.Player) []state.Pot {
	levelSet := make(map[int]bool)
	for _, p := range players {
		if p.Bet > 0 {
			levelSet[p.Bet] = true
		}
	}
	if len(levelSet) == 0 {
		return nil
	}
	levels := make([]int, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	var pots []state.Pot
	previous := 0
	for _, level := range levels {
		amount := 0
		var eligible []string
		for _, p := range players {
			contribution := p.Bet - previous
			if contribution > level-previous {
				contribution = level - previous
			}
			if contribution > 0 {
				amount += contribution
			}
			if p.Status != state.Folded && p.Bet >= level {
				eligible = append(eligible, p.ID)
			}
		}
		if amount > 0 {
			pots = append(pots, state.Pot{Amount: amount, EligiblePlayers: eligible})
		}
		previous = level
	}
	return pots
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
