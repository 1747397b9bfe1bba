// Package showdown resolves pot winners at street=showdown or along the
// single-survivor path. Odd chips in a split pot go to the tied winner(s)
// closest to the button, by clockwise seat distance from the dealer.
package showdown

import (
	"sort"

	"github.com/lox/riversolver/internal/apperr"
	"github.com/lox/riversolver/internal/cards"
	"github.com/lox/riversolver/internal/evaluator"
	"github.com/lox/riversolver/internal/state"
)

// Resolve awards every pot in g to its winners and returns the resulting
// state: stacks increased, pots cleared, Winners populated. g is not
// mutated.
func Resolve(g state.GameState) (state.GameState, error) {
	out := g.Clone()

	if out.InHandCount() <= 1 {
		return resolveSingleSurvivor(out)
	}

	if len(out.CommunityCards) != 5 {
		return state.GameState{}, apperr.New(apperr.BoardIncomplete, "communityCards", "showdown requires a complete 5-card board")
	}

	awards := make(map[string]int)
	var winners []state.Winner

	for _, pot := range out.Pots {
		eligible := eligiblePlayers(out, pot.EligiblePlayers)
		if len(eligible) == 0 {
			continue
		}
		if len(eligible) == 1 {
			awards[eligible[0].ID] += pot.Amount
			winners = append(winners, state.Winner{PlayerID: eligible[0].ID, Amount: pot.Amount, HandRank: "Winner"})
			continue
		}

		best, bestHolders := bestHands(out, eligible)
		shares := splitClockwiseFromDealer(pot.Amount, bestHolders, out.DealerSeat, out.TableConfig.MaxSeats)
		for i, p := range bestHolders {
			awards[p.ID] += shares[i]
			winners = append(winners, state.Winner{PlayerID: p.ID, Amount: shares[i], HandRank: best.Category.String()})
		}
	}

	for i := range out.Players {
		if amt, ok := awards[out.Players[i].ID]; ok {
			out.Players[i].Stack += amt
		}
	}
	out.Pots = nil
	out.Winners = winners
	return out, nil
}

func resolveSingleSurvivor(out state.GameState) (state.GameState, error) {
	var survivorIdx = -1
	for i, p := range out.Players {
		if p.Status != state.Folded {
			survivorIdx = i
			break
		}
	}
	if survivorIdx < 0 {
		return state.GameState{}, apperr.New(apperr.GameNotOver, "players", "no non-folded player remains")
	}

	total := out.Players[survivorIdx].Bet
	out.Players[survivorIdx].Bet = 0
	for _, pot := range out.Pots {
		total += pot.Amount
	}
	out.Players[survivorIdx].Stack += total
	out.Pots = nil
	out.Winners = []state.Winner{{PlayerID: out.Players[survivorIdx].ID, Amount: total, HandRank: "Winner"}}
	return out, nil
}

func eligiblePlayers(g state.GameState, ids []string) []state.Player {
	var out []state.Player
	for _, id := range ids {
		idx := g.PlayerByID(id)
		if idx < 0 || g.Players[idx].Status == state.Folded {
			continue
		}
		out = append(out, g.Players[idx])
	}
	return out
}

func bestHands(g state.GameState, eligible []state.Player) (evaluator.Result, []state.Player) {
	var best evaluator.Result
	var holders []state.Player
	for _, p := range eligible {
		combined := make([]cards.Card, 0, 7)
		combined = append(combined, p.HoleCards...)
		combined = append(combined, g.CommunityCards...)
		result, err := evaluator.Evaluate(combined)
		if err != nil {
			continue
		}
		if len(holders) == 0 {
			best, holders = result, []state.Player{p}
			continue
		}
		cmp := evaluator.Compare(result.Score, best.Score)
		switch {
		case cmp > 0:
			best, holders = result, []state.Player{p}
		case cmp == 0:
			holders = append(holders, p)
		}
	}
	return best, holders
}

// splitClockwiseFromDealer divides amount among winners, giving the first
// (amount mod len(winners)) winners — ordered by clockwise seat distance
// from the dealer, ascending — one extra chip each.
func splitClockwiseFromDealer(amount int, winners []state.Player, dealerSeat, maxSeats int) []int {
	order := append([]state.Player(nil), winners...)
	sort.SliceStable(order, func(i, j int) bool {
		return clockwiseDistance(dealerSeat, order[i].Seat, maxSeats) < clockwiseDistance(dealerSeat, order[j].Seat, maxSeats)
	})

	base := amount / len(order)
	remainder := amount % len(order)

	byID := make(map[string]int, len(order))
	for i, p := range order {
		share := base
		if i < remainder {
			share++
		}
		byID[p.ID] = share
	}

	shares := make([]int, len(winners))
	for i, p := range winners {
		shares[i] = byID[p.ID]
	}
	return shares
}

func clockwiseDistance(from, to, maxSeats int) int {
	return ((to - from) % maxSeats + maxSeats) % maxSeats
}
