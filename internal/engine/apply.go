package engine

import (
	"github.com/lox/riversolver/internal/apperr"
	"github.com/lox/riversolver/internal/cards"
	"github.com/lox/riversolver/internal/rules"
	"github.com/lox/riversolver/internal/showdown"
	"github.com/lox/riversolver/internal/state"
)

// Apply is the pure transition function: it validates the
// action against the seat to act and the legal-action set, applies its
// effects, and runs the post-action checks (single survivor, street
// completion with burn-and-deal, auto runout). It never mutates g.
func Apply(g state.GameState, action state.Action) (state.GameState, error) {
	idx := g.PlayerByID(action.PlayerID)
	if idx < 0 {
		return state.GameState{}, apperr.New(apperr.PlayerNotFound, "playerID", "no such player")
	}
	p := g.Players[idx]
	if p.Seat != g.ActionSeat {
		return state.GameState{}, apperr.New(apperr.WrongPlayer, "playerID", "it is not this player's turn")
	}
	if p.Status != state.Active {
		return state.GameState{}, apperr.New(apperr.PlayerNotActive, "playerID", "player cannot act")
	}

	legal := rules.LegalActions(g)
	la, ok := findLegal(legal, action.Type)
	if !ok {
		return state.GameState{}, apperr.Newf(apperr.IllegalActionType, "type", "%s is not a legal action", action.Type)
	}

	switch action.Type {
	case state.Fold, state.Check:
		if action.Amount != 0 {
			return state.GameState{}, apperr.New(apperr.InvalidAmount, "amount", "must be zero")
		}
	case state.Call:
		if action.Amount != la.MinAmount {
			return state.GameState{}, apperr.Newf(apperr.InvalidCallAmount, "amount", "must equal %d", la.MinAmount)
		}
	case state.Bet, state.Raise:
		if action.Amount < la.MinAmount || action.Amount > la.MaxAmount {
			return state.GameState{}, apperr.Newf(apperr.InvalidRaiseAmount, "amount", "must be in [%d, %d]", la.MinAmount, la.MaxAmount)
		}
	default:
		return state.GameState{}, apperr.Newf(apperr.IllegalActionType, "type", "unsupported action type %s", action.Type)
	}

	out := g.Clone()
	previousCurrentBet := out.CurrentBet
	seat := out.Players[idx].Seat

	switch action.Type {
	case state.Fold:
		out.Players[idx].Status = state.Folded
	case state.Check:
		// no stack/bet effect
	case state.Call:
		addToBet(&out.Players[idx], action.Amount)
	case state.Bet, state.Raise:
		addToBet(&out.Players[idx], action.Amount)
		out.CurrentBet = out.Players[idx].Bet
		out.LastAggressor = seat
		increment := out.CurrentBet - previousCurrentBet
		if increment >= out.MinRaise {
			out.MinRaise = increment
			out.LastRaiseIsFull = true
		} else {
			out.LastRaiseIsFull = false
		}
		for i := range out.Players {
			if out.Players[i].Seat != seat && out.Players[i].Status == state.Active {
				out.Players[i].HasActed = false
			}
		}
	}

	out.Players[idx].HasActed = true
	out.Players[idx].ActedOnStreet = true

	if out.InHandCount() <= 1 {
		out = collectBets(out)
		out.Street = state.Showdown
		return showdown.Resolve(out)
	}

	if !rules.IsStreetComplete(out) {
		nextSeat, ok := nextActiveAfter(out.Players, out.ActionSeat, out.TableConfig.MaxSeats)
		if ok {
			out.ActionSeat = nextSeat
		}
		return out, nil
	}

	for {
		out = advanceStreet(out)
		if out.Street == state.Showdown {
			return showdown.Resolve(out)
		}
		if countActive(out.Players) > 1 {
			return out, nil
		}
		// Auto runout: every remaining in-hand player is all-in (or only
		// one can still act), so streets keep dealing without betting.
	}
}

func findLegal(actions []state.LegalAction, t state.ActionType) (state.LegalAction, bool) {
	for _, a := range actions {
		if a.Type == t {
			return a, true
		}
	}
	return state.LegalAction{}, false
}

func addToBet(p *state.Player, amount int) {
	p.Stack -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Stack == 0 {
		p.Status = state.AllIn
	}
}

func countActive(players []state.Player) int {
	n := 0
	for _, p := range players {
		if p.Status == state.Active {
			n++
		}
	}
	return n
}

// collectBets moves every player's current-street bet into pots via
// rules.ResolveSidePots. An uncalled top layer with a single eligible
// player is returned to that player rather than added to a pot. The
// pre-existing pot at index 0 keeps representing the main pot; the new
// main layer is added to it, and any further layers become new side pots.
func collectBets(g state.GameState) state.GameState {
	out := g
	layers := rules.ResolveSidePots(out.Players)

	if len(layers) > 0 {
		top := layers[len(layers)-1]
		if len(top.EligiblePlayers) == 1 {
			if idx := out.PlayerByID(top.EligiblePlayers[0]); idx >= 0 {
				out.Players[idx].Stack += top.Amount
			}
			layers = layers[:len(layers)-1]
		}
	}

	for i := range out.Players {
		out.Players[i].Bet = 0
	}

	switch {
	case len(layers) == 0:
		// nothing new collected
	case len(out.Pots) == 0:
		out.Pots = layers
	default:
		merged := make([]state.Pot, len(out.Pots))
		copy(merged, out.Pots)
		merged[0].Amount += layers[0].Amount
		merged = append(merged, layers[1:]...)
		out.Pots = merged
	}
	return out
}

// advanceStreet collects bets, resets per-street betting fields, and deals
// the next street's community cards (with the standard one-card burn).
func advanceStreet(g state.GameState) state.GameState {
	out := collectBets(g)

	out.CurrentBet = 0
	out.MinRaise = out.TableConfig.BigBlind
	out.LastAggressor = state.NoSeat
	out.LastRaiseIsFull = true
	for i := range out.Players {
		out.Players[i].HasActed = false
		out.Players[i].ActedOnStreet = false
	}

	switch out.Street {
	case state.Preflop:
		out.Street = state.Flop
		out.Deck = burn(out.Deck, 1)
		out.CommunityCards = dealBoard(&out.Deck, 3)
	case state.Flop:
		out.Street = state.Turn
		out.Deck = burn(out.Deck, 1)
		out.CommunityCards = append(out.CommunityCards, dealBoard(&out.Deck, 1)...)
	case state.Turn:
		out.Street = state.River
		out.Deck = burn(out.Deck, 1)
		out.CommunityCards = append(out.CommunityCards, dealBoard(&out.Deck, 1)...)
	case state.River:
		out.Street = state.Showdown
		return out
	}

	if seat, ok := nextActiveAfter(out.Players, out.DealerSeat, out.TableConfig.MaxSeats); ok {
		out.ActionSeat = seat
	}
	return out
}

func burn(d cards.Deck, n int) cards.Deck {
	_, remaining, ok := d.Draw(n)
	if !ok {
		return d
	}
	return remaining
}

func dealBoard(d *cards.Deck, n int) []cards.Card {
	drawn, remaining, ok := d.Draw(n)
	if !ok {
		return nil
	}
	*d = remaining
	return append([]cards.Card(nil), drawn...)
}
