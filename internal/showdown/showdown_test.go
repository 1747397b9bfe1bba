package showdown

import (
	"testing"

	"github.com/lox/riversolver/internal/cards"
	"github.com/lox/riversolver/internal/state"
)

func mustCards(t *testing.T, s string) []cards.Card {
	t.Helper()
	cs, err := cards.ParseMany(s)
	if err != nil {
		t.Fatal(err)
	}
	return cs
}

// Split pot, 2-way tie among three eligible players. Pot 100, two tied
// winners at seats 1 and 2 and a weaker hand at seat 3, dealer at seat 0:
// the tied players split 50/50 with no odd chip and seat 3 wins nothing.
func TestResolveTwoWayTieSplitsEvenly(t *testing.T) {
	t.Parallel()
	board := mustCards(t, "2h 7c 9s Jc Kd")
	g := state.GameState{
		TableConfig: state.TableConfig{MaxSeats: 4},
		DealerSeat:  0,
		Street:      state.Showdown,
		Players: []state.Player{
			{ID: "dealer", Seat: 0, Status: state.Folded},
			{ID: "p1", Seat: 1, Status: state.Active, HoleCards: mustCards(t, "As Ac")},
			{ID: "p2", Seat: 2, Status: state.Active, HoleCards: mustCards(t, "Ad Ah")},
			{ID: "p3", Seat: 3, Status: state.Active, HoleCards: mustCards(t, "4s 4c")},
		},
		CommunityCards: board,
		Pots:           []state.Pot{{Amount: 100, EligiblePlayers: []string{"p1", "p2", "p3"}}},
	}
	// p1 and p2 both hold pocket aces (tie); p3 holds a weaker pair.
	out, err := Resolve(g)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, w := range out.Winners {
		total += w.Amount
	}
	if total != 100 {
		t.Fatalf("expected awarded total 100, got %d", total)
	}
	p1Stack := out.Players[out.PlayerByID("p1")].Stack
	p2Stack := out.Players[out.PlayerByID("p2")].Stack
	if p1Stack+p2Stack != 100 {
		t.Fatalf("expected the two tied aces to split the pot, got p1=%d p2=%d", p1Stack, p2Stack)
	}
	if p1Stack != 50 || p2Stack != 50 {
		t.Fatalf("expected an even 50/50 split with no odd chip here, got p1=%d p2=%d", p1Stack, p2Stack)
	}
	if out.Players[out.PlayerByID("p3")].Stack != 0 {
		t.Fatalf("expected p3 to win nothing")
	}
}

func TestResolveOddChipGoesToClosestClockwiseFromDealer(t *testing.T) {
	t.Parallel()
	// The board itself is a straight (Tc 9h 8d 7s 6c); none of the hole cards
	// pair or extend it, so all three eligible players tie on the board
	// ("the board plays"), forcing an exact 3-way split.
	g := state.GameState{
		TableConfig: state.TableConfig{MaxSeats: 4},
		DealerSeat:  0,
		Street:      state.Showdown,
		Players: []state.Player{
			{ID: "dealer", Seat: 0, Status: state.Folded},
			{ID: "p1", Seat: 1, Status: state.Active, HoleCards: mustCards(t, "2s 2h")},
			{ID: "p2", Seat: 2, Status: state.Active, HoleCards: mustCards(t, "3s 3h")},
			{ID: "p3", Seat: 3, Status: state.Active, HoleCards: mustCards(t, "4s 4h")},
		},
		CommunityCards: mustCards(t, "Tc 9h 8d 7s 6c"),
		Pots:           []state.Pot{{Amount: 100, EligiblePlayers: []string{"p1", "p2", "p3"}}},
	}
	out, err := Resolve(g)
	if err != nil {
		t.Fatal(err)
	}
	p1 := out.Players[out.PlayerByID("p1")].Stack
	p2 := out.Players[out.PlayerByID("p2")].Stack
	p3 := out.Players[out.PlayerByID("p3")].Stack
	// All three tie on the board's ten-high straight;
	// 100/3 = 33 remainder 1, extra chip to seat 1 (closest to dealer at 0).
	if p1 != 34 || p2 != 33 || p3 != 33 {
		t.Fatalf("expected 34/33/33 clockwise from dealer, got p1=%d p2=%d p3=%d", p1, p2, p3)
	}
}

func TestResolveSingleEligiblePlayerAwardsWholePot(t *testing.T) {
	t.Parallel()
	g := state.GameState{
		TableConfig: state.TableConfig{MaxSeats: 2},
		Street:      state.Showdown,
		Players: []state.Player{
			{ID: "p1", Seat: 0, Status: state.Active, HoleCards: mustCards(t, "As Ks")},
			{ID: "p2", Seat: 1, Status: state.Folded},
		},
		CommunityCards: mustCards(t, "2h 7c 9s Jc Kd"),
		Pots:           []state.Pot{{Amount: 40, EligiblePlayers: []string{"p1"}}},
	}
	out, err := Resolve(g)
	if err != nil {
		t.Fatal(err)
	}
	if out.Players[out.PlayerByID("p1")].Stack != 40 {
		t.Fatalf("expected sole eligible player to win the whole pot")
	}
}

func TestResolveSingleSurvivorAwardsAllPotsAndPendingBets(t *testing.T) {
	t.Parallel()
	g := state.GameState{
		TableConfig: state.TableConfig{MaxSeats: 2},
		Street:      state.River,
		Players: []state.Player{
			{ID: "p1", Seat: 0, Status: state.Active, Bet: 60},
			{ID: "p2", Seat: 1, Status: state.Folded},
		},
		Pots: []state.Pot{{Amount: 100, EligiblePlayers: []string{"p1", "p2"}}},
	}
	out, err := Resolve(g)
	if err != nil {
		t.Fatal(err)
	}
	if out.Players[out.PlayerByID("p1")].Stack != 160 {
		t.Fatalf("expected survivor to collect pot + pending bet, got %d", out.Players[out.PlayerByID("p1")].Stack)
	}
	if len(out.Pots) != 0 {
		t.Fatalf("expected pots to be cleared")
	}
}
