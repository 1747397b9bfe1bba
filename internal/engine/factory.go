package engine

import (
	"github.com/lox/riversolver/internal/apperr"
	"github.com/lox/riversolver/internal/cards"
	"github.com/lox/riversolver/internal/prng"
	"github.com/lox/riversolver/internal/state"
)

// NewInitialState builds the GameState that begins a hand. scenario may
// be nil for a normal preflop deal.
func NewInitialState(config HandConfig, scenario *ScenarioConfig) (state.GameState, error) {
	if err := config.Validate(); err != nil {
		return state.GameState{}, err
	}

	players := make([]state.Player, 0, len(config.Players))
	for _, pc := range config.Players {
		status := state.Active
		if pc.Stack <= 0 {
			status = state.SittingOut
		}
		players = append(players, state.Player{
			ID:             pc.Name,
			Seat:           pc.Seat,
			Name:           pc.Name,
			Stack:          pc.Stack,
			StartHandStack: pc.Stack,
			Status:         status,
		})
	}
	if err := assignUniqueIDs(players); err != nil {
		return state.GameState{}, err
	}

	tc := state.TableConfig{
		MaxSeats:   config.MaxSeats,
		SmallBlind: config.SmallBlind,
		BigBlind:   config.BigBlind,
		Ante:       config.Ante,
	}

	rng := prng.New(config.Seed)
	deck := cards.NewDeck()

	if scenario != nil {
		return dealScenario(tc, players, config.DealerSeat, deck, rng, *scenario)
	}
	return dealPreflop(tc, players, config.DealerSeat, deck, rng)
}

// assignUniqueIDs fills any blank Player.ID/Name with a seat-derived name so
// downstream lookups by ID always succeed.
func assignUniqueIDs(players []state.Player) error {
	seen := make(map[string]bool)
	for i := range players {
		if players[i].ID == "" {
			players[i].ID = seatLabel(players[i].Seat)
			players[i].Name = players[i].ID
		}
		if seen[players[i].ID] {
			return apperr.New(apperr.InvalidConfig, "players[].name", "duplicate player id")
		}
		seen[players[i].ID] = true
	}
	return nil
}

func seatLabel(seat int) string {
	const letters = "ABCDEFGHIJ"
	if seat >= 0 && seat < len(letters) {
		return string(letters[seat])
	}
	return "seat"
}

// nextActiveAfter scans seats clockwise from seat+1 (mod maxSeats) and
// returns the first Active player found.
func nextActiveAfter(players []state.Player, seat, maxSeats int) (int, bool) {
	for i := 1; i <= maxSeats; i++ {
		s := (seat + i) % maxSeats
		if idx := findBySeat(players, s); idx >= 0 && players[idx].Status == state.Active {
			return s, true
		}
	}
	return 0, false
}

func findBySeat(players []state.Player, seat int) int {
	for i, p := range players {
		if p.Seat == seat {
			return i
		}
	}
	return -1
}

func circularGap(from, to, maxSeats int) int {
	return ((to - from) % maxSeats + maxSeats) % maxSeats
}

// dealPreflop implements the standard deal: blinds, antes, hole cards,
// and preflop betting-state initialization.
func dealPreflop(tc state.TableConfig, players []state.Player, dealerSeat int, deck cards.Deck, rng prng.State) (state.GameState, error) {
	activeCount := 0
	for _, p := range players {
		if p.Status == state.Active {
			activeCount++
		}
	}

	sbSeat, hasSB := nextActiveAfter(players, dealerSeat, tc.MaxSeats)
	if !hasSB {
		return state.GameState{}, apperr.New(apperr.InvalidConfig, "players", "no active seats found")
	}

	headsUp := activeCount == 2
	postSB := true
	var bbSeat int
	if headsUp {
		// Heads-up: the dealer posts the small blind.
		sbSeat = dealerSeat
		var ok bool
		bbSeat, ok = nextActiveAfter(players, dealerSeat, tc.MaxSeats)
		if !ok {
			return state.GameState{}, apperr.New(apperr.InvalidConfig, "players", "heads-up requires two active seats")
		}
	} else {
		if circularGap(dealerSeat, sbSeat, tc.MaxSeats) > 1 {
			// Dead SB: the seat that would post small blind instead posts
			// big blind directly, and no small blind is posted this hand.
			postSB = false
			bbSeat = sbSeat
		} else {
			var ok bool
			bbSeat, ok = nextActiveAfter(players, sbSeat, tc.MaxSeats)
			if !ok {
				return state.GameState{}, apperr.New(apperr.InvalidConfig, "players", "not enough active seats for blinds")
			}
		}
	}

	deck = deck.Remove(collectDeadCardsFromPlayers(players))

	var shuffled cards.Deck
	shuffled, rng = deck.Shuffle(rng)

	potTotal := 0
	out := make([]state.Player, len(players))
	copy(out, players)

	if tc.Ante > 0 {
		for i := range out {
			if out[i].Status != state.Active {
				continue
			}
			ante := min(tc.Ante, out[i].Stack)
			out[i].Stack -= ante
			potTotal += ante
			if out[i].Stack == 0 {
				out[i].Status = state.AllIn
			}
		}
	}

	if postSB {
		postBlind(out, sbSeat, tc.SmallBlind)
	}
	postBlind(out, bbSeat, tc.BigBlind)

	dealOrder := dealOrderFrom(out, sbSeat, tc.MaxSeats)
	var holeCards map[int][]cards.Card
	holeCards, shuffled = dealTwoEach(shuffled, dealOrder)
	for seat, hc := range holeCards {
		if idx := findBySeat(out, seat); idx >= 0 {
			out[idx].HoleCards = hc
		}
	}

	var actionSeat int
	if headsUp {
		actionSeat = sbSeat
	} else {
		var ok bool
		actionSeat, ok = nextActiveAfter(out, bbSeat, tc.MaxSeats)
		if !ok {
			actionSeat = bbSeat
		}
	}

	g := state.GameState{
		TableConfig:     tc,
		RNGState:        rng,
		Deck:            shuffled,
		Players:         out,
		Pots:            nil,
		CommunityCards:  nil,
		Street:          state.Preflop,
		DealerSeat:      dealerSeat,
		ActionSeat:      actionSeat,
		MinRaise:        tc.BigBlind,
		CurrentBet:      tc.BigBlind,
		LastAggressor:   state.NoSeat,
		LastRaiseIsFull: true,
	}
	if potTotal > 0 {
		g.Pots = []state.Pot{{Amount: potTotal, EligiblePlayers: activePlayerIDs(out)}}
	}
	return g, nil
}

// dealScenario implements the "god-mode" path: pre-assigned hole cards,
// a non-preflop start street, an initial pot, and dead cards.
func dealScenario(tc state.TableConfig, players []state.Player, dealerSeat int, deck cards.Deck, rng prng.State, sc ScenarioConfig) (state.GameState, error) {
	out := make([]state.Player, len(players))
	copy(out, players)

	for _, sp := range sc.Players {
		idx := findBySeat(out, sp.Seat)
		if idx < 0 {
			return state.GameState{}, apperr.New(apperr.InvalidConfig, "scenario.players[].seat", "unknown seat")
		}
		if sp.Stack > 0 {
			out[idx].Stack = sp.Stack
			out[idx].StartHandStack = sp.Stack
			out[idx].Status = state.Active
		}
		if len(sp.Cards) > 0 {
			out[idx].HoleCards = sp.Cards
		}
	}

	removed := append([]cards.Card(nil), sc.DeadCards...)
	removed = append(removed, sc.BoardCards...)
	for _, p := range out {
		removed = append(removed, p.HoleCards...)
	}
	if err := requireNoCollision(removed); err != nil {
		return state.GameState{}, err
	}
	deck = deck.Remove(removed)

	var shuffled cards.Deck
	shuffled, rng = deck.Shuffle(rng)

	for i := range out {
		if out[i].Status == state.Active && len(out[i].HoleCards) == 0 {
			var drawn cards.Deck
			var ok bool
			drawn, shuffled, ok = shuffled.Draw(2)
			if !ok {
				return state.GameState{}, apperr.New(apperr.InvalidConfig, "scenario", "deck exhausted dealing hole cards")
			}
			out[i].HoleCards = append([]cards.Card(nil), drawn...)
		}
	}

	if sc.StartStreet == state.Preflop {
		return state.GameState{}, apperr.New(apperr.InvalidConfig, "scenario.startStreet", "scenarios must start at flop, turn, or river")
	}
	wantLen, ok := boardLenForStreet(sc.StartStreet)
	if !ok || wantLen != len(sc.BoardCards) {
		return state.GameState{}, apperr.New(apperr.InvalidConfig, "scenario.boardCards", "length disagrees with startStreet")
	}

	actionSeat, ok := nextActiveAfter(out, dealerSeat, tc.MaxSeats)
	if !ok {
		return state.GameState{}, apperr.New(apperr.InvalidConfig, "players", "no active seats found")
	}

	g := state.GameState{
		TableConfig:     tc,
		RNGState:        rng,
		Deck:            shuffled,
		Players:         out,
		CommunityCards:  append([]cards.Card(nil), sc.BoardCards...),
		Street:          sc.StartStreet,
		DealerSeat:      dealerSeat,
		ActionSeat:      actionSeat,
		MinRaise:        tc.BigBlind,
		CurrentBet:      0,
		LastAggressor:   state.NoSeat,
		LastRaiseIsFull: true,
	}
	if sc.InitialPot > 0 {
		g.Pots = []state.Pot{{Amount: sc.InitialPot, EligiblePlayers: activePlayerIDs(out)}}
	}
	return g, nil
}

// PrepareNextHand rotates the button to the next active seat, reshuffles
// using the continued PRNG sequence (never reseeding), preserves surviving
// stacks, and deals a fresh preflop hand. Players whose stack reached zero
// are dropped to SittingOut.
func PrepareNextHand(previous state.GameState) (state.GameState, error) {
	survivors := make([]state.Player, 0, len(previous.Players))
	for _, p := range previous.Players {
		np := state.Player{
			ID:             p.ID,
			Seat:           p.Seat,
			Name:           p.Name,
			Stack:          p.Stack,
			StartHandStack: p.Stack,
			Status:         state.Active,
		}
		if p.Stack <= 0 {
			np.Status = state.SittingOut
		}
		survivors = append(survivors, np)
	}

	nextDealer, ok := nextActiveAfter(survivors, previous.DealerSeat, previous.TableConfig.MaxSeats)
	if !ok {
		return state.GameState{}, apperr.New(apperr.InvalidConfig, "players", "fewer than 2 active players remain")
	}

	deck := cards.NewDeck()
	return dealPreflop(previous.TableConfig, survivors, nextDealer, deck, previous.RNGState)
}

func postBlind(players []state.Player, seat, amount int) {
	idx := findBySeat(players, seat)
	if idx < 0 {
		return
	}
	posted := min(amount, players[idx].Stack)
	players[idx].Stack -= posted
	players[idx].Bet = posted
	players[idx].TotalBet = posted
	if players[idx].Stack == 0 {
		players[idx].Status = state.AllIn
	}
}

// dealOrderFrom returns active-player seats in clockwise deal order
// starting at `start`.
func dealOrderFrom(players []state.Player, start, maxSeats int) []int {
	var order []int
	seat := start
	for i := 0; i < maxSeats; i++ {
		if idx := findBySeat(players, seat); idx >= 0 && players[idx].Status != state.SittingOut {
			order = append(order, seat)
		}
		seat = (seat + 1) % maxSeats
	}
	return order
}

// dealTwoEach deals two rounds of one card to each seat in order,
// consistent with standard table deal mechanics.
func dealTwoEach(deck cards.Deck, order []int) (map[int][]cards.Card, cards.Deck) {
	out := make(map[int][]cards.Card, len(order))
	for round := 0; round < 2; round++ {
		for _, seat := range order {
			var drawn, remaining cards.Deck
			var ok bool
			drawn, remaining, ok = deck.Draw(1)
			if !ok {
				continue
			}
			deck = remaining
			out[seat] = append(out[seat], drawn...)
		}
	}
	return out, deck
}

func collectDeadCardsFromPlayers(players []state.Player) []cards.Card {
	var out []cards.Card
	for _, p := range players {
		out = append(out, p.HoleCards...)
	}
	return out
}

func requireNoCollision(cs []cards.Card) error {
	seen := make(map[cards.Card]bool, len(cs))
	for _, c := range cs {
		if seen[c] {
			return apperr.Newf(apperr.InvalidConfig, "scenario", "card %s appears more than once", c)
		}
		seen[c] = true
	}
	return nil
}

func activePlayerIDs(players []state.Player) []string {
	var out []string
	for _, p := range players {
		if p.Status != state.SittingOut {
			out = append(out, p.ID)
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
