package cards

import "github.com/lox/riversolver/internal/prng"

// Deck is an ordered, immutable sequence of cards. All deck operations
// return a new Deck; none mutate the receiver, per the engine's purity
// requirement.
type Deck []Card

// NewDeck returns the full 52-card deck in fixed suit-major order: all
// clubs low-to-high, then diamonds, hearts, spades.
func NewDeck() Deck {
	d := make(Deck, 0, 52)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d = append(d, New(rank, suit))
		}
	}
	return d
}

// Remove returns a new Deck with every card in remove excised, preserving
// relative order of the remainder.
func (d Deck) Remove(remove []Card) Deck {
	if len(remove) == 0 {
		return d
	}
	excluded := NewHand(remove...)
	out := make(Deck, 0, len(d))
	for _, c := range d {
		if !excluded.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Shuffle performs a Fisher-Yates shuffle driven by the given PRNG state,
// scanning from the end and drawing the swap index with randInt(i+1), and
// returns the shuffled deck plus the successor PRNG state.
func (d Deck) Shuffle(rng prng.State) (Deck, prng.State) {
	out := make(Deck, len(d))
	copy(out, d)
	for i := len(out) - 1; i > 0; i-- {
		var j int
		j, rng = rng.Int(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out, rng
}

// Draw pops n cards from the front of the deck, returning the drawn cards
// and the remaining deck. Fails if n exceeds the deck size.
func (d Deck) Draw(n int) (drawn, remaining Deck, ok bool) {
	if n > len(d) {
		return nil, d, false
	}
	drawn = make(Deck, n)
	copy(drawn, d[:n])
	remaining = make(Deck, len(d)-n)
	copy(remaining, d[n:])
	return drawn, remaining, true
}

// Len returns the number of cards remaining in the deck.
func (d Deck) Len() int {
	return len(d)
}
