package solver

import (
	"github.com/lox/riversolver/internal/cards"
	"github.com/lox/riversolver/internal/evaluator"
)

// ConvergenceThresholdPct is the documented default "converged" cutoff:
// totalExploitabilityPct <= 0.5%.
const ConvergenceThresholdPct = 0.5

// WeightedHand is one concrete hole-card combo in a player's range, with
// its (unnormalized) weight, for best-response EV computation.
type WeightedHand struct {
	Hole   []cards.Card
	Weight float64
}

// ExploitabilityResult reports each player's best-response EV against the
// opponent's trained average strategy and the resulting exploitability.
type ExploitabilityResult struct {
	EV0                    float64
	EV1                    float64
	TotalExploitabilityPct float64
	Converged              bool
}

// Exploitability computes per-player exploitability of the trained average
// strategy stored in store, against the given ranges and board.
// initialPot is the pot at the root of tree (used to scale the
// percentage); threshold overrides ConvergenceThresholdPct when > 0.
func Exploitability(tree *Tree, store *InfosetStore, hands0, hands1 []WeightedHand, board []cards.Card, initialPot int, threshold float64) ExploitabilityResult {
	if threshold <= 0 {
		threshold = ConvergenceThresholdPct
	}

	br := &bestResponder{tree: tree, store: store, board: board}

	ev0 := br.exploit(0, hands0, hands1)
	ev1 := br.exploit(1, hands1, hands0)

	totalPct := 0.0
	if initialPot > 0 {
		totalPct = 100 * (ev0 + ev1) / (2 * float64(initialPot))
	}

	return ExploitabilityResult{
		EV0:                    ev0,
		EV1:                    ev1,
		TotalExploitabilityPct: totalPct,
		Converged:              totalPct <= threshold,
	}
}

type bestResponder struct {
	tree  *Tree
	store *InfosetStore
	board []cards.Card
}

// exploit computes brPlayer's best-response EV (summed over its own
// weighted hands) against opponentHands playing their trained average
// strategy, with card-removal correction: an opponent combo sharing a card
// with the board or with our specific hand is excluded from that hand's
// reach-weight sum.
func (br *bestResponder) exploit(brPlayer int, ourHands, opponentHands []WeightedHand) float64 {
	total := 0.0
	for _, h := range ourHands {
		reach := make([]float64, len(opponentHands))
		for i, o := range opponentHands {
			if collides(h.Hole, o.Hole) || collides(h.Hole, br.board) || collides(o.Hole, br.board) {
				reach[i] = 0
				continue
			}
			reach[i] = o.Weight
		}
		ev := br.bestResponseEV(br.tree.Root, brPlayer, h.Hole, opponentHands, reach)
		total += h.Weight * ev
	}
	return total
}

// bestResponseEV returns, from brPlayer's perspective, the best-response
// EV at nodeIdx for our fixed hand against the opponent's weighted,
// card-removal-filtered combos.
func (br *bestResponder) bestResponseEV(nodeIdx, brPlayer int, ourHole []cards.Card, opponentHands []WeightedHand, reach []float64) float64 {
	node := br.tree.Nodes[nodeIdx]

	switch node.Kind {
	case NodeFold:
		payoff := float64(node.Payoff)
		if brPlayer == 1 {
			payoff = -payoff
		}
		return payoff * sumReach(reach)
	case NodeShowdown:
		return br.showdownEV(node.ShowdownPot, ourHole, opponentHands, reach)
	}

	if node.Player == brPlayer {
		best := 0.0
		first := true
		for _, child := range node.Children {
			v := br.bestResponseEV(child, brPlayer, ourHole, opponentHands, reach)
			if first || v > best {
				best, first = v, false
			}
		}
		return best
	}

	total := 0.0
	for i, child := range node.Children {
		childReach := make([]float64, len(opponentHands))
		for h, w := range reach {
			if w == 0 {
				continue
			}
			strategy := br.opponentStrategy(nodeIdx, opponentHands[h].Hole, len(node.Actions))
			childReach[h] = w * strategy[i]
		}
		total += br.bestResponseEV(child, brPlayer, ourHole, opponentHands, childReach)
	}
	return total
}

// showdownEV sums, per opponent combo still reaching this terminal, the
// half-pot payoff from brPlayer's perspective weighted by that combo's
// remaining reach.
func (br *bestResponder) showdownEV(pot int, ourHole []cards.Card, opponentHands []WeightedHand, reach []float64) float64 {
	ourResult, err := evaluator.Evaluate(append(append([]cards.Card(nil), ourHole...), br.board...))
	if err != nil {
		return 0
	}
	half := float64(pot) / 2

	total := 0.0
	for i, w := range reach {
		if w == 0 {
			continue
		}
		oppResult, err := evaluator.Evaluate(append(append([]cards.Card(nil), opponentHands[i].Hole...), br.board...))
		if err != nil {
			continue
		}
		var payoff float64
		switch evaluator.Compare(ourResult.Score, oppResult.Score) {
		case 1:
			payoff = half
		case -1:
			payoff = -half
		}
		total += w * payoff
	}
	return total
}

// opponentStrategy fetches the opponent's trained average strategy at
// nodeIdx for a given hole-card combo, used to propagate reach probability
// through opponent-owned nodes during best response.
func (br *bestResponder) opponentStrategy(nodeIdx int, hole []cards.Card, numActions int) []float64 {
	key := infosetKey(nodeIdx, hole, br.board)
	e, err := br.store.Get(key, numActions)
	if err != nil {
		uniform := make([]float64, numActions)
		for i := range uniform {
			uniform[i] = 1.0 / float64(numActions)
		}
		return uniform
	}
	return e.AverageStrategy()
}

func sumReach(reach []float64) float64 {
	total := 0.0
	for _, w := range reach {
		total += w
	}
	return total
}

func collides(a, b []cards.Card) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
