package solver

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/lox/riversolver/internal/cards"
	"github.com/lox/riversolver/internal/evaluator"
)

// HandPairing is one sampled deal to traverse the tree with. When a whole
// range is trained rather than a single hand, the caller provides several
// {hole cards, weight} samples; weights scale initial reach probabilities.
type HandPairing struct {
	Hole0  []cards.Card
	Hole1  []cards.Card
	Board  []cards.Card
	Weight float64
}

// DiscountConfig holds the Discounted CFR parameters.
type DiscountConfig struct {
	Alpha float64
	Beta  float64
	Gamma float64
	Theta float64
}

// DefaultDiscountConfig returns the documented defaults: alpha=1.5,
// beta=0.5, gamma=2.0, theta=0.9.
func DefaultDiscountConfig() DiscountConfig {
	return DiscountConfig{Alpha: 1.5, Beta: 0.5, Gamma: 2.0, Theta: 0.9}
}

// Trainer runs CFR/DCFR iterations over a fixed river Tree, accumulating
// regret and strategy sums in an InfosetStore.
type Trainer struct {
	tree      *Tree
	store     *InfosetStore
	discount  DiscountConfig
	useDCFR   bool
	iteration int
}

// NewTrainer constructs a trainer over tree. When useDCFR is false, plain
// CFR regret/strategy accumulation is used (no discounting).
func NewTrainer(tree *Tree, discount DiscountConfig, useDCFR bool) *Trainer {
	return &Trainer{tree: tree, store: NewInfosetStore(), discount: discount, useDCFR: useDCFR}
}

// Store exposes the underlying infoset store (for blueprint extraction or
// exploitability computation against the trained average strategy).
func (t *Trainer) Store() *InfosetStore { return t.store }

// Iteration reports how many iterations have run so far.
func (t *Trainer) Iteration() int { return t.iteration }

// nodeUpdate is one infoset's pending regret/strategy update, recorded
// during a read-only traversal so it can be applied to the InfosetStore
// later, in a fixed deterministic order.
type nodeUpdate struct {
	entry         *entry
	strategy      []float64
	childUtil     []float64
	nodeUtil      float64
	sign          float64
	opponentReach float64
	ownReach      float64
}

// Step runs one CFR iteration: it traverses the tree once per pairing in
// pairings, for each player's perspective. The (read-only) tree walks for
// independent pairings run concurrently via errgroup, but every resulting
// regret/strategy update is applied to the InfosetStore afterward in
// pairing order (then player 0 before player 1) — so the final values are
// bit-equivalent to a fully sequential run, regardless of goroutine
// scheduling.
func (t *Trainer) Step(pairings []HandPairing) error {
	t.iteration++

	for _, p := range pairings {
		if len(p.Hole0) != 2 || len(p.Hole1) != 2 {
			return fmt.Errorf("solver: hand pairing requires exactly 2 hole cards per player")
		}
	}

	updates := make([][]nodeUpdate, len(pairings)*2)
	g, _ := errgroup.WithContext(context.Background())
	for i, p := range pairings {
		i, p := i, p
		for player := 0; player < 2; player++ {
			player := player
			g.Go(func() error {
				var out []nodeUpdate
				_, err := t.traverse(t.tree.Root, p, player, p.Weight, p.Weight, &out)
				if err != nil {
					return err
				}
				updates[i*2+player] = out
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, sampleUpdates := range updates {
		for _, u := range sampleUpdates {
			t.apply(u)
		}
	}
	return nil
}

// traverse is vanilla CFR traversal, utilities always from P0's
// perspective. It only reads infoset state (via entry.Strategy());
// updatePlayer's pending updates are appended to out in post-order so the
// caller can apply them once the whole (read-only) walk completes.
func (t *Trainer) traverse(nodeIdx int, pairing HandPairing, updatePlayer int, reach0, reach1 float64, out *[]nodeUpdate) (float64, error) {
	node := t.tree.Nodes[nodeIdx]

	switch node.Kind {
	case NodeFold:
		return float64(node.Payoff), nil
	case NodeShowdown:
		return evaluateShowdown(pairing.Hole0, pairing.Hole1, pairing.Board, node.ShowdownPot)
	}

	hole := pairing.Hole0
	if node.Player == 1 {
		hole = pairing.Hole1
	}
	key := infosetKey(nodeIdx, hole, pairing.Board)
	e, err := t.store.Get(key, len(node.Actions))
	if err != nil {
		return 0, err
	}
	strategy := e.Strategy()

	childUtil := make([]float64, len(node.Actions))
	nodeUtil := 0.0
	for i, child := range node.Children {
		r0, r1 := reach0, reach1
		if node.Player == 0 {
			r0 *= strategy[i]
		} else {
			r1 *= strategy[i]
		}
		u, err := t.traverse(child, pairing, updatePlayer, r0, r1, out)
		if err != nil {
			return 0, err
		}
		childUtil[i] = u
		nodeUtil += strategy[i] * u
	}

	if node.Player != updatePlayer {
		return nodeUtil, nil
	}

	ownReach, opponentReach := reach0, reach1
	sign := 1.0
	if node.Player == 1 {
		ownReach, opponentReach = reach1, reach0
		sign = -1.0
	}

	*out = append(*out, nodeUpdate{
		entry:         e,
		strategy:      strategy,
		childUtil:     childUtil,
		nodeUtil:      nodeUtil,
		sign:          sign,
		opponentReach: opponentReach,
		ownReach:      ownReach,
	})

	return nodeUtil, nil
}

// apply commits one pending regret/strategy update to the store, with
// Discounted CFR's per-iteration discounting layered on top when the
// trainer was built with useDCFR. Called only from Step's sequential
// apply phase, never concurrently.
func (t *Trainer) apply(u nodeUpdate) {
	iter := float64(t.iteration)

	var cAlpha, cGamma float64
	if t.useDCFR {
		tAlpha := math.Pow(iter, t.discount.Alpha)
		cAlpha = tAlpha / (1 + tAlpha)
		cGamma = math.Pow(iter/(iter+1), t.discount.Gamma)
	}

	regretView := u.entry.RegretView()
	for i := range regretView {
		delta := u.sign * (u.childUtil[i] - u.nodeUtil) * u.opponentReach
		updated := regretView[i] + delta
		if t.useDCFR {
			if updated > 0 {
				updated *= cAlpha
			} else {
				updated *= t.discount.Beta
			}
		}
		regretView[i] = updated
	}

	strategyView := u.entry.StrategyView()
	for i := range strategyView {
		contribution := u.strategy[i] * u.ownReach
		if t.useDCFR {
			strategyView[i] = strategyView[i]*t.discount.Theta + contribution*cGamma
		} else {
			strategyView[i] += contribution
		}
	}
}

// infosetKey identifies an infoset by tree position plus the canonical
// acting player's hole cards and the canonical board.
func infosetKey(nodeIdx int, hole, board []cards.Card) string {
	return fmt.Sprintf("%d|%s|%s", nodeIdx, cards.CanonicalCards(hole), cards.CanonicalCards(board))
}

// evaluateShowdown returns +pot/2 if P0 wins, -pot/2 if P1 wins, 0 on a
// tie.
func evaluateShowdown(hole0, hole1, board []cards.Card, pot int) (float64, error) {
	r0, err := evaluator.Evaluate(append(append([]cards.Card(nil), hole0...), board...))
	if err != nil {
		return 0, err
	}
	r1, err := evaluator.Evaluate(append(append([]cards.Card(nil), hole1...), board...))
	if err != nil {
		return 0, err
	}
	half := float64(pot) / 2
	switch evaluator.Compare(r0.Score, r1.Score) {
	case 1:
		return half, nil
	case -1:
		return -half, nil
	default:
		return 0, nil
	}
}
