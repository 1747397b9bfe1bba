package solver

import "testing"

func TestExploitabilityZeroSumAndConvergedWhenNoDecisions(t *testing.T) {
	t.Parallel()
	// Both players are already all-in (stacks=0): the tree is a forced
	// check-check-showdown with no real decisions, so the best response
	// against the (trivial) average strategy is exactly the showdown
	// value, and EV0+EV1 must cancel out.
	tree := BuildRiverTree(100, 0, 0, TreeConfig{})
	store := NewInfosetStore()
	board := mustSolverCards(t, "2h 7c 9s Jc 4d")

	hands0 := []WeightedHand{{Hole: mustSolverCards(t, "As Ac"), Weight: 1}}
	hands1 := []WeightedHand{{Hole: mustSolverCards(t, "Kd Kc"), Weight: 1}}

	result := Exploitability(tree, store, hands0, hands1, board, 100, 0)

	if result.EV0 != 50 {
		t.Fatalf("expected EV0=+50 (pocket aces beat pocket kings), got %v", result.EV0)
	}
	if result.EV1 != -50 {
		t.Fatalf("expected EV1=-50, got %v", result.EV1)
	}
	if result.TotalExploitabilityPct != 0 {
		t.Fatalf("expected a zero-sum result with no decisions to be 0%% exploitable, got %v", result.TotalExploitabilityPct)
	}
	if !result.Converged {
		t.Fatalf("expected convergence at 0%% exploitability")
	}
}

func TestExploitabilityCardRemovalExcludesCollidingCombos(t *testing.T) {
	t.Parallel()
	tree := BuildRiverTree(100, 0, 0, TreeConfig{})
	store := NewInfosetStore()
	board := mustSolverCards(t, "2h 7c 9s Jc 4d")

	// The opponent's only combo shares the As with our hand: it must be
	// excluded from the reach-weight sum, leaving EV0 at 0 (no valid
	// opponent combos to contest the pot against).
	hands0 := []WeightedHand{{Hole: mustSolverCards(t, "As Ac"), Weight: 1}}
	hands1 := []WeightedHand{{Hole: mustSolverCards(t, "As Kc"), Weight: 1}}

	result := Exploitability(tree, store, hands0, hands1, board, 100, 0)
	if result.EV0 != 0 {
		t.Fatalf("expected EV0=0 once the colliding combo is removed, got %v", result.EV0)
	}
}
