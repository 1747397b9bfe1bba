package solver

import "testing"

func TestBuildRiverTreeAllStacksZeroIsCheckCheckShowdown(t *testing.T) {
	t.Parallel()
	tree := BuildRiverTree(100, 0, 0, TreeConfig{})
	root := tree.Nodes[tree.Root]
	if root.Kind != NodeAction || root.Player != 0 {
		t.Fatalf("expected root to be P0's action node, got %+v", root)
	}
	if len(root.Actions) != 1 || root.Actions[0].Name != "check" {
		t.Fatalf("expected a single check action with no stack behind, got %+v", root.Actions)
	}
	p1Node := tree.Nodes[root.Children[0]]
	if p1Node.Kind != NodeAction || p1Node.Player != 1 {
		t.Fatalf("expected P1's action node next, got %+v", p1Node)
	}
	if len(p1Node.Actions) != 1 || p1Node.Actions[0].Name != "check" {
		t.Fatalf("expected P1's only option to be check, got %+v", p1Node.Actions)
	}
	showdown := tree.Nodes[p1Node.Children[0]]
	if showdown.Kind != NodeShowdown || showdown.ShowdownPot != 100 {
		t.Fatalf("expected check-check to reach showdown with pot=100, got %+v", showdown)
	}
}

func TestBuildRiverTreeOpenNodeOffersBetAndAllIn(t *testing.T) {
	t.Parallel()
	tree := BuildRiverTree(100, 200, 200, TreeConfig{BetSizes: []float64{0.5}, MaxRaises: 1})
	root := tree.Nodes[tree.Root]
	// check, bet:50 (0.5 pot), bet:200 (all-in, distinct from 50)
	if len(root.Actions) != 3 {
		t.Fatalf("expected check + pot-bet + all-in, got %+v", root.Actions)
	}
	if root.Actions[0].Name != "check" {
		t.Fatalf("expected check first, got %+v", root.Actions[0])
	}
	if root.Actions[1].Name != "bet" || root.Actions[1].Amount != 50 {
		t.Fatalf("expected a 50-chip bet, got %+v", root.Actions[1])
	}
	if root.Actions[2].Name != "bet" || root.Actions[2].Amount != 200 {
		t.Fatalf("expected an all-in bet for 200, got %+v", root.Actions[2])
	}
}

func TestBuildRiverTreeBetSizeDuplicatingAllInIsNotRepeated(t *testing.T) {
	t.Parallel()
	// pot=100, bet size 1.0 * pot == stack(100): the all-in fallback must
	// not duplicate it.
	tree := BuildRiverTree(100, 100, 100, TreeConfig{BetSizes: []float64{1.0}, MaxRaises: 1})
	root := tree.Nodes[tree.Root]
	if len(root.Actions) != 2 {
		t.Fatalf("expected check + single bet (no duplicate all-in), got %+v", root.Actions)
	}
	if root.Actions[1].Amount != 100 {
		t.Fatalf("expected the bet to be capped to the 100-chip stack, got %+v", root.Actions[1])
	}
}

func TestBuildRiverTreeFacingBetOffersFoldCallAndRaise(t *testing.T) {
	t.Parallel()
	// MaxRaises=2: the opening bet consumes one slot, leaving one behind
	// for the facing player to still raise with.
	tree := BuildRiverTree(100, 200, 200, TreeConfig{BetSizes: []float64{0.5}, MaxRaises: 2})
	root := tree.Nodes[tree.Root]
	betChild := tree.Nodes[root.Children[1]] // bet:50
	if betChild.Kind != NodeAction || betChild.Player != 1 {
		t.Fatalf("expected P1 facing the bet, got %+v", betChild)
	}
	names := map[string]bool{}
	for _, a := range betChild.Actions {
		names[a.Name] = true
	}
	if !names["fold"] || !names["call"] || !names["raise"] {
		t.Fatalf("expected fold/call/raise all present, got %+v", betChild.Actions)
	}
}

func TestBuildRiverTreeFoldPayoffSignFavorsBettor(t *testing.T) {
	t.Parallel()
	tree := BuildRiverTree(100, 200, 200, TreeConfig{BetSizes: []float64{0.5}, MaxRaises: 0})
	root := tree.Nodes[tree.Root]
	betChild := tree.Nodes[root.Children[1]] // P1 facing P0's 50-chip bet
	var foldNode Node
	for i, a := range betChild.Actions {
		if a.Name == "fold" {
			foldNode = tree.Nodes[betChild.Children[i]]
		}
	}
	if foldNode.Kind != NodeFold {
		t.Fatalf("expected a fold terminal")
	}
	// P1 folds to P0's bet: P0 wins the pre-bet pot (100), split in the
	// half-pot convention, so payoff is positive from P0's perspective.
	if foldNode.Payoff != 50 {
		t.Fatalf("expected fold payoff +50 favoring P0, got %d", foldNode.Payoff)
	}
}

func TestBuildRiverTreeZeroMaxRaisesOmitsRaiseAction(t *testing.T) {
	t.Parallel()
	tree := BuildRiverTree(100, 200, 200, TreeConfig{BetSizes: []float64{0.5}, MaxRaises: 0})
	root := tree.Nodes[tree.Root]
	betChild := tree.Nodes[root.Children[1]]
	for _, a := range betChild.Actions {
		if a.Name == "raise" {
			t.Fatalf("expected no raise option with maxRaises=0, got %+v", betChild.Actions)
		}
	}
}
