package solver

import "testing"

func toySubtreeForQuery() *Tree {
	return &Tree{
		Nodes: []Node{
			{Kind: NodeFold, Payoff: -50},
			{Kind: NodeFold, Payoff: -100},
			{Kind: NodeAction, Player: 0,
				Actions:  []ActionLabel{{Name: "fold"}, {Name: "call"}},
				Children: []int{0, 1},
			},
		},
		Root: 2,
	}
}

func TestGetStrategyAtRootReportsAvailableActionsAndStrategies(t *testing.T) {
	t.Parallel()
	board := mustSolverCards(t, "2h 7c 9s Jc 4d")
	pairing := HandPairing{Hole0: mustSolverCards(t, "As Ac"), Hole1: mustSolverCards(t, "Kd Kc"), Board: board, Weight: 1.0}

	trainer := NewTrainer(toySubtreeForQuery(), DefaultDiscountConfig(), false)
	for i := 0; i < 50; i++ {
		if err := trainer.Step([]HandPairing{pairing}); err != nil {
			t.Fatal(err)
		}
	}

	query, err := trainer.GetStrategy(board, []string{"AA"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if query.IsTerminal {
		t.Fatalf("expected the root decision node, got a terminal")
	}
	if len(query.AvailableActions) != 2 || query.AvailableActions[0] != "fold" || query.AvailableActions[1] != "call" {
		t.Fatalf("expected [fold call], got %v", query.AvailableActions)
	}
	strategy, ok := query.Strategies["AA"]
	if !ok {
		t.Fatalf("expected a strategy entry for AA, got %v", query.Strategies)
	}
	if s := strategy["fold"] + strategy["call"]; s < 0.999 || s > 1.001 {
		t.Fatalf("expected AA's strategy to sum to 1, got %v (%v)", s, strategy)
	}
	// The toy tree has no showdown: fold pays -50 and call -100 from P0's
	// perspective, so after training fold should dominate for AA, same as
	// the toy-subtree scenario test in cfr_test.go.
	if strategy["fold"] <= strategy["call"] {
		t.Fatalf("expected fold to dominate call after training, got %v", strategy)
	}
}

func TestGetStrategyFollowsHistoryToATerminal(t *testing.T) {
	t.Parallel()
	board := mustSolverCards(t, "2h 7c 9s Jc 4d")
	pairing := HandPairing{Hole0: mustSolverCards(t, "As Ac"), Hole1: mustSolverCards(t, "Kd Kc"), Board: board, Weight: 1.0}
	trainer := NewTrainer(toySubtreeForQuery(), DefaultDiscountConfig(), false)
	if err := trainer.Step([]HandPairing{pairing}); err != nil {
		t.Fatal(err)
	}

	query, err := trainer.GetStrategy(board, []string{"AA"}, []string{"call"})
	if err != nil {
		t.Fatal(err)
	}
	if !query.IsTerminal {
		t.Fatalf("expected the call branch to reach a terminal")
	}
	if len(query.CurrentHistory) != 1 || query.CurrentHistory[0] != "call" {
		t.Fatalf("expected currentHistory [call], got %v", query.CurrentHistory)
	}
	if len(query.Strategies) != 0 {
		t.Fatalf("expected no strategies at a terminal node, got %v", query.Strategies)
	}
}

func TestGetStrategyRejectsUnmatchedHistoryToken(t *testing.T) {
	t.Parallel()
	board := mustSolverCards(t, "2h 7c 9s Jc 4d")
	trainer := NewTrainer(toySubtreeForQuery(), DefaultDiscountConfig(), false)

	if _, err := trainer.GetStrategy(board, []string{"AA"}, []string{"raise 200"}); err == nil {
		t.Fatalf("expected an error for a history token matching no action")
	}
}
