package solver

import "testing"

func sum(values []float64) float64 {
	s := 0.0
	for _, v := range values {
		s += v
	}
	return s
}

func TestRegretMatchUniformWhenAllNonPositive(t *testing.T) {
	t.Parallel()
	strategy := RegretMatch([]float64{-5, 0, -1})
	for _, p := range strategy {
		if p != 1.0/3 {
			t.Fatalf("expected uniform 1/3, got %v", strategy)
		}
	}
}

func TestRegretMatchProportionalToPositiveRegret(t *testing.T) {
	t.Parallel()
	strategy := RegretMatch([]float64{3, -1, 1})
	if strategy[1] != 0 {
		t.Fatalf("expected zero weight for negative regret, got %v", strategy)
	}
	if strategy[0] != 0.75 || strategy[2] != 0.25 {
		t.Fatalf("expected [0.75, 0, 0.25], got %v", strategy)
	}
}

func TestInfosetStoreGetCreatesAndReuses(t *testing.T) {
	t.Parallel()
	store := NewInfosetStore()
	e1, err := store.Get("k", 3)
	if err != nil {
		t.Fatal(err)
	}
	e1.RegretView()[0] = 42
	e2, err := store.Get("k", 3)
	if err != nil {
		t.Fatal(err)
	}
	if e2.RegretView()[0] != 42 {
		t.Fatalf("expected the same entry to be returned on a repeat Get")
	}
	if store.Size() != 1 {
		t.Fatalf("expected a single infoset, got %d", store.Size())
	}
}

func TestInfosetStoreGetMismatchedActionsErrors(t *testing.T) {
	t.Parallel()
	store := NewInfosetStore()
	if _, err := store.Get("k", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get("k", 3); err == nil {
		t.Fatalf("expected an error for mismatched numActions")
	}
}

func TestAverageStrategyUniformWhenCumStrategyZero(t *testing.T) {
	t.Parallel()
	store := NewInfosetStore()
	e, err := store.Get("k", 4)
	if err != nil {
		t.Fatal(err)
	}
	avg := e.AverageStrategy()
	if len(avg) != 4 {
		t.Fatalf("expected 4 actions, got %d", len(avg))
	}
	for _, p := range avg {
		if p != 0.25 {
			t.Fatalf("expected uniform 0.25, got %v", avg)
		}
	}
}

func TestAverageStrategyNormalizesCumulativeStrategy(t *testing.T) {
	t.Parallel()
	store := NewInfosetStore()
	e, err := store.Get("k", 2)
	if err != nil {
		t.Fatal(err)
	}
	e.StrategyView()[0] = 3
	e.StrategyView()[1] = 1
	avg := e.AverageStrategy()
	if avg[0] != 0.75 || avg[1] != 0.25 {
		t.Fatalf("expected [0.75, 0.25], got %v", avg)
	}
	if s := sum(avg); s < 0.999 || s > 1.001 {
		t.Fatalf("expected average strategy to sum to 1, got %v", s)
	}
}
