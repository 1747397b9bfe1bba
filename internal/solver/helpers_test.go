package solver

import (
	"testing"

	"github.com/lox/riversolver/internal/cards"
)

func mustSolverCards(t *testing.T, s string) []cards.Card {
	t.Helper()
	cs, err := cards.ParseMany(s)
	if err != nil {
		t.Fatal(err)
	}
	return cs
}
