package rangepkg

import (
	"fmt"
	"strings"

	"github.com/lox/riversolver/internal/cards"
)

// Combo is one concrete two-card combination drawn from a parsed range
// string, with a weight (always 1.0 for now: the text format has no
// per-combo weighting, only per-token presence).
type Combo struct {
	Hole   [2]cards.Card
	Weight float64
}

var allSuits = [4]cards.Suit{cards.Clubs, cards.Diamonds, cards.Hearts, cards.Spades}

// classRank maps one canonical (uppercase) rank character to its cards.Rank.
func classRank(b byte) (cards.Rank, error) {
	switch b {
	case 'A':
		return cards.Ace, nil
	case 'K':
		return cards.King, nil
	case 'Q':
		return cards.Queen, nil
	case 'J':
		return cards.Jack, nil
	case 'T':
		return cards.Ten, nil
	case '9':
		return cards.Nine, nil
	case '8':
		return cards.Eight, nil
	case '7':
		return cards.Seven, nil
	case '6':
		return cards.Six, nil
	case '5':
		return cards.Five, nil
	case '4':
		return cards.Four, nil
	case '3':
		return cards.Three, nil
	case '2':
		return cards.Two, nil
	default:
		return 0, fmt.Errorf("rangepkg: invalid rank %q", string(b))
	}
}

// ExpandClass returns every concrete two-card combination a class name
// represents: 6 for a pair (one per unordered pair of suits), 4 for
// suited (one per suit), 12 for offsuit (every cross-suit pair).
func ExpandClass(class string) ([][2]cards.Card, error) {
	class, err := ParseClass(class)
	if err != nil {
		return nil, err
	}
	r1, err := classRank(class[0])
	if err != nil {
		return nil, err
	}

	if len(class) == 2 {
		var out [][2]cards.Card
		for i := 0; i < len(allSuits); i++ {
			for j := i + 1; j < len(allSuits); j++ {
				out = append(out, [2]cards.Card{cards.New(r1, allSuits[i]), cards.New(r1, allSuits[j])})
			}
		}
		return out, nil
	}

	r2, err := classRank(class[1])
	if err != nil {
		return nil, err
	}
	suited := class[2] == 's'
	var out [][2]cards.Card
	for _, s1 := range allSuits {
		for _, s2 := range allSuits {
			if suited && s1 != s2 {
				continue
			}
			if !suited && s1 == s2 {
				continue
			}
			out = append(out, [2]cards.Card{cards.New(r1, s1), cards.New(r2, s2)})
		}
	}
	return out, nil
}

var rankLetters = map[cards.Rank]byte{
	cards.Ace: 'A', cards.King: 'K', cards.Queen: 'Q', cards.Jack: 'J', cards.Ten: 'T',
	cards.Nine: '9', cards.Eight: '8', cards.Seven: '7', cards.Six: '6', cards.Five: '5',
	cards.Four: '4', cards.Three: '3', cards.Two: '2',
}

var rankStrength = map[cards.Rank]int{
	cards.Two: 0, cards.Three: 1, cards.Four: 2, cards.Five: 3, cards.Six: 4, cards.Seven: 5,
	cards.Eight: 6, cards.Nine: 7, cards.Ten: 8, cards.Jack: 9, cards.Queen: 10, cards.King: 11, cards.Ace: 12,
}

// ClassOf returns the 169-class notation a concrete two-card combo belongs
// to, e.g. {As, Ah} -> "AA", {Kd, 2c} -> "K2o".
func ClassOf(hole [2]cards.Card) string {
	r1, r2 := hole[0].Rank(), hole[1].Rank()
	if r1 == r2 {
		return string([]byte{rankLetters[r1], rankLetters[r1]})
	}
	hi, lo := r1, r2
	if rankStrength[hi] < rankStrength[lo] {
		hi, lo = lo, hi
	}
	suitedness := byte('o')
	if hole[0].Suit() == hole[1].Suit() {
		suitedness = 's'
	}
	return string([]byte{rankLetters[hi], rankLetters[lo], suitedness})
}

// ParseRangeString parses a comma-separated list of class notations
// ("AA", "AKs", "AKo") or explicit two-card combos ("As Ah"). A token that
// collides with a card in blocked (board or hero hole cards) or that
// duplicates a combo already produced by an earlier token is silently
// skipped; an invalid token is an error.
func ParseRangeString(text string, blocked []cards.Card) ([]Combo, error) {
	blockedSet := make(map[cards.Card]bool, len(blocked))
	for _, c := range blocked {
		blockedSet[c] = true
	}

	seen := make(map[[2]cards.Card]bool)
	// add reports whether (a, b) is a new, unblocked combo, recording it
	// in seen either way so later duplicate tokens are skipped too.
	add := func(a, b cards.Card) bool {
		if a == b || blockedSet[a] || blockedSet[b] {
			return false
		}
		key := [2]cards.Card{a, b}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	}

	var out []Combo
	for _, raw := range strings.Split(text, ",") {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}

		if fields := strings.Fields(token); len(fields) == 2 {
			a, err := cards.Parse(fields[0])
			if err != nil {
				return nil, fmt.Errorf("rangepkg: invalid combo token %q: %w", token, err)
			}
			b, err := cards.Parse(fields[1])
			if err != nil {
				return nil, fmt.Errorf("rangepkg: invalid combo token %q: %w", token, err)
			}
			if add(a, b) {
				out = append(out, Combo{Hole: [2]cards.Card{a, b}, Weight: 1.0})
			}
			continue
		}

		class, err := ParseClass(token)
		if err != nil {
			return nil, fmt.Errorf("rangepkg: invalid token %q: %w", token, err)
		}
		combos, err := ExpandClass(class)
		if err != nil {
			return nil, err
		}
		for _, combo := range combos {
			if add(combo[0], combo[1]) {
				out = append(out, Combo{Hole: combo, Weight: 1.0})
			}
		}
	}
	return out, nil
}
