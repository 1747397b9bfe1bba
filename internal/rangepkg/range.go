// Package rangepkg implements the 169-class starting-hand range model:
// notation, combo counting, stats, presets, and merge/intersect.
package rangepkg

import (
	"fmt"
	"strings"
)

// ranksHighToLow lists the thirteen ranks from Ace down to Two, the order
// handNotation's row/col indices are defined over.
var ranksHighToLow = [13]byte{'A', 'K', 'Q', 'J', 'T', '9', '8', '7', '6', '5', '4', '3', '2'}

// Range maps a 169-class hand notation ("AA", "AKs", "AKo") to a weight in
// [0,1]. A class absent from the map has weight 0.
type Range map[string]float64

// New returns an empty range.
func New() Range {
	return make(Range)
}

// HandNotation returns the canonical class name for the (row, col) cell of
// the 13x13 grid, where row and col index ranksHighToLow (0=Ace..12=Two).
// The diagonal is a pocket pair; row<col is suited; row>col is offsuit with
// the higher rank written first.
func HandNotation(row, col int) (string, error) {
	if row < 0 || row > 12 || col < 0 || col > 12 {
		return "", fmt.Errorf("rangepkg: row/col must be in [0,12], got (%d,%d)", row, col)
	}
	r1, r2 := ranksHighToLow[row], ranksHighToLow[col]
	switch {
	case row == col:
		return string([]byte{r1, r1}), nil
	case row < col:
		return string([]byte{r1, r2, 's'}), nil
	default:
		return string([]byte{r2, r1, 'o'}), nil
	}
}

// CountCombos returns the number of concrete card combinations a class name
// represents: 6 for a pair, 4 for suited, 12 for offsuit.
func CountCombos(class string) (int, error) {
	switch len(class) {
	case 2:
		return 6, nil
	case 3:
		switch class[2] {
		case 's':
			return 4, nil
		case 'o':
			return 12, nil
		}
	}
	return 0, fmt.Errorf("rangepkg: invalid hand class %q", class)
}

// TotalRawCombos is the number of distinct two-card combinations in a deck.
const TotalRawCombos = 1326

// Stats summarizes a range's weighted combo coverage.
type Stats struct {
	WeightedCombos float64
	Percentage     float64
	HandCount      int
}

// CalculateStats sums weight*combos over every class in r.
func CalculateStats(r Range) (Stats, error) {
	var stats Stats
	for class, weight := range r {
		if weight <= 0 {
			continue
		}
		combos, err := CountCombos(class)
		if err != nil {
			return Stats{}, err
		}
		stats.WeightedCombos += weight * float64(combos)
		stats.HandCount++
	}
	stats.Percentage = 100 * stats.WeightedCombos / TotalRawCombos
	return stats, nil
}

// AllClasses returns the 169 canonical class names in row-major grid order.
func AllClasses() []string {
	out := make([]string, 0, 169)
	for row := 0; row < 13; row++ {
		for col := 0; col < 13; col++ {
			class, _ := HandNotation(row, col)
			out = append(out, class)
		}
	}
	return out
}

// canonicalStrengthOrder is a fixed, hand-strength-descending ordering of
// the 169 classes, used by GenerateTopPercent. It is a standard heads-up
// preflop strength ranking, not re-derived per call, so presets are stable
// across runs.
var canonicalStrengthOrder = []string{
	"AA", "KK", "QQ", "AKs", "JJ", "AQs", "KQs", "AJs", "KJs", "TT",
	"AKo", "ATs", "QJs", "KTs", "QTs", "JTs", "99", "AQo", "A9s", "KQo",
	"88", "K9s", "T9s", "A8s", "Q9s", "J9s", "AJo", "ATo", "A5s", "77", "A7s",
	"KJo", "A4s", "98s", "T8s", "QJo", "A6s", "K8s", "A3s", "66", "87s",
	"KTo", "Q8s", "A2s", "76s", "J8s", "QTo", "55", "K7s", "JTo", "97s",
	"65s", "K6s", "44", "T7s", "54s", "K5s", "Q7s", "86s", "33", "K4s",
	"22", "96s", "75s", "K3s", "J7s", "K2s", "64s", "T9o", "Q6s", "85s",
	"J9o", "43s", "T6s", "Q5s", "53s", "T8o", "95s", "74s", "Q4s", "98o",
	"J6s", "Q3s", "63s", "87o", "84s", "Q2s", "J5s", "97o", "T5s", "42s",
	"76o", "J4s", "52s", "T4s", "J3s", "65o", "93s", "J2s", "73s", "T3s",
	"54o", "82s", "83s", "92s", "T2s", "62s", "94s", "32s", "72s", "K9o", "Q9o", "J8o",
	"T7o", "86o", "75o", "A9o", "96o", "64o", "A8o", "85o", "A7o", "53o",
	"A6o", "74o", "A5o", "43o", "A4o", "63o", "A3o", "52o", "A2o", "42o",
	"K8o", "Q8o", "J7o", "T6o", "95o", "32o", "84o", "K7o", "Q7o", "J6o",
	"T5o", "73o", "94o", "K6o", "Q6o", "J5o", "83o", "T4o", "62o", "K5o",
	"Q5o", "93o", "J4o", "72o", "T3o", "K4o", "82o", "Q4o", "92o", "J3o",
	"K3o", "T2o", "Q3o", "J2o", "K2o", "Q2o",
}

// GenerateTopPercent greedily includes classes from the canonical strength
// order until combos reach p% of TotalRawCombos, assigning a fractional
// weight to the last, partially included class.
func GenerateTopPercent(p float64) (Range, error) {
	target := p / 100 * TotalRawCombos
	r := New()
	var collected float64
	for _, class := range canonicalStrengthOrder {
		if collected >= target {
			break
		}
		combos, err := CountCombos(class)
		if err != nil {
			return nil, err
		}
		remaining := target - collected
		if float64(combos) <= remaining {
			r[class] = 1.0
			collected += float64(combos)
			continue
		}
		weight := remaining / float64(combos)
		if weight > 0 {
			r[class] = weight
			collected += remaining
		}
		break
	}
	return r, nil
}

// Merge returns a new range with, per class, the maximum of a and b's
// weights.
func Merge(a, b Range) Range {
	out := New()
	for _, class := range AllClasses() {
		w := maxf(a[class], b[class])
		if w > 0 {
			out[class] = w
		}
	}
	return out
}

// Intersect returns a new range with, per class, the minimum of a and b's
// weights.
func Intersect(a, b Range) Range {
	out := New()
	for _, class := range AllClasses() {
		w := minf(a[class], b[class])
		if w > 0 {
			out[class] = w
		}
	}
	return out
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// ParseClass validates and normalizes a class token like "AKs" or "aks",
// returning the canonical uppercase-rank form.
func ParseClass(token string) (string, error) {
	token = strings.TrimSpace(token)
	if len(token) < 2 || len(token) > 3 {
		return "", fmt.Errorf("rangepkg: invalid class %q", token)
	}
	r1 := toUpperRank(token[0])
	r2 := toUpperRank(token[1])
	if r1 == 0 || r2 == 0 {
		return "", fmt.Errorf("rangepkg: invalid rank in %q", token)
	}
	if len(token) == 2 {
		if r1 != r2 {
			return "", fmt.Errorf("rangepkg: two-character class %q must be a pair", token)
		}
		return string([]byte{r1, r2}), nil
	}
	suitedness := token[2]
	if suitedness != 's' && suitedness != 'o' {
		return "", fmt.Errorf("rangepkg: invalid suited/offsuit modifier in %q", token)
	}
	if r1 == r2 {
		return "", fmt.Errorf("rangepkg: pair %q cannot carry a suited/offsuit modifier", token)
	}
	hi, lo := r1, r2
	if rankIndex(hi) > rankIndex(lo) {
		hi, lo = lo, hi
	}
	return string([]byte{hi, lo, suitedness}), nil
}

func toUpperRank(b byte) byte {
	switch b {
	case 'a', 'A':
		return 'A'
	case 'k', 'K':
		return 'K'
	case 'q', 'Q':
		return 'Q'
	case 'j', 'J':
		return 'J'
	case 't', 'T':
		return 'T'
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return b
	default:
		return 0
	}
}

func rankIndex(r byte) int {
	for i, x := range ranksHighToLow {
		if x == r {
			return i
		}
	}
	return -1
}
