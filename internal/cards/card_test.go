package cards

import "testing"

func TestParseAndStringRoundTrip(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"2c", "Td", "Jh", "Qs", "Ks", "As"} {
		c, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", s, err)
		}
		if got := c.String(); got != s {
			t.Fatalf("round trip mismatch: Parse(%q).String() = %q", s, got)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"", "A", "Ax", "Zs", "AsK"} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("Parse(%q) expected error", s)
		}
	}
}

func TestCanonicalizationOrderIndependence(t *testing.T) {
	t.Parallel()
	ah, _ := Parse("Ah")
	ks, _ := Parse("Ks")
	a := CanonicalCards([]Card{ah, ks})
	b := CanonicalCards([]Card{ks, ah})
	if a != b {
		t.Fatalf("expected order independence: %q != %q", a, b)
	}
	if a != "AhKs" {
		t.Fatalf("expected rank-desc suit-asc canonical form, got %q", a)
	}
}

func TestRankMaskWheelAceLow(t *testing.T) {
	t.Parallel()
	ace, _ := Parse("Ac")
	two, _ := Parse("2c")
	h := NewHand(ace, two)
	mask := h.RankMask()
	if mask&(1<<13) == 0 {
		t.Fatalf("expected ace-low bit set for wheel detection")
	}
}
