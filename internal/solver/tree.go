package solver

import "fmt"

// NodeKind identifies the sum-type tag of a Node. The tree is stored as a
// single []Node arena; nodes reference children by index rather than
// pointer.
type NodeKind uint8

const (
	// NodeAction is a decision node belonging to Player (0=OOP, 1=IP).
	NodeAction NodeKind = iota
	// NodeFold is a terminal reached by folding; Payoff is precomputed
	// from P0's perspective.
	NodeFold
	// NodeShowdown is a terminal requiring a runtime hand comparison;
	// ShowdownPot is the final pot contested.
	NodeShowdown
)

// ActionLabel names one child of an action node, for display/debugging
// and for matching a chosen action back to its child index.
type ActionLabel struct {
	Name   string // "check", "bet", "call", "raise", "fold"
	Amount int    // chips committed by this action, 0 for check/fold
}

// Node is one vertex of the heads-up river game tree. Only the fields
// relevant to Kind are meaningful.
type Node struct {
	Kind   NodeKind
	Player int // 0 or 1; valid when Kind == NodeAction

	Actions  []ActionLabel
	Children []int // same length/order as Actions; valid when Kind == NodeAction

	Payoff int // valid when Kind == NodeFold: signed, from P0's perspective

	ShowdownPot int // valid when Kind == NodeShowdown
}

// TreeConfig parameterizes BuildRiverTree.
type TreeConfig struct {
	BetSizes  []float64 // fractions of pot, e.g. {0.33, 0.5, 1.0}
	MaxRaises int
}

// Tree is the arena: Nodes[Root] is the entry point, every other node is
// reachable by following Children indices.
type Tree struct {
	Nodes []Node
	Root  int
}

// BuildRiverTree builds the heads-up river decision tree.
// pot is the sum of all collected pots plus both players' current-street
// bets; stack0/stack1 are the chips each player has behind (OOP=0, IP=1).
func BuildRiverTree(pot, stack0, stack1 int, cfg TreeConfig) *Tree {
	t := &Tree{}
	t.Root = t.createNode(pot, stack0, stack1, 0, 0, cfg.MaxRaises, cfg)
	return t
}

func (t *Tree) addNode(n Node) int {
	t.Nodes = append(t.Nodes, n)
	return len(t.Nodes) - 1
}

// createNode is the recursive tree builder. stacks[0]/stacks[1]
// are each player's chips behind at this point in the tree; facingBet is
// the amount the player to act (toAct) must call to stay in.
func (t *Tree) createNode(pot, stack0, stack1, toAct, facingBet, raisesRemaining int, cfg TreeConfig) int {
	stacks := [2]int{stack0, stack1}

	if facingBet == 0 {
		return t.createOpenNode(pot, stacks, toAct, raisesRemaining, cfg)
	}
	return t.createFacingBetNode(pot, stacks, toAct, facingBet, raisesRemaining, cfg)
}

func (t *Tree) createOpenNode(pot int, stacks [2]int, toAct, raisesRemaining int, cfg TreeConfig) int {
	var labels []ActionLabel
	var children []int

	checkChild := t.checkChild(pot, stacks, toAct, raisesRemaining, cfg)
	labels = append(labels, ActionLabel{Name: "check"})
	children = append(children, checkChild)

	seen := map[int]bool{}
	effectiveStack := stacks[toAct]
	for _, f := range cfg.BetSizes {
		amt := minInt(int(float64(pot)*f), effectiveStack)
		if amt <= 0 || seen[amt] {
			continue
		}
		seen[amt] = true
		labels = append(labels, ActionLabel{Name: "bet", Amount: amt})
		children = append(children, t.betChild(pot, stacks, toAct, amt, raisesRemaining, cfg))
	}
	if !seen[effectiveStack] && effectiveStack > 0 {
		labels = append(labels, ActionLabel{Name: "bet", Amount: effectiveStack})
		children = append(children, t.betChild(pot, stacks, toAct, effectiveStack, raisesRemaining, cfg))
	}

	return t.addNode(Node{Kind: NodeAction, Player: toAct, Actions: labels, Children: children})
}

// checkChild implements: "If toAct=0, child is the other player's node
// with same pot; if toAct=1, child is showdown-terminal."
func (t *Tree) checkChild(pot int, stacks [2]int, toAct, raisesRemaining int, cfg TreeConfig) int {
	if toAct == 0 {
		return t.createNode(pot, stacks[0], stacks[1], 1, 0, raisesRemaining, cfg)
	}
	return t.addNode(Node{Kind: NodeShowdown, ShowdownPot: pot})
}

// betChild commits amt from the bettor's stack into the pot and hands the
// other player a facing-bet decision. A bet consumes one raisesRemaining
// slot, same as every subsequent raise.
func (t *Tree) betChild(pot int, stacks [2]int, bettor, amt, raisesRemaining int, cfg TreeConfig) int {
	newStacks := stacks
	newStacks[bettor] -= amt
	other := 1 - bettor
	return t.createNode(pot+amt, newStacks[0], newStacks[1], other, amt, raisesRemaining-1, cfg)
}

func (t *Tree) createFacingBetNode(pot int, stacks [2]int, toAct, facingBet, raisesRemaining int, cfg TreeConfig) int {
	var labels []ActionLabel
	var children []int

	// fold: terminal, payoff = the pot contested before the uncalled bet,
	// split in the CFR half-pot convention (+pot/2 to the winner at
	// showdown), awarded to whichever player is NOT toAct.
	foldPot := pot - facingBet
	foldPayoff := foldPot / 2
	if toAct == 0 {
		foldPayoff = -foldPayoff
	}
	labels = append(labels, ActionLabel{Name: "fold"})
	children = append(children, t.addNode(Node{Kind: NodeFold, Payoff: foldPayoff}))

	callAmt := minInt(facingBet, stacks[toAct])
	labels = append(labels, ActionLabel{Name: "call", Amount: callAmt})
	children = append(children, t.addNode(Node{Kind: NodeShowdown, ShowdownPot: pot + callAmt}))

	if raisesRemaining > 0 {
		seen := map[int]bool{}
		effectiveStack := stacks[toAct]
		for _, f := range cfg.BetSizes {
			raiseAmt := minInt(int(float64(pot+facingBet)*f)+facingBet, effectiveStack)
			if raiseAmt <= facingBet || seen[raiseAmt] {
				continue
			}
			seen[raiseAmt] = true
			labels = append(labels, ActionLabel{Name: "raise", Amount: raiseAmt})
			children = append(children, t.raiseChild(pot, stacks, toAct, facingBet, raiseAmt, raisesRemaining, cfg))
		}
		if !seen[effectiveStack] && effectiveStack > facingBet {
			labels = append(labels, ActionLabel{Name: "raise", Amount: effectiveStack})
			children = append(children, t.raiseChild(pot, stacks, toAct, facingBet, effectiveStack, raisesRemaining, cfg))
		}
	}

	return t.addNode(Node{Kind: NodeAction, Player: toAct, Actions: labels, Children: children})
}

// raiseChild commits raiseAmt from the raiser's stack, flips the actor,
// decrements raisesRemaining, and sets the new facingBet to
// raiseAmount-facingBet.
func (t *Tree) raiseChild(pot int, stacks [2]int, raiser, facingBet, raiseAmt, raisesRemaining int, cfg TreeConfig) int {
	newStacks := stacks
	newStacks[raiser] -= raiseAmt
	other := 1 - raiser
	return t.createNode(pot+raiseAmt, newStacks[0], newStacks[1], other, raiseAmt-facingBet, raisesRemaining-1, cfg)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// String renders an ActionLabel for debugging/logging.
func (a ActionLabel) String() string {
	if a.Amount == 0 {
		return a.Name
	}
	return fmt.Sprintf("%s:%d", a.Name, a.Amount)
}

// Token renders an ActionLabel as a space-separated "name amount" token,
// the form a history path element takes (e.g. "bet 75", "check").
func (a ActionLabel) Token() string {
	if a.Amount == 0 {
		return a.Name
	}
	return fmt.Sprintf("%s %d", a.Name, a.Amount)
}
