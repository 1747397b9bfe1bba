package solver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/riversolver/internal/cards"
	"github.com/lox/riversolver/internal/rangepkg"
)

// StrategyQuery is the response shape for a GetStrategy lookup: the
// trained average strategy at one tree node, aggregated per hand class.
type StrategyQuery struct {
	// Strategies maps each requested hand class to its average
	// probability of taking each available action.
	Strategies map[string]map[string]float64
	// AvailableActions lists the node's actions in Token() form.
	AvailableActions []string
	// NodeInfo is a short human-readable description of the node reached.
	NodeInfo string
	// IsTerminal reports whether history walked the path all the way to
	// a fold/showdown terminal (no actions available, Strategies empty).
	IsTerminal bool
	// CurrentHistory echoes the matched history tokens back to the
	// caller, so a client can display the path it actually took.
	CurrentHistory []string
}

// GetStrategy walks the tree from the root by matching each history token
// against the acting node's available actions, then reports the trained
// average strategy at the resulting node, aggregated over every combo in
// each requested hand class (combos colliding with board are excluded).
// A nil/empty history queries the root node directly.
func (t *Trainer) GetStrategy(board []cards.Card, handClasses []string, history []string) (StrategyQuery, error) {
	nodeIdx := t.tree.Root
	matched := make([]string, 0, len(history))

	for _, token := range history {
		node := t.tree.Nodes[nodeIdx]
		if node.Kind != NodeAction {
			return StrategyQuery{}, fmt.Errorf("solver: history token %q: tree already reached a terminal", token)
		}
		child, ok := matchAction(node, token)
		if !ok {
			return StrategyQuery{}, fmt.Errorf("solver: history token %q does not match any action at this node", token)
		}
		nodeIdx = child
		matched = append(matched, token)
	}

	node := t.tree.Nodes[nodeIdx]
	result := StrategyQuery{
		NodeInfo:       nodeInfo(nodeIdx, node),
		IsTerminal:     node.Kind != NodeAction,
		CurrentHistory: matched,
	}
	if result.IsTerminal {
		return result, nil
	}

	result.AvailableActions = make([]string, len(node.Actions))
	for i, a := range node.Actions {
		result.AvailableActions[i] = a.Token()
	}

	result.Strategies = make(map[string]map[string]float64, len(handClasses))
	for _, class := range handClasses {
		perAction, err := t.classAverageStrategy(nodeIdx, node, class, board)
		if err != nil {
			return StrategyQuery{}, err
		}
		result.Strategies[class] = perAction
	}
	return result, nil
}

// classAverageStrategy averages the trained average strategy over every
// combo ExpandClass produces for class, skipping combos that collide with
// the board. A class with no surviving combos reports an empty map.
func (t *Trainer) classAverageStrategy(nodeIdx int, node Node, class string, board []cards.Card) (map[string]float64, error) {
	combos, err := rangepkg.ExpandClass(class)
	if err != nil {
		return nil, err
	}

	sum := make([]float64, len(node.Actions))
	n := 0
	for _, combo := range combos {
		if collides(combo[:], board) {
			continue
		}
		key := infosetKey(nodeIdx, combo[:], board)
		e, err := t.store.Get(key, len(node.Actions))
		if err != nil {
			return nil, err
		}
		avg := e.AverageStrategy()
		for i, p := range avg {
			sum[i] += p
		}
		n++
	}

	perAction := make(map[string]float64, len(node.Actions))
	if n == 0 {
		return perAction, nil
	}
	for i, a := range node.Actions {
		perAction[a.Token()] = sum[i] / float64(n)
	}
	return perAction, nil
}

// matchAction finds the child reached by taking the action token names at
// node, returning its child index. A token with just a name ("check",
// "fold") matches the first action of that name; a token carrying an
// amount ("bet 75") also requires the amount to match, to disambiguate
// between multiple bet/raise sizes.
func matchAction(node Node, token string) (int, bool) {
	fields := strings.Fields(token)
	if len(fields) == 0 {
		return 0, false
	}
	name := strings.ToLower(fields[0])

	var wantAmount int
	hasAmount := len(fields) > 1
	if hasAmount {
		amt, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, false
		}
		wantAmount = amt
	}

	for i, a := range node.Actions {
		if strings.ToLower(a.Name) != name {
			continue
		}
		if hasAmount && a.Amount != wantAmount {
			continue
		}
		return node.Children[i], true
	}
	return 0, false
}

// nodeInfo renders a short description of a tree node for StrategyQuery's
// NodeInfo field.
func nodeInfo(nodeIdx int, node Node) string {
	switch node.Kind {
	case NodeFold:
		return fmt.Sprintf("terminal (fold), payoff=%d", node.Payoff)
	case NodeShowdown:
		return fmt.Sprintf("terminal (showdown), pot=%d", node.ShowdownPot)
	default:
		return fmt.Sprintf("decision node #%d, player %d, %d actions", nodeIdx, node.Player, len(node.Actions))
	}
}
