// Command solver is the CLI wrapper around the engine and river solver
// packages: deal a hand from a seed, run DCFR over a river scenario, or
// replay a literal action sequence.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lox/riversolver/internal/cards"
	"github.com/lox/riversolver/internal/engine"
	"github.com/lox/riversolver/internal/rangepkg"
	"github.com/lox/riversolver/internal/solver"
	"github.com/lox/riversolver/internal/state"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Deal     DealCmd     `cmd:"" help:"deal an initial hand from a seed and print it"`
	Solve    SolveCmd    `cmd:"" help:"build a river tree, run DCFR, print the average strategy and exploitability"`
	Play     PlayCmd     `cmd:"" help:"apply a literal action sequence to a dealt hand and print the result"`
	Strategy StrategyCmd `cmd:"" help:"train then query the average strategy at a history-indexed node, per hand class"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("solver"),
		kong.Description("riversolver engine and river-solve tooling"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)

	var err error
	switch ctx.Command() {
	case "deal":
		err = cli.Deal.Run(context.Background())
	case "solve":
		err = cli.Solve.Run(context.Background())
	case "play":
		err = cli.Play.Run(context.Background())
	case "strategy":
		err = cli.Strategy.Run(context.Background())
	default:
		log.Fatal().Msgf("unknown command: %s", ctx.Command())
	}
	if err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

// DealCmd deals an initial hand.

type DealCmd struct {
	Seed       int64 `help:"PRNG seed" default:"1"`
	SmallBlind int   `help:"small blind size" default:"5"`
	BigBlind   int   `help:"big blind size" default:"10"`
	Ante       int   `help:"ante size" default:"0"`
	DealerSeat int   `help:"dealer seat index" default:"0"`
	Stacks     []int `help:"starting stack for each seat, in seat order" required:""`
}

func (cmd *DealCmd) Run(ctx context.Context) error {
	players := make([]engine.PlayerConfig, len(cmd.Stacks))
	for i, stack := range cmd.Stacks {
		players[i] = engine.PlayerConfig{Seat: i, Stack: stack}
	}
	cfg := engine.HandConfig{
		MaxSeats:   len(cmd.Stacks),
		SmallBlind: cmd.SmallBlind,
		BigBlind:   cmd.BigBlind,
		Ante:       cmd.Ante,
		DealerSeat: cmd.DealerSeat,
		Seed:       cmd.Seed,
		Players:    players,
	}

	g, err := engine.NewInitialState(cfg, nil)
	if err != nil {
		return fmt.Errorf("deal: %w", err)
	}
	logGameState(g)
	return nil
}

// SolveCmd runs DCFR over a constructed river scenario.

type SolveCmd struct {
	Pot        int       `help:"pot at the start of the river" required:""`
	Stack0     int       `help:"OOP (non-dealer) chips behind" required:""`
	Stack1     int       `help:"IP (dealer) chips behind" required:""`
	Board      string    `help:"5 space-separated community cards, e.g. \"As Ks Qs Js Ts\"" required:""`
	Range0     string    `help:"OOP's range, e.g. \"AA,AKs,As Ah\"" required:""`
	Range1     string    `help:"IP's range, same text format as range0" required:""`
	BetSizes   []float64 `help:"bet sizes as fractions of pot" default:"0.5,1.0"`
	MaxRaises  int       `help:"raises allowed per line" default:"2"`
	Iterations int       `help:"DCFR iterations" default:"1000"`
	NoDCFR     bool      `help:"use plain CFR instead of Discounted CFR"`
}

func (cmd *SolveCmd) Run(ctx context.Context) error {
	board, err := cards.ParseMany(cmd.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if len(board) != 5 {
		return fmt.Errorf("solve: expected a 5-card board")
	}

	pairings, hands0, hands1, err := buildPairings(cmd.Range0, cmd.Range1, board)
	if err != nil {
		return err
	}
	if len(pairings) == 0 {
		return fmt.Errorf("solve: no non-colliding hand pairings survive range0/range1 against the board")
	}

	tree := solver.BuildRiverTree(cmd.Pot, cmd.Stack0, cmd.Stack1, solver.TreeConfig{
		BetSizes:  cmd.BetSizes,
		MaxRaises: cmd.MaxRaises,
	})
	trainer := solver.NewTrainer(tree, solver.DefaultDiscountConfig(), !cmd.NoDCFR)

	for i := 0; i < cmd.Iterations; i++ {
		if err := trainer.Step(pairings); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if cmd.Iterations >= 100 && (i+1)%(cmd.Iterations/10) == 0 {
			log.Info().Int("iteration", i+1).Int("infosets", trainer.Store().Size()).Msg("training")
		}
	}

	root := tree.Nodes[tree.Root]
	rootKey := fmt.Sprintf("%d|%s|%s", tree.Root, cards.CanonicalCards(pairings[0].Hole0), cards.CanonicalCards(board))
	entries := trainer.Store().Entries()
	if e, ok := entries[rootKey]; ok {
		avg := e.AverageStrategy()
		for i, a := range root.Actions {
			log.Info().Str("action", a.String()).Float64("probability", avg[i]).Msg("root average strategy")
		}
	}

	result := solver.Exploitability(tree, trainer.Store(), hands0, hands1, board, cmd.Pot, 0)
	log.Info().
		Float64("ev0", result.EV0).
		Float64("ev1", result.EV1).
		Float64("exploitability_pct", result.TotalExploitabilityPct).
		Bool("converged", result.Converged).
		Msg("exploitability")
	return nil
}

// buildPairings parses range0/range1 (the §6-style range text format) into
// concrete combos, excludes any combo colliding with the board, and
// returns the cross product as HandPairings (weight = the product of each
// side's per-combo weight, so a range-vs-range solve scales initial reach
// the same way a single hardcoded pairing does), plus each side's combos
// as WeightedHands for exploitability.
func buildPairings(range0, range1 string, board []cards.Card) ([]solver.HandPairing, []solver.WeightedHand, []solver.WeightedHand, error) {
	combos0, err := rangepkg.ParseRangeString(range0, board)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("range0: %w", err)
	}
	combos1, err := rangepkg.ParseRangeString(range1, board)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("range1: %w", err)
	}

	var pairings []solver.HandPairing
	for _, c0 := range combos0 {
		for _, c1 := range combos1 {
			if c0.Hole[0] == c1.Hole[0] || c0.Hole[0] == c1.Hole[1] ||
				c0.Hole[1] == c1.Hole[0] || c0.Hole[1] == c1.Hole[1] {
				continue
			}
			pairings = append(pairings, solver.HandPairing{
				Hole0:  c0.Hole[:],
				Hole1:  c1.Hole[:],
				Board:  board,
				Weight: c0.Weight * c1.Weight,
			})
		}
	}

	hands0 := make([]solver.WeightedHand, len(combos0))
	for i, c := range combos0 {
		hands0[i] = solver.WeightedHand{Hole: c.Hole[:], Weight: c.Weight}
	}
	hands1 := make([]solver.WeightedHand, len(combos1))
	for i, c := range combos1 {
		hands1[i] = solver.WeightedHand{Hole: c.Hole[:], Weight: c.Weight}
	}
	return pairings, hands0, hands1, nil
}

// PlayCmd deals a hand and applies a literal action sequence to it.

type PlayCmd struct {
	Seed       int64    `help:"PRNG seed" default:"1"`
	SmallBlind int      `help:"small blind size" default:"5"`
	BigBlind   int      `help:"big blind size" default:"10"`
	DealerSeat int      `help:"dealer seat index" default:"0"`
	Stacks     []int    `help:"starting stack for each seat, in seat order" required:""`
	Actions    []string `help:"action:amount pairs applied in order, e.g. raise:100,call:0,fold:0" required:""`
}

func (cmd *PlayCmd) Run(ctx context.Context) error {
	players := make([]engine.PlayerConfig, len(cmd.Stacks))
	for i, stack := range cmd.Stacks {
		players[i] = engine.PlayerConfig{Seat: i, Stack: stack}
	}
	cfg := engine.HandConfig{
		MaxSeats:   len(cmd.Stacks),
		SmallBlind: cmd.SmallBlind,
		BigBlind:   cmd.BigBlind,
		DealerSeat: cmd.DealerSeat,
		Seed:       cmd.Seed,
		Players:    players,
	}

	g, err := engine.NewInitialState(cfg, nil)
	if err != nil {
		return fmt.Errorf("deal: %w", err)
	}

	for _, spec := range cmd.Actions {
		typ, amount, err := parseAction(spec)
		if err != nil {
			return err
		}
		actor := g.Players[g.PlayerBySeat(g.ActionSeat)]
		g, err = engine.Apply(g, state.Action{PlayerID: actor.ID, Street: g.Street, Type: typ, Amount: amount})
		if err != nil {
			return fmt.Errorf("apply %s: %w", spec, err)
		}
	}

	logGameState(g)
	return nil
}

// StrategyCmd trains a river tree then queries the trained average
// strategy at a history-indexed node, aggregated per hand class.

type StrategyCmd struct {
	Pot         int       `help:"pot at the start of the river" required:""`
	Stack0      int       `help:"OOP (non-dealer) chips behind" required:""`
	Stack1      int       `help:"IP (dealer) chips behind" required:""`
	Board       string    `help:"5 space-separated community cards, e.g. \"As Ks Qs Js Ts\"" required:""`
	Range0      string    `help:"OOP's range, e.g. \"AA,AKs,As Ah\"" required:""`
	Range1      string    `help:"IP's range, same text format as range0" required:""`
	BetSizes    []float64 `help:"bet sizes as fractions of pot" default:"0.5,1.0"`
	MaxRaises   int       `help:"raises allowed per line" default:"2"`
	Iterations  int       `help:"DCFR iterations" default:"1000"`
	NoDCFR      bool      `help:"use plain CFR instead of Discounted CFR"`
	HandClasses []string  `help:"hand classes to report strategy for, e.g. AA,AKs" required:""`
	History     []string  `help:"action path from the root, e.g. \"check\",\"bet 75\""`
}

func (cmd *StrategyCmd) Run(ctx context.Context) error {
	board, err := cards.ParseMany(cmd.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if len(board) != 5 {
		return fmt.Errorf("strategy: expected a 5-card board")
	}

	pairings, _, _, err := buildPairings(cmd.Range0, cmd.Range1, board)
	if err != nil {
		return err
	}
	if len(pairings) == 0 {
		return fmt.Errorf("strategy: no non-colliding hand pairings survive range0/range1 against the board")
	}

	tree := solver.BuildRiverTree(cmd.Pot, cmd.Stack0, cmd.Stack1, solver.TreeConfig{
		BetSizes:  cmd.BetSizes,
		MaxRaises: cmd.MaxRaises,
	})
	trainer := solver.NewTrainer(tree, solver.DefaultDiscountConfig(), !cmd.NoDCFR)
	for i := 0; i < cmd.Iterations; i++ {
		if err := trainer.Step(pairings); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}

	query, err := trainer.GetStrategy(board, cmd.HandClasses, cmd.History)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	event := log.Info().
		Strs("currentHistory", query.CurrentHistory).
		Strs("availableActions", query.AvailableActions).
		Str("nodeInfo", query.NodeInfo).
		Bool("isTerminal", query.IsTerminal)
	for class, strategy := range query.Strategies {
		for action, prob := range strategy {
			event = event.Float64(fmt.Sprintf("%s.%s", class, action), prob)
		}
	}
	event.Msg("strategy")
	return nil
}

func parseAction(spec string) (state.ActionType, int, error) {
	parts := strings.SplitN(spec, ":", 2)
	amount := 0
	if len(parts) == 2 {
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid amount in %q: %w", spec, err)
		}
		amount = n
	}
	switch strings.ToLower(strings.TrimSpace(parts[0])) {
	case "fold":
		return state.Fold, amount, nil
	case "check":
		return state.Check, amount, nil
	case "call":
		return state.Call, amount, nil
	case "bet":
		return state.Bet, amount, nil
	case "raise":
		return state.Raise, amount, nil
	default:
		return 0, 0, fmt.Errorf("unknown action %q", parts[0])
	}
}

func logGameState(g state.GameState) {
	event := log.Info().
		Str("street", g.Street.String()).
		Int("actionSeat", g.ActionSeat).
		Int("currentBet", g.CurrentBet).
		Int("pots", len(g.Pots))
	for _, p := range g.Players {
		event = event.Str("player_"+p.ID, fmt.Sprintf("seat=%d stack=%d bet=%d status=%s", p.Seat, p.Stack, p.Bet, p.Status))
	}
	event.Msg("game state")
}
