// Package alphabeta implements a Dots-and-Boxes searcher using
// depth-limited minimax with alpha-beta pruning.
package alphabeta

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/dotsboxes/board"
	"github.com/domino14/dotsboxes/common"
	"github.com/domino14/dotsboxes/equity"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
**/
// Here depth counts up from the root to limit instead of down to 0, and
// under the turn-again rule a player who completes a box searches the
// next ply as well.

// NoMove is returned as the move of a cutoff or terminal node.
const NoMove = -1

var ErrUnknownRule = errors.New("unknown rule")

// Rule selects whether completing a box grants another ply.
type Rule int

const (
	StandardTurns Rule = iota
	TurnAgain
)

func (r Rule) String() string {
	if r == TurnAgain {
		return "turn-again"
	}
	return "standard"
}

func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "std", "no-turn-again":
		return StandardTurns, nil
	case "turn-again", "turnagain", "again":
		return TurnAgain, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, s)
}

// Solver holds the rule variant and the evaluator pair for a matchup.
// A Solver is not safe for concurrent use; give each goroutine its own.
type Solver struct {
	rule    Rule
	maxEval equity.Evaluator
	minEval equity.Evaluator

	disablePruning bool

	nodes   uint64
	cutoffs uint64
	pv      common.PVLine
}

func NewSolver(rule Rule, maxEval, minEval equity.Evaluator) *Solver {
	return &Solver{rule: rule, maxEval: maxEval, minEval: minEval}
}

func (s *Solver) Rule() Rule {
	return s.rule
}

// SetPruningDisabled turns the search into a full minimax traversal.
func (s *Solver) SetPruningDisabled(d bool) {
	s.disablePruning = d
}

// PrincipalVariation is the line of best play found by the last Solve.
func (s *Solver) PrincipalVariation() common.PVLine {
	return s.pv
}

// Nodes is the number of nodes visited since the last Solve.
func (s *Solver) Nodes() uint64 {
	return s.nodes
}

// Cutoffs is the number of times the remaining moves of a node were
// skipped since the last Solve.
func (s *Solver) Cutoffs() uint64 {
	return s.cutoffs
}

// Solve searches from b with role to move and returns the value of the
// position and the chosen edge, or NoMove if b is already terminal or
// limit is 0.
func (s *Solver) Solve(b *board.Board, role board.Player, alpha, beta float64, limit int) (float64, int) {
	s.nodes = 0
	s.cutoffs = 0
	s.pv.Clear()
	tstart := time.Now()
	v, m := s.value(b, role, alpha, beta, 0, limit, &s.pv)
	log.Debug().
		Str("rule", s.rule.String()).
		Str("role", role.String()).
		Int("limit", limit).
		Float64("value", v).
		Int("move", m).
		Uint64("nodes", s.nodes).
		Uint64("cutoffs", s.cutoffs).
		Dur("elapsed", time.Since(tstart)).
		Str("pv", s.pv.NLBString()).
		Msg("alphabeta-solve")
	return v, m
}

// SolveUnbounded is Solve with an infinite window.
func (s *Solver) SolveUnbounded(b *board.Board, role board.Player, limit int) (float64, int) {
	return s.Solve(b, role, math.Inf(-1), math.Inf(1), limit)
}

func (s *Solver) value(b *board.Board, role board.Player, alpha, beta float64, depth, limit int, pv *common.PVLine) (float64, int) {
	if role == board.Max {
		return s.maxValue(b, alpha, beta, depth, limit, pv)
	}
	return s.minValue(b, alpha, beta, depth, limit, pv)
}

// cutoff returns the value of a leaf: the exact utility when the game is
// over, otherwise the heuristic of the player to move.
func (s *Solver) cutoff(b *board.Board, eval equity.Evaluator, depth, limit int) (float64, bool) {
	if u, ok := equity.TerminalUtility(b); ok {
		return u, true
	}
	if depth >= limit {
		return eval.Evaluate(b), true
	}
	return 0, false
}

// successor plays edge for mover and returns the child along with the
// player who acts on it.
func (s *Solver) successor(b *board.Board, edge int, mover board.Player) (*board.Board, board.Player) {
	if s.rule == TurnAgain {
		child, _, extra, err := b.ApplyMoveWithExtraTurn(edge, mover)
		if err != nil {
			panic(fmt.Sprintf("generated move %d is not playable: %v", edge, err))
		}
		if extra {
			return child, mover
		}
		return child, mover.Opponent()
	}
	child, _, err := b.ApplyMove(edge, mover)
	if err != nil {
		panic(fmt.Sprintf("generated move %d is not playable: %v", edge, err))
	}
	return child, mover.Opponent()
}

func movesOrPanic(b *board.Board) []int {
	moves := b.AvailableMoves()
	if len(moves) == 0 {
		// IsTerminal is checked before this, so an open board always has moves.
		panic("non-terminal board has no available moves")
	}
	return moves
}

// MaxValue is the value of b for Max to move, along with Max's choice.
// Among equally valued moves the lowest edge id wins.
func (s *Solver) MaxValue(b *board.Board, alpha, beta float64, depth, limit int) (float64, int) {
	var pv common.PVLine
	return s.maxValue(b, alpha, beta, depth, limit, &pv)
}

// MinValue is the mirror image of MaxValue.
func (s *Solver) MinValue(b *board.Board, alpha, beta float64, depth, limit int) (float64, int) {
	var pv common.PVLine
	return s.minValue(b, alpha, beta, depth, limit, &pv)
}

func (s *Solver) maxValue(b *board.Board, alpha, beta float64, depth, limit int, pv *common.PVLine) (float64, int) {
	s.nodes++
	if v, ok := s.cutoff(b, s.maxEval, depth, limit); ok {
		return v, NoMove
	}
	value := math.Inf(-1)
	chosen := NoMove
	for _, m := range movesOrPanic(b) {
		child, next := s.successor(b, m, board.Max)
		var childPV common.PVLine
		v, _ := s.value(child, next, alpha, beta, depth+1, limit, &childPV)
		if v > value {
			value = v
			chosen = m
			pv.Update(common.PVMove{Mover: board.Max, Edge: m}, childPV, v)
		}
		if v > alpha {
			alpha = v
		}
		if alpha >= beta && !s.disablePruning {
			s.cutoffs++
			break
		}
	}
	return value, chosen
}

func (s *Solver) minValue(b *board.Board, alpha, beta float64, depth, limit int, pv *common.PVLine) (float64, int) {
	s.nodes++
	if v, ok := s.cutoff(b, s.minEval, depth, limit); ok {
		return v, NoMove
	}
	value := math.Inf(1)
	chosen := NoMove
	for _, m := range movesOrPanic(b) {
		child, next := s.successor(b, m, board.Min)
		var childPV common.PVLine
		v, _ := s.value(child, next, alpha, beta, depth+1, limit, &childPV)
		if v < value {
			value = v
			chosen = m
			pv.Update(common.PVMove{Mover: board.Min, Edge: m}, childPV, v)
		}
		if v < beta {
			beta = v
		}
		if alpha >= beta && !s.disablePruning {
			s.cutoffs++
			break
		}
	}
	return value, chosen
}
