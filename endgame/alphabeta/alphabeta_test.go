package alphabeta

import (
	"errors"
	"fmt"
	"math"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/dotsboxes/board"
	"github.com/domino14/dotsboxes/common"
	"github.com/domino14/dotsboxes/equity"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

var families = []equity.Family{equity.Snatch, equity.Action, equity.SetUp}

// scramble plays k moves on an empty board, alternating movers and
// picking moves in a fixed but irregular order.
func scramble(t *testing.T, size, k int) *board.Board {
	b, err := board.NewBoard(size)
	require.NoError(t, err)
	mover := board.Max
	for i := 0; i < k; i++ {
		moves := b.AvailableMoves()
		b, _, err = b.ApplyMove(moves[(i*5+3)%len(moves)], mover)
		require.NoError(t, err)
		mover = mover.Opponent()
	}
	return b
}

// minimax is a plain full-width search used as the reference.
func minimax(b *board.Board, role board.Player, rule Rule, maxEval, minEval equity.Evaluator, depth, limit int) (float64, int) {
	if u, ok := equity.TerminalUtility(b); ok {
		return u, NoMove
	}
	if depth >= limit {
		if role == board.Max {
			return maxEval.Evaluate(b), NoMove
		}
		return minEval.Evaluate(b), NoMove
	}
	best := NoMove
	var bestVal float64
	for i, m := range b.AvailableMoves() {
		child, completed, err := b.ApplyMove(m, role)
		if err != nil {
			panic(err)
		}
		next := role.Opponent()
		if rule == TurnAgain && completed > 0 {
			next = role
		}
		v, _ := minimax(child, next, rule, maxEval, minEval, depth+1, limit)
		if i == 0 || (role == board.Max && v > bestVal) || (role == board.Min && v < bestVal) {
			bestVal = v
			best = m
		}
	}
	return bestVal, best
}

type searchCase struct {
	size, filled, limit int
}

var searchCases = []searchCase{
	{size: 1, filled: 0, limit: 4},
	{size: 2, filled: 0, limit: 3},
	{size: 2, filled: 4, limit: 4},
	{size: 2, filled: 5, limit: 10},
	{size: 3, filled: 10, limit: 3},
}

func TestPruningMatchesMinimax(t *testing.T) {
	var totalCutoffs uint64
	for _, sc := range searchCases {
		b := scramble(t, sc.size, sc.filled)
		for _, rule := range []Rule{StandardTurns, TurnAgain} {
			for _, mf := range families {
				for _, nf := range families {
					maxEval, minEval := equity.Pair(mf, nf)
					for _, role := range []board.Player{board.Max, board.Min} {
						name := fmt.Sprintf("%dx%d/%d/%v/%v-%v/%v", sc.size, sc.size, sc.filled, rule, mf, nf, role)
						t.Run(name, func(t *testing.T) {
							wantV, wantM := minimax(b, role, rule, maxEval, minEval, 0, sc.limit)

							pruned := NewSolver(rule, maxEval, minEval)
							v, m := pruned.SolveUnbounded(b, role, sc.limit)
							assert.InDelta(t, wantV, v, 1e-12)
							assert.Equal(t, wantM, m)

							full := NewSolver(rule, maxEval, minEval)
							full.SetPruningDisabled(true)
							fv, fm := full.SolveUnbounded(b, role, sc.limit)
							assert.InDelta(t, wantV, fv, 1e-12)
							assert.Equal(t, wantM, fm)
							assert.Zero(t, full.Cutoffs())

							assert.LessOrEqual(t, pruned.Nodes(), full.Nodes())
							totalCutoffs += pruned.Cutoffs()
						})
					}
				}
			}
		}
	}
	assert.Greater(t, totalCutoffs, uint64(0))
}

func TestNarrowWindowExactInside(t *testing.T) {
	is := is.New(t)
	b := scramble(t, 2, 4)
	maxEval, minEval := equity.Pair(equity.Snatch, equity.Action)
	for _, rule := range []Rule{StandardTurns, TurnAgain} {
		want, _ := minimax(b, board.Min, rule, maxEval, minEval, 0, 3)
		s := NewSolver(rule, maxEval, minEval)
		v, m := s.Solve(b, board.Min, -1, 1, 3)
		if want > -1 && want < 1 {
			is.True(math.Abs(want-v) < 1e-12)
		}
		is.True(m != NoMove)
		is.True(b.Cell(m).IsOpen())
	}
}

func TestTieBreakLowestEdge(t *testing.T) {
	is := is.New(t)
	b, _ := board.NewBoard(2)
	flat := equity.EvaluatorFunc(func(*board.Board) float64 { return 0.5 })
	for _, role := range []board.Player{board.Max, board.Min} {
		s := NewSolver(StandardTurns, flat, flat)
		v, m := s.SolveUnbounded(b, role, 2)
		is.Equal(v, 0.5)
		is.Equal(m, 1)
	}
}

func TestCutoffUsesEvaluatorOfRoleToMove(t *testing.T) {
	is := is.New(t)
	b, _ := board.NewBoard(2)
	maxEval := equity.EvaluatorFunc(func(*board.Board) float64 { return 0.25 })
	minEval := equity.EvaluatorFunc(func(*board.Board) float64 { return -0.75 })
	s := NewSolver(StandardTurns, maxEval, minEval)

	v, m := s.SolveUnbounded(b, board.Max, 0)
	is.Equal(v, 0.25)
	is.Equal(m, NoMove)

	v, m = s.SolveUnbounded(b, board.Min, 0)
	is.Equal(v, -0.75)
	is.Equal(m, NoMove)

	// one ply: every child is a leaf for the other player
	v, m = s.SolveUnbounded(b, board.Max, 1)
	is.Equal(v, -0.75)
	is.Equal(m, 1)
}

func TestTerminalRoot(t *testing.T) {
	is := is.New(t)
	b, _ := board.NewBoard(1)
	b, _ = b.DrawEdges(board.Min, 1, 3, 5, 7)
	s := NewSolver(TurnAgain, equity.NewHeuristic(equity.Snatch, equity.MaxOriented),
		equity.NewHeuristic(equity.Snatch, equity.MinOriented))
	for _, limit := range []int{0, 3} {
		v, m := s.SolveUnbounded(b, board.Max, limit)
		is.Equal(v, -1.0)
		is.Equal(m, NoMove)
		is.Equal(s.Nodes(), uint64(1))
	}
}

func TestTakesLastBox(t *testing.T) {
	is := is.New(t)
	b, _ := board.NewBoard(1)
	b, _ = b.DrawEdges(board.Max, 1, 3, 5)
	maxEval, minEval := equity.Pair(equity.Snatch, equity.Action)
	for _, rule := range []Rule{StandardTurns, TurnAgain} {
		s := NewSolver(rule, maxEval, minEval)
		v, m := s.Solve(b, board.Max, -1, 1, 3)
		is.Equal(v, 1.0)
		is.Equal(m, 7)
		v, m = s.Solve(b, board.Min, -1, 1, 3)
		is.Equal(v, -1.0)
		is.Equal(m, 7)
	}
}

// Box 3 has only edge 23 open, the highest edge on the board.
func boxThreeReady(t *testing.T) *board.Board {
	b, err := board.NewBoard(2)
	require.NoError(t, err)
	b, err = b.DrawEdges(board.Max, 13, 17, 19)
	require.NoError(t, err)
	require.Equal(t, 1, b.BoxOpenCount(3))
	return b
}

func TestTurnAgainKeepsMover(t *testing.T) {
	is := is.New(t)
	b := boxThreeReady(t)
	maxEval := equity.EvaluatorFunc(func(*board.Board) float64 { return 10 })
	minEval := equity.EvaluatorFunc(func(*board.Board) float64 { return -10 })

	// With one ply every child is scored by whoever moves on it.
	std := NewSolver(StandardTurns, maxEval, minEval)
	v, m := std.SolveUnbounded(b, board.Max, 1)
	is.Equal(v, -10.0)
	is.Equal(m, 1)
	v, m = std.SolveUnbounded(b, board.Min, 1)
	is.Equal(v, 10.0)
	is.Equal(m, 1)

	again := NewSolver(TurnAgain, maxEval, minEval)
	v, m = again.SolveUnbounded(b, board.Max, 1)
	is.Equal(v, 10.0)
	is.Equal(m, 23)
	v, m = again.SolveUnbounded(b, board.Min, 1)
	is.Equal(v, -10.0)
	is.Equal(m, 23)
}

func TestPrincipalVariationStartsWithMove(t *testing.T) {
	is := is.New(t)
	b := boxThreeReady(t)
	maxEval := equity.EvaluatorFunc(func(*board.Board) float64 { return 10 })
	minEval := equity.EvaluatorFunc(func(*board.Board) float64 { return -10 })
	s := NewSolver(TurnAgain, maxEval, minEval)
	v, m := s.SolveUnbounded(b, board.Max, 1)
	pv := s.PrincipalVariation()
	first, ok := pv.GetPVMove()
	is.True(ok)
	is.Equal(first, common.PVMove{Mover: board.Max, Edge: m})
	is.Equal(len(pv.Moves), 1)
	is.Equal(pv.Value(), v)

	// nothing to play from a cutoff root
	s.SolveUnbounded(b, board.Max, 0)
	pv = s.PrincipalVariation()
	_, ok = pv.GetPVMove()
	is.True(!ok)
}

// With an infinite window and no depth limit the principal variation is a
// legal game that ends in the returned utility.
func TestPrincipalVariationReplays(t *testing.T) {
	maxEval, minEval := equity.Pair(equity.Action, equity.SetUp)
	for _, filled := range []int{4, 6} {
		for _, rule := range []Rule{StandardTurns, TurnAgain} {
			b := scramble(t, 2, filled)
			s := NewSolver(rule, maxEval, minEval)
			v, _ := s.SolveUnbounded(b, board.Min, 100)
			pv := s.PrincipalVariation()
			mover := board.Min
			for _, pm := range pv.Moves {
				require.Equal(t, mover, pm.Mover)
				var completed int
				var err error
				b, completed, err = b.ApplyMove(pm.Edge, pm.Mover)
				require.NoError(t, err)
				if rule == StandardTurns || completed == 0 {
					mover = mover.Opponent()
				}
			}
			u, ok := equity.TerminalUtility(b)
			assert.True(t, ok)
			assert.Equal(t, v, u)
		}
	}
}

func TestDeepSearchReachesTerminals(t *testing.T) {
	is := is.New(t)
	b := scramble(t, 2, 6)
	maxEval := equity.EvaluatorFunc(func(*board.Board) float64 { return 42 })
	for _, rule := range []Rule{StandardTurns, TurnAgain} {
		s := NewSolver(rule, maxEval, maxEval)
		v, m := s.SolveUnbounded(b, board.Max, 100)
		is.True(v == -1 || v == 0 || v == 1)
		is.True(m != NoMove)
	}
}

func TestSolveDeterministic(t *testing.T) {
	is := is.New(t)
	b := scramble(t, 3, 7)
	maxEval, minEval := equity.Pair(equity.SetUp, equity.Action)
	s1 := NewSolver(TurnAgain, maxEval, minEval)
	s2 := NewSolver(TurnAgain, maxEval, minEval)
	v1, m1 := s1.Solve(b, board.Min, -1, 1, 3)
	v2, m2 := s2.Solve(b, board.Min, -1, 1, 3)
	is.Equal(v1, v2)
	is.Equal(m1, m2)
	is.Equal(s1.Nodes(), s2.Nodes())
	// the board itself is untouched by the search
	is.True(b.Equal(scramble(t, 3, 7)))
}

func TestParseRule(t *testing.T) {
	is := is.New(t)
	r, err := ParseRule("turn-again")
	is.NoErr(err)
	is.Equal(r, TurnAgain)
	r, err = ParseRule("Standard")
	is.NoErr(err)
	is.Equal(r, StandardTurns)
	is.Equal(TurnAgain.String(), "turn-again")
	_, err = ParseRule("sometimes")
	is.True(errors.Is(err, ErrUnknownRule))
}
