package equity

import (
	"errors"
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/dotsboxes/board"
)

const delta = 1e-9

// boxes 0 and 3 at one open edge, box 1 untouched, box 2 at two open edges.
func mixedBoard(t *testing.T) *board.Board {
	b, err := board.NewBoard(2)
	require.NoError(t, err)
	b, err = b.DrawEdges(board.Max, 1, 5, 11, 19, 23, 17)
	require.NoError(t, err)
	require.Equal(t, []int{1, 4, 2, 1}, b.BoxOpenCounts())
	return b
}

func TestTerminalUtilityUndefinedWhileOpen(t *testing.T) {
	is := is.New(t)
	b, _ := board.NewBoard(2)
	for !b.IsTerminal() {
		_, ok := TerminalUtility(b)
		is.True(!ok)
		b, _, _ = b.ApplyMove(b.AvailableMoves()[0], board.Max)
	}
	v, ok := TerminalUtility(b)
	is.True(ok)
	is.Equal(v, 1.0)
}

func TestTerminalUtilitySigns(t *testing.T) {
	is := is.New(t)

	// min closes the only box
	b, _ := board.NewBoard(1)
	b, _ = b.DrawEdges(board.Max, 1, 3, 5)
	minWin, _, _ := b.ApplyMove(7, board.Min)
	v, ok := TerminalUtility(minWin)
	is.True(ok)
	is.Equal(v, -1.0)

	// 2x2: max takes the top two boxes with one edge, min the bottom two
	b2, _ := board.NewBoard(2)
	b2, _ = b2.DrawEdges(board.Min, 1, 5, 11, 3, 13, 9)
	b2, _, _ = b2.ApplyMove(7, board.Max)
	b2, _ = b2.DrawEdges(board.Max, 15, 21, 19, 23)
	b2, completed, _ := b2.ApplyMove(17, board.Min)
	is.Equal(completed, 2)
	v, ok = TerminalUtility(b2)
	is.True(ok)
	is.Equal(v, 0.0)
}

func TestSnatchCountsTakeableBoxes(t *testing.T) {
	b := mixedBoard(t)
	n := 2.0
	k := 2.0
	maxEval := NewHeuristic(Snatch, MaxOriented)
	minEval := NewHeuristic(Snatch, MinOriented)
	assert.InDelta(t, k*(n-0.1)/(n*n), maxEval.Evaluate(b), delta)
	assert.InDelta(t, -k*(n-0.1)/(n*n), minEval.Evaluate(b), delta)
}

func TestSnatchLargerBoard(t *testing.T) {
	b, err := board.NewBoard(3)
	require.NoError(t, err)
	// leave box 0 and box 8 with one open edge each
	idx := b.Index()
	e0 := idx.BoxEdges(0)
	e8 := idx.BoxEdges(8)
	b, err = b.DrawEdges(board.Min, e0[0], e0[1], e0[2], e8[1], e8[2], e8[3])
	require.NoError(t, err)
	maxEval := NewHeuristic(Snatch, MaxOriented)
	assert.InDelta(t, 2*(3-0.1)/9, maxEval.Evaluate(b), delta)
}

func TestActionBuckets(t *testing.T) {
	b := mixedBoard(t)
	r := 1 / (4 - 0.1)
	// two 1-open boxes, one 2-open, one 4-open
	assert.InDelta(t, 2*r-r/2+r/2, NewHeuristic(Action, MaxOriented).Evaluate(b), delta)
	assert.InDelta(t, -2*r+r/2-r/2, NewHeuristic(Action, MinOriented).Evaluate(b), delta)
}

func TestSetUpBuckets(t *testing.T) {
	b := mixedBoard(t)
	r := 1 / (4 - 0.1)
	assert.InDelta(t, 2*(r/2)-r/2+r, NewHeuristic(SetUp, MaxOriented).Evaluate(b), delta)
	assert.InDelta(t, -2*(r/2)+r/2-r, NewHeuristic(SetUp, MinOriented).Evaluate(b), delta)
}

func TestEmptyBoardValues(t *testing.T) {
	b, _ := board.NewBoard(3)
	r := 1 / (9 - 0.1)
	assert.InDelta(t, 0, NewHeuristic(Snatch, MaxOriented).Evaluate(b), delta)
	assert.InDelta(t, 9*r/2, NewHeuristic(Action, MaxOriented).Evaluate(b), delta)
	assert.InDelta(t, 9*r, NewHeuristic(SetUp, MaxOriented).Evaluate(b), delta)
	assert.InDelta(t, -9*r, NewHeuristic(SetUp, MinOriented).Evaluate(b), delta)
}

func TestOwnedBoxesIgnored(t *testing.T) {
	b, _ := board.NewBoard(1)
	b, _ = b.DrawEdges(board.Max, 1, 3, 5, 7)
	for _, f := range []Family{Snatch, Action, SetUp} {
		for _, o := range []Orientation{MaxOriented, MinOriented} {
			assert.Equal(t, 0.0, NewHeuristic(f, o).Evaluate(b), "%v-%v", f, o)
		}
	}
}

func TestOrientationsMirror(t *testing.T) {
	b, _ := board.NewBoard(3)
	moves := b.AvailableMoves()
	for i, e := range moves {
		if i%3 == 2 {
			continue
		}
		var err error
		b, _, err = b.ApplyMove(e, board.Player(i%2))
		require.NoError(t, err)
		for _, f := range []Family{Snatch, Action, SetUp} {
			mx := NewHeuristic(f, MaxOriented).Evaluate(b)
			mn := NewHeuristic(f, MinOriented).Evaluate(b)
			assert.InDelta(t, -mx, mn, delta)
		}
	}
}

func TestSizeOneIsTotal(t *testing.T) {
	b, _ := board.NewBoard(1)
	for _, f := range []Family{Snatch, Action, SetUp} {
		w := NewHeuristic(f, MaxOriented).Weights(1)
		for _, x := range w {
			assert.False(t, math.IsNaN(x) || math.IsInf(x, 0), "bad weight for %v", f)
		}
		_ = NewHeuristic(f, MaxOriented).Evaluate(b)
	}
}

func TestParseFamily(t *testing.T) {
	is := is.New(t)
	for name, f := range map[string]Family{
		"snatch": Snatch, "Action": Action, "setup": SetUp, "set-up": SetUp, " set_up ": SetUp,
	} {
		got, err := ParseFamily(name)
		is.NoErr(err)
		is.Equal(got, f)
	}
	_, err := ParseFamily("greedy")
	is.True(errors.Is(err, ErrUnknownEvaluator))

	maxEval, minEval, err := PairByName("snatch", "setup")
	is.NoErr(err)
	is.Equal(maxEval.Name(), "snatch-max")
	is.Equal(minEval.Name(), "setup-min")
	_, _, err = PairByName("snatch", "nope")
	is.True(errors.Is(err, ErrUnknownEvaluator))
}
