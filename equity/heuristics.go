package equity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/dotsboxes/board"
)

var ErrUnknownEvaluator = errors.New("unknown evaluator")

// Family is a style of play expressed as a cutoff heuristic.
//
//   - Snatch only values boxes that can be taken right now.
//   - Action values takeable boxes most, treats boxes with 3 or 4 open
//     edges as safe and penalises boxes with 2 open edges, since drawing
//     on them hands the opponent a box.
//   - SetUp prefers boxes with 3 or 4 open edges, building up a board with
//     many boxes to finish later, and still penalises 2-open boxes.
type Family int

const (
	Snatch Family = iota
	Action
	SetUp
)

func (f Family) String() string {
	switch f {
	case Snatch:
		return "snatch"
	case Action:
		return "action"
	case SetUp:
		return "setup"
	}
	return "unknown"
}

// ParseFamily accepts the names used on the command line and in config.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "snatch":
		return Snatch, nil
	case "action":
		return Action, nil
	case "setup", "set-up", "set_up":
		return SetUp, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
}

// Orientation says which player a heuristic speaks for. A max-oriented
// heuristic is positive when the board looks good for Max; a min-oriented
// one is its counterpart for Min.
type Orientation int

const (
	MaxOriented Orientation = iota
	MinOriented
)

func (o Orientation) String() string {
	if o == MaxOriented {
		return "max"
	}
	return "min"
}

// Heuristic weighs every unowned box by its number of open edges. The
// weight table is indexed by open count; owned boxes (count 0) weigh 0.
type Heuristic struct {
	family      Family
	orientation Orientation
}

func NewHeuristic(family Family, orientation Orientation) *Heuristic {
	return &Heuristic{family: family, orientation: orientation}
}

func (h *Heuristic) Family() Family {
	return h.family
}

func (h *Heuristic) Orientation() Orientation {
	return h.orientation
}

func (h *Heuristic) Name() string {
	return h.family.String() + "-" + h.orientation.String()
}

// Weights returns the per-box contribution for 0 through 4 open edges on
// a board of the given size.
func (h *Heuristic) Weights(size int) [5]float64 {
	boxes := float64(size * size)
	switch h.family {
	case Snatch:
		ratio := (float64(size) - 0.1) / boxes
		if h.orientation == MaxOriented {
			return [5]float64{0, ratio, 0, 0, 0}
		}
		return [5]float64{0, -ratio, 0, 0, 0}
	case Action:
		ratio := 1 / (boxes - 0.1)
		if h.orientation == MaxOriented {
			return [5]float64{0, ratio, -ratio / 2, ratio / 2, ratio / 2}
		}
		return [5]float64{0, -ratio, ratio / 2, -ratio / 2, -ratio / 2}
	case SetUp:
		ratio := 1 / (boxes - 0.1)
		if h.orientation == MaxOriented {
			return [5]float64{0, ratio / 2, -ratio / 2, ratio, ratio}
		}
		return [5]float64{0, -ratio / 2, ratio / 2, -ratio, -ratio}
	}
	return [5]float64{}
}

func (h *Heuristic) Evaluate(b *board.Board) float64 {
	w := h.Weights(b.Size())
	return lo.SumBy(b.BoxOpenCounts(), func(open int) float64 {
		return w[open]
	})
}

// Pair builds the max-oriented and min-oriented evaluators for a matchup:
// Max plays with maxFamily, Min with minFamily.
func Pair(maxFamily, minFamily Family) (Evaluator, Evaluator) {
	return NewHeuristic(maxFamily, MaxOriented), NewHeuristic(minFamily, MinOriented)
}

// PairByName is Pair for family names.
func PairByName(maxName, minName string) (Evaluator, Evaluator, error) {
	maxFamily, err := ParseFamily(maxName)
	if err != nil {
		return nil, nil, err
	}
	minFamily, err := ParseFamily(minName)
	if err != nil {
		return nil, nil, err
	}
	maxEval, minEval := Pair(maxFamily, minFamily)
	return maxEval, minEval, nil
}
