package equity

import (
	"github.com/domino14/dotsboxes/board"
)

// Evaluator scores a non-terminal board at a search cutoff. Larger values
// are better for Max. Evaluators only read the board.
type Evaluator interface {
	Evaluate(b *board.Board) float64
	Name() string
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(b *board.Board) float64

func (f EvaluatorFunc) Evaluate(b *board.Board) float64 {
	return f(b)
}

func (f EvaluatorFunc) Name() string {
	return "func"
}
