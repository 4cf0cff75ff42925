package turnplayer

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/dotsboxes/board"
	"github.com/domino14/dotsboxes/endgame/alphabeta"
)

// AlphaBetaPlayer picks the root move of a depth-limited alpha-beta search.
type AlphaBetaPlayer struct {
	name   string
	solver *alphabeta.Solver
	alpha  float64
	beta   float64
	limit  int

	lastValue float64
}

// NewAlphaBetaPlayer searches limit plies with the initial window
// (alpha, beta). A limit below 1 would never produce a move, so it is
// raised to 1.
func NewAlphaBetaPlayer(name string, solver *alphabeta.Solver, alpha, beta float64, limit int) *AlphaBetaPlayer {
	if limit < 1 {
		log.Warn().Int("limit", limit).Msg("depth limit raised to 1")
		limit = 1
	}
	return &AlphaBetaPlayer{name: name, solver: solver, alpha: alpha, beta: beta, limit: limit}
}

func (p *AlphaBetaPlayer) Name() string {
	return p.name
}

func (p *AlphaBetaPlayer) Solver() *alphabeta.Solver {
	return p.solver
}

func (p *AlphaBetaPlayer) Limit() int {
	return p.limit
}

// LastValue is the search value behind the most recent ChooseMove.
func (p *AlphaBetaPlayer) LastValue() float64 {
	return p.lastValue
}

func (p *AlphaBetaPlayer) ChooseMove(b *board.Board, role board.Player) (int, error) {
	if b.IsTerminal() {
		return alphabeta.NoMove, ErrNoMoves
	}
	v, m := p.solver.Solve(b, role, p.alpha, p.beta, p.limit)
	if m == alphabeta.NoMove {
		return m, fmt.Errorf("%w: search returned no move for %v", ErrNoMoves, role)
	}
	p.lastValue = v
	return m, nil
}
