package turnplayer

import (
	"lukechampine.com/frand"

	"github.com/domino14/dotsboxes/board"
)

// RandomPlayer draws a uniformly random open edge. It is seeded
// explicitly so that a game against it can be replayed.
type RandomPlayer struct {
	name string
	rng  *frand.RNG
}

func NewRandomPlayer(name string, seed [32]byte) *RandomPlayer {
	return &RandomPlayer{name: name, rng: frand.NewCustom(seed[:], 1024, 12)}
}

func (p *RandomPlayer) Name() string {
	return p.name
}

func (p *RandomPlayer) ChooseMove(b *board.Board, role board.Player) (int, error) {
	moves := b.AvailableMoves()
	if len(moves) == 0 {
		return -1, ErrNoMoves
	}
	return moves[p.rng.Intn(len(moves))], nil
}

// Play draws a random edge as Min and returns the new board and the edge.
func (p *RandomPlayer) Play(b *board.Board) (*board.Board, int, error) {
	e, err := p.ChooseMove(b, board.Min)
	if err != nil {
		return nil, -1, err
	}
	succ, _, err := b.ApplyMove(e, board.Min)
	if err != nil {
		return nil, -1, err
	}
	return succ, e, nil
}
