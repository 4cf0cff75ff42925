package turnplayer

import (
	"errors"

	"github.com/domino14/dotsboxes/board"
)

var ErrNoMoves = errors.New("no moves available")

// Player encapsulates a way of choosing an edge to draw. Implementations
// never modify the board they are given.
type Player interface {
	Name() string
	ChooseMove(b *board.Board, role board.Player) (int, error)
}
