package equity

import (
	"github.com/domino14/dotsboxes/board"
)

// TerminalUtility is the exact result of a finished game: +1 if Max owns
// more boxes, -1 if Min does, 0 for a tie. ok is false while any edge is
// still open.
func TerminalUtility(b *board.Board) (value float64, ok bool) {
	if !b.IsTerminal() {
		return 0, false
	}
	score := b.Score()
	switch {
	case score > 0:
		return 1, true
	case score < 0:
		return -1, true
	}
	return 0, true
}
