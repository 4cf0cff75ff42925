package turnplayer

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/dotsboxes/board"
	"github.com/domino14/dotsboxes/endgame/alphabeta"
	"github.com/domino14/dotsboxes/equity"
)

// Turn is one drawn edge in a game's history.
type Turn struct {
	Mover     board.Player
	Edge      int
	Completed int
}

// BaseTurnPlayer tracks a game in progress: the board, who is on turn
// and what has been played. It knows the turn rule, so callers only
// supply edges.
type BaseTurnPlayer struct {
	board   *board.Board
	onTurn  board.Player
	rule    alphabeta.Rule
	history []Turn
	boards  []*board.Board
}

func NewBaseTurnPlayer(size int, rule alphabeta.Rule, first board.Player) (*BaseTurnPlayer, error) {
	b, err := board.NewBoard(size)
	if err != nil {
		return nil, err
	}
	return &BaseTurnPlayer{board: b, onTurn: first, rule: rule}, nil
}

// BaseTurnPlayerFromOptions is a good entry point
func BaseTurnPlayerFromOptions(opts *GameOptions) (*BaseTurnPlayer, error) {
	return NewBaseTurnPlayer(opts.Size, opts.Rule, opts.FirstMover)
}

func (p *BaseTurnPlayer) Board() *board.Board {
	return p.board
}

func (p *BaseTurnPlayer) PlayerOnTurn() board.Player {
	return p.onTurn
}

func (p *BaseTurnPlayer) Rule() alphabeta.Rule {
	return p.rule
}

func (p *BaseTurnPlayer) History() []Turn {
	return p.history
}

func (p *BaseTurnPlayer) IsPlaying() bool {
	return !p.board.IsTerminal()
}

// PlayMove draws edge for the player on turn and passes the turn on,
// unless the turn-again rule keeps it with the mover.
func (p *BaseTurnPlayer) PlayMove(edge int) (Turn, error) {
	if !p.IsPlaying() {
		return Turn{}, ErrNoMoves
	}
	succ, completed, err := p.board.ApplyMove(edge, p.onTurn)
	if err != nil {
		return Turn{}, err
	}
	t := Turn{Mover: p.onTurn, Edge: edge, Completed: completed}
	p.boards = append(p.boards, p.board)
	p.history = append(p.history, t)
	p.board = succ
	if p.rule == alphabeta.StandardTurns || completed == 0 {
		p.onTurn = p.onTurn.Opponent()
	}
	log.Debug().Str("mover", t.Mover.String()).Int("edge", edge).
		Int("completed", completed).Str("next", p.onTurn.String()).Msg("played-move")
	return t, nil
}

// PlayTurn asks pl for a move on the current board and plays it.
func (p *BaseTurnPlayer) PlayTurn(pl Player) (Turn, error) {
	edge, err := pl.ChooseMove(p.board, p.onTurn)
	if err != nil {
		return Turn{}, err
	}
	return p.PlayMove(edge)
}

// Undo takes back the last move. It returns false if nothing was played.
func (p *BaseTurnPlayer) Undo() bool {
	n := len(p.history)
	if n == 0 {
		return false
	}
	p.onTurn = p.history[n-1].Mover
	p.board = p.boards[n-1]
	p.history = p.history[:n-1]
	p.boards = p.boards[:n-1]
	return true
}

// Utility is the result of the game once it is over.
func (p *BaseTurnPlayer) Utility() (float64, bool) {
	return equity.TerminalUtility(p.board)
}
