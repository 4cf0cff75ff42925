// Package automatic plays whole Dots-and-Boxes games between two players
// and tallies the results of experiments made of many such games.
package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/dotsboxes/board"
	"github.com/domino14/dotsboxes/endgame/alphabeta"
	"github.com/domino14/dotsboxes/equity"
	"github.com/domino14/dotsboxes/turnplayer"
)

const RandomPlayerName = "randy"

// Outcome is the result of a finished game from Max's point of view.
type Outcome int8

const (
	MinWin Outcome = -1
	Tie    Outcome = 0
	MaxWin Outcome = 1
)

func (o Outcome) String() string {
	switch o {
	case MinWin:
		return "min-win"
	case MaxWin:
		return "max-win"
	}
	return "tie"
}

func outcomeOf(utility float64) Outcome {
	switch {
	case utility > 0:
		return MaxWin
	case utility < 0:
		return MinWin
	}
	return Tie
}

// Matchup describes one kind of game: who plays Max and Min, under which
// rule, on which board, and how deep they search.
type Matchup struct {
	Name       string
	MaxFamily  equity.Family
	MinFamily  equity.Family
	Rule       alphabeta.Rule
	Size       int
	Limit      int
	Alpha      float64
	Beta       float64
	FirstMover board.Player
	// RandomMin replaces the searching Min with a seeded random player.
	RandomMin bool
}

// NewMatchup fills in the harness defaults: window (-1, 1), three plies,
// and the rule's default first mover.
func NewMatchup(rule alphabeta.Rule, maxFamily, minFamily equity.Family, size int) Matchup {
	m := Matchup{
		MaxFamily:  maxFamily,
		MinFamily:  minFamily,
		Rule:       rule,
		Size:       size,
		Limit:      3,
		Alpha:      -1,
		Beta:       1,
		FirstMover: turnplayer.DefaultFirstMover(rule),
	}
	m.Name = m.defaultName()
	return m
}

// NewRandomMatchup pits a searching Max against the random player.
func NewRandomMatchup(rule alphabeta.Rule, maxFamily equity.Family, size int) Matchup {
	m := NewMatchup(rule, maxFamily, equity.Snatch, size)
	m.RandomMin = true
	m.Name = m.defaultName()
	return m
}

func (m Matchup) defaultName() string {
	minName := m.MinFamily.String()
	if m.RandomMin {
		minName = RandomPlayerName
	}
	return fmt.Sprintf("%v-max-vs-%v-min-%v-%dx%d", m.MaxFamily, minName, m.Rule, m.Size, m.Size)
}

// WithSize returns a copy of m on a different board, renamed to match.
func (m Matchup) WithSize(size int) Matchup {
	m.Size = size
	m.Name = m.defaultName()
	return m
}

func (m Matchup) String() string {
	return m.Name
}

// GameRunner is the master struct here for the automatic game logic. A
// runner owns its search state and must not be shared between goroutines.
type GameRunner struct {
	matchup Matchup
	solver  *alphabeta.Solver
	players [2]turnplayer.Player
	logchan chan<- string
	gameID  string
}

// NewGameRunner builds both players for m. Both searching players share
// a solver that scores Max nodes with the max evaluator and Min nodes
// with the min evaluator. seed only matters when Min plays randomly.
func NewGameRunner(m Matchup, seed [32]byte, logchan chan<- string) *GameRunner {
	maxEval, minEval := equity.Pair(m.MaxFamily, m.MinFamily)
	solver := alphabeta.NewSolver(m.Rule, maxEval, minEval)
	r := &GameRunner{matchup: m, solver: solver, logchan: logchan}
	r.players[board.Max] = turnplayer.NewAlphaBetaPlayer(m.MaxFamily.String()+"-max", solver, m.Alpha, m.Beta, m.Limit)
	r.Reseed(seed)
	return r
}

// Reseed replaces the random player's generator. It has no effect on
// searching players.
func (r *GameRunner) Reseed(seed [32]byte) {
	if r.matchup.RandomMin {
		r.players[board.Min] = turnplayer.NewRandomPlayer(RandomPlayerName, seed)
		return
	}
	if r.players[board.Min] == nil {
		r.players[board.Min] = turnplayer.NewAlphaBetaPlayer(r.matchup.MinFamily.String()+"-min",
			r.solver, r.matchup.Alpha, r.matchup.Beta, r.matchup.Limit)
	}
}

// SetGameID labels the lines sent to the log channel.
func (r *GameRunner) SetGameID(id string) {
	r.gameID = id
}

func (r *GameRunner) Matchup() Matchup {
	return r.matchup
}

// PlayGame plays one game to the end. Turns alternate starting from the
// matchup's first mover, except that under the turn-again rule a player
// who completes a box moves again.
func (r *GameRunner) PlayGame(ctx context.Context) (Outcome, *board.Board, error) {
	g, err := turnplayer.NewBaseTurnPlayer(r.matchup.Size, r.matchup.Rule, r.matchup.FirstMover)
	if err != nil {
		return Tie, nil, err
	}
	for g.IsPlaying() {
		if err := ctx.Err(); err != nil {
			return Tie, g.Board(), err
		}
		onTurn := g.PlayerOnTurn()
		turn, err := g.PlayTurn(r.players[onTurn])
		if err != nil {
			return Tie, g.Board(), fmt.Errorf("%v could not move: %w", r.players[onTurn].Name(), err)
		}
		if r.logchan != nil {
			r.logchan <- fmt.Sprintf("%v,%v,%d,%v,%d,%d,%d\n",
				r.gameID, r.matchup.Name, len(g.History()), turn.Mover, turn.Edge,
				turn.Completed, g.Board().Score())
		}
	}
	u, _ := g.Utility()
	final := g.Board()
	log.Debug().Str("matchup", r.matchup.Name).Str("game", r.gameID).
		Int("max-boxes", final.BoxesFor(board.Max)).Int("min-boxes", final.BoxesFor(board.Min)).
		Msg("game-over")
	return outcomeOf(u), final, nil
}
