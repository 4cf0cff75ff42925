package turnplayer

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/domino14/dotsboxes/board"
	"github.com/domino14/dotsboxes/config"
	"github.com/domino14/dotsboxes/endgame/alphabeta"
	"github.com/domino14/dotsboxes/equity"
)

type GameOptions struct {
	Size       int
	Rule       alphabeta.Rule
	MaxFamily  equity.Family
	MinFamily  equity.Family
	Limit      int
	Alpha      float64
	Beta       float64
	FirstMover board.Player
}

// DefaultFirstMover is Min for standard games and Max for turn-again
// games, matching the experiment harness.
func DefaultFirstMover(rule alphabeta.Rule) board.Player {
	if rule == alphabeta.TurnAgain {
		return board.Max
	}
	return board.Min
}

// OptionsFromConfig reads game options from cfg.
func OptionsFromConfig(cfg *config.Config) (*GameOptions, error) {
	rule, err := alphabeta.ParseRule(cfg.GetString(config.ConfigRule))
	if err != nil {
		return nil, err
	}
	maxFamily, err := equity.ParseFamily(cfg.GetString(config.ConfigMaxEval))
	if err != nil {
		return nil, err
	}
	minFamily, err := equity.ParseFamily(cfg.GetString(config.ConfigMinEval))
	if err != nil {
		return nil, err
	}
	opts := &GameOptions{
		Size:       cfg.GetInt(config.ConfigBoardSize),
		Rule:       rule,
		MaxFamily:  maxFamily,
		MinFamily:  minFamily,
		Limit:      cfg.GetInt(config.ConfigDepthLimit),
		Alpha:      cfg.GetFloat64(config.ConfigAlpha),
		Beta:       cfg.GetFloat64(config.ConfigBeta),
		FirstMover: DefaultFirstMover(rule),
	}
	log.Debug().Interface("opts", opts).Msg("game-options")
	return opts, nil
}

func (opts *GameOptions) SetSize(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("board size must be a number: %w", err)
	}
	if n < 1 {
		return board.ErrInvalidSize
	}
	opts.Size = n
	return nil
}

// SetRule also resets the first mover to the rule's default.
func (opts *GameOptions) SetRule(s string) error {
	rule, err := alphabeta.ParseRule(s)
	if err != nil {
		return err
	}
	opts.Rule = rule
	opts.FirstMover = DefaultFirstMover(rule)
	return nil
}

func (opts *GameOptions) SetEvaluators(maxName, minName string) error {
	maxFamily, err := equity.ParseFamily(maxName)
	if err != nil {
		return err
	}
	minFamily, err := equity.ParseFamily(minName)
	if err != nil {
		return err
	}
	opts.MaxFamily, opts.MinFamily = maxFamily, minFamily
	return nil
}

func (opts *GameOptions) SetLimit(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fmt.Errorf("depth limit must be a positive number, got %q", s)
	}
	opts.Limit = n
	return nil
}

func (opts *GameOptions) SetFirstMover(s string) error {
	p, err := ParsePlayer(s)
	if err != nil {
		return err
	}
	opts.FirstMover = p
	return nil
}

// NewSolver builds a searcher for these options.
func (opts *GameOptions) NewSolver() *alphabeta.Solver {
	maxEval, minEval := equity.Pair(opts.MaxFamily, opts.MinFamily)
	return alphabeta.NewSolver(opts.Rule, maxEval, minEval)
}

// NewAlphaBetaPlayer builds a searching player for these options.
func (opts *GameOptions) NewAlphaBetaPlayer() *AlphaBetaPlayer {
	name := fmt.Sprintf("%v-max/%v-min", opts.MaxFamily, opts.MinFamily)
	return NewAlphaBetaPlayer(name, opts.NewSolver(), opts.Alpha, opts.Beta, opts.Limit)
}

func (opts *GameOptions) String() string {
	return fmt.Sprintf("%dx%d %v, max %v, min %v, limit %d, window (%g, %g), %v first",
		opts.Size, opts.Size, opts.Rule, opts.MaxFamily, opts.MinFamily,
		opts.Limit, opts.Alpha, opts.Beta, opts.FirstMover)
}
