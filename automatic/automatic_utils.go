package automatic

// Experiments: many games of a matchup, played in parallel and tallied.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/dotsboxes/board"
	"github.com/domino14/dotsboxes/endgame/alphabeta"
	"github.com/domino14/dotsboxes/equity"
	"github.com/domino14/dotsboxes/stats"
)

var (
	GamesPlayed *expvar.Int
	IsPlaying   *expvar.Int
)

func init() {
	GamesPlayed = expvar.NewInt("gamesPlayed")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrNoGames = errors.New("number of games must be positive")

// Tally counts game outcomes.
type Tally struct {
	MinWins int `yaml:"min_wins"`
	Ties    int `yaml:"ties"`
	MaxWins int `yaml:"max_wins"`
}

func (t *Tally) Add(o Outcome) {
	switch o {
	case MinWin:
		t.MinWins++
	case MaxWin:
		t.MaxWins++
	default:
		t.Ties++
	}
}

func (t *Tally) Merge(o Tally) {
	t.MinWins += o.MinWins
	t.Ties += o.Ties
	t.MaxWins += o.MaxWins
}

func (t Tally) Total() int {
	return t.MinWins + t.Ties + t.MaxWins
}

func (t Tally) String() string {
	return fmt.Sprintf("Min %d, Tie %d, Max %d", t.MinWins, t.Ties, t.MaxWins)
}

// RunOptions controls how many games an experiment plays and where its
// logs go.
type RunOptions struct {
	Games   int
	Threads int
	// Seeds are used round-robin, game i getting Seeds[i%len(Seeds)].
	// When empty every game gets SeedFor(matchup name, i).
	Seeds [][32]byte
	// MoveLog receives one CSV line per move when set.
	MoveLog io.Writer
	// GameLog receives one CSV line per finished game when set; see
	// AnalyzeLogFile.
	GameLog io.Writer
}

// MatchupResult is the tally of one matchup.
type MatchupResult struct {
	Matchup        Matchup
	Tally          Tally
	Summary        stats.OutcomeSummary
	DistinctFinals int
	Elapsed        time.Duration
}

const (
	moveLogHeader = "gameID,matchup,turn,mover,edge,completed,score\n"
	gameLogHeader = "gameID,maxName,minName,maxBoxes,minBoxes,firstMover\n"
)

func (o RunOptions) seedFor(name string, i int) [32]byte {
	if len(o.Seeds) > 0 {
		return o.Seeds[i%len(o.Seeds)]
	}
	return SeedFor(name, i)
}

// RunMatchup plays opts.Games games of m on opts.Threads workers. Each
// game is seeded by its index alone, so the tally does not depend on the
// number of workers.
func RunMatchup(ctx context.Context, m Matchup, opts RunOptions) (*MatchupResult, error) {
	if opts.Games < 1 {
		return nil, ErrNoGames
	}
	threads := max(opts.Threads, 1)
	log.Debug().Str("matchup", m.Name).Int("games", opts.Games).Int("threads", threads).Msg("starting-matchup")
	tstart := time.Now()

	var logChan chan string
	loggerDone := make(chan struct{})
	if opts.MoveLog != nil {
		logChan = make(chan string, 100)
		go func() {
			defer close(loggerDone)
			io.WriteString(opts.MoveLog, moveLogHeader)
			for msg := range logChan {
				io.WriteString(opts.MoveLog, msg)
			}
		}()
	} else {
		close(loggerDone)
	}

	maxName := m.MaxFamily.String()
	minName := m.MinFamily.String()
	if m.RandomMin {
		minName = RandomPlayerName
	}
	if opts.GameLog != nil {
		io.WriteString(opts.GameLog, gameLogHeader)
	}

	res := &MatchupResult{Matchup: m}
	finals := map[uint64]struct{}{}
	var mu sync.Mutex

	jobs := make(chan int, threads)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < opts.Games; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return gctx.Err()
			}
		}
		return nil
	})
	for t := 0; t < threads; t++ {
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			r := NewGameRunner(m, opts.seedFor(m.Name, 0), logChan)
			for i := range jobs {
				r.Reseed(opts.seedFor(m.Name, i))
				gameID := fmt.Sprintf("%s-%d", m.Name, i)
				r.SetGameID(gameID)
				outcome, final, err := r.PlayGame(gctx)
				if err != nil {
					return err
				}
				GamesPlayed.Add(1)
				mu.Lock()
				res.Tally.Add(outcome)
				finals[final.Hash()] = struct{}{}
				if opts.GameLog != nil {
					fmt.Fprintf(opts.GameLog, "%s,%s,%s,%d,%d,%v\n", gameID, maxName, minName,
						final.BoxesFor(board.Max), final.BoxesFor(board.Min), m.FirstMover)
				}
				mu.Unlock()
			}
			return nil
		})
	}
	err := g.Wait()
	if logChan != nil {
		close(logChan)
	}
	<-loggerDone
	if err != nil {
		return nil, err
	}

	res.DistinctFinals = len(finals)
	res.Elapsed = time.Since(tstart)
	res.Summary = stats.SummarizeOutcomes(res.Tally.MinWins, res.Tally.Ties, res.Tally.MaxWins)
	log.Info().Str("matchup", m.Name).
		Int("min-wins", res.Tally.MinWins).Int("ties", res.Tally.Ties).Int("max-wins", res.Tally.MaxWins).
		Int("distinct-finals", res.DistinctFinals).Dur("elapsed", res.Elapsed).
		Msg("matchup-done")
	return res, nil
}

// RunSizeSweep plays m on every board size from minSize to maxSize.
func RunSizeSweep(ctx context.Context, m Matchup, minSize, maxSize int, opts RunOptions) ([]*MatchupResult, error) {
	if minSize < 1 || maxSize < minSize {
		return nil, fmt.Errorf("bad size range %d..%d", minSize, maxSize)
	}
	var results []*MatchupResult
	for size := minSize; size <= maxSize; size++ {
		res, err := RunMatchup(ctx, m.WithSize(size), opts)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// RunExperiment plays every matchup in turn.
func RunExperiment(ctx context.Context, matchups []Matchup, opts RunOptions) ([]*MatchupResult, error) {
	results := make([]*MatchupResult, 0, len(matchups))
	for _, m := range matchups {
		res, err := RunMatchup(ctx, m, opts)
		if err != nil {
			return nil, fmt.Errorf("matchup %v: %w", m.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// DefaultExperiment is the classic set of six matchups: snatch against
// action, set-up against action and snatch against set-up, each under
// both turn rules.
func DefaultExperiment(size int) []Matchup {
	pairs := [][2]equity.Family{
		{equity.Snatch, equity.Action},
		{equity.SetUp, equity.Action},
		{equity.Snatch, equity.SetUp},
	}
	var ms []Matchup
	for _, rule := range []alphabeta.Rule{alphabeta.StandardTurns, alphabeta.TurnAgain} {
		for _, p := range pairs {
			ms = append(ms, NewMatchup(rule, p[0], p[1], size))
		}
	}
	return ms
}

// RandomBaseline pits each heuristic family, playing Max, against the
// random player under both rules.
func RandomBaseline(size int) []Matchup {
	var ms []Matchup
	for _, rule := range []alphabeta.Rule{alphabeta.StandardTurns, alphabeta.TurnAgain} {
		for _, f := range []equity.Family{equity.Snatch, equity.Action, equity.SetUp} {
			ms = append(ms, NewRandomMatchup(rule, f, size))
		}
	}
	return ms
}
