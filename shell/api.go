package shell

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/dotsboxes/automatic"
	"github.com/domino14/dotsboxes/board"
	"github.com/domino14/dotsboxes/config"
	"github.com/domino14/dotsboxes/endgame/alphabeta"
	"github.com/domino14/dotsboxes/equity"
	"github.com/domino14/dotsboxes/stats"
	"github.com/domino14/dotsboxes/turnplayer"
)

func (cmd *shellcmd) intOption(key string, defaultI int) (int, error) {
	v, ok := cmd.options[key]
	if !ok {
		return defaultI, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("option -%s: %w", key, err)
	}
	return n, nil
}

func (cmd *shellcmd) boolOption(key string) bool {
	return strings.ToLower(cmd.options[key]) == "true"
}

func (sc *ShellController) gameDisplay() string {
	b := sc.game.Board()
	var s strings.Builder
	s.WriteString(b.ToDisplayText())
	fmt.Fprintf(&s, "\nmax %d, min %d", b.BoxesFor(board.Max), b.BoxesFor(board.Min))
	if u, over := sc.game.Utility(); over {
		switch {
		case u > 0:
			s.WriteString("; game over, max wins")
		case u < 0:
			s.WriteString("; game over, min wins")
		default:
			s.WriteString("; game over, tie")
		}
	} else {
		fmt.Fprintf(&s, "; %v to move", sc.game.PlayerOnTurn())
	}
	return s.String()
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		if err := sc.options.SetSize(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	if r, ok := cmd.options["rule"]; ok {
		if err := sc.options.SetRule(r); err != nil {
			return nil, err
		}
	}
	if f, ok := cmd.options["first"]; ok {
		if err := sc.options.SetFirstMover(f); err != nil {
			return nil, err
		}
	}
	g, err := turnplayer.BaseTurnPlayerFromOptions(sc.options)
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.randy = turnplayer.NewRandomPlayer(automatic.RandomPlayerName, automatic.GenerateSeeds(1)[0])
	sc.searcher = sc.options.NewAlphaBetaPlayer()
	return msg(sc.options.String() + "\n\n" + sc.gameDisplay()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	b := sc.game.Board()
	moves := b.AvailableMoves()
	var s strings.Builder
	fmt.Fprintf(&s, "%d moves for %v\n", len(moves), sc.game.PlayerOnTurn())
	s.WriteString(" Edge  Cell   Kind        Completes\n")
	for _, m := range moves {
		_, completed, err := b.ApplyMove(m, sc.game.PlayerOnTurn())
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&s, "%5d  %-6s %-11v %d\n", m,
			fmt.Sprintf("%d,%d", m/b.Dim(), m%b.Dim()), b.Cell(m).Kind, completed)
	}
	return msg(s.String()), nil
}

func describeTurn(t turnplayer.Turn) string {
	s := fmt.Sprintf("%v drew %d", t.Mover, t.Edge)
	if t.Completed > 0 {
		s += fmt.Sprintf(", completing %d", t.Completed)
	}
	return s
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	edge, err := turnplayer.ParseMove(sc.game.Board(), cmd.args)
	if err != nil {
		return nil, err
	}
	t, err := sc.game.PlayMove(edge)
	if err != nil {
		return nil, err
	}
	return msg(describeTurn(t) + "\n\n" + sc.gameDisplay()), nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	t, err := sc.game.PlayTurn(sc.searcher)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%s (value %.4f)\n\n%s", describeTurn(t), sc.searcher.LastValue(), sc.gameDisplay())), nil
}

func (sc *ShellController) random(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	t, err := sc.game.PlayTurn(sc.randy)
	if err != nil {
		return nil, err
	}
	return msg(describeTurn(t) + "\n\n" + sc.gameDisplay()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.Undo() {
		return nil, errors.New("nothing to undo")
	}
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.IsPlaying() {
		return nil, turnplayer.ErrNoMoves
	}
	limit, err := cmd.intOption("limit", sc.options.Limit)
	if err != nil {
		return nil, err
	}
	solver := sc.options.NewSolver()
	solver.SetPruningDisabled(cmd.boolOption("nopruning"))
	b := sc.game.Board()
	role := sc.game.PlayerOnTurn()
	tstart := time.Now()
	v, m := solver.Solve(b, role, sc.options.Alpha, sc.options.Beta, limit)
	elapsed := time.Since(tstart)
	if m == alphabeta.NoMove {
		return msg(fmt.Sprintf("no move searched; value %.4f", v)), nil
	}
	return msg(fmt.Sprintf("best move for %v: %d (%d,%d)\nvalue %.4f, %d nodes, %d cutoffs, %v\n%v",
		role, m, m/b.Dim(), m%b.Dim(), v, solver.Nodes(), solver.Cutoffs(), elapsed,
		solver.PrincipalVariation())), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	b := sc.game.Board()
	var s strings.Builder
	if u, ok := equity.TerminalUtility(b); ok {
		fmt.Fprintf(&s, "terminal utility %v\n", u)
	}
	for _, f := range []equity.Family{equity.Snatch, equity.Action, equity.SetUp} {
		for _, o := range []equity.Orientation{equity.MaxOriented, equity.MinOriented} {
			h := equity.NewHeuristic(f, o)
			fmt.Fprintf(&s, "%-12s %8.4f\n", h.Name(), h.Evaluate(b))
		}
	}
	fmt.Fprintf(&s, "open edges per box: %v", b.BoxOpenCounts())
	return msg(s.String()), nil
}

func (sc *ShellController) matchupFromOptions(vsRandom bool) automatic.Matchup {
	opts := sc.options
	var m automatic.Matchup
	if vsRandom {
		m = automatic.NewRandomMatchup(opts.Rule, opts.MaxFamily, opts.Size)
	} else {
		m = automatic.NewMatchup(opts.Rule, opts.MaxFamily, opts.MinFamily, opts.Size)
	}
	m.Limit = opts.Limit
	m.Alpha = opts.Alpha
	m.Beta = opts.Beta
	m.FirstMover = opts.FirstMover
	return m
}

func (sc *ShellController) runOptions(cmd *shellcmd) (automatic.RunOptions, func(), error) {
	var ro automatic.RunOptions
	var files []*os.File
	closer := func() {
		for _, f := range files {
			f.Close()
		}
	}
	var err error
	ro.Games, err = cmd.intOption("games", sc.config.GetInt(config.ConfigGames))
	if err != nil {
		return ro, closer, err
	}
	ro.Threads, err = cmd.intOption("threads", sc.config.GetInt(config.ConfigThreads))
	if err != nil {
		return ro, closer, err
	}
	seedFile := sc.config.GetString(config.ConfigSeedFile)
	if s, ok := cmd.options["seeds"]; ok {
		seedFile = s
	}
	if seedFile != "" {
		ro.Seeds, err = automatic.LoadSeeds(seedFile)
		if err != nil {
			return ro, closer, err
		}
	}
	if p, ok := cmd.options["log"]; ok {
		f, err := os.Create(p)
		if err != nil {
			return ro, closer, err
		}
		files = append(files, f)
		ro.GameLog = f
	}
	if p, ok := cmd.options["movelog"]; ok {
		f, err := os.Create(p)
		if err != nil {
			return ro, closer, err
		}
		files = append(files, f)
		ro.MoveLog = f
	}
	return ro, closer, nil
}

func (sc *ShellController) finishRun(cmd *shellcmd, results []*automatic.MatchupResult) (*Response, error) {
	sc.lastResults = results
	var s strings.Builder
	s.WriteString(automatic.FormatResults(results))

	reportPath := sc.config.GetString(config.ConfigReportPath)
	if p, ok := cmd.options["report"]; ok {
		reportPath = p
	}
	if reportPath != "" {
		f, err := os.Create(reportPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := automatic.WriteReport(f, results); err != nil {
			return nil, err
		}
		fmt.Fprintf(&s, "report written to %s\n", reportPath)
	}
	if cmd.boolOption("plot") {
		width := sc.config.GetInt(config.ConfigPlotWidth)
		for _, r := range results {
			s.WriteString("\n")
			if err := stats.PlotOutcomes(&s, r.Matchup.Name, r.Tally.MinWins, r.Tally.Ties, r.Tally.MaxWins, width); err != nil {
				return nil, err
			}
		}
	}
	return msg(s.String()), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if automatic.IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	ro, closer, err := sc.runOptions(cmd)
	defer closer()
	if err != nil {
		return nil, err
	}
	var matchups []automatic.Matchup
	switch cmd.options["experiment"] {
	case "default":
		matchups = automatic.DefaultExperiment(sc.options.Size)
	case "random":
		matchups = automatic.RandomBaseline(sc.options.Size)
	case "":
		matchups = []automatic.Matchup{sc.matchupFromOptions(cmd.boolOption("random"))}
	default:
		return nil, fmt.Errorf("unknown experiment %q; use default or random", cmd.options["experiment"])
	}
	log.Info().Int("matchups", len(matchups)).Int("games", ro.Games).Int("threads", ro.Threads).Msg("autoplay")
	results, err := automatic.RunExperiment(sc.ctx, matchups, ro)
	if err != nil {
		return nil, err
	}
	return sc.finishRun(cmd, results)
}

func (sc *ShellController) sweep(cmd *shellcmd) (*Response, error) {
	minSize, err := cmd.intOption("min", 2)
	if err != nil {
		return nil, err
	}
	maxSize, err := cmd.intOption("max", sc.config.GetInt(config.ConfigMaxSweepSize))
	if err != nil {
		return nil, err
	}
	ro, closer, err := sc.runOptions(cmd)
	defer closer()
	if err != nil {
		return nil, err
	}
	results, err := automatic.RunSizeSweep(sc.ctx, sc.matchupFromOptions(cmd.boolOption("random")), minSize, maxSize, ro)
	if err != nil {
		return nil, err
	}
	return sc.finishRun(cmd, results)
}

func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: analyze <game log file>")
	}
	s, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(s), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.options.String() + fmt.Sprintf("\ngames %d, threads %d",
			sc.config.GetInt(config.ConfigGames), sc.config.GetInt(config.ConfigThreads))), nil
	}
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: set <option> <value>")
	}
	opt, val := cmd.args[0], cmd.args[1]
	var err error
	switch opt {
	case "size":
		err = sc.options.SetSize(val)
	case "rule":
		err = sc.options.SetRule(val)
	case "evals":
		if len(cmd.args) != 3 {
			return nil, errors.New("usage: set evals <max family> <min family>")
		}
		err = sc.options.SetEvaluators(val, cmd.args[2])
	case "max-eval":
		err = sc.options.SetEvaluators(val, sc.options.MinFamily.String())
	case "min-eval":
		err = sc.options.SetEvaluators(sc.options.MaxFamily.String(), val)
	case "limit":
		err = sc.options.SetLimit(val)
	case "alpha", "beta":
		var f float64
		f, err = strconv.ParseFloat(val, 64)
		if err == nil && opt == "alpha" {
			sc.options.Alpha = f
		} else if err == nil {
			sc.options.Beta = f
		}
	case "first":
		err = sc.options.SetFirstMover(val)
	case "games", "threads":
		var n int
		n, err = strconv.Atoi(val)
		if err == nil && n < 1 {
			err = fmt.Errorf("%s must be positive", opt)
		}
		if err == nil {
			sc.config.Set(opt, n)
		}
	default:
		return nil, fmt.Errorf("unknown option %q", opt)
	}
	if err != nil {
		return nil, err
	}
	if sc.game != nil {
		sc.searcher = sc.options.NewAlphaBetaPlayer()
	}
	return msg("set " + opt + " to " + strings.Join(cmd.args[1:], " ")), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage()), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}
