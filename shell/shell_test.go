package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/dotsboxes/board"
	"github.com/domino14/dotsboxes/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -log /path/to/log.txt",
			&shellcmd{"autoplay", nil, map[string]string{"log": "/path/to/log.txt"}},
			nil},
		{"play 1 2",
			&shellcmd{"play", []string{"1", "2"}, map[string]string{}},
			nil},
		{"set alpha -0.5",
			&shellcmd{"set", []string{"alpha", "-0.5"}, map[string]string{}},
			nil},
		{`autoplay -report "my report.yaml" -games 3 `,
			&shellcmd{"autoplay", nil,
				map[string]string{"report": "my report.yaml", "games": "3"}},
			nil,
		},
		{"autoplay -random true -games",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newTestController(t *testing.T) *ShellController {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigBoardSize, 2)
	sc, err := newController(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func run(t *testing.T, sc *ShellController, line string) string {
	t.Helper()
	cmd, err := extractFields(line)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := sc.dispatch(cmd)
	if err != nil {
		t.Fatalf("%s: %v", line, err)
	}
	return resp.message
}

func TestGameCommands(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)

	cmd, _ := extractFields("show")
	_, err := sc.dispatch(cmd)
	is.Equal(err, errNoGame)

	out := run(t, sc, "new 1")
	is.True(strings.Contains(out, "min to move"))

	out = run(t, sc, "gen")
	is.True(strings.HasPrefix(out, "4 moves for min"))

	run(t, sc, "play 1")
	run(t, sc, "play 1,0")
	run(t, sc, "play 2 1")
	is.Equal(sc.game.PlayerOnTurn(), board.Max)

	out = run(t, sc, "solve")
	is.True(strings.HasPrefix(out, "best move for max: 5 (1,2)"))
	is.True(strings.Contains(out, "1: max 5"))

	out = run(t, sc, "aiplay")
	is.True(strings.HasPrefix(out, "max drew 5, completing 1"))
	is.True(strings.Contains(out, "game over, max wins"))

	run(t, sc, "undo")
	is.True(sc.game.IsPlaying())
	out = run(t, sc, "random")
	is.True(strings.Contains(out, "max wins"))

	out = run(t, sc, "eval")
	is.True(strings.HasPrefix(out, "terminal utility 1"))
}

func TestSetCommands(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	run(t, sc, "set rule turn-again")
	is.Equal(sc.options.FirstMover, board.Max)
	run(t, sc, "set evals setup snatch")
	run(t, sc, "set limit 2")
	run(t, sc, "set alpha -2")
	run(t, sc, "set games 3")
	is.Equal(sc.config.GetInt(config.ConfigGames), 3)
	out := run(t, sc, "set")
	is.True(strings.Contains(out, "max setup, min snatch, limit 2, window (-2, 1), max first"))

	cmd, _ := extractFields("set limit zero")
	_, err := sc.dispatch(cmd)
	is.True(err != nil)
	cmd, _ = extractFields("set colour blue")
	_, err = sc.dispatch(cmd)
	is.True(err != nil)
}

func TestAutoplayAndAnalyze(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "games.csv")
	reportPath := filepath.Join(dir, "report.yaml")

	out := run(t, sc, "autoplay -random true -games 4 -threads 2 -plot true -log "+logPath+" -report "+reportPath)
	is.True(strings.Contains(out, "snatch-max-vs-randy-min-standard-2x2"))
	is.True(strings.Contains(out, "report written to"))
	_, err := os.Stat(reportPath)
	is.NoErr(err)

	out = run(t, sc, "analyze "+logPath)
	is.True(strings.HasPrefix(out, "Games played: 4\n"))

	out = run(t, sc, "sweep -min 1 -max 2 -games 1")
	is.Equal(len(sc.lastResults), 2)
	is.True(strings.Contains(out, "1x1"))
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	is.True(strings.HasPrefix(run(t, sc, "help"), "Usage:"))
	is.True(strings.HasPrefix(run(t, sc, "help solve"), "solve"))
	is.True(strings.HasPrefix(run(t, sc, "help nothing"), "There is no help text"))
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	c := NewShellCompleter()
	line := []rune("auto")
	m, n := c.Do(line, len(line))
	is.Equal(n, 4)
	is.Equal(m, [][]rune{[]rune("play")})

	line = []rune("set evals ")
	m, n = c.Do(line, len(line))
	is.Equal(n, 0)
	is.Equal(len(m), 3)

	line = []rune("new -rule t")
	m, _ = c.Do(line, len(line))
	is.Equal(m, [][]rune{[]rune("urn-again")})
}
