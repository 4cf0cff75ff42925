package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/dotsboxes/automatic"
	"github.com/domino14/dotsboxes/config"
	"github.com/domino14/dotsboxes/turnplayer"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please start a game first with the `new` command")
)

type ShellController struct {
	l      *readline.Instance
	config *config.Config

	options  *turnplayer.GameOptions
	game     *turnplayer.BaseTurnPlayer
	randy    *turnplayer.RandomPlayer
	searcher *turnplayer.AlphaBetaPlayer

	ctx         context.Context
	lastResults []*automatic.MatchupResult
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController sets up the readline prompt on top of a controller.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	sc, err := newController(cfg)
	if err != nil {
		return nil, err
	}
	sc.l, err = readline.NewEx(&readline.Config{
		Prompt:          "\033[31mdotsboxes>\033[0m ",
		HistoryFile:     "/tmp/dotsboxes_readline.tmp",
		AutoComplete:    NewShellCompleter(),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func newController(cfg *config.Config) (*ShellController, error) {
	opts, err := turnplayer.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &ShellController{config: cfg, options: opts, ctx: context.Background()}, nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stdout())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a command line into the command, its positional
// arguments and its -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") && len(fields[idx]) > 1 && !isNumber(fields[idx]) {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[idx][1:]] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// negative numbers are arguments, not options
func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "new":
		return sc.newGame(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "gen":
		return sc.generate(cmd)
	case "play":
		return sc.play(cmd)
	case "aiplay":
		return sc.aiplay(cmd)
	case "random":
		return sc.random(cmd)
	case "undo":
		return sc.undo(cmd)
	case "solve":
		return sc.solve(cmd)
	case "eval":
		return sc.eval(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "sweep":
		return sc.sweep(cmd)
	case "analyze":
		return sc.analyze(cmd)
	case "set":
		return sc.set(cmd)
	case "help":
		return sc.help(cmd)
	}
	log.Debug().Msgf("you said: %v", cmd.cmd)
	return nil, fmt.Errorf("unrecognized command %q; try `help`", cmd.cmd)
}

// Execute runs a single command line, as given on the command line of
// the program.
func (sc *ShellController) Execute(sig chan os.Signal, line string) error {
	cmd, err := extractFields(line)
	if err != nil {
		return err
	}
	if cmd.cmd == "exit" || cmd.cmd == "bye" {
		sig <- syscall.SIGINT
		return nil
	}
	resp, err := sc.dispatch(cmd)
	if err != nil {
		sc.showError(err)
		return err
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cmd, err := extractFields(line)
		if err != nil {
			sc.showError(err)
			continue
		}
		if cmd.cmd == "exit" || cmd.cmd == "bye" {
			sig <- syscall.SIGINT
			break
		}
		resp, err := sc.dispatch(cmd)
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup releases the terminal.
func (sc *ShellController) Cleanup() {
	if sc.l != nil {
		sc.l.Close()
	}
}
