package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct{}

func NewShellCompleter() *ShellCompleter {
	return &ShellCompleter{}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Options: []string{"-rule", "-first"},
	},
	"solve": {
		Options: []string{"-limit", "-nopruning"},
	},
	"autoplay": {
		Options: []string{"-games", "-threads", "-random", "-experiment",
			"-seeds", "-log", "-movelog", "-report", "-plot"},
	},
	"sweep": {
		Options: []string{"-min", "-max", "-games", "-threads", "-random", "-plot",
			"-seeds", "-log", "-movelog", "-report"},
	},
	"set": {
		Args: []string{"size", "rule", "evals", "max-eval", "min-eval", "limit",
			"alpha", "beta", "first", "games", "threads"},
	},
	"help": {
		Args: []string{"solve", "autoplay", "set", "eval"},
	},
}

var commandNames = []string{
	"new", "show", "gen", "play", "aiplay", "random", "undo", "solve", "eval",
	"autoplay", "sweep", "analyze", "set", "help", "exit",
}

var boolValues = []string{"true", "false"}
var families = []string{"snatch", "action", "setup"}
var rules = []string{"standard", "turn-again"}
var players = []string{"max", "min"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// unterminated quote
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch lastCompleteField {
		case "-random", "-plot", "-nopruning":
			completions = boolValues
		case "-rule", "rule":
			completions = rules
		case "-first", "first":
			completions = players
		case "-experiment":
			completions = []string{"default", "random"}
		case "evals", "max-eval", "min-eval":
			completions = families
		}
		if cmdName == "set" && len(fields) > 1 && fields[1] == "evals" {
			completions = families
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
