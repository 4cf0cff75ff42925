package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug        = "debug"
	ConfigBoardSize    = "board-size"
	ConfigDepthLimit   = "depth-limit"
	ConfigAlpha        = "alpha"
	ConfigBeta         = "beta"
	ConfigRule         = "rule"
	ConfigMaxEval      = "max-eval"
	ConfigMinEval      = "min-eval"
	ConfigGames        = "games"
	ConfigThreads      = "threads"
	ConfigMaxSweepSize = "max-sweep-size"
	ConfigSeedFile     = "seed-file"
	ConfigReportPath   = "report-path"
	ConfigPlotWidth    = "plot-width"
	ConfigCPUProfile   = "cpu-profile"
	ConfigConfigFile   = "config-file"
)

type Config struct {
	viper.Viper
	// rest holds positional arguments left over after flag parsing.
	rest []string
}

// DefaultConfig returns a config with only the defaults set. Useful for tests.
func DefaultConfig() Config {
	c := Config{Viper: *viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigBoardSize, 3)
	c.SetDefault(ConfigDepthLimit, 3)
	c.SetDefault(ConfigAlpha, -1.0)
	c.SetDefault(ConfigBeta, 1.0)
	c.SetDefault(ConfigRule, "standard")
	c.SetDefault(ConfigMaxEval, "snatch")
	c.SetDefault(ConfigMinEval, "action")
	c.SetDefault(ConfigGames, 50)
	c.SetDefault(ConfigThreads, 1)
	c.SetDefault(ConfigMaxSweepSize, 4)
	c.SetDefault(ConfigSeedFile, "")
	c.SetDefault(ConfigReportPath, "")
	c.SetDefault(ConfigPlotWidth, 40)
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigConfigFile, "")
}

// Load loads the config from command-line flags, DOTSBOXES_* environment
// variables and, if given, a YAML config file. Flags win over the
// environment, which wins over the file.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("dotsboxes", pflag.ContinueOnError)
	// flags stop at the first shell command word
	fs.SetInterspersed(false)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigBoardSize, 3, "number of boxes per side")
	fs.Int(ConfigDepthLimit, 3, "search depth limit in plies")
	fs.Float64(ConfigAlpha, -1, "initial alpha for the root search")
	fs.Float64(ConfigBeta, 1, "initial beta for the root search")
	fs.String(ConfigRule, "standard", "rule variant: standard or turn-again")
	fs.String(ConfigMaxEval, "snatch", "heuristic for the max player: snatch, action or setup")
	fs.String(ConfigMinEval, "action", "heuristic for the min player: snatch, action or setup")
	fs.Int(ConfigGames, 50, "games per matchup in automatic play")
	fs.Int(ConfigThreads, 1, "concurrent games in automatic play")
	fs.Int(ConfigMaxSweepSize, 4, "largest board size for size sweeps")
	fs.String(ConfigSeedFile, "", "file with hex-encoded seeds for the random player")
	fs.String(ConfigReportPath, "", "write a YAML report of automatic play here")
	fs.Int(ConfigPlotWidth, 40, "width of outcome plots")
	fs.String(ConfigCPUProfile, "", "write a CPU profile here")
	fs.String(ConfigConfigFile, "", "optional YAML config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	c.rest = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("dotsboxes")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return err
		}
		log.Debug().Str("file", cfgFile).Msg("read-config-file")
	}
	return nil
}

// Args returns the positional arguments that followed the flags. The
// shell executes them as a single command.
func (c *Config) Args() []string {
	return c.rest
}

// SanitizedSettings returns the settings as a map for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
