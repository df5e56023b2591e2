package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lorenzotomasdiez/black-story/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "blackstory",
		Short: "Black Story deduction game between two AI models",
		Long:  "Runs a Black Story game: a Judge model writes a dark mystery and answers yes/no questions, a Detective model asks them and tries to solve it within a turn limit.",
	}

	root.PersistentFlags().String("config", "", "YAML config file")
	root.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")
	root.PersistentFlags().String("output-dir", config.DefaultOutputDir, "Directory for transcripts")
	root.PersistentFlags().Int("max-turns", config.DefaultMaxTurns, "Detective turns per game")
	root.PersistentFlags().Float64("match-threshold", config.DefaultMatchThreshold, "Share of the solution's words an attempt must contain")
	root.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level: trace, debug, info, warn, error")
	root.PersistentFlags().Bool("no-color", false, "Disable coloured output")

	root.AddCommand(newPlayCmd())
	root.AddCommand(newModelsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves settings from defaults, config file, environment and
// explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Root().PersistentFlags()
	envFile, _ := flags.GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("max-turns") {
		cfg.MaxTurns, _ = flags.GetInt("max-turns")
	}
	if flags.Changed("match-threshold") {
		cfg.MatchThreshold, _ = flags.GetFloat64("match-threshold")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) zerolog.Logger {
	w := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}
	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

// parseLevel converts a string level into zerolog.Level, defaulting to info.
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func colorEnabled(cmd *cobra.Command) bool {
	noColor, _ := cmd.Root().PersistentFlags().GetBool("no-color")
	return !noColor && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
