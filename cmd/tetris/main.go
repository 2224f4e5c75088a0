// tetris is a falling-block puzzle for the terminal, solo or against a
// computer opponent.
//
// Usage:
//
//	tetris list              - List available modes
//	tetris play <mode>       - Play a mode
//	tetris menu              - Pick modes interactively
//	tetris serve             - Start SSH server for remote play
//	tetris scores <mode>     - Show best rounds for a mode
//	tetris rounds [mode]     - Show recent round outcomes
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tetris/scores.db)
//	--config <path>       - Custom tuning YAML
//	--difficulty <tier>   - CPU tier: very_easy, easy, medium, hard, very_hard
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn, error
//	--telemetry           - Export traces over OTLP HTTP
//
// TETRIS_DB, TETRIS_TICK_RATE, TETRIS_LOG_FILE, TETRIS_LOG_LEVEL and
// TETRIS_TELEMETRY (also read from .env) fill in flags that are not set.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/telemetry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
	flagTelemetry  bool
)

var (
	logger          = log.New(io.Discard)
	logFile         *os.File
	shutdownTracing = func(context.Context) error { return nil }
)

func main() {
	err := rootCmd.Execute()
	cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris in the terminal, solo or against a computer opponent.

Available commands:
  list     - Show all modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View best rounds
  rounds   - View recent round outcomes

Examples:
  tetris list
  tetris play tetris
  tetris play tetris_tugofwar --difficulty hard
  tetris menu
  tetris serve --ssh :2222
  tetris rounds tetris_vs`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.tetris/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "medium", "CPU tier: very_easy, easy, medium, hard, very_hard")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagTelemetry, "telemetry", false, "Export traces over OTLP HTTP (OTEL_EXPORTER_OTLP_* variables)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(roundsCmd)
}

// setup merges environment settings into unset flags, then wires logging,
// tracing and game defaults.
func setup(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("db") {
		flagDBPath = env.DBPath
	}
	if !flags.Changed("fps") {
		flagFPS = env.TickRate
	}
	if !flags.Changed("log-file") {
		flagLogFile = env.LogFile
	}
	if !flags.Changed("log-level") {
		flagLogLevel = env.LogLevel
	}
	if !flags.Changed("telemetry") {
		flagTelemetry = env.Telemetry
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	if err := setupLogger(); err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(cmd.Context(), flagTelemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	shutdownTracing = shutdown

	tetris.SetConfigPath(flagConfig)
	tetris.SetLogger(logger)
	tui.SetLogger(logger)
	return tetris.SetDifficulty(flagDifficulty)
}

func setupLogger() error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	var out io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		out = f
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "tetris",
		Level:           level,
	})
	return nil
}

func cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("cannot flush traces", "error", err)
	}
	if logFile != nil {
		logFile.Close()
	}
}

// runtimeConfig sizes the round to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
