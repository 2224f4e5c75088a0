package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Left/Right, A/D  - Move
  Up, W            - Rotate
  Down, S          - Soft drop
  Space            - Hard drop
  P                - Pause
  R                - Restart (after the round ends)
  B/Esc            - Leave
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a text screenshot to ~/.tetris/screenshots

Modes against the CPU ask for a difficulty unless --difficulty is given.

Examples:
  tetris play tetris
  tetris play tetris_infinite
  tetris play tetris_vs --difficulty very_hard
  tetris play tetris_tugofwar --config ./my-tetris.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'tetris list' to see available modes)", gameID)
	}

	cfg := runtimeConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	if g, ok := game.(*tetris.Game); ok && isVersus(gameID) && !cmd.Flags().Changed("difficulty") {
		tier, chosen, err := tui.RunDifficultySelector(g.Title(), tetris.CurrentDifficulty(), cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			return err
		}
		if !chosen {
			return nil
		}
		g.SetDifficulty(tier)
	}

	store := openStore()
	defer closeStore(store)

	if _, err := tui.Run(game, store, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

func isVersus(gameID string) bool {
	for _, v := range tetris.Variants {
		if v.ID == gameID {
			return v.VsCPU
		}
	}
	return false
}

// openStore opens the scores database; the game still runs without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("cannot close scores database", "error", err)
	}
}
