package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagRoundsLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show best rounds for a mode",
	Long: `Display the top 10 rounds by lines cleared for the specified mode.

Examples:
  tetris scores tetris
  tetris scores tetris_vs`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

var roundsCmd = &cobra.Command{
	Use:   "rounds [mode]",
	Short: "Show recent round outcomes",
	Long: `Display recent rounds with lines, health and winner, newest first.
Without a mode, rounds of every mode are listed.

Examples:
  tetris rounds
  tetris rounds tetris_tugofwar --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRounds,
}

func init() {
	roundsCmd.Flags().IntVar(&flagRoundsLimit, "limit", 20, "Number of rounds to show")
}

func titleOf(gameID string) (string, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return "", fmt.Errorf("%w (run 'tetris list' to see available modes)", err)
	}
	return game.Title(), nil
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]
	title, err := titleOf(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer closeStore(store)

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("Best Rounds - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Lines", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func runRounds(_ *cobra.Command, args []string) error {
	gameID := ""
	heading := "Recent Rounds"
	if len(args) == 1 {
		gameID = args[0]
		title, err := titleOf(gameID)
		if err != nil {
			return err
		}
		heading += " - " + title
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer closeStore(store)

	rounds, err := store.RecentRounds(gameID, flagRoundsLimit)
	if err != nil {
		return fmt.Errorf("retrieving rounds: %w", err)
	}

	fmt.Println(heading)
	fmt.Println()
	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		return nil
	}

	const row = "  %-16s  %-18s  %-10s  %-9s  %-9s  %-6s  %s\n"
	fmt.Printf(row, "Date", "Mode", "Difficulty", "Lines", "Health", "Winner", "Time")
	fmt.Printf(row, "----", "----", "----------", "-----", "------", "------", "----")
	for _, r := range rounds {
		lines := fmt.Sprintf("%d", r.HumanLines)
		health := "-"
		if r.Difficulty != "" {
			lines = fmt.Sprintf("%d:%d", r.HumanLines, r.CPULines)
		}
		if r.Mode == "tug_of_war" {
			health = fmt.Sprintf("%+d:%+d", r.HumanHealth, r.CPUHealth)
		}
		fmt.Printf(row,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.GameID,
			orDash(r.Difficulty),
			lines,
			health,
			orDash(r.Winner),
			formatTicks(r.Ticks),
		)
	}

	if gameID != "" {
		if stats, err := store.GetRoundStats(gameID); err == nil && stats.Wins+stats.Losses+stats.Draws > 0 {
			fmt.Println()
			fmt.Printf("Won %d  Lost %d  Drawn %d\n", stats.Wins, stats.Losses, stats.Draws)
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatTicks renders a tick count as play time at the current tick rate.
func formatTicks(ticks int) string {
	secs := ticks / max(flagFPS, 1)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
