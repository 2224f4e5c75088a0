package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every registered mode and whether it includes a computer opponent.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	maxIDLen := 2 // "ID" header
	for _, v := range tetris.Variants {
		maxIDLen = max(maxIDLen, len(v.ID))
	}

	fmt.Println("Available modes:")
	fmt.Println()
	fmt.Printf("  %-*s  %-12s  %-4s  %s\n", maxIDLen, "ID", "Rules", "CPU", "Title")
	fmt.Printf("  %-*s  %-12s  %-4s  %s\n", maxIDLen, "--", "-----", "---", "-----")

	for _, v := range tetris.Variants {
		cpu := "no"
		if v.VsCPU {
			cpu = "yes"
		}
		fmt.Printf("  %-*s  %-12s  %-4s  %s\n", maxIDLen, v.ID, v.Mode.Title(), cpu, v.Title)
	}

	fmt.Println()
	fmt.Println("Run 'tetris play <id>' to play a mode.")
}
