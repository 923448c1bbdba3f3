package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagClearSolves bool

var solvesCmd = &cobra.Command{
	Use:   "solves",
	Short: "Show best solves",
	Long: `Display the fewest tiles and rounds recorded for every solved level.

Examples:
  trackrace solves
  trackrace solves --clear`,
	Args: cobra.NoArgs,
	Run:  runSolves,
}

func init() {
	solvesCmd.Flags().BoolVar(&flagClearSolves, "clear", false, "Forget every recorded solve")
}

func runSolves(_ *cobra.Command, _ []string) {
	store, err := openStore()
	if err != nil {
		fatal("cannot open database: %v", err)
	}
	defer store.Close()

	if flagClearSolves {
		if err := store.ClearSolves(); err != nil {
			fatal("%v", err)
		}
		fmt.Println("Solves cleared.")
		return
	}

	entries, err := store.AllSolves()
	if err != nil {
		fatal("%v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Println("Run 'trackrace race <level>' to record one!")
		return
	}

	// Solves are keyed by level goal; show every level sharing the goal.
	names := make(map[string][]string)
	if lvls, err := loadLevels(); err == nil {
		for _, lvl := range lvls {
			names[lvl.Key()] = append(names[lvl.Key()], lvl.ID)
		}
	}

	fmt.Printf("  %-20s  %-5s  %-6s  %s\n", "Level", "Tiles", "Rounds", "Date")
	fmt.Printf("  %-20s  %-5s  %-6s  %s\n", "-----", "-----", "------", "----")
	for _, e := range entries {
		label := e.LevelKey
		if ids := names[e.LevelKey]; len(ids) > 0 {
			label = ids[0]
			if len(ids) > 1 {
				label += fmt.Sprintf(" (+%d)", len(ids)-1)
			}
		}
		fmt.Printf("  %-20s  %-5d  %-6d  %s\n", label, e.Solve.Tiles, e.Solve.Turns, e.UpdatedAt.Format("2006-01-02 15:04"))
	}
}
