package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trackrace/internal/levels"
	"github.com/vovakirdan/trackrace/internal/track"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long:  `Shows the bundled levels and the levels found in the level directory.`,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	lvls, err := loadLevels()
	if err != nil {
		fatal("%v", err)
	}
	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("could not open database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	maxIDLen := 2 // "ID" header
	for _, lvl := range lvls {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-*s  %-4s  %-12s  %-12s  %s\n", maxIDLen, "ID", "Cars", "Finish", "Best", "Name")
	fmt.Printf("  %-*s  %-4s  %-12s  %-12s  %s\n", maxIDLen, "--", "----", "------", "----", "----")
	for _, lvl := range lvls {
		best := "-"
		if store != nil {
			if sd, ok, err := store.LoadSolve(lvl.Key()); err == nil && ok {
				best = fmt.Sprintf("%dt/%dr", sd.Tiles, sd.Turns)
			}
		}
		fmt.Printf("  %-*s  %-4d  %-12s  %-12s  %s\n", maxIDLen, lvl.ID, lvl.Cars, fmt.Sprint(lvl.Finish), best, lvl.Name)
		if banned := bannedNames(lvl); banned != "" {
			fmt.Printf("  %-*s  banned: %s\n", maxIDLen, "", banned)
		}
	}

	fmt.Println()
	fmt.Println("Run 'trackrace replay <id>' to watch a level.")
}

func bannedNames(lvl levels.Level) string {
	var names []string
	for _, t := range track.TileTypes {
		if lvl.IsBanned(t) {
			names = append(names, t.String())
		}
	}
	return strings.Join(names, ", ")
}
